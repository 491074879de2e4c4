package store

import (
	"context"
	"fmt"
)

// Diagnosis is a schema audit of the connected database
type Diagnosis struct {
	Dialect          string
	Tables           []string
	CheckConstraints []string
	Triggers         []string
	Views            []string
}

var diagQueries = map[string]struct{ tables, checks, triggers, views string }{
	"postgres": {
		tables: `SELECT table_name FROM information_schema.tables
			WHERE table_schema = 'public' AND table_type = 'BASE TABLE' ORDER BY table_name`,
		checks: `SELECT conrelid::regclass::text || '.' || conname || ': ' || pg_get_constraintdef(oid)
			FROM pg_constraint WHERE contype = 'c' AND connamespace = 'public'::regnamespace ORDER BY 1`,
		triggers: `SELECT DISTINCT event_object_table || '.' || trigger_name
			FROM information_schema.triggers WHERE trigger_schema = 'public' ORDER BY 1`,
		views: `SELECT table_name FROM information_schema.views WHERE table_schema = 'public' ORDER BY table_name`,
	},
	"sqlite": {
		tables:   `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		triggers: `SELECT tbl_name || '.' || name FROM sqlite_master WHERE type = 'trigger' ORDER BY 1`,
		views:    `SELECT name FROM sqlite_master WHERE type = 'view' ORDER BY name`,
	},
}

// Diagnose lists tables, check constraints, triggers and views. Check
// constraints are only reported on Postgres.
func (s *Store) Diagnose(ctx context.Context) (*Diagnosis, error) {
	dialect := s.db.Dialector.Name()
	q, ok := diagQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("diagnose: unsupported dialect %q", dialect)
	}

	d := &Diagnosis{Dialect: dialect}
	db := s.db.WithContext(ctx)
	for _, step := range []struct {
		query string
		dest  *[]string
	}{
		{q.tables, &d.Tables},
		{q.checks, &d.CheckConstraints},
		{q.triggers, &d.Triggers},
		{q.views, &d.Views},
	} {
		if step.query == "" {
			continue
		}
		if err := db.Raw(step.query).Scan(step.dest).Error; err != nil {
			return nil, fmt.Errorf("diagnose: %w", err)
		}
	}
	return d, nil
}

// ExecSQL runs a script of raw statements, as used for hand-written migrations
func (s *Store) ExecSQL(ctx context.Context, script string) error {
	if err := s.db.WithContext(ctx).Exec(script).Error; err != nil {
		return fmt.Errorf("exec sql: %w", err)
	}
	return nil
}
