package main

import (
	"fmt"
	"os"
	"strings"

	"digital-menu-api/config"
	"digital-menu-api/menuimport"
	"digital-menu-api/seed"
	"digital-menu-api/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := config.Migrate(s.DB()); err != nil {
			return err
		}
		logger.Info("schema migrated")
		return nil
	},
}

var applySQLCmd = &cobra.Command{
	Use:   "apply-sql <file>",
	Short: "Run a hand-written SQL script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := s.ExecSQL(cmd.Context(), string(script)); err != nil {
			return err
		}
		logger.Info("script applied", zap.String("file", args[0]))
		return nil
	},
}

var seedAllergensCmd = &cobra.Command{
	Use:   "seed-allergens",
	Short: "Insert or refresh the 14 regulated allergens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		n, err := seed.SeedAllergens(cmd.Context(), s)
		if err != nil {
			return err
		}
		logger.Info("allergens seeded", zap.Int("count", n))
		return nil
	},
}

var importFlags struct {
	slug     string
	file     string
	category string
}

var seedMenuCmd = &cobra.Command{
	Use:   "seed-menu",
	Short: "Replace a restaurant's whole menu with a text export",
	Long: `Parses a plain-text menu (category headings in upper case, dishes as
"Name — €price" followed by an optional description line) and replaces every
category and dish of the restaurant. The existing menu is deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFlags.file)
		if err != nil {
			return fmt.Errorf("open menu file: %w", err)
		}
		defer f.Close()

		s, err := openStore()
		if err != nil {
			return err
		}
		_, err = menuimport.NewImporter(s, logger).ReplaceMenu(cmd.Context(), importFlags.slug, f)
		return err
	},
}

var importSectionCmd = &cobra.Command{
	Use:   "import-section",
	Short: "Append the dishes of a text export to one category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFlags.file)
		if err != nil {
			return fmt.Errorf("open menu file: %w", err)
		}
		defer f.Close()

		s, err := openStore()
		if err != nil {
			return err
		}
		_, err = menuimport.NewImporter(s, logger).
			ImportSection(cmd.Context(), importFlags.slug, importFlags.category, f)
		return err
	},
}

var checkDishesCmd = &cobra.Command{
	Use:   "check-dishes",
	Short: "Print the categories of a restaurant with their dish counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		return checkDishes(cmd, s, importFlags.slug)
	},
}

func checkDishes(cmd *cobra.Command, s *store.Store, slug string) error {
	ctx := cmd.Context()
	p, err := s.ProfileBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("restaurant %q: %w", slug, err)
	}
	cats, err := s.CategoriesWithDishes(ctx, p.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Restaurant: %s (%s)\n", p.RestaurantName, p.ID)
	fmt.Fprintf(out, "Categories: %d\n", len(cats))
	for _, c := range cats {
		fmt.Fprintf(out, "  %s (id %d): %d dishes\n", c.Name, c.ID, len(c.Dishes))
	}
	return nil
}

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "List tables, check constraints, triggers and views",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		d, err := s.Diagnose(cmd.Context())
		if err != nil {
			return err
		}
		printDiagnosis(cmd, d)
		return nil
	},
}

func printDiagnosis(cmd *cobra.Command, d *store.Diagnosis) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dialect: %s\n", d.Dialect)
	for _, section := range []struct {
		title string
		items []string
	}{
		{"Tables", d.Tables},
		{"Check constraints", d.CheckConstraints},
		{"Triggers", d.Triggers},
		{"Views", d.Views},
	} {
		fmt.Fprintf(out, "%s (%d)\n", section.title, len(section.items))
		if len(section.items) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(section.items, "\n  "))
		}
	}
}

func init() {
	for _, c := range []*cobra.Command{seedMenuCmd, importSectionCmd, checkDishesCmd} {
		c.Flags().StringVar(&importFlags.slug, "slug", "", "Restaurant slug.")
		c.MarkFlagRequired("slug")
	}
	for _, c := range []*cobra.Command{seedMenuCmd, importSectionCmd} {
		c.Flags().StringVar(&importFlags.file, "file", "", "Path of the plain-text menu.")
		c.MarkFlagRequired("file")
	}
	importSectionCmd.Flags().StringVar(&importFlags.category, "category", "", "Category receiving the dishes.")
	importSectionCmd.MarkFlagRequired("category")
}
