package main

import (
	"bytes"
	"context"
	"testing"

	"digital-menu-api/store/storetest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

func TestCheckDishes(t *testing.T) {
	s := storetest.New(t)
	storetest.SeedAllergens(t, s)
	p := storetest.Profile(t, s, "trattoria")
	antipasti := storetest.Category(t, s, p.ID, "Antipasti")
	storetest.Category(t, s, p.ID, "Dolci")
	storetest.Dish(t, s, antipasti, "Bruschetta", "6.50", "glutine")
	storetest.Dish(t, s, antipasti, "Caprese", "9")

	cmd, out := testCmd()
	require.NoError(t, checkDishes(cmd, s, "trattoria"))
	assert.Contains(t, out.String(), "Categories: 2")
	assert.Contains(t, out.String(), "Antipasti (id ")
	assert.Contains(t, out.String(), "): 2 dishes")
	assert.Contains(t, out.String(), "): 0 dishes")
}

func TestCheckDishes_UnknownSlug(t *testing.T) {
	s := storetest.New(t)
	cmd, _ := testCmd()
	assert.Error(t, checkDishes(cmd, s, "missing"))
}

func TestPrintDiagnosis(t *testing.T) {
	s := storetest.New(t)
	d, err := s.Diagnose(context.Background())
	require.NoError(t, err)

	cmd, out := testCmd()
	printDiagnosis(cmd, d)
	assert.Contains(t, out.String(), "Dialect: sqlite")
	assert.Contains(t, out.String(), "  dishes\n")
	assert.Contains(t, out.String(), "Views (0)")
}
