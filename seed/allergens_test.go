package seed

import (
	"context"
	"testing"

	"digital-menu-api/models"
	"digital-menu-api/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAllergens_Idempotent(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	// a stale row from an older seed gets overwritten
	require.NoError(t, s.UpsertAllergens(ctx, []models.Allergen{
		{ID: "anidride-solforosa", Number: 12, Icon: "?", Name: "Anidride solforosa"},
	}))

	for i := 0; i < 2; i++ {
		n, err := SeedAllergens(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, 14, n)
	}

	list, err := s.ListAllergens(ctx)
	require.NoError(t, err)
	require.Len(t, list, 14)
	for i, a := range list {
		assert.Equal(t, i+1, a.Number)
	}
	assert.Equal(t, "Solfiti", list[11].Name)
	assert.Equal(t, "🍷", list[11].Icon)
}

func TestAllergens_UniqueKeys(t *testing.T) {
	ids := map[string]bool{}
	numbers := map[int]bool{}
	for _, a := range Allergens {
		assert.False(t, ids[a.ID], a.ID)
		assert.False(t, numbers[a.Number], a.ID)
		ids[a.ID] = true
		numbers[a.Number] = true
	}
	assert.Len(t, Allergens, 14)
}
