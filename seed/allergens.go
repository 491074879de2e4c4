// Package seed holds reference data loaded into every installation.
package seed

import (
	"context"

	"digital-menu-api/models"
	"digital-menu-api/store"
)

// Allergens is the list of the 14 allergens that EU Regulation 1169/2011
// requires menus to declare, with the Italian labels shown to guests
var Allergens = []models.Allergen{
	{ID: "glutine", Number: 1, Icon: "🌾", Name: "Glutine", Description: "Cereali contenenti glutine: grano, segale, orzo, avena, farro, kamut."},
	{ID: "crostacei", Number: 2, Icon: "🦐", Name: "Crostacei", Description: "Crostacei e prodotti a base di crostacei."},
	{ID: "uova", Number: 3, Icon: "🥚", Name: "Uova", Description: "Uova e prodotti a base di uova."},
	{ID: "pesce", Number: 4, Icon: "🐟", Name: "Pesce", Description: "Pesce e prodotti a base di pesce."},
	{ID: "arachidi", Number: 5, Icon: "🥜", Name: "Arachidi", Description: "Arachidi e prodotti a base di arachidi."},
	{ID: "soia", Number: 6, Icon: "🫘", Name: "Soia", Description: "Soia e prodotti a base di soia."},
	{ID: "latte", Number: 7, Icon: "🥛", Name: "Latte", Description: "Latte e prodotti a base di latte (compreso il lattosio)."},
	{ID: "frutta-guscio", Number: 8, Icon: "🌰", Name: "Frutta a guscio", Description: "Mandorle, nocciole, noci, anacardi, pistacchi."},
	{ID: "sedano", Number: 9, Icon: "🌿", Name: "Sedano", Description: "Sedano e prodotti a base di sedano."},
	{ID: "senape", Number: 10, Icon: "🍯", Name: "Senape", Description: "Senape e prodotti a base di senape."},
	{ID: "sesamo", Number: 11, Icon: "🥯", Name: "Sesamo", Description: "Semi di sesamo e prodotti a base di semi di sesamo."},
	{ID: "anidride-solforosa", Number: 12, Icon: "🍷", Name: "Solfiti", Description: "Anidride solforosa e solfiti in concentrazioni superiori a 10 mg/kg o 10 mg/litro."},
	{ID: "lupini", Number: 13, Icon: "🌼", Name: "Lupini", Description: "Lupini e prodotti a base di lupini."},
	{ID: "molluschi", Number: 14, Icon: "🐚", Name: "Molluschi", Description: "Molluschi e prodotti a base di molluschi."},
}

// SeedAllergens writes the reference list, updating rows that already exist
func SeedAllergens(ctx context.Context, s *store.Store) (int, error) {
	rows := make([]models.Allergen, len(Allergens))
	copy(rows, Allergens)
	if err := s.UpsertAllergens(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
