package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"digital-menu-api/handlers"
	"digital-menu-api/models"
	"digital-menu-api/store/storetest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestCategories_CRUD(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "categorie")
	ctx := context.Background()

	w := e.form(http.MethodPost, "/menu-management/categories", token, url.Values{"name": {"  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handlers.MsgCategoryNameMissing, errorOf(t, w))

	w = e.form(http.MethodPost, "/menu-management/categories", token, url.Values{"name": {"Antipasti"}})
	require.Equal(t, http.StatusCreated, w.Code)
	w = e.jsonReq(http.MethodPost, "/menu-management/categories", token, map[string]string{"name": "Primi"})
	require.Equal(t, http.StatusCreated, w.Code)

	cats, err := e.store.ListCategories(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, 0, cats[0].SortOrder)
	assert.Equal(t, 1, cats[1].SortOrder)

	w = e.form(http.MethodPut, "/menu-management/categories/"+itoa(cats[1].ID), token, url.Values{"name": {"Primi piatti"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodDelete, "/menu-management/categories/"+itoa(cats[0].ID), token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cats, err = e.store.ListCategories(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Primi piatti", cats[0].Name)

	w = e.do(http.MethodDelete, "/menu-management/categories/abc", token, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategories_CrossTenant(t *testing.T) {
	e := newTestEnv(t)
	_, victim := e.owner(t, "vittima")
	intruder, _ := e.owner(t, "intruso")
	cat := storetest.Category(t, e.store, victim.ID, "Dolci")

	w := e.form(http.MethodPut, "/menu-management/categories/"+itoa(cat.ID), intruder, url.Values{"name": {"Rubato"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = e.do(http.MethodDelete, "/menu-management/categories/"+itoa(cat.ID), intruder, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	cats, err := e.store.ListCategories(context.Background(), victim.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Dolci", cats[0].Name)
}

func TestAddDish_WithImage(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "piatti")
	cat := storetest.Category(t, e.store, p.ID, "Antipasti")

	w := e.multipart(t, http.MethodPost, "/menu-management/dishes", token, url.Values{
		"name":        {"Bruschetta classica"},
		"description": {"Pomodoro, basilico, olio EVO"},
		"price":       {"5,00"},
		"category_id": {itoa(cat.ID)},
		"allergens":   {"glutine, "},
	}, "bruschetta.jpg", []byte("jpeg-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	keys := e.objects.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], p.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(keys[0], ".jpg"))

	dishes, err := e.store.ListDishes(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	d := dishes[0]
	assert.Equal(t, "Bruschetta classica", d.Name)
	assert.True(t, decimal.RequireFromString("5.00").Equal(d.Price))
	assert.Equal(t, e.objects.PublicURL(keys[0]), d.ImageURL)
	assert.Equal(t, []string{"glutine"}, d.AllergenIDs())
	assert.True(t, d.IsAvailable)
}

func TestAddDish_Validation(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "regole")
	_, other := e.owner(t, "altri")
	cat := storetest.Category(t, e.store, p.ID, "Primi")
	foreign := storetest.Category(t, e.store, other.ID, "Primi")

	cases := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"missing price", url.Values{"name": {"Carbonara"}, "category_id": {itoa(cat.ID)}}, handlers.MsgDishFieldsMissing},
		{"missing category", url.Values{"name": {"Carbonara"}, "price": {"12"}}, handlers.MsgDishFieldsMissing},
		{"bad price", url.Values{"name": {"Carbonara"}, "price": {"dodici"}, "category_id": {itoa(cat.ID)}}, handlers.MsgInvalidPrice},
		{"foreign category", url.Values{"name": {"Carbonara"}, "price": {"12"}, "category_id": {itoa(foreign.ID)}}, handlers.MsgCategoryNotFound},
		{"unknown allergen", url.Values{"name": {"Carbonara"}, "price": {"12"}, "category_id": {itoa(cat.ID)}, "allergens": {"uova,pepe"}}, "Allergene sconosciuto: pepe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.form(http.MethodPost, "/menu-management/dishes", token, tc.values)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, errorOf(t, w))
		})
	}

	n, err := e.store.CountDishes(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddDish_JSONNumbers(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "json")
	cat := storetest.Category(t, e.store, p.ID, "Primi")

	w := e.jsonReq(http.MethodPost, "/menu-management/dishes", token, map[string]interface{}{
		"name":         "Carbonara",
		"price":        12.5,
		"category_id":  cat.ID,
		"allergens":    "uova",
		"is_available": false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.jsonReq(http.MethodPost, "/menu-management/dishes", token, map[string]interface{}{
		"name":        "Amatriciana",
		"price":       "11,00",
		"category_id": itoa(cat.ID),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.jsonReq(http.MethodPost, "/menu-management/dishes", token, map[string]interface{}{
		"name":        "Gricia",
		"price":       true,
		"category_id": cat.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	dishes, err := e.store.ListDishes(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	byName := map[string]models.Dish{}
	for _, d := range dishes {
		byName[d.Name] = d
	}
	carbonara := byName["Carbonara"]
	assert.True(t, decimal.RequireFromString("12.50").Equal(carbonara.Price))
	assert.Equal(t, cat.ID, carbonara.CategoryID)
	assert.False(t, carbonara.IsAvailable)
	assert.True(t, decimal.RequireFromString("11").Equal(byName["Amatriciana"].Price))
	assert.True(t, byName["Amatriciana"].IsAvailable)
}

func TestAddDish_Availability(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "disponibile")
	cat := storetest.Category(t, e.store, p.ID, "Dolci")

	cases := []struct {
		value string
		want  bool
	}{
		{"on", true},
		{"false", false},
		{"", true},
	}
	for _, tc := range cases {
		w := e.form(http.MethodPost, "/menu-management/dishes", token, url.Values{
			"name": {"Panna cotta " + tc.value}, "price": {"5"}, "category_id": {itoa(cat.ID)},
			"is_available": {tc.value},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created struct {
			Dish models.Dish `json:"dish"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		d, err := e.store.DishByID(context.Background(), p.ID, created.Dish.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d.IsAvailable, "is_available=%q", tc.value)
	}

	w := e.form(http.MethodPost, "/menu-management/dishes", token, url.Values{
		"name": {"Cannolo"}, "price": {"4"}, "category_id": {itoa(cat.ID)}, "is_available": {"forse"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handlers.MsgInvalidAvailability, errorOf(t, w))
}

func TestAddDish_UploadFailure(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "upload")
	cat := storetest.Category(t, e.store, p.ID, "Pizze")
	e.objects.FailPut = true

	w := e.multipart(t, http.MethodPost, "/menu-management/dishes", token, url.Values{
		"name": {"Margherita"}, "price": {"7"}, "category_id": {itoa(cat.ID)},
	}, "pizza.png", []byte("png"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, handlers.MsgImageUploadFailed, errorOf(t, w))

	n, err := e.store.CountDishes(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddDish_RowFailureRemovesUpload(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "compensa")
	cat := storetest.Category(t, e.store, p.ID, "Secondi")
	// the dish insert succeeds but linking its allergens cannot
	require.NoError(t, e.store.DB().Migrator().DropTable("dish_allergens"))

	w := e.multipart(t, http.MethodPost, "/menu-management/dishes", token, url.Values{
		"name": {"Frittata"}, "price": {"9"}, "category_id": {itoa(cat.ID)}, "allergens": {"uova"},
	}, "frittata.jpg", []byte("jpg"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, handlers.MsgDishSaveFailed, errorOf(t, w))
	assert.Empty(t, e.objects.Keys())
}

func TestEditDish_ReplacesImage(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "modifica")
	cat := storetest.Category(t, e.store, p.ID, "Dolci")

	w := e.multipart(t, http.MethodPost, "/menu-management/dishes", token, url.Values{
		"name": {"Tiramisù"}, "price": {"6"}, "category_id": {itoa(cat.ID)},
	}, "old.jpg", []byte("old"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Dish models.Dish `json:"dish"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	oldKeys := e.objects.Keys()
	require.Len(t, oldKeys, 1)

	w = e.multipart(t, http.MethodPut, "/menu-management/dishes/"+itoa(created.Dish.ID), token, url.Values{
		"name": {"Tiramisù della casa"}, "price": {"6.50"}, "category_id": {itoa(cat.ID)},
		"allergens": {"uova,latte"}, "is_available": {"false"},
	}, "new.png", []byte("new"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	keys := e.objects.Keys()
	require.Len(t, keys, 1)
	assert.NotEqual(t, oldKeys[0], keys[0])

	d, err := e.store.DishByID(context.Background(), p.ID, created.Dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tiramisù della casa", d.Name)
	assert.Equal(t, e.objects.PublicURL(keys[0]), d.ImageURL)
	assert.Equal(t, []string{"uova", "latte"}, d.AllergenIDs())
	assert.False(t, d.IsAvailable)
}

func TestEditDish_UploadFailureLeavesDish(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "intatto")
	cat := storetest.Category(t, e.store, p.ID, "Primi")
	dish := storetest.Dish(t, e.store, cat, "Gricia", "11")
	e.objects.FailPut = true

	w := e.multipart(t, http.MethodPut, "/menu-management/dishes/"+itoa(dish.ID), token, url.Values{
		"name": {"Gricia nuova"}, "price": {"12"}, "category_id": {itoa(cat.ID)},
	}, "gricia.jpg", []byte("jpg"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, handlers.MsgImageUploadFailed, errorOf(t, w))

	d, err := e.store.DishByID(context.Background(), p.ID, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gricia", d.Name)
}

func TestDishes_CrossTenant(t *testing.T) {
	e := newTestEnv(t)
	_, victim := e.owner(t, "proprietario")
	intruder, other := e.owner(t, "estraneo")
	cat := storetest.Category(t, e.store, victim.ID, "Pizze")
	otherCat := storetest.Category(t, e.store, other.ID, "Pizze")
	dish := storetest.Dish(t, e.store, cat, "Capricciosa", "9")

	w := e.form(http.MethodPut, "/menu-management/dishes/"+itoa(dish.ID), intruder, url.Values{
		"name": {"Rubata"}, "price": {"1"}, "category_id": {itoa(otherCat.ID)},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = e.do(http.MethodDelete, "/menu-management/dishes/"+itoa(dish.ID), intruder, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	d, err := e.store.DishByID(context.Background(), victim.ID, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Capricciosa", d.Name)
}

func TestDeleteDish_RemovesImage(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "elimina")
	cat := storetest.Category(t, e.store, p.ID, "Secondi")

	w := e.multipart(t, http.MethodPost, "/menu-management/dishes", token, url.Values{
		"name": {"Abbacchio"}, "price": {"18"}, "category_id": {itoa(cat.ID)},
	}, "abbacchio.jpg", []byte("jpg"))
	require.Equal(t, http.StatusCreated, w.Code)
	dishes, err := e.store.ListDishes(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, dishes, 1)

	w = e.do(http.MethodDelete, "/menu-management/dishes/"+itoa(dishes[0].ID), token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, e.objects.Keys())
}

func TestMenuManagement_Lists(t *testing.T) {
	e := newTestEnv(t)
	token, p := e.owner(t, "gestione")
	cat := storetest.Category(t, e.store, p.ID, "Contorni")
	storetest.Dish(t, e.store, cat, "Cicoria", "4")

	w := e.do(http.MethodGet, "/menu-management", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Categories []models.Category `json:"categories"`
		Dishes     []models.Dish     `json:"dishes"`
		Allergens  []models.Allergen `json:"allergens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Categories, 1)
	require.Len(t, body.Dishes, 1)
	require.NotNil(t, body.Dishes[0].Category)
	assert.Equal(t, "Contorni", body.Dishes[0].Category.Name)
	assert.Len(t, body.Allergens, len(storetest.Allergens))
}

func TestSplitAllergens(t *testing.T) {
	assert.Equal(t, []string{"glutine", "latte"}, handlers.SplitAllergens(" glutine, latte,,"))
	assert.Empty(t, handlers.SplitAllergens(""))
}
