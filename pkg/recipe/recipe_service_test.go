package recipe

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/entities"
	"Recipe-Catalog/internal/testutil"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	service     RecipeService
	author      entities.User
	stranger    entities.User
	cuisines    []entities.Cuisine
	allergens   []entities.Allergen
	ingredients []entities.Ingredient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	f := &fixture{
		db:       db,
		service:  NewRecipeService(NewRecipeRepository(db), QueryConfig{}),
		author:   entities.User{Email: "author@example.com", PasswordHash: "x"},
		stranger: entities.User{Email: "stranger@example.com", PasswordHash: "x"},
		cuisines: []entities.Cuisine{{Name: "Italian"}, {Name: "Thai"}},
		allergens: []entities.Allergen{
			{Name: "Gluten"}, {Name: "Peanuts"}, {Name: "Dairy"},
		},
		ingredients: []entities.Ingredient{
			{Name: "Flour"}, {Name: "Egg"}, {Name: "Milk"}, {Name: "Rice"},
		},
	}

	require.NoError(t, db.Create(&f.author).Error)
	require.NoError(t, db.Create(&f.stranger).Error)
	require.NoError(t, db.Create(&f.cuisines).Error)
	require.NoError(t, db.Create(&f.allergens).Error)
	require.NoError(t, db.Create(&f.ingredients).Error)
	return f
}

func (f *fixture) create(t *testing.T, req domain.RecipeRequest) uint {
	t.Helper()
	view, err := f.service.CreateRecipe(context.Background(), req, f.author.ID.String())
	require.NoError(t, err)
	id, ok := view.Get("id")
	require.True(t, ok)
	return id.(uint)
}

func basicRequest(title string, ingredientIDs ...uint) domain.RecipeRequest {
	req := domain.RecipeRequest{
		Title:       title,
		Description: title + " description",
		CookingTime: 30,
		Difficulty:  2,
	}
	for _, id := range ingredientIDs {
		req.RecipeIngredients = append(req.RecipeIngredients, domain.RecipeIngredientRequest{
			IngredientID: id,
			Quantity:     100,
			Measurement:  entities.MeasurementGrams,
		})
	}
	return req
}

func idsOf(t *testing.T, views []domain.RecipeView) []uint {
	t.Helper()
	ids := make([]uint, 0, len(views))
	for _, v := range views {
		id, ok := v.Get("id")
		require.True(t, ok)
		ids = append(ids, id.(uint))
	}
	return ids
}

func TestListRecipes_DefaultOrderReturnsEverything(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, basicRequest("Carbonara", f.ingredients[1].ID))
	b := f.create(t, basicRequest("Arancini", f.ingredients[3].ID))
	c := f.create(t, basicRequest("Bread", f.ingredients[0].ID))

	page, err := f.service.ListRecipes(context.Background(), domain.RecipeListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []uint{a, b, c}, idsOf(t, page.Items))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Pages)
	assert.Equal(t, DefaultPageSize, page.Size)
}

func TestListRecipes_OrderBy(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, basicRequest("Carbonara"))
	b := f.create(t, basicRequest("Arancini"))
	c := f.create(t, basicRequest("Bread"))

	page, err := f.service.ListRecipes(context.Background(), domain.RecipeListQuery{OrderBy: "title"})
	require.NoError(t, err)
	assert.Equal(t, []uint{b, c, a}, idsOf(t, page.Items))

	page, err = f.service.ListRecipes(context.Background(), domain.RecipeListQuery{OrderBy: "difficulty,-id"})
	require.NoError(t, err)
	assert.Equal(t, []uint{c, b, a}, idsOf(t, page.Items))

	_, err = f.service.ListRecipes(context.Background(), domain.RecipeListQuery{OrderBy: "calories"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListRecipes_TitleLike(t *testing.T) {
	f := newFixture(t)
	soup := f.create(t, basicRequest("Tomato Soup"))
	f.create(t, basicRequest("Pancakes"))
	pct := f.create(t, basicRequest("100% Rye"))

	page, err := f.service.ListRecipes(context.Background(), domain.RecipeListQuery{TitleLike: "soup"})
	require.NoError(t, err)
	assert.Equal(t, []uint{soup}, idsOf(t, page.Items))

	page, err = f.service.ListRecipes(context.Background(), domain.RecipeListQuery{TitleLike: "%"})
	require.NoError(t, err)
	assert.Equal(t, []uint{pct}, idsOf(t, page.Items))
}

func TestListRecipes_TitleLikeCaseSensitive(t *testing.T) {
	f := newFixture(t)
	soup := f.create(t, basicRequest("Tomato Soup"))
	f.create(t, basicRequest("soupe a l'oignon"))
	service := NewRecipeService(NewRecipeRepository(f.db), QueryConfig{CaseSensitiveSearch: true})

	page, err := service.ListRecipes(context.Background(), domain.RecipeListQuery{TitleLike: "Soup"})
	require.NoError(t, err)
	assert.Equal(t, []uint{soup}, idsOf(t, page.Items))

	page, err = service.ListRecipes(context.Background(), domain.RecipeListQuery{TitleLike: "SOUP"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
}

func TestListRecipes_IngredientFilterIsExistential(t *testing.T) {
	f := newFixture(t)
	flour, egg, milk, rice := f.ingredients[0].ID, f.ingredients[1].ID, f.ingredients[2].ID, f.ingredients[3].ID

	pancakes := f.create(t, basicRequest("Pancakes", flour, egg, milk))
	omelette := f.create(t, basicRequest("Omelette", egg))
	f.create(t, basicRequest("Risotto", rice))
	f.create(t, basicRequest("Water"))

	page, err := f.service.ListRecipes(context.Background(), domain.RecipeListQuery{
		IngredientID: "2,3",
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{pancakes, omelette}, idsOf(t, page.Items))
	assert.Equal(t, int64(2), page.Total)

	_, err = f.service.ListRecipes(context.Background(), domain.RecipeListQuery{IngredientID: "2,two"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListRecipes_PagePastEnd(t *testing.T) {
	f := newFixture(t)
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		f.create(t, basicRequest(title))
	}

	page, err := f.service.ListRecipes(context.Background(), domain.RecipeListQuery{Page: "2", Size: "2"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Pages)

	page, err = f.service.ListRecipes(context.Background(), domain.RecipeListQuery{Page: "9", Size: "2"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 9, page.Page)

	page, err = f.service.ListRecipes(context.Background(), domain.RecipeListQuery{Page: "92233720368547758", Size: "2"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.Total)

	_, err = f.service.ListRecipes(context.Background(), domain.RecipeListQuery{Page: "9223372036854775807", Size: "100"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListRecipes_RoundTrips(t *testing.T) {
	f := newFixture(t)
	req := basicRequest("Pad Thai", f.ingredients[3].ID, f.ingredients[1].ID)
	req.CuisineID = &f.cuisines[1].ID
	req.AllergenIDs = []uint{f.allergens[1].ID}
	f.create(t, req)
	f.create(t, basicRequest("Plain", f.ingredients[0].ID))

	counter := testutil.CountQueries(t, f.db)
	ctx := context.Background()

	tests := []struct {
		include string
		want    int64
	}{
		{include: "", want: 2},
		{include: "cuisine", want: 2},
		{include: "ingredients", want: 3},
		{include: "allergens", want: 3},
		{include: "cuisine,ingredients,allergens", want: 4},
	}
	for _, tt := range tests {
		t.Run("include="+tt.include, func(t *testing.T) {
			include := tt.include
			counter.Reset()
			page, err := f.service.ListRecipes(ctx, domain.RecipeListQuery{Include: &include})
			require.NoError(t, err)
			assert.Len(t, page.Items, 2)
			assert.Equal(t, tt.want, counter.Count())
		})
	}

	t.Run("empty page skips relation queries", func(t *testing.T) {
		counter.Reset()
		page, err := f.service.ListRecipes(ctx, domain.RecipeListQuery{Page: "5"})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(2), counter.Count())
	})
}

func TestListRecipes_ManyLinesDoNotMultiplyRows(t *testing.T) {
	f := newFixture(t)
	req := basicRequest("Everything", f.ingredients[0].ID, f.ingredients[1].ID, f.ingredients[2].ID)
	req.AllergenIDs = []uint{f.allergens[0].ID, f.allergens[1].ID, f.allergens[2].ID}
	f.create(t, req)
	f.create(t, basicRequest("Nothing"))

	page, err := f.service.ListRecipes(context.Background(), domain.RecipeListQuery{Size: "1"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Total)

	lines, ok := page.Items[0].Get(RelationIngredients)
	require.True(t, ok)
	assert.Len(t, lines, 3)
}

func TestCreateRecipe_RoundTrip(t *testing.T) {
	f := newFixture(t)
	req := domain.RecipeRequest{
		Title:       "Pancakes",
		Description: "Fluffy",
		CookingTime: 20,
		Difficulty:  1,
		CuisineID:   &f.cuisines[0].ID,
		AllergenIDs: []uint{f.allergens[2].ID, f.allergens[0].ID},
		RecipeIngredients: []domain.RecipeIngredientRequest{
			{IngredientID: f.ingredients[2].ID, Quantity: 250, Measurement: entities.MeasurementMilliliters},
			{IngredientID: f.ingredients[1].ID, Quantity: 2, Measurement: entities.MeasurementPieces},
		},
	}
	id := f.create(t, req)

	view, err := f.service.GetRecipe(context.Background(), id, domain.RecipeShapeQuery{})
	require.NoError(t, err)

	cuisine, ok := view.Get(RelationCuisine)
	require.True(t, ok)
	assert.Equal(t, domain.CuisineView{ID: f.cuisines[0].ID, Name: "Italian"}, cuisine)

	allergens, ok := view.Get(RelationAllergens)
	require.True(t, ok)
	assert.ElementsMatch(t, []domain.AllergenView{
		{ID: f.allergens[0].ID, Name: "Gluten"},
		{ID: f.allergens[2].ID, Name: "Dairy"},
	}, allergens)

	lines, ok := view.Get(RelationIngredients)
	require.True(t, ok)
	assert.Equal(t, []domain.RecipeIngredientView{
		{IngredientID: f.ingredients[2].ID, Name: "Milk", Quantity: 250, Measurement: entities.MeasurementMilliliters},
		{IngredientID: f.ingredients[1].ID, Name: "Egg", Quantity: 2, Measurement: entities.MeasurementPieces},
	}, lines)
}

func TestCreateRecipe_MissingReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.author.ID.String()

	missingCuisine := uint(999)
	req := basicRequest("Ghost")
	req.CuisineID = &missingCuisine
	_, err := f.service.CreateRecipe(ctx, req, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "cuisine with id 999 not found")

	req = basicRequest("Ghost")
	req.AllergenIDs = []uint{f.allergens[0].ID, 555, 444}
	_, err = f.service.CreateRecipe(ctx, req, userID)
	assert.EqualError(t, err, "allergen with id 555 not found")

	req = basicRequest("Ghost", f.ingredients[0].ID, 777, 778)
	_, err = f.service.CreateRecipe(ctx, req, userID)
	assert.EqualError(t, err, "ingredient with id 777 not found")

	var count int64
	require.NoError(t, f.db.Model(&entities.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipe_DuplicateAllergensCollapse(t *testing.T) {
	f := newFixture(t)
	req := basicRequest("Twice")
	req.AllergenIDs = []uint{f.allergens[1].ID, f.allergens[1].ID}
	id := f.create(t, req)

	var rows int64
	require.NoError(t, f.db.Table("recipe_allergens").Where("recipe_id = ?", id).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestUpdateRecipe_ReplacesCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := basicRequest("Cake", f.ingredients[0].ID, f.ingredients[1].ID)
	req.AllergenIDs = []uint{f.allergens[0].ID, f.allergens[2].ID}
	req.CuisineID = &f.cuisines[0].ID
	id := f.create(t, req)

	update := domain.RecipeRequest{
		Title:       "Rice Cake",
		Description: "Gluten free",
		CookingTime: 45,
		Difficulty:  4,
		AllergenIDs: []uint{f.allergens[1].ID},
		RecipeIngredients: []domain.RecipeIngredientRequest{
			{IngredientID: f.ingredients[3].ID, Quantity: 300, Measurement: entities.MeasurementGrams},
			{IngredientID: f.ingredients[2].ID, Quantity: 100, Measurement: entities.MeasurementMilliliters},
		},
	}
	view, err := f.service.UpdateRecipe(ctx, id, update, f.author.ID.String())
	require.NoError(t, err)

	title, _ := view.Get("title")
	assert.Equal(t, "Rice Cake", title)
	assert.False(t, view.Has(RelationCuisine))

	allergens, _ := view.Get(RelationAllergens)
	assert.Equal(t, []domain.AllergenView{{ID: f.allergens[1].ID, Name: "Peanuts"}}, allergens)

	lines, _ := view.Get(RelationIngredients)
	assert.Equal(t, []domain.RecipeIngredientView{
		{IngredientID: f.ingredients[3].ID, Name: "Rice", Quantity: 300, Measurement: entities.MeasurementGrams},
		{IngredientID: f.ingredients[2].ID, Name: "Milk", Quantity: 100, Measurement: entities.MeasurementMilliliters},
	}, lines)

	var lineCount int64
	require.NoError(t, f.db.Model(&entities.RecipeIngredient{}).Where("recipe_id = ?", id).Count(&lineCount).Error)
	assert.Equal(t, int64(2), lineCount)

	// absent allergen_ids clears the set
	update.AllergenIDs = nil
	view, err = f.service.UpdateRecipe(ctx, id, update, f.author.ID.String())
	require.NoError(t, err)
	assert.False(t, view.Has(RelationAllergens))

	var rows int64
	require.NoError(t, f.db.Table("recipe_allergens").Where("recipe_id = ?", id).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestUpdateRecipe_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, basicRequest("Mine", f.ingredients[0].ID))

	_, err := f.service.UpdateRecipe(ctx, id, basicRequest("Theirs"), f.stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.service.UpdateRecipe(ctx, 4040, basicRequest("Nope"), f.author.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = f.service.UpdateRecipe(ctx, id, basicRequest("Broken", 999), f.author.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	noDifficulty := basicRequest("Unrated", f.ingredients[0].ID)
	noDifficulty.Difficulty = 0
	_, err = f.service.UpdateRecipe(ctx, id, noDifficulty, f.author.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeDifficultyRequired)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// failed update leaves the recipe as it was
	view, err := f.service.GetRecipe(ctx, id, domain.RecipeShapeQuery{})
	require.NoError(t, err)
	title, _ := view.Get("title")
	assert.Equal(t, "Mine", title)
	lines, _ := view.Get(RelationIngredients)
	assert.Len(t, lines, 1)
}

func TestDeleteRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := basicRequest("Keep", f.ingredients[0].ID)
	req.AllergenIDs = []uint{f.allergens[0].ID}
	id := f.create(t, req)

	err := f.service.DeleteRecipe(ctx, id, f.stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.service.GetRecipe(ctx, id, domain.RecipeShapeQuery{})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteRecipe(ctx, id, f.author.ID.String()))
	_, err = f.service.GetRecipe(ctx, id, domain.RecipeShapeQuery{})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	var lines, links int64
	require.NoError(t, f.db.Model(&entities.RecipeIngredient{}).Count(&lines).Error)
	require.NoError(t, f.db.Table("recipe_allergens").Count(&links).Error)
	assert.Zero(t, lines)
	assert.Zero(t, links)

	err = f.service.DeleteRecipe(ctx, id, f.author.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestWrites_RequireUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.CreateRecipe(context.Background(), basicRequest("Anon"), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.service.CreateRecipe(context.Background(), basicRequest("Anon"), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = f.service.DeleteRecipe(context.Background(), 1, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestListRecipesByIngredient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	egg := f.ingredients[1].ID

	req := basicRequest("Omelette", egg)
	req.CuisineID = &f.cuisines[0].ID
	a := f.create(t, req)
	f.create(t, basicRequest("Rice", f.ingredients[3].ID))
	b := f.create(t, basicRequest("Custard", f.ingredients[2].ID, egg))

	views, err := f.service.ListRecipesByIngredient(ctx, egg, domain.RecipeShapeQuery{})
	require.NoError(t, err)
	assert.Equal(t, []uint{a, b}, idsOf(t, views))
	assert.False(t, views[0].Has(RelationCuisine))
	assert.False(t, views[0].Has(RelationIngredients))

	include := "cuisine"
	views, err = f.service.ListRecipesByIngredient(ctx, egg, domain.RecipeShapeQuery{Include: &include, Fields: "id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "cuisine"}, views[0].Keys())
	assert.Equal(t, []string{"id"}, views[1].Keys())

	bad := "toppings"
	_, err = f.service.ListRecipesByIngredient(ctx, egg, domain.RecipeShapeQuery{Include: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "cuisine, ingredients, allergens")

	_, err = f.service.ListRecipesByIngredient(ctx, 999, domain.RecipeShapeQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
