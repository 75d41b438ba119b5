package recipe

import (
	"Recipe-Catalog/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error
		ListRecipes(ctx context.Context, filter Filter, includes Includes, page PageRequest) ([]*entities.Recipe, int64, error)
		ListRecipesByIngredient(ctx context.Context, ingredientID uint, includes Includes) ([]*entities.Recipe, error)
		GetRecipeByID(ctx context.Context, id uint, includes Includes) (*entities.Recipe, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []entities.RecipeIngredient, allergens []entities.Allergen) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, fields map[string]any, lines []entities.RecipeIngredient, allergens []entities.Allergen) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		FindCuisine(ctx context.Context, id uint) (*entities.Cuisine, error)
		FindAllergens(ctx context.Context, ids []uint) ([]entities.Allergen, error)
		FindIngredients(ctx context.Context, ids []uint) ([]entities.Ingredient, error)
		IngredientExists(ctx context.Context, id uint) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Transaction runs fn against a repository bound to a single database transaction.
func (r *recipeRepository) Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recipeRepository{db: tx})
	})
}

func (r *recipeRepository) ListRecipes(ctx context.Context, filter Filter, includes Includes, page PageRequest) ([]*entities.Recipe, int64, error) {
	var count int64
	if err := filter.Where(r.db.WithContext(ctx).Model(&entities.Recipe{})).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*entities.Recipe
	query := filter.Where(r.db.WithContext(ctx).Model(&entities.Recipe{}))
	query = filter.OrderBy(includes.JoinToOne(query))
	if err := query.Offset(page.Offset()).Limit(page.Size).Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	if err := includes.LoadToMany(ctx, r.db, recipes); err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) ListRecipesByIngredient(ctx context.Context, ingredientID uint, includes Includes) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	filter := Filter{IngredientIDs: []uint{ingredientID}}
	query := filter.Where(r.db.WithContext(ctx).Model(&entities.Recipe{}))
	query = filter.OrderBy(includes.JoinToOne(query))
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	if err := includes.LoadToMany(ctx, r.db, recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint, includes Includes) (*entities.Recipe, error) {
	var recipe entities.Recipe
	query := includes.JoinToOne(r.db.WithContext(ctx).Model(&entities.Recipe{}))
	if err := query.Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}

	if err := includes.LoadToMany(ctx, r.db, []*entities.Recipe{&recipe}); err != nil {
		return nil, err
	}

	return &recipe, nil
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []entities.RecipeIngredient, allergens []entities.Allergen) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(recipe).Error; err != nil {
		return err
	}

	if err := createLines(db, recipe.ID, lines); err != nil {
		return err
	}

	return replaceAllergens(db, recipe, allergens)
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, fields map[string]any, lines []entities.RecipeIngredient, allergens []entities.Allergen) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(recipe).Omit(clause.Associations).Updates(fields).Error; err != nil {
		return err
	}

	if err := db.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}

	if err := createLines(db, recipe.ID, lines); err != nil {
		return err
	}

	return replaceAllergens(db, recipe, allergens)
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}

	if err := db.Model(recipe).Association("Allergens").Clear(); err != nil {
		return err
	}

	return db.Delete(&entities.Recipe{}, recipe.ID).Error
}

func (r *recipeRepository) FindCuisine(ctx context.Context, id uint) (*entities.Cuisine, error) {
	var cuisine entities.Cuisine
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cuisine).Error; err != nil {
		return nil, err
	}
	return &cuisine, nil
}

func (r *recipeRepository) FindAllergens(ctx context.Context, ids []uint) ([]entities.Allergen, error) {
	var allergens []entities.Allergen
	if len(ids) == 0 {
		return allergens, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&allergens).Error; err != nil {
		return nil, err
	}
	return allergens, nil
}

func (r *recipeRepository) FindIngredients(ctx context.Context, ids []uint) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) IngredientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Ingredient{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// createLines inserts line items in submitted order so ids follow that order.
func createLines(db *gorm.DB, recipeID uint, lines []entities.RecipeIngredient) error {
	for i := range lines {
		lines[i].ID = 0
		lines[i].RecipeID = recipeID
		if err := db.Omit(clause.Associations).Create(&lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceAllergens(db *gorm.DB, recipe *entities.Recipe, allergens []entities.Allergen) error {
	association := db.Model(recipe).Association("Allergens")
	if err := association.Clear(); err != nil {
		return err
	}
	if len(allergens) == 0 {
		return nil
	}
	return association.Append(allergens)
}
