package recipe

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/entities"
	"context"
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"
)

const (
	RelationCuisine     = "cuisine"
	RelationIngredients = "ingredients"
	RelationAllergens   = "allergens"
)

// IncludableRelations is the include allowlist, in output order.
var IncludableRelations = []string{RelationCuisine, RelationIngredients, RelationAllergens}

// Includes is the set of relations a read materializes.
type Includes struct {
	Cuisine     bool
	Ingredients bool
	Allergens   bool
}

func IncludeAll() Includes {
	return Includes{Cuisine: true, Ingredients: true, Allergens: true}
}

func IncludeNone() Includes {
	return Includes{}
}

// ParseIncludes reads a comma-separated include list. A nil raw value means the
// caller did not send the parameter and def applies; an empty one means none.
func ParseIncludes(raw *string, def Includes) (Includes, error) {
	if raw == nil {
		return def, nil
	}

	var (
		in      Includes
		invalid []string
	)
	for _, token := range strings.Split(*raw, ",") {
		token = strings.TrimSpace(token)
		switch token {
		case "":
		case RelationCuisine:
			in.Cuisine = true
		case RelationIngredients:
			in.Ingredients = true
		case RelationAllergens:
			in.Allergens = true
		default:
			if !slices.Contains(invalid, token) {
				invalid = append(invalid, token)
			}
		}
	}

	if len(invalid) > 0 {
		return Includes{}, fmt.Errorf("%w: invalid include values: %s. Allowed: %s",
			domain.ErrValidation, strings.Join(invalid, ", "), strings.Join(IncludableRelations, ", "))
	}
	return in, nil
}

func (in Includes) Has(relation string) bool {
	switch relation {
	case RelationCuisine:
		return in.Cuisine
	case RelationIngredients:
		return in.Ingredients
	case RelationAllergens:
		return in.Allergens
	}
	return false
}

// JoinToOne attaches the cuisine LEFT JOIN to the primary query.
func (in Includes) JoinToOne(db *gorm.DB) *gorm.DB {
	if in.Cuisine {
		return db.Joins("Cuisine")
	}
	return db
}

type allergenRow struct {
	RecipeID uint
	ID       uint
	Name     string
}

// LoadToMany runs one secondary query per requested to-many relation, keyed by the
// ids of recipes, and attaches the results in place.
func (in Includes) LoadToMany(ctx context.Context, db *gorm.DB, recipes []*entities.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}

	if in.Ingredients {
		if err := loadIngredients(ctx, db, recipes, ids); err != nil {
			return err
		}
	}
	if in.Allergens {
		if err := loadAllergens(ctx, db, recipes, ids); err != nil {
			return err
		}
	}
	return nil
}

func loadIngredients(ctx context.Context, db *gorm.DB, recipes []*entities.Recipe, ids []uint) error {
	var lines []entities.RecipeIngredient
	err := db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("recipe_ingredients.*, ingredients.name AS ingredient_name").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", ids).
		Order("recipe_ingredients.id").
		Find(&lines).Error
	if err != nil {
		return err
	}

	byRecipe := make(map[uint][]entities.RecipeIngredient, len(recipes))
	for _, line := range lines {
		byRecipe[line.RecipeID] = append(byRecipe[line.RecipeID], line)
	}
	for _, r := range recipes {
		r.RecipeIngredients = byRecipe[r.ID]
	}
	return nil
}

func loadAllergens(ctx context.Context, db *gorm.DB, recipes []*entities.Recipe, ids []uint) error {
	var rows []allergenRow
	err := db.WithContext(ctx).
		Table("allergens").
		Select("recipe_allergens.recipe_id, allergens.id, allergens.name").
		Joins("JOIN recipe_allergens ON recipe_allergens.allergen_id = allergens.id").
		Where("recipe_allergens.recipe_id IN ?", ids).
		Order("recipe_allergens.recipe_id, allergens.id").
		Find(&rows).Error
	if err != nil {
		return err
	}

	byRecipe := make(map[uint][]entities.Allergen, len(recipes))
	for _, row := range rows {
		byRecipe[row.RecipeID] = append(byRecipe[row.RecipeID], entities.Allergen{ID: row.ID, Name: row.Name})
	}
	for _, r := range recipes {
		r.Allergens = byRecipe[r.ID]
	}
	return nil
}
