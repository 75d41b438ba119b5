package domain

import (
	"Recipe-Catalog/entities"
	"fmt"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = fmt.Errorf("recipe %w", ErrNotFound)
	ErrUnauthorizedRecipeAccess = fmt.Errorf("%w: only the author can modify this recipe", ErrForbidden)
	ErrRecipeDifficultyRequired = fmt.Errorf("%w: difficulty is required when replacing a recipe", ErrValidation)
)

type (
	// RecipeListQuery carries the raw list parameters as they arrive from the caller.
	// Include is nil when the caller did not send the parameter at all.
	RecipeListQuery struct {
		TitleLike    string
		OrderBy      string
		IngredientID string
		Page         string
		Size         string
		Include      *string
		Fields       string
	}

	// RecipeShapeQuery carries the include/select parameters of single-recipe and
	// sub-listing reads.
	RecipeShapeQuery struct {
		Include *string
		Fields  string
	}

	RecipeIngredientRequest struct {
		IngredientID uint                     `json:"ingredient_id" validate:"required,min=1"`
		Quantity     int                      `json:"quantity" validate:"required,gt=0"`
		Measurement  entities.MeasurementUnit `json:"measurement" validate:"required,min=1,max=3"`
	}

	// RecipeRequest is the full payload of a create or a full-replacement update.
	RecipeRequest struct {
		Title             string                    `json:"title" validate:"required,min=1,max=255"`
		Description       string                    `json:"description" validate:"required,min=1"`
		CookingTime       int                       `json:"cooking_time" validate:"required,gt=0,lte=1440"`
		Difficulty        int                       `json:"difficulty" validate:"omitempty,min=1,max=5"`
		CuisineID         *uint                     `json:"cuisine_id" validate:"omitempty,min=1"`
		AllergenIDs       []uint                    `json:"allergen_ids" validate:"omitempty,dive,min=1"`
		RecipeIngredients []RecipeIngredientRequest `json:"recipe_ingredients" validate:"omitempty,dive"`
	}

	CuisineView struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	AllergenView struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	RecipeIngredientView struct {
		IngredientID uint                     `json:"ingredient_id"`
		Name         string                   `json:"name"`
		Quantity     int                      `json:"quantity"`
		Measurement  entities.MeasurementUnit `json:"measurement"`
	}

	RecipePage struct {
		Items []RecipeView `json:"items"`
		Total int64        `json:"total"`
		Page  int          `json:"page"`
		Size  int          `json:"size"`
		Pages int          `json:"pages"`
	}
)
