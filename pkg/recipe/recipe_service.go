package recipe

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/entities"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		ListRecipes(ctx context.Context, q domain.RecipeListQuery) (domain.RecipePage, error)
		GetRecipe(ctx context.Context, id uint, q domain.RecipeShapeQuery) (domain.RecipeView, error)
		ListRecipesByIngredient(ctx context.Context, ingredientID uint, q domain.RecipeShapeQuery) ([]domain.RecipeView, error)
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.RecipeView, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest, userID string) (domain.RecipeView, error)
		DeleteRecipe(ctx context.Context, id uint, userID string) error
	}

	// QueryConfig holds the read-side switches that come from configuration.
	QueryConfig struct {
		CaseSensitiveSearch bool
	}

	recipeService struct {
		recipeRepository RecipeRepository
		config           QueryConfig
	}
)

func NewRecipeService(recipeRepository RecipeRepository, config QueryConfig) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		config:           config,
	}
}

func (s *recipeService) ListRecipes(ctx context.Context, q domain.RecipeListQuery) (page domain.RecipePage, err error) {
	defer observe("list", time.Now(), &err)

	filter, err := ParseFilter(q)
	if err != nil {
		return domain.RecipePage{}, err
	}
	filter.CaseSensitive = s.config.CaseSensitiveSearch

	projection, err := parseProjection(q.Include, q.Fields, IncludeAll())
	if err != nil {
		return domain.RecipePage{}, err
	}

	pageReq, err := ParsePage(q.Page, q.Size)
	if err != nil {
		return domain.RecipePage{}, err
	}

	recipes, total, err := s.recipeRepository.ListRecipes(ctx, filter, projection.Includes(), pageReq)
	if err != nil {
		return domain.RecipePage{}, err
	}

	return NewRecipePage(projection.ApplyAll(recipes), total, pageReq), nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id uint, q domain.RecipeShapeQuery) (view domain.RecipeView, err error) {
	defer observe("get", time.Now(), &err)

	projection, err := parseProjection(q.Include, q.Fields, IncludeAll())
	if err != nil {
		return domain.RecipeView{}, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id, projection.Includes())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeView{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeView{}, err
	}

	return projection.Apply(recipe), nil
}

func (s *recipeService) ListRecipesByIngredient(ctx context.Context, ingredientID uint, q domain.RecipeShapeQuery) (views []domain.RecipeView, err error) {
	defer observe("list_by_ingredient", time.Now(), &err)

	projection, err := parseProjection(q.Include, q.Fields, IncludeNone())
	if err != nil {
		return nil, err
	}

	exists, err := s.recipeRepository.IngredientExists(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, missing("ingredient", ingredientID)
	}

	recipes, err := s.recipeRepository.ListRecipesByIngredient(ctx, ingredientID, projection.Includes())
	if err != nil {
		return nil, err
	}

	return projection.ApplyAll(recipes), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.RecipeView, error) {
	authorID, err := parseUserID(userID)
	if err != nil {
		return domain.RecipeView{}, err
	}

	recipe := &entities.Recipe{AuthorID: authorID}
	applyRequest(recipe, req)

	err = s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		lines, allergens, err := resolveReferences(ctx, repo, req)
		if err != nil {
			return err
		}
		return repo.CreateRecipe(ctx, recipe, lines, allergens)
	})
	if err != nil {
		recipeQueryErrors.WithLabelValues("create").Inc()
		return domain.RecipeView{}, err
	}
	recipeWrites.WithLabelValues("create").Inc()

	return s.loaded(ctx, recipe.ID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.RecipeRequest, userID string) (domain.RecipeView, error) {
	authorID, err := parseUserID(userID)
	if err != nil {
		return domain.RecipeView{}, err
	}
	if req.Difficulty == 0 {
		return domain.RecipeView{}, domain.ErrRecipeDifficultyRequired
	}

	err = s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		recipe, err := ownedRecipe(ctx, repo, id, authorID)
		if err != nil {
			return err
		}

		lines, allergens, err := resolveReferences(ctx, repo, req)
		if err != nil {
			return err
		}

		applyRequest(recipe, req)
		fields := map[string]any{
			"title":        recipe.Title,
			"description":  recipe.Description,
			"cooking_time": recipe.CookingTime,
			"difficulty":   recipe.Difficulty,
			"cuisine_id":   recipe.CuisineID,
		}
		return repo.UpdateRecipe(ctx, recipe, fields, lines, allergens)
	})
	if err != nil {
		recipeQueryErrors.WithLabelValues("update").Inc()
		return domain.RecipeView{}, err
	}
	recipeWrites.WithLabelValues("update").Inc()

	return s.loaded(ctx, id)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint, userID string) error {
	authorID, err := parseUserID(userID)
	if err != nil {
		return err
	}

	err = s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		recipe, err := ownedRecipe(ctx, repo, id, authorID)
		if err != nil {
			return err
		}
		return repo.DeleteRecipe(ctx, recipe)
	})
	if err != nil {
		recipeQueryErrors.WithLabelValues("delete").Inc()
		return err
	}
	recipeWrites.WithLabelValues("delete").Inc()

	return nil
}

// loaded reads a recipe back with every relation and every field.
func (s *recipeService) loaded(ctx context.Context, id uint) (domain.RecipeView, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id, IncludeAll())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeView{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeView{}, err
	}
	return NewProjection(nil, IncludeAll()).Apply(recipe), nil
}

func ownedRecipe(ctx context.Context, repo RecipeRepository, id uint, authorID uuid.UUID) (*entities.Recipe, error) {
	recipe, err := repo.GetRecipeByID(ctx, id, IncludeNone())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != authorID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

// resolveReferences checks cuisine, then allergens, then ingredient lines, and stops
// at the first missing id of each in submitted order.
func resolveReferences(ctx context.Context, repo RecipeRepository, req domain.RecipeRequest) ([]entities.RecipeIngredient, []entities.Allergen, error) {
	if req.CuisineID != nil {
		if _, err := repo.FindCuisine(ctx, *req.CuisineID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, missing("cuisine", *req.CuisineID)
			}
			return nil, nil, err
		}
	}

	allergenIDs := uniqueIDs(req.AllergenIDs)
	allergens, err := repo.FindAllergens(ctx, allergenIDs)
	if err != nil {
		return nil, nil, err
	}
	if id, ok := firstMissing(allergenIDs, allergens, func(a entities.Allergen) uint { return a.ID }); !ok {
		return nil, nil, missing("allergen", id)
	}

	ingredientIDs := make([]uint, 0, len(req.RecipeIngredients))
	for _, line := range req.RecipeIngredients {
		ingredientIDs = append(ingredientIDs, line.IngredientID)
	}
	ingredients, err := repo.FindIngredients(ctx, uniqueIDs(ingredientIDs))
	if err != nil {
		return nil, nil, err
	}
	if id, ok := firstMissing(ingredientIDs, ingredients, func(i entities.Ingredient) uint { return i.ID }); !ok {
		return nil, nil, missing("ingredient", id)
	}

	lines := make([]entities.RecipeIngredient, 0, len(req.RecipeIngredients))
	for _, line := range req.RecipeIngredients {
		lines = append(lines, entities.RecipeIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Measurement:  line.Measurement,
		})
	}

	return lines, allergens, nil
}

func applyRequest(recipe *entities.Recipe, req domain.RecipeRequest) {
	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.CookingTime = req.CookingTime
	recipe.Difficulty = req.Difficulty
	if recipe.Difficulty == 0 {
		recipe.Difficulty = 1
	}
	recipe.CuisineID = req.CuisineID
}

func parseProjection(include *string, fields string, def Includes) (Projection, error) {
	includes, err := ParseIncludes(include, def)
	if err != nil {
		return Projection{}, err
	}
	selected, err := ParseFields(fields)
	if err != nil {
		return Projection{}, err
	}
	return NewProjection(selected, includes), nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	if userID == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return id, nil
}

func missing(kind string, id uint) error {
	return fmt.Errorf("%s with id %d %w", kind, id, domain.ErrNotFound)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func firstMissing[T any](want []uint, found []T, idOf func(T) uint) (uint, bool) {
	have := make(map[uint]struct{}, len(found))
	for _, f := range found {
		have[idOf(f)] = struct{}{}
	}
	for _, id := range want {
		if _, ok := have[id]; !ok {
			return id, false
		}
	}
	return 0, true
}

func observe(operation string, start time.Time, err *error) {
	recipeQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if *err != nil {
		recipeQueryErrors.WithLabelValues(operation).Inc()
	}
}
