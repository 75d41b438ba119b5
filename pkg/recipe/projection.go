package recipe

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/entities"
	"fmt"
	"slices"
	"strings"
)

// SelectableFields is the fields allowlist, in output order.
var SelectableFields = []string{"id", "title", "description", "cooking_time", "difficulty"}

var scalarExtractors = map[string]func(*entities.Recipe) any{
	"id":           func(r *entities.Recipe) any { return r.ID },
	"title":        func(r *entities.Recipe) any { return r.Title },
	"description":  func(r *entities.Recipe) any { return r.Description },
	"cooking_time": func(r *entities.Recipe) any { return r.CookingTime },
	"difficulty":   func(r *entities.Recipe) any { return r.Difficulty },
}

// Projection decides which keys a RecipeView carries.
type Projection struct {
	fields   []string
	includes Includes
}

// ParseFields reads a comma-separated field list. Empty means every field.
func ParseFields(raw string) ([]string, error) {
	var (
		requested []string
		invalid   []string
	)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if !slices.Contains(SelectableFields, token) {
			if !slices.Contains(invalid, token) {
				invalid = append(invalid, token)
			}
			continue
		}
		requested = append(requested, token)
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: invalid fields: %s. Allowed: %s",
			domain.ErrValidation, strings.Join(invalid, ", "), strings.Join(SelectableFields, ", "))
	}
	if len(requested) == 0 {
		return slices.Clone(SelectableFields), nil
	}

	// allowlist order, duplicates collapsed
	fields := make([]string, 0, len(requested))
	for _, f := range SelectableFields {
		if slices.Contains(requested, f) {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func NewProjection(fields []string, includes Includes) Projection {
	if len(fields) == 0 {
		fields = SelectableFields
	}
	return Projection{fields: fields, includes: includes}
}

func (p Projection) Includes() Includes {
	return p.includes
}

// Apply shapes one recipe. A relation key is emitted only when it was requested and
// holds at least one item.
func (p Projection) Apply(r *entities.Recipe) domain.RecipeView {
	view := domain.NewRecipeView()
	for _, field := range p.fields {
		view.Set(field, scalarExtractors[field](r))
	}

	if p.includes.Cuisine && r.Cuisine != nil && r.Cuisine.ID != 0 {
		view.Set(RelationCuisine, domain.CuisineView{ID: r.Cuisine.ID, Name: r.Cuisine.Name})
	}

	if p.includes.Ingredients && len(r.RecipeIngredients) > 0 {
		lines := make([]domain.RecipeIngredientView, 0, len(r.RecipeIngredients))
		for _, line := range r.RecipeIngredients {
			lines = append(lines, domain.RecipeIngredientView{
				IngredientID: line.IngredientID,
				Name:         line.IngredientName,
				Quantity:     line.Quantity,
				Measurement:  line.Measurement,
			})
		}
		view.Set(RelationIngredients, lines)
	}

	if p.includes.Allergens && len(r.Allergens) > 0 {
		allergens := make([]domain.AllergenView, 0, len(r.Allergens))
		for _, a := range r.Allergens {
			allergens = append(allergens, domain.AllergenView{ID: a.ID, Name: a.Name})
		}
		view.Set(RelationAllergens, allergens)
	}

	return view
}

func (p Projection) ApplyAll(recipes []*entities.Recipe) []domain.RecipeView {
	views := make([]domain.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, p.Apply(r))
	}
	return views
}
