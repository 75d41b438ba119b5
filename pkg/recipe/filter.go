package recipe

import (
	"Recipe-Catalog/domain"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortableFields are the recipe columns order_by may name.
var SortableFields = []string{"id", "title", "description", "cooking_time", "difficulty"}

type (
	OrderKey struct {
		Field string
		Desc  bool
	}

	Filter struct {
		TitleLike     string
		IngredientIDs []uint
		Order         []OrderKey
		CaseSensitive bool
	}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func ParseFilter(q domain.RecipeListQuery) (Filter, error) {
	order, err := ParseOrderBy(q.OrderBy)
	if err != nil {
		return Filter{}, err
	}

	ids, err := ParseIngredientIDs(q.IngredientID)
	if err != nil {
		return Filter{}, err
	}

	return Filter{
		TitleLike:     strings.TrimSpace(q.TitleLike),
		IngredientIDs: ids,
		Order:         order,
	}, nil
}

// ParseOrderBy reads "field,-field" lists. A leading "-" sorts that key descending.
func ParseOrderBy(raw string) ([]OrderKey, error) {
	var keys []OrderKey
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		key := OrderKey{Field: token}
		if strings.HasPrefix(token, "-") {
			key = OrderKey{Field: strings.TrimPrefix(token, "-"), Desc: true}
		}

		if !slices.Contains(SortableFields, key.Field) {
			return nil, fmt.Errorf("%w: cannot order by %q, allowed fields: %s",
				domain.ErrValidation, key.Field, strings.Join(SortableFields, ", "))
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func ParseIngredientIDs(raw string) ([]uint, error) {
	var ids []uint
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		id, err := strconv.ParseUint(token, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: invalid ingredient id %q", domain.ErrValidation, token)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// Where adds the filter predicates only. Counting reuses it without ordering.
func (f Filter) Where(db *gorm.DB) *gorm.DB {
	if f.TitleLike != "" {
		pattern := "%" + likeEscaper.Replace(f.TitleLike) + "%"
		if f.CaseSensitive {
			db = db.Where(`recipes.title LIKE ? ESCAPE '\'`, pattern)
		} else {
			db = db.Where(`LOWER(recipes.title) LIKE LOWER(?) ESCAPE '\'`, pattern)
		}
	}

	if len(f.IngredientIDs) > 0 {
		db = db.Where(
			"EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = recipes.id AND ri.ingredient_id IN ?)",
			f.IngredientIDs,
		)
	}
	return db
}

// OrderBy applies the requested keys, then recipes.id as a tie-breaker.
func (f Filter) OrderBy(db *gorm.DB) *gorm.DB {
	return db.Order(orderClause(f.Order))
}

func orderClause(keys []OrderKey) clause.OrderBy {
	var columns []clause.OrderByColumn
	hasID := false
	for _, key := range keys {
		if key.Field == "id" {
			hasID = true
		}
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Table: "recipes", Name: key.Field},
			Desc:   key.Desc,
		})
	}
	if !hasID {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Table: "recipes", Name: "id"}})
	}
	return clause.OrderBy{Columns: columns}
}
