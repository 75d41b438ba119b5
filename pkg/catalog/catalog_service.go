package catalog

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/entities"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	KindIngredient = "ingredient"
	KindCuisine    = "cuisine"
	KindAllergen   = "allergen"
)

type (
	CatalogService[T any] interface {
		Kind() string
		List(ctx context.Context) ([]T, error)
		Get(ctx context.Context, id uint) (*T, error)
		Create(ctx context.Context, req domain.CatalogRequest) (*T, error)
		Rename(ctx context.Context, id uint, req domain.CatalogRequest) (*T, error)
		Delete(ctx context.Context, id uint) error
	}

	catalogService[T any, PT Entity[T]] struct {
		kind       string
		repository CatalogRepository[T]
	}
)

func NewIngredientService(repository CatalogRepository[entities.Ingredient]) CatalogService[entities.Ingredient] {
	return &catalogService[entities.Ingredient, *entities.Ingredient]{kind: KindIngredient, repository: repository}
}

func NewCuisineService(repository CatalogRepository[entities.Cuisine]) CatalogService[entities.Cuisine] {
	return &catalogService[entities.Cuisine, *entities.Cuisine]{kind: KindCuisine, repository: repository}
}

func NewAllergenService(repository CatalogRepository[entities.Allergen]) CatalogService[entities.Allergen] {
	return &catalogService[entities.Allergen, *entities.Allergen]{kind: KindAllergen, repository: repository}
}

func (s *catalogService[T, PT]) Kind() string {
	return s.kind
}

func (s *catalogService[T, PT]) List(ctx context.Context) ([]T, error) {
	items, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *catalogService[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	item, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound(id)
		}
		return nil, err
	}
	return item, nil
}

func (s *catalogService[T, PT]) Create(ctx context.Context, req domain.CatalogRequest) (*T, error) {
	if err := s.ensureNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	item := new(T)
	PT(item).SetName(req.Name)
	if err := s.repository.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *catalogService[T, PT]) Rename(ctx context.Context, id uint, req domain.CatalogRequest) (*T, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	if err := s.repository.Rename(ctx, item, req.Name); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *catalogService[T, PT]) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repository.Delete(ctx, id)
}

// ensureNameFree rejects a name held by another row. excludeID lets a row keep its own name.
func (s *catalogService[T, PT]) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.repository.NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s with name %q already exists", domain.ErrConflict, s.kind, name)
	}
	return nil
}

func (s *catalogService[T, PT]) notFound(id uint) error {
	return fmt.Errorf("%s with id %d %w", s.kind, id, domain.ErrNotFound)
}

func errIngredientInUse(id uint, lines int64) error {
	return fmt.Errorf("%w: ingredient %d is used by %d recipe line(s)", domain.ErrConflict, id, lines)
}
