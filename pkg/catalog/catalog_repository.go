package catalog

import (
	"Recipe-Catalog/entities"
	"context"

	"gorm.io/gorm"
)

// Entity is a named catalog row: ingredient, cuisine or allergen.
type Entity[T any] interface {
	*T
	GetID() uint
	GetName() string
	SetName(name string)
}

type (
	CatalogRepository[T any] interface {
		List(ctx context.Context) ([]T, error)
		GetByID(ctx context.Context, id uint) (*T, error)
		NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
		Create(ctx context.Context, item *T) error
		Rename(ctx context.Context, item *T, name string) error
		Delete(ctx context.Context, id uint) error
	}

	catalogRepository[T any, PT Entity[T]] struct {
		db *gorm.DB
		// beforeDelete runs inside the delete transaction and detaches or guards references.
		beforeDelete func(tx *gorm.DB, id uint) error
	}
)

func NewIngredientRepository(db *gorm.DB) CatalogRepository[entities.Ingredient] {
	return &catalogRepository[entities.Ingredient, *entities.Ingredient]{db: db, beforeDelete: guardIngredientInUse}
}

func NewCuisineRepository(db *gorm.DB) CatalogRepository[entities.Cuisine] {
	return &catalogRepository[entities.Cuisine, *entities.Cuisine]{db: db, beforeDelete: detachCuisine}
}

func NewAllergenRepository(db *gorm.DB) CatalogRepository[entities.Allergen] {
	return &catalogRepository[entities.Allergen, *entities.Allergen]{db: db, beforeDelete: unlinkAllergen}
}

func (r *catalogRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository[T, PT]) GetByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository[T, PT]) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(new(T)).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *catalogRepository[T, PT]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository[T, PT]) Rename(ctx context.Context, item *T, name string) error {
	if err := r.db.WithContext(ctx).Model(item).Update("name", name).Error; err != nil {
		return err
	}
	PT(item).SetName(name)
	return nil
}

func (r *catalogRepository[T, PT]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.beforeDelete != nil {
			if err := r.beforeDelete(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(new(T), id).Error
	})
}

func guardIngredientInUse(tx *gorm.DB, id uint) error {
	var lines int64
	if err := tx.Model(&entities.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&lines).Error; err != nil {
		return err
	}
	if lines > 0 {
		return errIngredientInUse(id, lines)
	}
	return nil
}

func detachCuisine(tx *gorm.DB, id uint) error {
	return tx.Model(&entities.Recipe{}).Where("cuisine_id = ?", id).Update("cuisine_id", nil).Error
}

func unlinkAllergen(tx *gorm.DB, id uint) error {
	return tx.Exec("DELETE FROM recipe_allergens WHERE allergen_id = ?", id).Error
}
