// File: entities/recipe.go
package entities

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	Difficulty  int       `gorm:"not null;default:1" json:"difficulty"`
	CuisineID   *uint     `gorm:"index" json:"cuisine_id,omitempty"`

	Cuisine           *Cuisine           `gorm:"foreignKey:CuisineID;constraint:OnDelete:SET NULL" json:"cuisine,omitempty"`
	Allergens         []Allergen         `gorm:"many2many:recipe_allergens;constraint:OnDelete:CASCADE" json:"allergens,omitempty"`
	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe_ingredients,omitempty"`
	Timestamp
}

// RecipeIngredient is a line item of a recipe. IngredientName is filled by the
// relation loader and never written.
type RecipeIngredient struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	RecipeID       uint            `gorm:"not null;index" json:"recipe_id"`
	IngredientID   uint            `gorm:"not null;index" json:"ingredient_id"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	Measurement    MeasurementUnit `gorm:"not null" json:"measurement"`
	IngredientName string          `gorm:"->;-:migration" json:"ingredient_name,omitempty"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT" json:"-"`
}

// MeasurementUnit is stored as its integer code and rendered as its name.
type MeasurementUnit int

const (
	MeasurementGrams       MeasurementUnit = 1
	MeasurementPieces      MeasurementUnit = 2
	MeasurementMilliliters MeasurementUnit = 3
)

var measurementNames = map[MeasurementUnit]string{
	MeasurementGrams:       "grams",
	MeasurementPieces:      "pieces",
	MeasurementMilliliters: "milliliters",
}

func (m MeasurementUnit) IsValid() bool {
	_, ok := measurementNames[m]
	return ok
}

func (m MeasurementUnit) String() string {
	if name, ok := measurementNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MeasurementUnit(%d)", int(m))
}

func ParseMeasurementUnit(s string) (MeasurementUnit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for unit, name := range measurementNames {
		if name == s {
			return unit, nil
		}
	}
	return 0, fmt.Errorf("unknown measurement %q", s)
}

func (m MeasurementUnit) MarshalJSON() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid measurement code %d", int(m))
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either the unit name or its integer code.
func (m *MeasurementUnit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		unit, err := ParseMeasurementUnit(name)
		if err != nil {
			return err
		}
		*m = unit
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("measurement must be a name or an integer code")
	}
	unit := MeasurementUnit(code)
	if !unit.IsValid() {
		return fmt.Errorf("unknown measurement code %d", code)
	}
	*m = unit
	return nil
}
