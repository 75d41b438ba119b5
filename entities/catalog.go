// File: entities/catalog.go
package entities

// Ingredient, Cuisine and Allergen are the named catalog entries a recipe refers to.
// Name is unique per table and compared case-sensitively.

type Ingredient struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Timestamp
}

type Cuisine struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Timestamp
}

type Allergen struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Timestamp
}

func (i *Ingredient) GetID() uint { return i.ID }
func (i *Ingredient) GetName() string { return i.Name }
func (i *Ingredient) SetName(n string) { i.Name = n }
func (c *Cuisine) GetID() uint { return c.ID }
func (c *Cuisine) GetName() string { return c.Name }
func (c *Cuisine) SetName(n string) { c.Name = n }
func (a *Allergen) GetID() uint { return a.ID }
func (a *Allergen) GetName() string { return a.Name }
func (a *Allergen) SetName(n string) { a.Name = n }
