package models

import "time"

// Ingredient has the same ownership semantics as Tag but a separate
// namespace and join table.
type Ingredient struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name    string `gorm:"not null;uniqueIndex:idx_ingredients_owner_name"`
	OwnerID uint   `gorm:"not null;uniqueIndex:idx_ingredients_owner_name"`

	// Relationships
	Owner   User     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipes []Recipe `gorm:"many2many:recipe_ingredients"`
}
