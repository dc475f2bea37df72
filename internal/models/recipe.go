package models

import "time"

type Recipe struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text"`
	TimeMinutes int     `gorm:"not null"`
	Price       float64 `gorm:"type:decimal(5,2);not null"`
	Link        string
	Image       string
	OwnerID     uint `gorm:"not null;index"`

	// Relationships. Tags and ingredients are associations, not
	// ownership: deleting a recipe clears join rows only.
	Owner       User         `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}
