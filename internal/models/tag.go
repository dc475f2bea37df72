package models

import "time"

// Tag names are unique per owner, never globally. Two users can each
// have their own "Vegan" tag.
type Tag struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name    string `gorm:"not null;uniqueIndex:idx_tags_owner_name"`
	OwnerID uint   `gorm:"not null;uniqueIndex:idx_tags_owner_name"`

	// Relationships
	Owner   User     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipes []Recipe `gorm:"many2many:recipe_tags"`
}
