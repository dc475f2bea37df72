package store

import (
	"context"
	"errors"

	"github.com/recipebox-dev/recipebox/internal/models"
	"gorm.io/gorm"
)

// Attribute is the kind-neutral view of a tag or ingredient row.
type Attribute struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AttributeStore is the owner-scoped name registry behind tags and
// ingredients. Both kinds share the same contract; only the tables
// differ.
type AttributeStore interface {
	GetOrCreate(ctx context.Context, ownerID uint, name string) (Attribute, bool, error)
	List(ctx context.Context, ownerID uint, assignedOnly bool) ([]Attribute, error)
	Update(ctx context.Context, ownerID, id uint, name string) (Attribute, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// getOrCreateTag resolves (owner, name) to a tag row, inserting one if
// absent. The composite unique index makes concurrent inserts converge;
// the loser of that race refetches the winner's row.
func getOrCreateTag(tx *gorm.DB, ownerID uint, name string) (models.Tag, bool, error) {
	var tag models.Tag

	res := tx.Where("owner_id = ? AND name = ?", ownerID, name).
		Attrs(models.Tag{OwnerID: ownerID, Name: name}).
		FirstOrCreate(&tag)

	if res.Error != nil {
		if ferr := tx.Where("owner_id = ? AND name = ?", ownerID, name).First(&tag).Error; ferr == nil {
			return tag, false, nil
		}
		return models.Tag{}, false, res.Error
	}

	return tag, res.RowsAffected > 0, nil
}

func getOrCreateIngredient(tx *gorm.DB, ownerID uint, name string) (models.Ingredient, bool, error) {
	var ingredient models.Ingredient

	res := tx.Where("owner_id = ? AND name = ?", ownerID, name).
		Attrs(models.Ingredient{OwnerID: ownerID, Name: name}).
		FirstOrCreate(&ingredient)

	if res.Error != nil {
		if ferr := tx.Where("owner_id = ? AND name = ?", ownerID, name).First(&ingredient).Error; ferr == nil {
			return ingredient, false, nil
		}
		return models.Ingredient{}, false, res.Error
	}

	return ingredient, res.RowsAffected > 0, nil
}

type GormTagStore struct {
	db *gorm.DB
}

func NewGormTagStore(db *gorm.DB) *GormTagStore {
	return &GormTagStore{db: db}
}

func (s *GormTagStore) GetOrCreate(ctx context.Context, ownerID uint, name string) (Attribute, bool, error) {
	tag, created, err := getOrCreateTag(s.db.WithContext(ctx), ownerID, name)

	if err != nil {
		return Attribute{}, false, err
	}

	return Attribute{ID: tag.ID, Name: tag.Name}, created, nil
}

func (s *GormTagStore) List(ctx context.Context, ownerID uint, assignedOnly bool) ([]Attribute, error) {
	// owner scoping comes first; the assignment check only ever sees the
	// requesting user's own rows
	query := s.db.WithContext(ctx).Model(&models.Tag{}).Where("tags.owner_id = ?", ownerID)

	if assignedOnly {
		query = query.Where("EXISTS (SELECT 1 FROM recipe_tags WHERE recipe_tags.tag_id = tags.id)")
	}

	var attrs []Attribute

	err := query.Distinct("tags.id", "tags.name").Order("tags.name DESC").Find(&attrs).Error

	return attrs, err
}

func (s *GormTagStore) Update(ctx context.Context, ownerID, id uint, name string) (Attribute, error) {
	var tag models.Tag

	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&tag).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Attribute{}, ErrNotFound
	}

	if err != nil {
		return Attribute{}, err
	}

	if err := s.db.WithContext(ctx).Model(&tag).Update("name", name).Error; err != nil {
		return Attribute{}, err
	}

	return Attribute{ID: tag.ID, Name: name}, nil
}

func (s *GormTagStore) Delete(ctx context.Context, ownerID, id uint) error {
	var tag models.Tag

	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&tag).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if err != nil {
		return err
	}

	// recipes referencing the tag keep existing; only join rows go
	if err := s.db.WithContext(ctx).Model(&tag).Association("Recipes").Clear(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&tag).Error
}

type GormIngredientStore struct {
	db *gorm.DB
}

func NewGormIngredientStore(db *gorm.DB) *GormIngredientStore {
	return &GormIngredientStore{db: db}
}

func (s *GormIngredientStore) GetOrCreate(ctx context.Context, ownerID uint, name string) (Attribute, bool, error) {
	ingredient, created, err := getOrCreateIngredient(s.db.WithContext(ctx), ownerID, name)

	if err != nil {
		return Attribute{}, false, err
	}

	return Attribute{ID: ingredient.ID, Name: ingredient.Name}, created, nil
}

func (s *GormIngredientStore) List(ctx context.Context, ownerID uint, assignedOnly bool) ([]Attribute, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("ingredients.owner_id = ?", ownerID)

	if assignedOnly {
		query = query.Where("EXISTS (SELECT 1 FROM recipe_ingredients WHERE recipe_ingredients.ingredient_id = ingredients.id)")
	}

	var attrs []Attribute

	err := query.Distinct("ingredients.id", "ingredients.name").Order("ingredients.name DESC").Find(&attrs).Error

	return attrs, err
}

func (s *GormIngredientStore) Update(ctx context.Context, ownerID, id uint, name string) (Attribute, error) {
	var ingredient models.Ingredient

	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&ingredient).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Attribute{}, ErrNotFound
	}

	if err != nil {
		return Attribute{}, err
	}

	if err := s.db.WithContext(ctx).Model(&ingredient).Update("name", name).Error; err != nil {
		return Attribute{}, err
	}

	return Attribute{ID: ingredient.ID, Name: name}, nil
}

func (s *GormIngredientStore) Delete(ctx context.Context, ownerID, id uint) error {
	var ingredient models.Ingredient

	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&ingredient).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(&ingredient).Association("Recipes").Clear(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&ingredient).Error
}
