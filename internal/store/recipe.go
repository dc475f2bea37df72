package store

import (
	"context"
	"errors"

	"github.com/recipebox-dev/recipebox/internal/models"
	"gorm.io/gorm"
)

// RecipeFilter narrows a listing. A non-empty id set keeps recipes
// carrying at least one of those tags (or ingredients); both sets
// together are AND'ed.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeChanges carries a partial update. Nil scalar fields are left
// untouched. Tags and Ingredients are three-state: nil leaves the
// association set alone, a non-nil empty slice clears it, a non-empty
// slice replaces it via owner-scoped get-or-create.
type RecipeChanges struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

type RecipeStore interface {
	List(ctx context.Context, ownerID uint, filter RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, ownerID, id uint) (models.Recipe, error)
	Create(ctx context.Context, ownerID uint, recipe models.Recipe, tagNames, ingredientNames []string) (models.Recipe, error)
	Update(ctx context.Context, ownerID, id uint, changes RecipeChanges) (models.Recipe, error)
	Delete(ctx context.Context, ownerID, id uint) error
	SetImage(ctx context.Context, ownerID, id uint, path string) (models.Recipe, string, error)
}

type GormRecipeStore struct {
	db *gorm.DB
}

func NewGormRecipeStore(db *gorm.DB) *GormRecipeStore {
	return &GormRecipeStore{db: db}
}

func (s *GormRecipeStore) List(ctx context.Context, ownerID uint, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("recipes.owner_id = ?", ownerID)

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}

	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe

	// DISTINCT: the association joins yield one row per matching tag or
	// ingredient otherwise
	err := query.
		Distinct("recipes.*").
		Order("recipes.id DESC").
		Preload("Tags").
		Preload("Ingredients").
		Find(&recipes).Error

	return recipes, err
}

func (s *GormRecipeStore) Get(ctx context.Context, ownerID, id uint) (models.Recipe, error) {
	var recipe models.Recipe

	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&recipe).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Recipe{}, ErrNotFound
	}

	return recipe, err
}

func (s *GormRecipeStore) Create(ctx context.Context, ownerID uint, recipe models.Recipe, tagNames, ingredientNames []string) (models.Recipe, error) {
	recipe.OwnerID = ownerID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// names resolve under the acting user, so foreign tag or
		// ingredient ids can never be attached
		for _, name := range tagNames {
			tag, _, err := getOrCreateTag(tx, ownerID, name)
			if err != nil {
				return err
			}
			recipe.Tags = append(recipe.Tags, tag)
		}

		for _, name := range ingredientNames {
			ingredient, _, err := getOrCreateIngredient(tx, ownerID, name)
			if err != nil {
				return err
			}
			recipe.Ingredients = append(recipe.Ingredients, ingredient)
		}

		return tx.Create(&recipe).Error
	})

	if err != nil {
		return models.Recipe{}, err
	}

	return recipe, nil
}

func (s *GormRecipeStore) Update(ctx context.Context, ownerID, id uint, changes RecipeChanges) (models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe

		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&recipe).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})

		if changes.Title != nil {
			updates["title"] = *changes.Title
		}

		if changes.Description != nil {
			updates["description"] = *changes.Description
		}

		if changes.TimeMinutes != nil {
			updates["time_minutes"] = *changes.TimeMinutes
		}

		if changes.Price != nil {
			updates["price"] = *changes.Price
		}

		if changes.Link != nil {
			updates["link"] = *changes.Link
		}

		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if changes.Tags != nil {
			tags := make([]models.Tag, 0, len(*changes.Tags))

			for _, name := range *changes.Tags {
				tag, _, err := getOrCreateTag(tx, ownerID, name)
				if err != nil {
					return err
				}
				tags = append(tags, tag)
			}

			if len(tags) == 0 {
				if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		if changes.Ingredients != nil {
			ingredients := make([]models.Ingredient, 0, len(*changes.Ingredients))

			for _, name := range *changes.Ingredients {
				ingredient, _, err := getOrCreateIngredient(tx, ownerID, name)
				if err != nil {
					return err
				}
				ingredients = append(ingredients, ingredient)
			}

			if len(ingredients) == 0 {
				if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return err
			}
		}

		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Recipe{}, ErrNotFound
	}

	if err != nil {
		return models.Recipe{}, err
	}

	return s.Get(ctx, ownerID, id)
}

func (s *GormRecipeStore) Delete(ctx context.Context, ownerID, id uint) error {
	var recipe models.Recipe

	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&recipe).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// associations are cleared, never the tags/ingredients themselves
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}

		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})
}

func (s *GormRecipeStore) SetImage(ctx context.Context, ownerID, id uint, path string) (models.Recipe, string, error) {
	var recipe models.Recipe

	err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&recipe).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Recipe{}, "", ErrNotFound
	}

	if err != nil {
		return models.Recipe{}, "", err
	}

	previous := recipe.Image

	if err := s.db.WithContext(ctx).Model(&recipe).Update("image", path).Error; err != nil {
		return models.Recipe{}, "", err
	}

	recipe.Image = path

	return recipe, previous, nil
}
