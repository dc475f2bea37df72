package store

import (
	"context"
	"errors"

	"github.com/recipebox-dev/recipebox/internal/models"
	"gorm.io/gorm"
)

// UserChanges carries a partial profile update. Nil fields are left
// untouched.
type UserChanges struct {
	Name         *string
	PasswordHash *string
}

type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	Update(ctx context.Context, id uint, changes UserChanges) (models.User, error)
	Delete(ctx context.Context, id uint) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	var existing models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error

	if err == nil {
		return models.User{}, ErrDuplicateEmail
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// the unique index backstops the check above under concurrent
		// registrations
		return models.User{}, err
	}

	return user, nil
}

func (s *GormUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}

	return user, err
}

func (s *GormUserStore) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}

	return user, err
}

func (s *GormUserStore) Update(ctx context.Context, id uint, changes UserChanges) (models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	updates := make(map[string]interface{})

	if changes.Name != nil {
		updates["name"] = *changes.Name
	}

	if changes.PasswordHash != nil {
		updates["password_hash"] = *changes.PasswordHash
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Delete removes the account and, through the owner foreign keys, every
// recipe, tag, and ingredient it owns.
func (s *GormUserStore) Delete(ctx context.Context, id uint) error {
	var user models.User

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Delete(&user).Error
}
