package repositories

import (
	"context"

	"charsheet-restful/models"

	"gorm.io/gorm"
)

// CharacterRepository interface defines Character-related database operations
type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	FindAll(ctx context.Context, limit int) ([]models.Character, error)
}

type characterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository creates a new CharacterRepository instance
func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

// Create inserts a new Character. Names are unique, so a second insert with
// the same name fails with ErrDuplicate and leaves the stored row alone.
func (r *characterRepository) Create(ctx context.Context, character *models.Character) error {
	return translateCreateError(r.db.WithContext(ctx).Create(character).Error)
}

// FindAll returns at most limit characters in insertion order
func (r *characterRepository) FindAll(ctx context.Context, limit int) ([]models.Character, error) {
	var characters []models.Character
	result := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&characters)
	if result.Error != nil {
		return nil, result.Error
	}
	return characters, nil
}
