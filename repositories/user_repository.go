package repositories

import (
	"context"

	"charsheet-restful/models"

	"gorm.io/gorm"
)

// UserRepository interface defines User-related database operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByAccessToken(ctx context.Context, token string) (*models.User, error)
}

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new User. A username or nickname that is already taken
// fails with ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateCreateError(r.db.WithContext(ctx).Create(user).Error)
}

// FindByUsername finds User by Username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// FindByAccessToken finds the User holding exactly this access token
func (r *userRepository) FindByAccessToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("access_token = ?", token).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
