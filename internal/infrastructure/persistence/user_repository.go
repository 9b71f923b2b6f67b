package persistence

import (
	"context"
	"strings"

	"github.com/autoparts/backend/internal/domain/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository on gorm
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

// Save updates all user fields
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Save(user).Error)
}

// Delete removes a user by id
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.User{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// FindByID loads one user
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByEmail loads one user by lowercased email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	err := r.db.WithContext(ctx).
		First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// List returns paginated users, newest first
func (r *GormUserRepository) List(ctx context.Context, page, pageSize int) ([]identity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&identity.User{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var users []identity.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return users, total, nil
}

// Count returns the total number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).Count(&total).Error
	return total, translateError(err)
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
