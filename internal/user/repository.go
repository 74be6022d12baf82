// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"profilehub_backend/internal/common"
)

// Repository defines the interface for the user directory store.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, userName string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	CreateProfile(ctx context.Context, profile *Profile) error
	FindProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	ResetPassword(ctx context.Context, email, passwordHash string) error
	ClearExpiredVerificationCodes(ctx context.Context, olderThan time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new identity record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translatePersistenceError(err)
	}
	return nil
}

// FindByEmail retrieves an identity record by email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	err := r.db.WithContext(ctx).Where("email = ?", normalizedEmail).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("User not found with this email.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByUsername retrieves an identity record by username.
func (r *gormRepository) FindByUsername(ctx context.Context, userName string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("User not found with this username.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByID retrieves an identity record by the provider-issued id.
func (r *gormRepository) FindByID(ctx context.Context, id string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("User not found with this ID.")
		}
		return nil, err
	}
	return &userModel, nil
}

// CreateProfile inserts the onboarding profile row. One-shot: the unique
// user_id index rejects a second insert for the same identity.
func (r *gormRepository) CreateProfile(ctx context.Context, profile *Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return translatePersistenceError(err)
	}
	return nil
}

// FindProfileByUserID retrieves the profile row for an identity, if onboarded.
func (r *gormRepository) FindProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("No profile found for this user.")
		}
		return nil, err
	}
	return &profile, nil
}

// ResetPassword updates the stored hash for the given email, unconditionally.
// Zero matched rows is not an error.
func (r *gormRepository) ResetPassword(ctx context.Context, email, passwordHash string) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	result := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", normalizedEmail).
		Update("password", passwordHash)
	if result.Error != nil {
		return translatePersistenceError(result.Error)
	}
	return nil
}

// ClearExpiredVerificationCodes nulls stale codes on unverified accounts and
// reports how many rows were touched.
func (r *gormRepository) ClearExpiredVerificationCodes(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&User{}).
		Where("is_verified = ? AND verification_code IS NOT NULL AND updated_at < ?", false, olderThan).
		Update("verification_code", nil)
	if result.Error != nil {
		return 0, translatePersistenceError(result.Error)
	}
	return result.RowsAffected, nil
}
