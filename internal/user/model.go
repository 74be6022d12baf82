// File: internal/user/model.go
package user

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"profilehub_backend/internal/common"
)

// userNameRe mirrors the username rules of the identity provider: letters,
// digits and underscores only.
var userNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username_charset", func(fl validator.FieldLevel) bool {
			return userNameRe.MatchString(fl.Field().String())
		})
	}
}

// User mirrors one identity-provider principal. The primary key is the
// opaque id the provider issued, not a locally generated one.
type User struct {
	ID               string  `gorm:"type:varchar(128);primaryKey"`
	UserName         string  `gorm:"type:varchar(50);uniqueIndex:users_user_name_key;not null"`
	Email            string  `gorm:"type:varchar(255);uniqueIndex:users_email_key;not null"`
	Password         *string `gorm:"type:varchar(255)"` // bcrypt hash for the legacy credential path
	IsAdmin          bool    `gorm:"not null;default:false"`
	IsVerified       bool    `gorm:"not null;default:false"`
	VerificationCode *string `gorm:"type:varchar(6)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Sanitize removes credential material before the record leaves the service layer.
func (u *User) Sanitize() {
	u.Password = nil
	u.VerificationCode = nil
}

// Profile holds the onboarding details, one row per identity. The unique
// user_id index is what makes onboarding a create-once operation.
type Profile struct {
	common.BaseModel            // Embeds ID, CreatedAt, UpdatedAt
	UserID            string    `gorm:"type:varchar(128);uniqueIndex:user_info_user_id_key;not null"`
	FirstName         string    `gorm:"type:varchar(50);not null"`
	LastName          *string   `gorm:"type:varchar(50)"`
	Bio               *string   `gorm:"type:text"`
	ProfilePictureURL *string   `gorm:"column:profile_picture;type:varchar(255)"`
	DOB               *time.Time `gorm:"column:dob;type:date"`
	Country           *string   `gorm:"type:varchar(50)"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "user_info"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// CreateUserRequest defines the structure for registering a new user. The
// identity provider has already created the principal; UserID is its id.
type CreateUserRequest struct {
	UserID   string `json:"userId" binding:"required,max=128"`
	UserName string `json:"userName" binding:"required,max=50,username_charset"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"` // bcrypt max is 72 bytes
}

// ResetPasswordRequest defines the structure for the forgot-password flow.
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse defines the structure for identity data sent in API responses.
type UserResponse struct {
	ID         string    `json:"id"`
	UserName   string    `json:"user_name"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"is_admin"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfileResponse defines the structure for profile data sent in API responses.
type ProfileResponse struct {
	ID                uuid.UUID  `json:"id"`
	UserID            string     `json:"user_id"`
	FirstName         string     `json:"first_name"`
	LastName          *string    `json:"last_name,omitempty"`
	Bio               *string    `json:"bio,omitempty"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	DOB               *time.Time `json:"dob,omitempty"`
	Country           *string    `json:"country,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		UserName:   u.UserName,
		Email:      u.Email,
		IsAdmin:    u.IsAdmin,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// ToProfileResponse converts a Profile model to a ProfileResponse DTO.
func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Bio:               p.Bio,
		ProfilePictureURL: p.ProfilePictureURL,
		DOB:               p.DOB,
		Country:           p.Country,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
