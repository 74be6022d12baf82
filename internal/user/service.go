package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"profilehub_backend/internal/common"
	"profilehub_backend/internal/config"
	"profilehub_backend/internal/platform/crypto"
)

// verificationCodeDigits is the length of the out-of-band verification code.
const verificationCodeDigits = 6

// Service implements registration and credential maintenance for the
// identity mirror. Sign-in itself happens against the identity provider;
// the password kept here serves the legacy credential path only.
type Service struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Register mirrors a freshly created identity-provider principal into the
// local users table.
func (s *Service) Register(ctx context.Context, req CreateUserRequest) (*User, error) {
	// Check availability before inserting so the caller gets a field-specific
	// message; the unique constraints remain the real guarantee.
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.ErrDuplicate.WithMessage("This email already exists.")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, req.UserName); err == nil {
		return nil, common.ErrDuplicate.WithMessage("This username already exists.")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by username: %w", err)
	}

	hashedPassword, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The code is delivered out of band; stale ones are swept by the
	// verification cleanup job.
	verificationCode, err := crypto.GenerateNumericString(verificationCodeDigits)
	if err != nil {
		s.logger.Error("Failed to generate verification code", zap.Error(err))
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	dbUser := &User{
		ID:               req.UserID,
		UserName:         req.UserName,
		Email:            req.Email,
		Password:         &hashedPassword,
		VerificationCode: &verificationCode,
	}

	if err := s.repo.Create(ctx, dbUser); err != nil {
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", req.Email))
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered successfully", zap.String("userID", dbUser.ID))
	dbUser.Sanitize()
	return dbUser, nil
}

// ResetPassword hashes the new password and writes it for the given email.
// An email with no matching row succeeds silently; reporting the miss would
// leak which addresses have accounts.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	hashedPassword, err := common.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("Failed to hash password during reset", zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.ResetPassword(ctx, email, hashedPassword); err != nil {
		s.logger.Error("Failed to reset password", zap.Error(err), zap.String("email", email))
		return err
	}

	s.logger.Info("Password reset processed", zap.String("email", email))
	return nil
}

// GetAccount returns the identity record and, when onboarding has completed,
// the profile for the given principal.
func (s *Service) GetAccount(ctx context.Context, userID string) (*User, *Profile, error) {
	dbUser, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Error finding user by ID", zap.Error(err), zap.String("userID", userID))
		}
		return nil, nil, err
	}
	dbUser.Sanitize()

	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Signed up but not onboarded yet.
			return dbUser, nil, nil
		}
		s.logger.Error("Error finding profile by user ID", zap.Error(err), zap.String("userID", userID))
		return nil, nil, err
	}

	return dbUser, profile, nil
}
