package account

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"profilehub_backend/internal/common"
	"profilehub_backend/internal/platform/crypto"
	"profilehub_backend/internal/shared"
	"profilehub_backend/internal/user"
)

// fallbackNameDigits sizes the random file name used when a principal id is
// somehow empty at upload time.
const fallbackNameDigits = 8

// ImageUpload carries the optional profile image extracted from the multipart body.
type ImageUpload struct {
	Content     io.Reader
	FileName    string
	ContentType string
	Size        int64
}

// OnboardingRequest carries the submitted profile fields.
type OnboardingRequest struct {
	FirstName string
	LastName  string
	Bio       string
	DOB       string
	Country   string
	Image     *ImageUpload
}

// Service orchestrates a single onboarding submission: validate, confirm the
// identity mirror, optionally upload the image, persist the profile. Strictly
// sequential, each step gated on the previous one, no retries anywhere.
type Service struct {
	repo     user.Repository
	identity shared.IdentityService
	media    shared.MediaService
	logger   *zap.Logger
}

// NewService creates a new onboarding service.
func NewService(
	repo user.Repository,
	identity shared.IdentityService,
	media shared.MediaService,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		identity: identity,
		media:    media,
		logger:   logger,
	}
}

// Onboard runs the onboarding flow for the authenticated principal and
// returns the created profile.
func (s *Service) Onboard(ctx context.Context, principalID string, req OnboardingRequest) (*user.Profile, error) {
	if err := ValidateOnboarding(req.FirstName, req.Bio, req.Country); err != nil {
		return nil, err
	}

	// The principal authenticated against the provider, so a missing mirror
	// row means the two systems of record disagree. Delete the provider
	// account and send the user back through sign-up.
	if _, err := s.repo.FindByID(ctx, principalID); err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Failed to look up identity record", zap.Error(err), zap.String("principalID", principalID))
			return nil, common.ErrInternalServer
		}

		s.logger.Warn("Identity record missing for authenticated principal; deleting provider account",
			zap.String("principalID", principalID))
		if delErr := s.identity.DeleteAccount(ctx, principalID); delErr != nil {
			// The mirror is still out of sync and the provider account
			// survives. Nothing sensible to tell the user beyond retrying.
			s.logger.Error("Compensating account deletion failed",
				zap.Error(delErr), zap.String("principalID", principalID))
			return nil, common.ErrInternalServer.WithMessage("We could not reconcile your account. Please try again later.")
		}
		return nil, common.ErrAccountOutOfSync.WithRedirect("/sign-up")
	}

	var pictureURL *string
	if req.Image != nil && req.Image.FileName != "" {
		if !strings.HasPrefix(req.Image.ContentType, "image") {
			// Clients key off the 401 here; keep the historical status.
			return nil, common.ErrInvalidImageType
		}

		fileName := slug.Make(principalID)
		if fileName == "" {
			var err error
			fileName, err = crypto.GenerateNumericString(fallbackNameDigits)
			if err != nil {
				s.logger.Error("Failed to generate fallback file name", zap.Error(err))
				return nil, common.ErrInternalServer
			}
		}

		asset, err := s.media.Upload(ctx, req.Image.Content, fileName)
		if err != nil {
			return nil, err
		}
		pictureURL = &asset.URL
	}

	profile := &user.Profile{
		UserID:            principalID,
		FirstName:         strings.TrimSpace(req.FirstName),
		ProfilePictureURL: pictureURL,
	}
	if lastName := strings.TrimSpace(req.LastName); lastName != "" {
		profile.LastName = &lastName
	}
	if bio := strings.TrimSpace(req.Bio); bio != "" {
		profile.Bio = &bio
	}
	if country := strings.TrimSpace(req.Country); country != "" {
		profile.Country = &country
	}
	if dob := parseDOB(req.DOB); dob != nil {
		profile.DOB = dob
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		s.logger.Error("Failed to save onboarding profile", zap.Error(err), zap.String("principalID", principalID))
		return nil, common.ErrInternalServer.WithMessage("An error occurred while saving your information.")
	}

	s.logger.Info("Onboarding completed",
		zap.String("principalID", principalID),
		zap.Bool("withImage", pictureURL != nil),
	)
	return profile, nil
}

// parseDOB accepts an optional YYYY-MM-DD date. Anything unparseable is
// treated as absent; the field was never validated server-side.
func parseDOB(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
