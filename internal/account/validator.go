// File: internal/account/validator.go
package account

import (
	"strings"

	"profilehub_backend/internal/common"
)

// ValidateOnboarding checks the mandatory onboarding fields. Pure: no side
// effects, first missing field wins, checked firstName, then bio, then country.
func ValidateOnboarding(firstName, bio, country string) error {
	if strings.TrimSpace(firstName) == "" {
		return common.ErrBadRequest.WithMessage("First name is required.")
	}
	if strings.TrimSpace(bio) == "" {
		return common.ErrBadRequest.WithMessage("Bio is required. Please write something about yourself.")
	}
	if strings.TrimSpace(country) == "" {
		return common.ErrBadRequest.WithMessage("Country is required.")
	}
	return nil
}
