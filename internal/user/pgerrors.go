// File: internal/user/pgerrors.go
package user

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"profilehub_backend/internal/common"
)

// pgUniqueViolation is the Postgres class 23 code for a unique-constraint hit.
const pgUniqueViolation = "23505"

// duplicateByConstraint maps the unique constraints of the users/user_info
// schema to user-facing errors. Defined once so the discrimination is explicit
// and testable instead of substring-matching driver messages.
var duplicateByConstraint = map[string]*common.APIError{
	"users_email_key":       common.ErrDuplicate.WithMessage("This email already exists."),
	"users_user_name_key":   common.ErrDuplicate.WithMessage("This username already exists."),
	"user_info_user_id_key": common.ErrDuplicate.WithMessage("A profile already exists for this account."),
}

// translatePersistenceError converts a driver/GORM error into the application
// taxonomy. Unique violations become duplicates keyed by constraint name;
// everything else is a generic persistence failure.
func translatePersistenceError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if mapped, ok := duplicateByConstraint[pgErr.ConstraintName]; ok {
			return mapped
		}
		return common.ErrDuplicate
	}

	// The sqlite driver used in tests reports duplicates through GORM's
	// translated sentinel rather than a PgError.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrDuplicate
	}

	return common.ErrPersistence
}
