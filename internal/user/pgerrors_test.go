package user

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"profilehub_backend/internal/common"
)

func TestTranslatePersistenceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "email unique violation",
			err:         &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantCode:    "DUPLICATE",
			wantMessage: "This email already exists.",
		},
		{
			name:        "username unique violation",
			err:         &pgconn.PgError{Code: "23505", ConstraintName: "users_user_name_key"},
			wantCode:    "DUPLICATE",
			wantMessage: "This username already exists.",
		},
		{
			name:        "profile unique violation",
			err:         &pgconn.PgError{Code: "23505", ConstraintName: "user_info_user_id_key"},
			wantCode:    "DUPLICATE",
			wantMessage: "A profile already exists for this account.",
		},
		{
			name:     "unknown unique constraint",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "some_other_key"},
			wantCode: "DUPLICATE",
		},
		{
			name:     "gorm translated duplicate",
			err:      gorm.ErrDuplicatedKey,
			wantCode: "DUPLICATE",
		},
		{
			name:     "foreign key violation is generic",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "user_info_user_id_fkey"},
			wantCode: "PERSISTENCE_ERROR",
		},
		{
			name:     "plain error is generic",
			err:      errors.New("connection refused"),
			wantCode: "PERSISTENCE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translatePersistenceError(tt.err)
			apiErr, ok := common.IsAPIError(got)
			require.True(t, ok, "expected an APIError, got %v", got)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestTranslatePersistenceError_Nil(t *testing.T) {
	assert.NoError(t, translatePersistenceError(nil))
}
