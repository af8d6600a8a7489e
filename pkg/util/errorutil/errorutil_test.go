package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"domain error passes through", NewForbidden("nope"), http.StatusForbidden, CodeForbidden},
		{"wrapped domain error", fmt.Errorf("wrap: %w", NewValidationError("bad", nil)), http.StatusBadRequest, CodeValidation},
		{"no rows", fmt.Errorf("load: %w", pgx.ErrNoRows), http.StatusNotFound, CodeNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "retailers_email_key"}, http.StatusConflict, CodeConflict},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, http.StatusBadRequest, CodeValidation},
		{"missing reference", &pgconn.PgError{Code: "23503"}, http.StatusNotFound, CodeNotFound},
		{"fiber error", fiber.NewError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge, CodeValidation},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db down")
}
