package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("missing required fields", map[string]any{"target_name": "required"})

	converted := ToDomainError(original)
	assert.Same(t, original, converted)
	assert.Equal(t, http.StatusBadRequest, converted.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	converted := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
	assert.True(t, IsNotFound(converted))
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	converted := ToDomainError(pgErr)
	assert.Equal(t, "CONFLICT", converted.Code)
	assert.Equal(t, http.StatusConflict, converted.HTTPStatus)
	assert.Equal(t, "users_username_key", converted.Details["constraint"])
	assert.True(t, IsConflict(converted))
}

func TestToDomainErrorUnknown(t *testing.T) {
	cause := errors.New("connection refused")

	converted := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, "internal server error", converted.Message, "internal causes are never rendered verbatim")
	assert.True(t, errors.Is(converted, cause), "the cause stays reachable for logging")
}

func TestToDomainErrorNil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("report", nil)
	assert.EqualError(t, err, "report not found")
}
