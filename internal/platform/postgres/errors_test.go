package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))

	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode}
	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr)))
}

func TestNullable(t *testing.T) {
	t.Parallel()

	assert.False(t, nullable("").Valid)

	got := nullable("deep_dive")
	assert.True(t, got.Valid)
	assert.Equal(t, "deep_dive", got.String)
}
