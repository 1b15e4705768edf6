package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryFailedMessageIsGeneric(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := QueryFailed("revenue data", cause)

	assert.Equal(t, "failed to fetch revenue data", err.Error())
	assert.ErrorIs(t, err, cause, "The cause stays reachable for server-side logs")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindQueryFailed, KindOf(QueryFailed("invoices", errors.New("boom"))))
	assert.Equal(t, KindNotFound, KindOf(NotFound("invoice")))
	assert.Equal(t, KindValidationFailed, KindOf(ValidationFailed("login", "bad input")))

	// Foreign errors default to the operational class.
	assert.Equal(t, KindQueryFailed, KindOf(errors.New("anything")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("context: %w", NotFound("invoice"))
	assert.Equal(t, KindNotFound, KindOf(err))
}
