package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	err := NewValidation("quantity must be positive")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Contains(t, err.Error(), "quantity must be positive")
}

func TestNewClassification(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := NewClassification(cause)

	assert.ErrorIs(t, err, ErrClassification)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestNewGraphConfig(t *testing.T) {
	err := NewGraphConfig(errors.New("catalog service is required"))

	assert.ErrorIs(t, err, ErrGraphConfig)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestErrorAs(t *testing.T) {
	var target *Error
	err := error(NewValidation("bad line"))

	require.ErrorAs(t, err, &target)
	assert.Equal(t, ValidationErrorMessage, target.Message)
}

func TestWrapRedis(t *testing.T) {
	assert.Nil(t, WrapRedis(nil))

	err := WrapRedis(redis.Nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Status)

	err = WrapRedis(errors.New("connection refused"))
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.ErrorIs(t, err, err.Err)
}
