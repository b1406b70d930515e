package usecase

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPError_KindsAreCheckable(t *testing.T) {
	assert.ErrorIs(t, notFound("order not found"), ErrNotFound)
	assert.ErrorIs(t, invalidState("cart is empty"), ErrInvalidState)
	assert.ErrorIs(t, forbidden("nope"), ErrForbidden)
	assert.ErrorIs(t, unauthenticated(), ErrUnauthenticated)
	assert.ErrorIs(t, badRequest("bad"), ErrValidation)

	cause := errors.New("connection reset")
	err := internal(cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
}

func TestNewHTTPError_KindFromStatus(t *testing.T) {
	assert.ErrorIs(t, NewHTTPError(http.StatusNotFound, "x"), ErrNotFound)
	assert.ErrorIs(t, NewHTTPError(http.StatusForbidden, "x"), ErrForbidden)
	assert.ErrorIs(t, NewHTTPError(http.StatusUnauthorized, "x"), ErrUnauthenticated)
	assert.ErrorIs(t, NewHTTPError(http.StatusBadRequest, "x"), ErrValidation)
	assert.ErrorIs(t, NewHTTPError(http.StatusTeapot, "x"), ErrInternal)
}

func TestWrapInternal(t *testing.T) {
	assert.Nil(t, wrapInternal(nil))

	nf := notFound("food not found")
	assert.Same(t, nf, wrapInternal(nf))

	he, ok := AsHTTPError(wrapInternal(errors.New("boom")))
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Equal(t, "server error", he.Message)
}
