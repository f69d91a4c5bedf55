package custom_error

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(err CustomError) bool
	}{
		{"bad request", http.StatusBadRequest, func(err CustomError) bool { _, ok := err.(*ValidationError); return ok }},
		{"unauthorized", http.StatusUnauthorized, func(err CustomError) bool { _, ok := err.(*UnauthorizedError); return ok }},
		{"forbidden", http.StatusForbidden, func(err CustomError) bool { _, ok := err.(*UnauthorizedError); return ok }},
		{"not found", http.StatusNotFound, func(err CustomError) bool { _, ok := err.(*NotFoundError); return ok }},
		{"server error", http.StatusInternalServerError, func(err CustomError) bool { _, ok := err.(*ResponseError); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapHTTPError(tt.status, []byte(`{"error": "nope"}`))
			assert.True(t, tt.check(err))
			assert.Equal(t, tt.status, err.StatusCode())
		})
	}
}

func TestErrorDumpsCompactBody(t *testing.T) {
	err := WrapHTTPError(http.StatusBadRequest, []byte("{\n  \"brand_name\": [\"This field is required.\"]\n}"))
	assert.Equal(t, `validation failed (status: 400): {"brand_name":["This field is required."]}`, err.Error())

	var validationErr *ValidationError
	assert.True(t, errors.As(error(err), &validationErr))
	assert.Equal(t, []string{"This field is required."}, validationErr.Fields()["brand_name"])
}

func TestServerMessage(t *testing.T) {
	err := WrapHTTPError(http.StatusUnauthorized, []byte(`{"error": "Invalid username or password"}`))
	assert.Equal(t, "Invalid username or password", ServerMessage(err))

	empty := WrapHTTPError(http.StatusBadGateway, nil)
	assert.Equal(t, "", ServerMessage(empty))
	assert.Contains(t, empty.Error(), "Bad Gateway")
}
