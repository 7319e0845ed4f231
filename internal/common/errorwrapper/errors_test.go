package errorwrapper

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	err := WrapError(io.EOF, "reading body")
	assert.EqualError(t, err, "reading body: EOF")
	assert.True(t, errors.Is(err, io.EOF))

	assert.EqualError(t, WrapError(nil, "nothing"), "nothing: <nil>")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("company_number", "", "is required")
	assert.Contains(t, err.Error(), "company_number")
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestHTTPError_Unwrap(t *testing.T) {
	tests := []struct {
		status      int
		unavailable bool
	}{
		{404, false},
		{401, false},
		{429, true},
		{500, true},
		{503, true},
	}
	for _, tt := range tests {
		err := NewHTTPErrorWithURL(tt.status, "boom", "http://x")
		assert.Equal(t, tt.unavailable, errors.Is(err, ErrServiceUnavailable), "status %d", tt.status)
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	err := NewNetworkError("http://x", "dial failed", io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "dial failed")
}
