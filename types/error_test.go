package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrUpstreamError, "upstream failed").
		WithCause(root).
		WithHTTPStatus(http.StatusBadGateway).
		WithTitle("Upstream").
		WithDescription("remote failed").
		WithProvider("watson-translator")

	assert.Equal(t, ErrUpstreamError, GetErrorCode(err))
	assert.Equal(t, http.StatusBadGateway, HTTPStatusOf(err))
	assert.True(t, errors.Is(err, root))
	assert.Contains(t, err.Error(), "UPSTREAM_ERROR")
	assert.Contains(t, err.Error(), "root")
	assert.Equal(t, "Upstream", err.Title)
	assert.Equal(t, "remote failed", err.Description)
	assert.Equal(t, "watson-translator", err.Provider)
}

func TestAsError_Wrapped(t *testing.T) {
	t.Parallel()

	inner := NewError(ErrMissingCredentials, "no key").WithHTTPStatus(http.StatusUnauthorized)
	wrapped := fmt.Errorf("synthesize: %w", inner)

	got, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Equal(t, ErrMissingCredentials, GetErrorCode(wrapped))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatusOf(wrapped))
}

func TestAsError_PlainError(t *testing.T) {
	t.Parallel()

	_, ok := AsError(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	assert.Equal(t, 0, HTTPStatusOf(nil))
}

func TestError_StringWithoutCause(t *testing.T) {
	t.Parallel()

	err := NewError(ErrInvalidRequest, "bad json")
	assert.Equal(t, "[INVALID_REQUEST] bad json", err.Error())
	assert.Nil(t, err.Unwrap())
}
