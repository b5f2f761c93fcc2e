package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"index not ready", ErrIndexNotReady, http.StatusServiceUnavailable},
		{"wrapped index not ready", fmt.Errorf("%w: still loading", ErrIndexNotReady), http.StatusServiceUnavailable},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"load error", ErrNoValidRows, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"app error", New(ErrInvalidInput, http.StatusUnprocessableEntity, "bad payload"), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusCode(tt.err))
		})
	}
}

func TestIsLoadError(t *testing.T) {
	assert.True(t, IsLoadError(ErrNoHeaders))
	assert.True(t, IsLoadError(fmt.Errorf("loading: %w", ErrNoTitleColumn)))
	assert.True(t, IsLoadError(ErrNoValidRows))
	assert.False(t, IsLoadError(ErrIndexNotReady))
	assert.False(t, IsLoadError(nil))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := Newf(ErrInternal, http.StatusInternalServerError, "query %q failed", "chaussure")
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), `query "chaussure" failed`)
}
