package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ErrCSRFRequired, http.StatusForbidden},
		{ErrDangerousExtension, http.StatusBadRequest},
		{ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrExtensionMismatch, http.StatusBadRequest},
		{ErrMalwareDetected, http.StatusUnprocessableEntity},
		{ErrTooManyFiles, http.StatusBadRequest},
		{ErrFileNotFound, http.StatusNotFound},
		{ErrProcessingFailed, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Status, tt.err.Code)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := Newf(KindPolicy, CodeFileTooLarge, "File too large. Maximum size for this type is %dMB", 5)
	wrapped := fmt.Errorf("upload: %w", err)

	assert.ErrorIs(t, wrapped, ErrFileTooLarge)
	assert.NotErrorIs(t, wrapped, ErrUnsupportedType)
	assert.True(t, HasKind(wrapped, KindPolicy))
}

func TestWrapAndAs(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, KindIO, CodeProcessingFailed, "File processing failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "File processing failed: disk full", err.Error())

	untyped := As(cause)
	assert.Equal(t, CodeInternal, untyped.Code)
	assert.Equal(t, http.StatusInternalServerError, untyped.Status)
	assert.Same(t, err, As(err))
}
