package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockpos/internal/core/apperror"
)

func TestRecovery_RendersInternalError(t *testing.T) {
	w := doRequest(newTestRouter(), "/boom", true)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The compressor closed without output, so the body is plain JSON.
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), apperror.CodeInternal)
}
