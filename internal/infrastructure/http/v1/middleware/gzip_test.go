package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpos/internal/core/apperror"
)

// newTestRouter mirrors the production middleware order: the error
// handler runs inside the gzip writer.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.Use(Gzip())
	r.Use(ErrorHandler())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("product", "p-404"))
		c.Abort()
	})
	r.GET("/empty", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/boom", func(c *gin.Context) {
		panic("kaput")
	})
	return r
}

func doRequest(r *gin.Engine, path string, acceptGzip bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if acceptGzip {
		req.Header.Set("Accept-Encoding", "gzip")
	}
	r.ServeHTTP(w, req)
	return w
}

func gunzip(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	return string(body)
}

func TestGzip_CompressesResponses(t *testing.T) {
	w := doRequest(newTestRouter(), "/ok", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Contains(t, gunzip(t, w), "ok")
}

func TestGzip_SkipsClientsWithoutAcceptEncoding(t *testing.T) {
	w := doRequest(newTestRouter(), "/ok", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), "ok")
}

func TestGzip_ErrorStatusSurvivesCompression(t *testing.T) {
	w := doRequest(newTestRouter(), "/missing", true)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Contains(t, gunzip(t, w), apperror.CodeNotFound)
}

func TestGzip_EmptyResponseKeepsStatus(t *testing.T) {
	w := doRequest(newTestRouter(), "/empty", true)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Zero(t, w.Body.Len())
}
