package middleware

import (
	"io"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return w
	},
}

type gzipResponseWriter struct {
	gin.ResponseWriter
	gz    *gzip.Writer
	wrote bool
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	w.wrote = true
	return w.gz.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	w.wrote = true
	return w.gz.Write([]byte(s))
}

// Gzip compresses responses for clients that accept it.
// SSE and already-encoded responses pass through untouched.
func Gzip() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gz := gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(gz)
		gz.Reset(c.Writer)

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		wrapped := &gzipResponseWriter{ResponseWriter: c.Writer, gz: gz}
		c.Writer = wrapped

		defer func() {
			c.Writer = wrapped.ResponseWriter
			if !wrapped.wrote {
				// No body reached the compressor (204s, HEADs).
				// Closing would still emit an empty gzip frame and
				// commit the pending status, so drop the encoding
				// headers and leave the response untouched.
				if !c.Writer.Written() {
					c.Writer.Header().Del("Content-Encoding")
					c.Writer.Header().Del("Vary")
				}
				return
			}
			_ = gz.Close()
			c.Header("Content-Length", "")
		}()

		c.Next()
	}
}
