package api

import (
	"bytes"
	"net/http"

	"github.com/okian/primecheck/internal/adapters/cache"
)

// CacheHeader reports whether a cached route response came from the cache.
const CacheHeader = "X-Cache"

// CacheMiddleware serves repeat requests with the same raw query string from
// c. Only 200 responses are stored, so errors are always recomputed.
func CacheMiddleware(c cache.Cache, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.RawQuery

		if body, ok := c.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set(CacheHeader, "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}

		w.Header().Set(CacheHeader, "MISS")
		rec := &recordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.statusCode == http.StatusOK {
			c.Set(r.Context(), key, rec.body.Bytes())
		}
	}
}

// recordingWriter tees the response body so it can be stored after the
// handler returns.
type recordingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}
