package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bodyCacheWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bodyCacheWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache guarda en memoria las respuestas 2xx de GET autenticados, por URL.
// Requests sin claims pasan directo (el handler responde 401).
func Cache(store *cache.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := GetClaims(r.Context()); !ok {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.RequestURI()
			if v, found := store.Get(key); found {
				cached := v.(cachedResponse)
				for k, vals := range cached.headers {
					w.Header()[k] = vals
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(cached.status)
				_, _ = w.Write(cached.body)
				return
			}

			bw := &bodyCacheWriter{ResponseWriter: w}
			next.ServeHTTP(bw, r)

			if bw.status >= 200 && bw.status < 300 {
				store.Set(key, cachedResponse{
					status:  bw.status,
					headers: w.Header().Clone(),
					body:    bytes.Clone(bw.body.Bytes()),
				}, ttl)
			}
		})
	}
}
