// Package memory guarda archivos en memoria y los sirve bajo /files (dev y tests).
package memory

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type object struct {
	contentType string
	data        []byte
}

type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]object // bucket/name
}

// New: baseURL es el origen público del API (p.ej. http://localhost:8080); puede ser vacío.
func New(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		objects: map[string]object{},
	}
}

func (s *Store) Upload(_ context.Context, bucket, name, contentType string, data []byte) (string, error) {
	name = strings.Trim(path.Clean("/"+name), "/")
	if bucket == "" || name == "" {
		return "", fmt.Errorf("upload: empty bucket or name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+name] = object{contentType: contentType, data: append([]byte(nil), data...)}

	return s.baseURL + "/files/" + bucket + "/" + name, nil
}

func (s *Store) Delete(_ context.Context, bucket, publicURL string) error {
	prefix := "/files/" + bucket + "/"
	i := strings.Index(publicURL, prefix)
	if i < 0 {
		return fmt.Errorf("file url does not belong to bucket %s", bucket)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+publicURL[i+len(prefix):])
	return nil
}

// Len es para tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// ServeFile atiende GET /files/{bucket}/*.
func (s *Store) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "bucket") + "/" + chi.URLParam(r, "*")

	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", obj.contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(obj.data)
}
