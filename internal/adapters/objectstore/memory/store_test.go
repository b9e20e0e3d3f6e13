package memory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UploadServeDelete(t *testing.T) {
	s := New("http://api.test")
	r := chi.NewRouter()
	r.Get("/files/{bucket}/*", s.ServeFile)

	url, err := s.Upload(context.Background(), "pet-photos", "/boss-1/../boss-1/rex.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://api.test/files/pet-photos/boss-1/rex.png", url)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/pet-photos/boss-1/rex.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	require.NoError(t, s.Delete(context.Background(), "pet-photos", url))
	assert.Zero(t, s.Len())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/pet-photos/boss-1/rex.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Error(t, s.Delete(context.Background(), "activity-photos", url))
}
