// Package supabase sube archivos a Supabase Storage (buckets públicos).
package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"pettabl/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("supabase storage not configured")
	ErrForeignURL    = errors.New("file url does not belong to bucket")
)

type Config struct {
	URL        string
	ServiceKey string
	Timeout    time.Duration
}

// Store implementa objectstore.Store.
type Store struct {
	baseURL string
	http    *httpclient.Client
}

func New(cfg Config) (*Store, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	key := strings.TrimSpace(cfg.ServiceKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc, err := httpclient.NewWithBaseURL(base+"/storage/v1", timeout)
	if err != nil {
		return nil, err
	}
	hc.SetHeader("Authorization", "Bearer "+key)
	hc.SetHeader("apikey", key)

	return &Store{baseURL: base, http: hc}, nil
}

// Upload hace upsert del objeto y devuelve su URL pública.
func (s *Store) Upload(ctx context.Context, bucket, name, contentType string, data []byte) (string, error) {
	objectPath := strings.Trim(path.Clean("/"+name), "/")
	if bucket == "" || objectPath == "" {
		return "", fmt.Errorf("upload: empty bucket or name")
	}

	headers := map[string]string{"x-upsert": "true"}
	if err := s.http.Do(ctx, http.MethodPost, "/object/"+bucket+"/"+objectPath, headers, contentType, bytes.NewReader(data), nil); err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	return s.publicURL(bucket, objectPath), nil
}

// Delete borra el objeto apuntado por publicURL. Si ya no existe, no es error.
func (s *Store) Delete(ctx context.Context, bucket, publicURL string) error {
	objectPath, err := s.objectPathFromURL(bucket, publicURL)
	if err != nil {
		return err
	}

	err = s.http.Do(ctx, http.MethodDelete, "/object/"+bucket+"/"+objectPath, nil, "", nil, nil)
	if err != nil && httpclient.StatusCode(err) != http.StatusNotFound {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *Store) publicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, objectPath)
}

func (s *Store) objectPathFromURL(bucket, fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}

	publicPrefix := "/storage/v1/object/public/" + bucket + "/"
	objectPrefix := "/storage/v1/object/" + bucket + "/"

	switch {
	case strings.HasPrefix(parsed.Path, publicPrefix):
		return strings.TrimPrefix(parsed.Path, publicPrefix), nil
	case strings.HasPrefix(parsed.Path, objectPrefix):
		return strings.TrimPrefix(parsed.Path, objectPrefix), nil
	default:
		return "", ErrForeignURL
	}
}
