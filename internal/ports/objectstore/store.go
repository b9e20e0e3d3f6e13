package objectstore

import "context"

// Buckets usados por la app.
const (
	BucketPetPhotos      = "pet-photos"
	BucketActivityPhotos = "activity-photos"
	BucketProfilePhotos  = "profile-photos"
)

// Store sube blobs y devuelve su URL pública.
type Store interface {
	Upload(ctx context.Context, bucket, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, bucket, publicURL string) error
}
