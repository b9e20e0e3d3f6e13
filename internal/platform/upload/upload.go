// Package upload lee imágenes de formularios multipart.
package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrMissingFile = errors.New("missing file")
	ErrTooLarge    = errors.New("file too large")
	ErrNotImage    = errors.New("file must be an image")
)

const DefaultMaxBytes = 10 << 20

// Image es el contenido ya validado de un campo multipart.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string // con punto, ej: ".jpg"
}

// ObjectName arma "<prefix>/<uuid><ext>".
func (img Image) ObjectName(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	name := uuid.NewString() + img.Extension
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// formOverhead es el margen para boundaries y los demás campos del form.
const formOverhead = 1 << 20

// ReadImage lee el campo field del request multipart, con límite maxBytes.
// El body entero queda acotado a maxBytes+formOverhead antes de parsear.
func ReadImage(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	limit := maxBytes + formOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Image{}, ErrTooLarge
		}
		return Image{}, fmt.Errorf("parse multipart: %w", err)
	}

	f, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return Image{}, ErrMissingFile
		}
		return Image{}, fmt.Errorf("read form file: %w", err)
	}
	defer f.Close()

	return Read(f, maxBytes)
}

// Read valida tamaño y tipo (image/*) de cualquier reader.
func Read(src io.Reader, maxBytes int64) (Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return Image{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Image{}, ErrMissingFile
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Image{}, ErrNotImage
	}

	return Image{
		Data:        data,
		ContentType: mt.String(),
		Extension:   mt.Extension(),
	}, nil
}
