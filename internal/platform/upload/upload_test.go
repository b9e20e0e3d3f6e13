package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PNG mínimo (1x1) para sniffing.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestRead_AcceptsPNG(t *testing.T) {
	img, err := Read(bytes.NewReader(tinyPNG), 1024)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Extension)
	assert.True(t, strings.HasPrefix(img.ObjectName("pets/p1"), "pets/p1/"))
	assert.True(t, strings.HasSuffix(img.ObjectName("pets/p1"), ".png"))
}

func TestRead_RejectsText(t *testing.T) {
	_, err := Read(strings.NewReader("hola, no soy una imagen"), 1024)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestRead_RejectsTooLarge(t *testing.T) {
	_, err := Read(bytes.NewReader(tinyPNG), 10)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRead_RejectsEmpty(t *testing.T) {
	_, err := Read(bytes.NewReader(nil), 10)
	assert.ErrorIs(t, err, ErrMissingFile)
}

func multipartRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("activity_type", "walk"))
	fw, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestReadImage_ReadsFileAndFields(t *testing.T) {
	req := multipartRequest(t, "photo", tinyPNG)

	img, err := ReadImage(httptest.NewRecorder(), req, "photo", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "walk", req.FormValue("activity_type"))
}

func TestReadImage_MissingField(t *testing.T) {
	req := multipartRequest(t, "other", tinyPNG)

	_, err := ReadImage(httptest.NewRecorder(), req, "photo", 1024)
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestReadImage_BodyOverLimitIsTooLarge(t *testing.T) {
	// el body supera maxBytes+formOverhead: se corta al leer, no al final
	big := append(append([]byte{}, tinyPNG...), bytes.Repeat([]byte{0}, formOverhead+2048)...)
	req := multipartRequest(t, "photo", big)

	_, err := ReadImage(httptest.NewRecorder(), req, "photo", 1024)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestReadImage_FileOverLimitWithinBody(t *testing.T) {
	big := append(append([]byte{}, tinyPNG...), bytes.Repeat([]byte{0}, 4096)...)
	req := multipartRequest(t, "photo", big)

	_, err := ReadImage(httptest.NewRecorder(), req, "photo", 1024)
	assert.ErrorIs(t, err, ErrTooLarge)
}
