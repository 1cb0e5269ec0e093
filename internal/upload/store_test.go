package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartFile builds a real multipart request and extracts the file the
// way a handler would, so header.Size and Content-Type behave as in prod.
func multipartFile(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="image"; filename="` + filename + `"`}
	if contentType != "" {
		hdr["Content-Type"] = []string{contentType}
	}
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/insight", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveStoresImage(t *testing.T) {
	s := newTestStore(t)
	file, header := multipartFile(t, "photo.jpg", "image/jpeg", []byte("jpeg-bytes"))
	defer file.Close()

	res, err := s.Save(file, header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.URL, URLPrefix+"/"), "url %q", res.URL)
	assert.True(t, strings.HasSuffix(res.Filename, ".jpg"))
	assert.Equal(t, int64(len("jpeg-bytes")), res.Size)

	b, err := os.ReadFile(filepath.Join(s.Dir(), res.Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), b)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s := newTestStore(t)

	f1, h1 := multipartFile(t, "same.png", "image/png", []byte("one"))
	defer f1.Close()
	f2, h2 := multipartFile(t, "same.png", "image/png", []byte("two"))
	defer f2.Close()

	r1, err := s.Save(f1, h1)
	require.NoError(t, err)
	r2, err := s.Save(f2, h2)
	require.NoError(t, err)

	assert.NotEqual(t, r1.Filename, r2.Filename)
}

func TestSaveRejectsOversizeBeforeWriting(t *testing.T) {
	s := newTestStore(t)
	big := make([]byte, MaxUploadSize+1)
	file, header := multipartFile(t, "big.jpg", "image/jpeg", big)
	defer file.Close()

	_, err := s.Save(file, header)
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be written for a rejected upload")
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := newTestStore(t)
	file, header := multipartFile(t, "notes.pdf", "application/pdf", []byte("%PDF"))
	defer file.Close()

	_, err := s.Save(file, header)
	assert.ErrorIs(t, err, ErrNotImage)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveExtensionFromContentType(t *testing.T) {
	s := newTestStore(t)
	// executable extension on an image content type must not survive
	file, header := multipartFile(t, "sneaky.exe", "image/png", []byte("png"))
	defer file.Close()

	res, err := s.Save(file, header)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Filename, ".png"), "got %q", res.Filename)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	file, header := multipartFile(t, "photo.gif", "image/gif", []byte("gif"))
	defer file.Close()

	res, err := s.Save(file, header)
	require.NoError(t, err)

	require.NoError(t, s.Remove(res.Filename))
	assert.ErrorIs(t, s.Remove(res.Filename), ErrNotFound)
}

func TestRemoveRejectsPathEscapes(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"", "../etc/passwd", "a/b.jpg", ".hidden"} {
		assert.ErrorIs(t, s.Remove(name), ErrBadFilename, "name %q", name)
	}
}
