// Package upload stores insight images on the local filesystem and serves
// them back by URL path.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxUploadSize caps insight images at 5 MiB.
	MaxUploadSize = 5 << 20
	// URLPrefix is the public path the stored files are served under.
	URLPrefix = "/uploads/insights"
)

var (
	ErrTooLarge    = errors.New("file exceeds maximum upload size")
	ErrNotImage    = errors.New("file type is not an allowed image type")
	ErrNotFound    = errors.New("file not found")
	ErrBadFilename = errors.New("invalid filename")
)

// allowedMimeTypes maps accepted image content types to their canonical
// extension, used when the original filename carries none.
var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var allowedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Store persists uploads under a fixed directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// SaveResult describes a stored file.
type SaveResult struct {
	URL      string
	Filename string
	Size     int64
}

// Save validates size and content type, then writes the file under a
// generated collision-resistant name. Nothing is written when validation
// fails.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (SaveResult, error) {
	if header.Size > MaxUploadSize {
		return SaveResult{}, ErrTooLarge
	}

	ext, err := imageExt(header)
	if err != nil {
		return SaveResult{}, err
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return SaveResult{}, fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		_ = os.Remove(dst.Name())
		return SaveResult{}, fmt.Errorf("writing file: %w", err)
	}
	if n > MaxUploadSize {
		// declared size lied; drop the partial file
		_ = os.Remove(dst.Name())
		return SaveResult{}, ErrTooLarge
	}

	return SaveResult{
		URL:      URLPrefix + "/" + name,
		Filename: name,
		Size:     n,
	}, nil
}

// Remove deletes a stored file by bare filename. Names that would escape
// the upload directory are rejected outright.
func (s *Store) Remove(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return ErrBadFilename
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// imageExt resolves a safe file extension from the declared content type,
// falling back to the original filename's extension.
func imageExt(header *multipart.FileHeader) (string, error) {
	mime := header.Header.Get("Content-Type")
	if ext, ok := allowedMimeTypes[mime]; ok {
		if orig := strings.ToLower(filepath.Ext(header.Filename)); allowedExts[orig] {
			return orig, nil
		}
		return ext, nil
	}
	if mime == "" {
		if orig := strings.ToLower(filepath.Ext(header.Filename)); allowedExts[orig] {
			return orig, nil
		}
	}
	return "", ErrNotImage
}
