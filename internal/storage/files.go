package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrDisallowedExtension is returned before anything is written to disk.
var ErrDisallowedExtension = errors.New("file extension not allowed")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// FileStore writes uploaded media into a single directory and hands back the
// URL under which the file is served.
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore creates the upload directory if needed. baseURL is prepended
// to the public URL when set (e.g. behind a CDN); otherwise URLs are
// relative ("/uploads/<name>").
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &FileStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (fs *FileStore) Dir() string {
	return fs.dir
}

// Save validates the extension, then writes the upload under a random
// filename that preserves the extension. Returns the public URL.
func (fs *FileStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrDisallowedExtension
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := uuid.New().String() + ext
	destPath := filepath.Join(fs.dir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destPath)
		return "", err
	}

	return fs.baseURL + "/uploads/" + filename, nil
}

// Remove deletes the file behind a URL previously returned by Save. A file
// that is already gone is not an error.
func (fs *FileStore) Remove(fileURL string) error {
	name := path.Base(fileURL)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(fs.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
