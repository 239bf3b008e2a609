package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"meetapp/internal/domain"
)

// LocalStorage saves uploaded banners to a directory on the local
// filesystem. Stored names are uuids so concurrent uploads with the same
// original filename never collide.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the base directory if needed. baseURL is
// prepended to stored names when building public URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (ls *LocalStorage) Save(name string, r io.Reader) (string, error) {
	storedName := uuid.New().String() + filepath.Ext(name)
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	return storedName, nil
}

func (ls *LocalStorage) URL(storedPath string) string {
	return ls.baseURL + "/" + storedPath
}

var _ domain.BlobStorage = (*LocalStorage)(nil)
