// Package filestore implements persist.Store on top of a local folder, one
// file per key. This is the durable-storage analog of the web client's
// localStorage for desktop and CLI deployments.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/persist"
)

var _ persist.Store = (*FileStore)(nil)

type FileStore struct {
	folder string
}

// New creates a file-backed store rooted at folder, creating it if needed.
func New(folder string) (*FileStore, error) {
	if folder == "" {
		return nil, fmt.Errorf("storage folder is required")
	}
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage folder: %w", err)
	}
	return &FileStore{folder: folder}, nil
}

func (fs *FileStore) Load(key string) ([]byte, error) {
	raw, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, internalerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return raw, nil
}

func (fs *FileStore) Save(key string, value []byte) error {
	path := fs.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit %q: %w", key, err)
	}
	return nil
}

func (fs *FileStore) Delete(key string) error {
	if err := os.Remove(fs.path(key)); err != nil {
		if os.IsNotExist(err) {
			return internalerrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// path maps a storage key to a file name, replacing path separators so a
// key can never escape the storage folder.
func (fs *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(fs.folder, safe+".json")
}
