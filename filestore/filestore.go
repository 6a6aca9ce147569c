// Package filestore provides a file-backed CollectionStore. Each collection
// lives in its own <key>.json file inside a single directory, byte-compatible
// with the browser-era persisted layout.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aura-hub/aurahub/domain"
)

var _ domain.CollectionStore = (*Store)(nil)

// ErrInvalidKey is returned when a collection key would escape the store directory.
var ErrInvalidKey = errors.New("invalid collection key")

// Store persists collections as JSON files under Dir.
type Store struct {
	dir string
}

// New creates the directory if needed and returns a store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating store dir %s : %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (store *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(store.dir, key+".json"), nil
}

// Load implements domain.CollectionStore. A missing file yields (nil, nil).
func (store *Store) Load(key string) ([]byte, error) {
	path, err := store.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading collection %s : %w", key, err)
	}
	return data, nil
}

// Save implements domain.CollectionStore. The document is written to a
// temporary file and renamed into place so readers never observe a partial write.
func (store *Store) Save(key string, data []byte) error {
	path, err := store.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(store.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s : %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing collection %s : %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for %s : %w", key, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing collection %s : %w", key, err)
	}
	return nil
}
