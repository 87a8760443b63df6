package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage stores each key as <dir>/<key>.json.
type FileStorage struct {
	dir string
}

// NewFileStorage creates dir if needed and returns a file-backed store.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the directory holding the slot files.
func (f *FileStorage) Dir() string {
	return f.dir
}

// Path returns the file that backs key.
func (f *FileStorage) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStorage) GetItem(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem writes through a temp file and renames it over the slot so a
// crash never leaves a half-written value behind.
func (f *FileStorage) SetItem(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) RemoveItem(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(f.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}
