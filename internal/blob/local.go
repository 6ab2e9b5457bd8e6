package blob

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps blobs as uuid-named files under a base directory.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Save(r io.Reader) (string, int64, error) {
	key := uuid.NewString()

	dst, err := os.Create(filepath.Join(s.baseDir, key))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create blob file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		_ = os.Remove(filepath.Join(s.baseDir, key))
		return "", 0, fmt.Errorf("failed to write blob: %w", err)
	}
	return key, written, nil
}

func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, filepath.Base(key)))
}

func (s *LocalStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.Base(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
