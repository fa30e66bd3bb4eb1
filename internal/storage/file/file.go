// Package file is implementation of storage interface over a local directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "file")

var errInvalidKey = errors.New("invalid key")

type file struct {
	dir string
}

// New creates new instance of file storage keeping one file per key in dir.
func New(dir string) (storage.Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	return file{dir: dir}, nil
}

func (f file) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", errInvalidKey, key)
	}

	return filepath.Join(f.dir, key+".json"), nil
}

func (f file) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return b, nil
}

// Put writes a temporary file and renames it over the previous document.
func (f file) Put(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		removeTemp(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		removeTemp(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), p); err != nil {
		removeTemp(tmp.Name())
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func (f file) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

func (f file) Ping(_ context.Context) error {
	st, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("failed to stat storage dir: %w", err)
	}

	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}

	return nil
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil {
		log.WithError(err).WithField("file", name).Warn("failed to remove temp file")
	}
}
