// Package upload stores note attachments.
package upload

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/blake3"
)

var log = logrus.WithField("layer", "upload").WithField("package", "upload")

// ErrEmpty is returned on upload of empty data.
var ErrEmpty = fmt.Errorf("empty file")

// Uploader stores data and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

type dir struct {
	path    string
	baseURL string
}

// NewDir returns Uploader which writes files named by their blake3 digest into path.
// Returned URLs are baseURL joined with the file name.
func NewDir(path, baseURL string) (Uploader, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return dir{
		path:    path,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (d dir) Upload(_ context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}

	sum := blake3.Sum256(data)
	name := hex.EncodeToString(sum[:]) + extension(contentType)
	p := filepath.Join(d.path, name)

	if _, err := os.Stat(p); err == nil {
		return d.baseURL + "/" + name, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return d.baseURL + "/" + name, nil
}

func extension(contentType string) string {
	if contentType == "" {
		return ""
	}

	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}

	return exts[0]
}

type fallback struct {
	u Uploader
}

// WithFallback wraps u so that failures turn into an ephemeral blob URL.
// Nil u always falls back.
func WithFallback(u Uploader) Uploader {
	return fallback{u: u}
}

func (f fallback) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if f.u != nil {
		url, err := f.u.Upload(ctx, data, contentType)
		if err == nil {
			return url, nil
		}

		log.WithError(err).Warn("failed to upload file, using ephemeral url")
	}

	return EphemeralURL(), nil
}

// EphemeralURL returns a process local object URL.
func EphemeralURL() string {
	return "blob:notos/" + uuid.NewString()
}
