package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploaderFunc func(ctx context.Context, data []byte, contentType string) (string, error)

func (f uploaderFunc) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	return f(ctx, data, contentType)
}

func TestDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "uploads")

	u, err := NewDir(path, "http://localhost/files/")
	require.NoError(t, err)

	url, err := u.Upload(ctx, []byte("voice"), "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost/files/"), url)

	again, err := u.Upload(ctx, []byte("voice"), "")
	require.NoError(t, err)
	require.Equal(t, url, again, "same content same url")

	other, err := u.Upload(ctx, []byte("other voice"), "")
	require.NoError(t, err)
	require.NotEqual(t, url, other)

	name := strings.TrimPrefix(url, "http://localhost/files/")
	require.Len(t, name, 64)

	b, err := os.ReadFile(filepath.Join(path, name))
	require.NoError(t, err)
	require.Equal(t, "voice", string(b))

	_, err = u.Upload(ctx, nil, "")
	require.True(t, errors.Is(err, ErrEmpty))
}

func TestDir_Extension(t *testing.T) {
	u, err := NewDir(t.TempDir(), "")
	require.NoError(t, err)

	url, err := u.Upload(context.Background(), []byte("{}"), "application/json")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(url, ".json"), url)
}

func TestWithFallback(t *testing.T) {
	ctx := context.Background()

	tt := []struct {
		name     string
		u        Uploader
		expected func(t *testing.T, url string)
	}{
		{
			name: "ok",
			u: uploaderFunc(func(context.Context, []byte, string) (string, error) {
				return "https://cdn/1", nil
			}),
			expected: func(t *testing.T, url string) {
				assert.Equal(t, "https://cdn/1", url)
			},
		},
		{
			name: "failure",
			u: uploaderFunc(func(context.Context, []byte, string) (string, error) {
				return "", fmt.Errorf("offline")
			}),
			expected: func(t *testing.T, url string) {
				assert.True(t, strings.HasPrefix(url, "blob:notos/"), url)
			},
		},
		{
			name: "nil",
			expected: func(t *testing.T, url string) {
				assert.True(t, strings.HasPrefix(url, "blob:notos/"), url)
			},
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			url, err := WithFallback(tc.u).Upload(ctx, []byte("x"), "audio/webm")
			require.NoError(t, err)
			tc.expected(t, url)
		})
	}
}
