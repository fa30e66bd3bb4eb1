package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/notos/internal/storage"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "key")
	require.True(t, errors.Is(err, storage.ErrNotFound))

	v := []byte("value")
	require.NoError(t, s.Put(ctx, "key", v))
	v[0] = 'V'

	got, err := s.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)

	require.NoError(t, s.Put(ctx, "key", []byte("other")))
	got, err = s.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte("other"), got)

	require.NoError(t, s.Delete(ctx, "key"))
	require.NoError(t, s.Delete(ctx, "key"))

	_, err = s.Get(ctx, "key")
	require.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.Ping(ctx))
}
