package fs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/math-u-t/Drive-CLI/pkg/store/content"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

func newTestStore(t *testing.T) *FSContentStore {
	t.Helper()
	s, err := NewFSContentStore(context.Background(), t.TempDir())
	require.NoError(t, err)
	return s
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := drive.NewContentID()

	require.NoError(t, s.Write(ctx, id, []byte("on disk")))

	data, err := s.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("on disk"), data)

	size, err := s.Size(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), size)
}

func TestWriteOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := drive.NewContentID()

	require.NoError(t, s.Write(ctx, id, []byte("first version")))
	require.NoError(t, s.Write(ctx, id, []byte("second")))

	data, err := s.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestReadMissingContent(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Read(context.Background(), drive.NewContentID())
	assert.ErrorIs(t, err, content.ErrContentNotFound)
}

func TestCopyAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	src := drive.NewContentID()
	dst := drive.NewContentID()

	require.NoError(t, s.Write(ctx, src, []byte("body")))
	require.NoError(t, s.Copy(ctx, src, dst))
	require.NoError(t, s.Delete(ctx, src))

	exists, err := s.Exists(ctx, src)
	require.NoError(t, err)
	assert.False(t, exists)

	data, err := s.Read(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), data)

	// deleting again is not an error
	require.NoError(t, s.Delete(ctx, src))
}

func TestHealthCheck(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.HealthCheck(context.Background()))
}
