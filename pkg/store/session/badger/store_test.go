package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/math-u-t/Drive-CLI/pkg/store/session"
)

func newTestStore(t *testing.T) *BadgerSessionStore {
	t.Helper()
	s, err := NewBadgerSessionStore(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetUnsetReturnsEmpty(t *testing.T) {
	s := newTestStore(t)
	value, err := s.Get(context.Background(), "sess-1", session.FieldCurrentDir)
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSetGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sess-1", session.FieldClipboard, "node-123"))

	value, err := s.Get(ctx, "sess-1", session.FieldClipboard)
	require.NoError(t, err)
	assert.Equal(t, "node-123", value)

	require.NoError(t, s.Delete(ctx, "sess-1", session.FieldClipboard))
	require.NoError(t, s.Delete(ctx, "sess-1", session.FieldClipboard))

	value, err = s.Get(ctx, "sess-1", session.FieldClipboard)
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sess-a", session.FieldCurrentDir, "folder-a"))
	require.NoError(t, s.Set(ctx, "sess-b", session.FieldCurrentDir, "folder-b"))

	a, err := s.Get(ctx, "sess-a", session.FieldCurrentDir)
	require.NoError(t, err)
	b, err := s.Get(ctx, "sess-b", session.FieldCurrentDir)
	require.NoError(t, err)

	assert.Equal(t, "folder-a", a)
	assert.Equal(t, "folder-b", b)
}
