package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/math-u-t/Drive-CLI/pkg/store/session"
)

func TestSetGetDelete(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	value, err := s.Get(ctx, "sess-1", session.FieldCurrentDir)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, s.Set(ctx, "sess-1", session.FieldCurrentDir, "root"))

	value, err = s.Get(ctx, "sess-1", session.FieldCurrentDir)
	require.NoError(t, err)
	assert.Equal(t, "root", value)

	require.NoError(t, s.Delete(ctx, "sess-1", session.FieldCurrentDir))

	value, err = s.Get(ctx, "sess-1", session.FieldCurrentDir)
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", session.FieldClipboard, "x"))
	require.NoError(t, s.Set(ctx, "b", session.FieldClipboard, "y"))

	a, err := s.Get(ctx, "a", session.FieldClipboard)
	require.NoError(t, err)
	b, err := s.Get(ctx, "b", session.FieldClipboard)
	require.NoError(t, err)

	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)
}
