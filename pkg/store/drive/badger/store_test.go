package badger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

func newTestStore(t *testing.T) *BadgerDriveStore {
	t.Helper()
	s, err := NewBadgerDriveStore(Options{InMemory: true, Owner: "tester@example.com"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBootstrapRoot(t *testing.T) {
	s := newTestStore(t)
	root, err := s.Root(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My Drive", root.Name)
	assert.True(t, root.IsFolder())
}

func TestHierarchyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)

	docs, err := s.CreateFolder(ctx, root.ID, "docs")
	require.NoError(t, err)
	note, err := s.CreateFile(ctx, docs.ID, "note.txt", drive.MimeText, 12, drive.NewContentID())
	require.NoError(t, err)

	folders, err := s.ListChildFolders(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, docs.ID, folders[0].ID)

	files, err := s.ListChildFiles(ctx, docs.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, note.ID, files[0].ID)

	path, err := s.Path(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "/docs/note.txt", path)

	parent, err := s.Parent(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, docs.ID, parent.ID)
}

func TestInsertionOrderSurvivesListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)

	names := []string{"zz", "aa", "mm"}
	for _, name := range names {
		_, err := s.CreateFolder(ctx, root.ID, name)
		require.NoError(t, err)
	}

	folders, err := s.ListChildFolders(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, folders, 3)
	for i, name := range names {
		assert.Equal(t, name, folders[i].Name)
	}
}

func TestFindChildFirstMatchWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)

	first, err := s.CreateFile(ctx, root.ID, "dup.txt", drive.MimeText, 1, drive.NewContentID())
	require.NoError(t, err)
	_, err = s.CreateFile(ctx, root.ID, "dup.txt", drive.MimeText, 2, drive.NewContentID())
	require.NoError(t, err)

	found, err := s.FindChildFileByName(ctx, root.ID, "dup.txt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestMoveRejectsCycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)

	a, err := s.CreateFolder(ctx, root.ID, "a")
	require.NoError(t, err)
	b, err := s.CreateFolder(ctx, a.ID, "b")
	require.NoError(t, err)

	err = s.Move(ctx, a.ID, b.ID)
	var serr *drive.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, drive.ErrCycle, serr.Code)
}

func TestMoveReparents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)

	src, err := s.CreateFolder(ctx, root.ID, "src")
	require.NoError(t, err)
	dst, err := s.CreateFolder(ctx, root.ID, "dst")
	require.NoError(t, err)
	f, err := s.CreateFile(ctx, src.ID, "note.txt", drive.MimeText, 10, drive.NewContentID())
	require.NoError(t, err)

	require.NoError(t, s.Move(ctx, f.ID, dst.ID))

	parent, err := s.Parent(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, dst.ID, parent.ID)

	old, err := s.ListChildFiles(ctx, src.ID)
	require.NoError(t, err)
	assert.Empty(t, old)
}

func TestTrashRestoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)

	f, err := s.CreateFile(ctx, root.ID, "keep.txt", drive.MimeText, 5, drive.NewContentID())
	require.NoError(t, err)

	require.NoError(t, s.Trash(ctx, f.ID))

	_, err = s.FindChildFileByName(ctx, root.ID, "keep.txt")
	assert.True(t, drive.IsNotFound(err))

	trashed, err := s.ListTrashedFiles(ctx)
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.Equal(t, f.ID, trashed[0].ID)

	require.NoError(t, s.Restore(ctx, f.ID))

	trashed, err = s.ListTrashedFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, trashed)

	found, err := s.FindChildFileByName(ctx, root.ID, "keep.txt")
	require.NoError(t, err)
	assert.Equal(t, f.ID, found.ID)
}

func TestSharingPersistsInNode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root, err := s.Root(ctx)
	require.NoError(t, err)

	f, err := s.CreateFile(ctx, root.ID, "a.txt", drive.MimeText, 1, drive.NewContentID())
	require.NoError(t, err)

	require.NoError(t, s.AddGrant(ctx, f.ID, "bob@example.com", drive.RoleView))
	require.NoError(t, s.SetLinkAccess(ctx, f.ID, drive.RoleEdit))

	node, err := s.GetNode(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, node.Sharing.Grants, 1)
	assert.Equal(t, "bob@example.com", node.Sharing.Grants[0].Email)
	assert.Equal(t, drive.AccessAnyoneWithLink, node.Sharing.Scope)
	assert.Equal(t, drive.RoleEdit, node.Sharing.LinkRole)
}

func TestReopenKeepsTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drive")
	ctx := context.Background()

	s, err := NewBadgerDriveStore(Options{Path: dir, Owner: "tester@example.com"})
	require.NoError(t, err)

	root, err := s.Root(ctx)
	require.NoError(t, err)
	docs, err := s.CreateFolder(ctx, root.ID, "docs")
	require.NoError(t, err)
	_, err = s.CreateFile(ctx, docs.ID, "note.txt", drive.MimeText, 3, drive.NewContentID())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewBadgerDriveStore(Options{Path: dir, Owner: "tester@example.com"})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	root2, err := s.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, root.ID, root2.ID)

	found, err := s.FindChildFolderByName(ctx, root2.ID, "docs")
	require.NoError(t, err)
	assert.Equal(t, docs.ID, found.ID)

	files, err := s.ListChildFiles(ctx, found.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "note.txt", files[0].Name)
}
