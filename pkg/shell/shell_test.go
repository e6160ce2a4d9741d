package shell

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmem "github.com/math-u-t/Drive-CLI/pkg/store/content/memory"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
	drivemem "github.com/math-u-t/Drive-CLI/pkg/store/drive/memory"
	sessionmem "github.com/math-u-t/Drive-CLI/pkg/store/session/memory"
)

const testSession = "test-session"

func newTestShell(t *testing.T, opts Options) (*Shell, *drivemem.MemoryDriveStore) {
	t.Helper()
	driveStore := drivemem.NewMemoryDriveStore("tester@example.com")
	return New(driveStore, contentmem.NewMemoryContentStore(), sessionmem.NewMemorySessionStore(), nil, opts), driveStore
}

func run(t *testing.T, sh *Shell, line string) Result {
	t.Helper()
	return sh.Execute(context.Background(), testSession, line)
}

func mustRun(t *testing.T, sh *Shell, line string) Result {
	t.Helper()
	res := run(t, sh, line)
	require.True(t, res.Success, "command %q failed: %s", line, res.Output)
	return res
}

func TestEmptyCommand(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := run(t, sh, "   ")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Empty command", res.Output)
}

func TestUnknownCommand(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := run(t, sh, "frobnicate")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Unknown command 'frobnicate'. Type 'help' for available commands.", res.Output)
}

func TestVerbsAreCaseInsensitive(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := run(t, sh, "PWD")
	require.True(t, res.Success)
	assert.Equal(t, "/", res.Output)
}

func TestWhitespaceNormalization(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "  mkdir   docs  ")
	res := mustRun(t, sh, "cd docs")
	assert.Equal(t, "Changed to: /docs", res.Output)
}

func TestHelpNamesEveryVerb(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := mustRun(t, sh, "help")
	for verb := range sh.handlers {
		assert.Contains(t, res.Output, verb, "help text is missing verb %q", verb)
	}
}

func TestAbsolutePathEqualsSequentialCd(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir a")
	mustRun(t, sh, "cd a")
	mustRun(t, sh, "mkdir b")
	mustRun(t, sh, "cd b")
	mustRun(t, sh, "mkdir c")
	mustRun(t, sh, "cd /")

	mustRun(t, sh, "cd /a/b/c")
	absolute := mustRun(t, sh, "pwd").Output

	mustRun(t, sh, "cd /")
	mustRun(t, sh, "cd a")
	mustRun(t, sh, "cd b")
	mustRun(t, sh, "cd c")
	sequential := mustRun(t, sh, "pwd").Output

	assert.Equal(t, "/a/b/c", absolute)
	assert.Equal(t, absolute, sequential)
}

func TestCdAbsoluteMissingSegmentIsAllOrNothing(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir a")
	mustRun(t, sh, "cd a")
	before := mustRun(t, sh, "pwd").Output

	res := run(t, sh, "cd /a/missing/deeper")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Folder 'missing' not found in path", res.Output)

	assert.Equal(t, before, mustRun(t, sh, "pwd").Output)
}

func TestCdDotDot(t *testing.T) {
	sh, _ := newTestShell(t, Options{})

	res := run(t, sh, "cd ..")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Already at root", res.Output)

	mustRun(t, sh, "mkdir a")
	mustRun(t, sh, "cd a")
	mustRun(t, sh, "mkdir b")
	mustRun(t, sh, "cd b")

	mustRun(t, sh, "cd ..")
	assert.Equal(t, "/a", mustRun(t, sh, "pwd").Output)

	mustRun(t, sh, "cd ..")
	assert.Equal(t, "/", mustRun(t, sh, "pwd").Output)

	res = run(t, sh, "cd ..")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Already at root", res.Output)
}

func TestCdTildeAndSlashGoToRoot(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir a")
	for _, target := range []string{"~", "/", ""} {
		mustRun(t, sh, "cd a")
		line := "cd"
		if target != "" {
			line = "cd " + target
		}
		res := mustRun(t, sh, line)
		assert.Equal(t, "Changed to root directory: /", res.Output)
	}
}

func TestListingOrder(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir b")
	mustRun(t, sh, "mkdir A")
	mustRun(t, sh, "touch z.txt")

	out := mustRun(t, sh, "ls").Output
	assert.Contains(t, out, "Total: 3 item(s)")

	posA := strings.Index(out, "[A]")
	posB := strings.Index(out, "[b]")
	posZ := strings.Index(out, "z.txt")
	require.True(t, posA >= 0 && posB >= 0 && posZ >= 0, "listing missing rows:\n%s", out)
	assert.Less(t, posA, posB)
	assert.Less(t, posB, posZ)
}

func TestListingEmptyDirectory(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := mustRun(t, sh, "ls")
	assert.Equal(t, "Empty directory.", res.Output)
}

func TestCopyPasteFileIsRepeatable(t *testing.T) {
	sh, ds := newTestShell(t, Options{})
	ctx := context.Background()
	mustRun(t, sh, "touch report.txt")
	mustRun(t, sh, "copy report.txt")

	res := mustRun(t, sh, "paste")
	assert.Equal(t, "Pasted file: report.txt", res.Output)

	res = mustRun(t, sh, "paste")
	assert.Equal(t, "Pasted file: report.txt", res.Output)

	root, err := ds.Root(ctx)
	require.NoError(t, err)
	files, err := ds.ListChildFiles(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, files, 3)

	seen := map[string]bool{}
	for _, f := range files {
		assert.Equal(t, "report.txt", f.Name)
		assert.False(t, seen[f.ID.String()], "paste must mint a new identity")
		seen[f.ID.String()] = true
	}
}

func TestFolderPasteFailsWithoutClipboardMutation(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir stuff")
	res := mustRun(t, sh, "copy stuff")
	assert.Equal(t, "Copied to clipboard: stuff (DIR)", res.Output)

	for i := 0; i < 2; i++ {
		res = run(t, sh, "paste")
		assert.False(t, res.Success)
		assert.Equal(t, "Error: Folder paste not supported", res.Output)
	}

	_, kind, present, err := sh.clipboard(context.Background(), testSession)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, clipboardKindFolder, kind)
}

func TestPasteEmptyClipboard(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := run(t, sh, "paste")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Clipboard is empty", res.Output)
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{1, "1.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1073741824, "1.0 GB"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatBytes(tc.bytes))
	}
}

func TestRenameFolderShadowsFile(t *testing.T) {
	sh, ds := newTestShell(t, Options{})
	ctx := context.Background()
	mustRun(t, sh, "mkdir report")
	mustRun(t, sh, "touch report")

	res := mustRun(t, sh, "rn report archive")
	assert.Equal(t, "Renamed directory: report → archive", res.Output)

	root, err := ds.Root(ctx)
	require.NoError(t, err)

	_, err = ds.FindChildFolderByName(ctx, root.ID, "archive")
	assert.NoError(t, err)

	// the file keeps its name
	_, err = ds.FindChildFileByName(ctx, root.ID, "report")
	assert.NoError(t, err)
}

func TestDeleteDisclosesDuplicates(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "touch dup.txt")
	mustRun(t, sh, "copy dup.txt")
	mustRun(t, sh, "paste")

	res := mustRun(t, sh, "del dup.txt")
	assert.Contains(t, res.Output, "Moved to trash: dup.txt (FILE)")
	assert.Contains(t, res.Output, "Warning: Multiple items with this name exist.")
}

func TestRmIsDeleteAlias(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "touch junk.txt")
	res := mustRun(t, sh, "rm junk.txt")
	assert.Equal(t, "Moved to trash: junk.txt (FILE)", res.Output)
}

func TestTrashRestoreRoundTrip(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir projects")
	mustRun(t, sh, "cd projects")
	mustRun(t, sh, "touch plan.txt")
	mustRun(t, sh, "del plan.txt")

	out := mustRun(t, sh, "trash").Output
	assert.Contains(t, out, "plan.txt")

	res := mustRun(t, sh, "trash plan.txt restore")
	assert.Equal(t, "Restored: plan.txt", res.Output)

	// back in its original parent
	assert.Contains(t, mustRun(t, sh, "ls").Output, "plan.txt")
	assert.Equal(t, "Trash is empty.", mustRun(t, sh, "trash").Output)
}

func TestTrashRestoreUnknownName(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := run(t, sh, "trash ghost restore")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: 'ghost' not found in trash", res.Output)
}

func TestMoveToAbsolutePath(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir Archive")
	mustRun(t, sh, "touch old report.txt")

	res := mustRun(t, sh, "mv old report.txt /Archive")
	assert.Equal(t, "Moved: old report.txt → /Archive", res.Output)

	mustRun(t, sh, "cd Archive")
	assert.Contains(t, mustRun(t, sh, "ls").Output, "old report.txt")
}

func TestCopyToFolder(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir backup")
	mustRun(t, sh, "touch data.txt")

	res := mustRun(t, sh, "cp data.txt backup")
	assert.Equal(t, "Copied: data.txt → /backup", res.Output)

	// original stays put
	assert.Contains(t, mustRun(t, sh, "ls").Output, "data.txt")
	mustRun(t, sh, "cd backup")
	assert.Contains(t, mustRun(t, sh, "ls").Output, "data.txt")
}

func TestCopyFolderToFolderFails(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "mkdir a")
	mustRun(t, sh, "mkdir b")
	res := run(t, sh, "cp a b")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Folder copy not supported", res.Output)
}

func TestFindIsCaseInsensitive(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "touch Notes.txt")
	res := mustRun(t, sh, "find notes.txt")
	assert.Contains(t, res.Output, "Found (FILE): Notes.txt")
	assert.Contains(t, res.Output, "Path: /Notes.txt")
	assert.Contains(t, res.Output, "ID: ")
}

func TestFindFolderBeforeFile(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "touch shared")
	mustRun(t, sh, "mkdir shared")
	res := mustRun(t, sh, "find shared")
	assert.Contains(t, res.Output, "Found (DIR): shared")
}

func TestNewDocumentTypes(t *testing.T) {
	sh, ds := newTestShell(t, Options{})
	ctx := context.Background()

	cases := map[string]string{
		"docs":  drive.MimeDocument,
		"sheet": drive.MimeSpreadsheet,
		"slide": drive.MimePresentation,
		"form":  drive.MimeForm,
	}
	for kind, mime := range cases {
		name := "thing-" + kind
		res := mustRun(t, sh, "new "+name+" "+kind)
		assert.Contains(t, res.Output, "Created "+kind+": "+name)

		root, err := ds.Root(ctx)
		require.NoError(t, err)
		node, err := ds.FindChildFileByName(ctx, root.ID, name)
		require.NoError(t, err)
		assert.Equal(t, mime, node.MimeType)
	}
}

func TestNewUnsupportedTypes(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	for _, kind := range []string{"script", "py"} {
		res := run(t, sh, "new thing "+kind)
		assert.False(t, res.Success)
		assert.Contains(t, res.Output, "requires manual setup")
	}

	res := run(t, sh, "new thing exe")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Unknown type 'exe'", res.Output)
}

func TestTouchRejectsExistingName(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "touch a.txt")
	res := run(t, sh, "touch a.txt")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: File 'a.txt' already exists.", res.Output)
}

func TestCat(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "touch empty.txt")
	res := mustRun(t, sh, "cat empty.txt")
	assert.Equal(t, "", res.Output)

	mustRun(t, sh, "mkdir docs")
	res = run(t, sh, "cat docs")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: 'docs' is a directory", res.Output)

	mustRun(t, sh, "new spread sheet")
	res = run(t, sh, "cat spread")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: 'spread' is not a plain text file", res.Output)
}

func TestShareModes(t *testing.T) {
	sh, _ := newTestShell(t, Options{BaseURL: "https://drive.test"})
	mustRun(t, sh, "touch report.txt")

	res := mustRun(t, sh, "share report.txt bob@example.com view")
	assert.Equal(t, "Shared report.txt with bob@example.com (view)", res.Output)

	res = mustRun(t, sh, "share report.txt --link edit")
	assert.Contains(t, res.Output, "Link sharing enabled for report.txt (edit)")
	assert.Contains(t, res.Output, "https://drive.test/file/")

	res = mustRun(t, sh, "share report.txt --list")
	assert.Contains(t, res.Output, "bob@example.com (view)")
	assert.Contains(t, res.Output, "ANYONE_WITH_LINK (edit)")

	res = run(t, sh, "share report.txt bob@example.com owner")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Unknown permission type 'owner'", res.Output)
}

func TestColorCommand(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := mustRun(t, sh, "color green")
	assert.Equal(t, "Color changed to green", res.Output)
	assert.Equal(t, ActionColor, res.Action)
	assert.Equal(t, "green", res.Color)

	res = run(t, sh, "color mauve")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Invalid color 'mauve'", res.Output)
}

func TestUIActions(t *testing.T) {
	sh, _ := newTestShell(t, Options{})

	res := mustRun(t, sh, "clear")
	assert.Equal(t, ActionClear, res.Action)

	res = mustRun(t, sh, "reload")
	assert.Equal(t, ActionReload, res.Action)

	res = mustRun(t, sh, "exit")
	assert.Equal(t, ActionExit, res.Action)
	assert.Equal(t, "Closing...", res.Output)
}

func TestCloneIsRejected(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	res := run(t, sh, "clone https://example.com/repo.git")
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Git clone not supported in this environment", res.Output)
}

func TestOpenCarriesAction(t *testing.T) {
	sh, _ := newTestShell(t, Options{BaseURL: "https://drive.test"})
	mustRun(t, sh, "touch doc.txt")
	res := mustRun(t, sh, "open doc.txt")
	assert.Equal(t, ActionOpen, res.Action)
	assert.Contains(t, res.Output, "https://drive.test/file/")
}

func TestPanicRecovery(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	sh.handlers["boom"] = func(context.Context, string, []string) Result {
		panic("kaboom")
	}
	res := run(t, sh, "boom")
	assert.False(t, res.Success)
	assert.Equal(t, "System error: kaboom", res.Output)
}

func TestStaleLocationFallsBackToRoot(t *testing.T) {
	sh, ds := newTestShell(t, Options{})
	ctx := context.Background()
	mustRun(t, sh, "mkdir doomed")
	mustRun(t, sh, "cd doomed")

	root, err := ds.Root(ctx)
	require.NoError(t, err)
	folder, err := ds.FindChildFolderByName(ctx, root.ID, "doomed")
	require.NoError(t, err)
	require.NoError(t, ds.Trash(ctx, folder.ID))

	res := run(t, sh, "ls")
	assert.False(t, res.Success)
	assert.Contains(t, res.Output, "returned to root")

	// the session has recovered; subsequent commands run from root
	assert.Equal(t, "/", mustRun(t, sh, "pwd").Output)
	assert.True(t, run(t, sh, "ls").Success)
}

func TestStatShowsMetadata(t *testing.T) {
	sh, _ := newTestShell(t, Options{BaseURL: "https://drive.test"})
	mustRun(t, sh, "touch report.txt")

	out := mustRun(t, sh, "stat report.txt").Output
	assert.Contains(t, out, "=== File Statistics ===")
	assert.Contains(t, out, "Name:       report.txt")
	assert.Contains(t, out, "Type:       "+drive.MimeText)
	assert.Contains(t, out, "Size:       0 B")
	assert.Contains(t, out, "Owner:      tester@example.com")
	assert.Contains(t, out, "Access:     PRIVATE (none)")

	mustRun(t, sh, "mkdir stuff")
	out = mustRun(t, sh, "stat stuff").Output
	assert.Contains(t, out, "=== Directory Statistics ===")
	assert.NotContains(t, out, "Size:")
}
