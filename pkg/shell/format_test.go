package shell

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 4))
	assert.Equal(t, "abcdefg...", padRight("abcdefghijk", 10))

	// widths count runes, not bytes
	assert.Equal(t, "日本語  ", padRight("日本語", 5))
}

func TestMimeTag(t *testing.T) {
	assert.Equal(t, "plain", mimeTag(drive.MimeText))
	assert.Equal(t, "vnd.drive-cl", mimeTag(drive.MimeSpreadsheet))
	assert.Equal(t, "pdf", mimeTag("application/pdf"))
	assert.Equal(t, "octet-stream", mimeTag("application/octet-stream"))
}

func TestDateFormats(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "2024-03-09 14:05", formatMinute(ts))
	assert.Equal(t, "2024-03-09 14:05:07", formatSecond(ts))
}

func TestListingColumns(t *testing.T) {
	sh, _ := newTestShell(t, Options{})
	mustRun(t, sh, "touch notes.txt")

	out := mustRun(t, sh, "ls").Output
	lines := strings.Split(out, "\n")

	var header, rule string
	for i, line := range lines {
		if strings.HasPrefix(line, "NAME") {
			header = line
			rule = lines[i+1]
			break
		}
	}
	assert.Equal(t, padRight("NAME", 35)+padRight("TYPE", 15)+padRight("SIZE", 12)+"MODIFIED", header)
	assert.Equal(t, strings.Repeat("-", 90), rule)
	assert.Contains(t, out, padRight("notes.txt", 35)+padRight("plain", 15)+padRight("0 B", 12))
}
