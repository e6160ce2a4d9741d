package shell

import (
	"fmt"
	"strings"
	"time"
)

const (
	minuteFormat = "2006-01-02 15:04"
	secondFormat = "2006-01-02 15:04:05"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// formatBytes renders a human-scaled byte count with one decimal place,
// 1024 per step. Zero is the literal "0 B".
func formatBytes(bytes uint64) string {
	if bytes == 0 {
		return "0 B"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}

// padRight left-justifies s in a column of the given width, truncating
// with an ellipsis marker when it does not fit. Widths count runes so
// non-ASCII names stay aligned.
func padRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// mimeTag reduces a MIME type to the short tag shown in listings: the
// part after the last slash, capped at 12 characters.
func mimeTag(mimeType string) string {
	tag := mimeType
	if idx := strings.LastIndex(mimeType, "/"); idx >= 0 {
		tag = mimeType[idx+1:]
	}
	if len(tag) > 12 {
		tag = tag[:12]
	}
	return tag
}

func formatMinute(t time.Time) string {
	return t.Format(minuteFormat)
}

func formatSecond(t time.Time) string {
	return t.Format(secondFormat)
}
