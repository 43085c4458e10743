package discord

import (
	"fmt"
	"time"
)

// FormatTimestamp renders t as a Discord timestamp tag, which every client
// shows in its own time zone.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("<t:%d:f>", t.Unix())
}

// FormatRange renders "start – end", collapsing to the start alone when the
// end is missing or not after it.
func FormatRange(start, end time.Time) string {
	if start.IsZero() {
		return ""
	}
	if end.IsZero() || !end.After(start) {
		return FormatTimestamp(start)
	}
	return FormatTimestamp(start) + " → " + FormatTimestamp(end)
}
