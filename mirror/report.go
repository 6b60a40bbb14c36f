package mirror

import (
	"fmt"
	"strings"
)

// RenderReport formats the session log as a plain-text report. Entries are
// emitted as stored, newest first.
func RenderReport(snap Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SESSION REPORT - %s\n", snap.SessionStart)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")
	for _, e := range snap.History {
		fmt.Fprintf(&b, "[%s] %s\n", e.Time, e.Text)
		fmt.Fprintf(&b, "    > Face: %s | Impact: %s\n", e.Emotion, e.Impact)
		b.WriteString(strings.Repeat("-", 30))
		b.WriteString("\n")
	}
	return b.String()
}
