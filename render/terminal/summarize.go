package terminal

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sonnes/chatview/core"
)

// summarizeSession returns the first non-empty question of a session, reduced
// to one line. Sessions without questions fall back to the first answer.
func summarizeSession(s core.Session) string {
	for _, r := range s.Records {
		if line := firstLine(core.Value(r.Question)); line != "" {
			return line
		}
	}
	for _, r := range s.Records {
		if line := firstLine(core.Value(r.Answer)); line != "" {
			return line
		}
	}
	return ""
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// countLabel formats n with thousands separators and a pluralized noun.
func countLabel(n int, noun string) string {
	label := humanize.Comma(int64(n)) + " " + noun
	if n != 1 {
		label += "s"
	}
	return label
}
