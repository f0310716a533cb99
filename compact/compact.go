// Package compact provides a Transformer that trims sessions for compact
// viewing. Questions lose tool-injected markup, records left with neither a
// question nor an answer are dropped, and fenced code in answers is replaced
// by a line count.
package compact

import (
	"fmt"
	"strings"

	"github.com/sonnes/chatview/core"
)

// Config controls the compact transformer behavior.
type Config struct {
	// KeepCode leaves fenced code blocks in answers untouched.
	KeepCode bool
}

// Compactor shortens session records.
type Compactor struct {
	keepCode bool
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	return &Compactor{keepCode: cfg.KeepCode}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(sessions []core.Session) error {
	for i := range sessions {
		s := &sessions[i]
		records := make([]core.Record, 0, len(s.Records))
		for _, r := range s.Records {
			c.compactRecord(&r)
			if isEmpty(r) {
				continue
			}
			records = append(records, r)
		}
		s.Records = records
	}
	return nil
}

func (c *Compactor) compactRecord(r *core.Record) {
	if r.Question != nil {
		r.Question = core.String(StripTags(*r.Question))
	}
	if r.Answer != nil && !c.keepCode {
		r.Answer = core.String(summarizeCode(*r.Answer))
	}
}

func isEmpty(r core.Record) bool {
	return strings.TrimSpace(core.Value(r.Question)) == "" &&
		strings.TrimSpace(core.Value(r.Answer)) == ""
}

// summarizeCode replaces the body of every closed fenced code block with a
// summary like "[code: 12 lines]". Fences and text outside code are kept.
func summarizeCode(s string) string {
	var (
		out   []string
		body  []string
		fence string
	)
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if fence == "" {
			fence = openingFence(trimmed)
			body = body[:0]
			out = append(out, line)
			continue
		}
		if isClosingFence(trimmed, fence) {
			out = append(out, lineSummary("code", strings.Join(body, "\n")), line)
			fence = ""
			continue
		}
		body = append(body, line)
	}
	// An unclosed block is left as written.
	if fence != "" {
		out = append(out, body...)
	}
	return strings.Join(out, "\n")
}

// openingFence returns the run of backticks or tildes that opens a fenced
// code block, or "" when line is not a fence.
func openingFence(line string) string {
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(line) && line[n] == ch {
			n++
		}
		if n >= 3 {
			return line[:n]
		}
	}
	return ""
}

func isClosingFence(line, fence string) bool {
	return len(line) >= len(fence) && strings.Trim(line, fence[:1]) == ""
}

// lineSummary returns a summary like "[code: 245 lines]".
func lineSummary(label, s string) string {
	n := countLines(s)
	if n == 1 {
		return fmt.Sprintf("[%s: 1 line]", label)
	}
	return fmt.Sprintf("[%s: %d lines]", label, n)
}

// countLines returns the number of lines in s.
// An empty string has 0 lines. A string with no newline has 1 line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n") + 1
	if strings.HasSuffix(s, "\n") {
		n--
	}
	return n
}
