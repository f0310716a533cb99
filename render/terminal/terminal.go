// Package terminal renders session views as ANSI-colored cards.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/chatview/search"
	"github.com/sonnes/chatview/view"
)

const defaultWidth = 100

// Renderer pretty-prints session views to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderIndex writes the session list, one card per matching session.
func (r *Renderer) RenderIndex(w io.Writer, v view.ListView) error {
	width := r.termWidth()
	contentWidth := max(width-4, 40)

	meta := []string{countLabel(v.Info.Sessions, "session"), countLabel(v.Info.Records, "record")}
	if v.Info.Source != "" {
		meta = append(meta, v.Info.Source)
	}
	fmt.Fprintln(w, styleTitle.Render("Chat sessions"))
	fmt.Fprintln(w, styleMeta.Render(strings.Join(meta, "  ")))

	switch {
	case !v.HasData:
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleEmpty.Render("No data loaded."))
		return nil
	case len(v.Sessions) == 0:
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleEmpty.Render(fmt.Sprintf("No sessions match %q.", v.SearchQuery())))
		return nil
	}

	if !v.Query.Empty() {
		fmt.Fprintln(w, styleMeta.Render(fmt.Sprintf("%s matching %q", countLabel(len(v.Sessions), "session"), v.SearchQuery())))
	}

	for _, s := range v.Sessions {
		writeSeparator(w, width)
		fmt.Fprintln(w, " "+highlight(v.Query, truncate(s.DisplayName(), contentWidth), styleTitle))
		fmt.Fprintln(w, "  "+styleMeta.Render(s.ID+"  "+countLabel(len(s.Records), "record")))
		if summary := summarizeSession(s); summary != "" {
			fmt.Fprintln(w, "  "+highlightPlain(v.Query, truncate(summary, contentWidth)))
		}
	}

	fmt.Fprintln(w)
	return nil
}

// RenderSession writes a session header followed by one card per matching
// record.
func (r *Renderer) RenderSession(w io.Writer, v view.DetailView) error {
	width := r.termWidth()
	contentWidth := max(width-4, 40)
	body := lipgloss.NewStyle().Width(contentWidth)

	fmt.Fprintln(w, highlight(v.Query, v.Session.DisplayName(), styleTitle))
	meta := []string{v.Session.ID, countLabel(len(v.Session.Records), "record")}
	if !v.Query.Empty() {
		meta = append(meta, fmt.Sprintf("%d matching %q", len(v.Turns), v.SearchQuery()))
	}
	fmt.Fprintln(w, styleMeta.Render(strings.Join(meta, "  ")))

	if len(v.Turns) == 0 {
		fmt.Fprintln(w)
		if v.Query.Empty() {
			fmt.Fprintln(w, styleEmpty.Render("This session has no records."))
		} else {
			fmt.Fprintln(w, styleEmpty.Render(fmt.Sprintf("No records match %q.", v.SearchQuery())))
		}
		return nil
	}

	for _, t := range v.Turns {
		writeSeparator(w, width)
		fmt.Fprintln(w, " "+styleMeta.Render(fmt.Sprintf("#%d", t.Index)))
		if t.Record.Question != nil {
			fmt.Fprintln(w, " "+styleQuestionBadge.Render("QUESTION"))
			writeBody(w, body, highlightPlain(v.Query, strings.TrimSpace(*t.Record.Question)))
		}
		if t.Record.Answer != nil {
			fmt.Fprintln(w, " "+styleAnswerBadge.Render("ANSWER"))
			writeBody(w, body, highlightPlain(v.Query, strings.TrimSpace(*t.Record.Answer)))
		}
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeBody wraps text to the body width and indents every line.
func writeBody(w io.Writer, body lipgloss.Style, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(body.Render(text), "\n") {
		fmt.Fprintln(w, "  "+strings.TrimRight(line, " "))
	}
}

// highlight renders text in base style with search matches emphasized.
func highlight(q *search.Query, text string, base lipgloss.Style) string {
	mark := styleMatch.Inherit(base)
	return q.HighlightFunc(text,
		func(s string) string { return mark.Render(s) },
		func(s string) string { return base.Render(s) })
}

// highlightPlain emphasizes search matches and leaves the rest untouched.
func highlightPlain(q *search.Query, text string) string {
	return q.HighlightFunc(text, func(s string) string { return styleMatch.Render(s) }, nil)
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// truncate shortens text to maxWidth, appending "..." if needed.
// Multi-line text is reduced to the first line.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
