package html

import (
	"github.com/sonnes/chatview/search"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// queryKey carries the active *search.Query through the parser context.
var queryKey = parser.NewContextKey()

// markTransformer splits text nodes around search matches and wraps each
// match in <mark>. Code spans, code blocks, raw HTML and autolinks are left
// alone.
type markTransformer struct{}

func (markTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	q, _ := pc.Get(queryKey).(*search.Query)
	if q.Empty() {
		return
	}

	var texts []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindCodeSpan, ast.KindCodeBlock, ast.KindFencedCodeBlock,
			ast.KindHTMLBlock, ast.KindRawHTML, ast.KindAutoLink:
			return ast.WalkSkipChildren, nil
		}
		if t, ok := n.(*ast.Text); ok && !t.IsRaw() && t.Segment.Padding == 0 {
			texts = append(texts, t)
		}
		return ast.WalkContinue, nil
	})

	source := reader.Source()
	for _, run := range textRuns(texts) {
		markRun(run, source, q)
	}
}

// textRuns groups text nodes into runs of adjacent siblings whose source
// segments touch. Inline delimiters such as _ or [ that do not open markup
// still end up as separate text nodes, so a match may span several nodes.
func textRuns(texts []*ast.Text) [][]*ast.Text {
	var runs [][]*ast.Text
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			if prev.NextSibling() == ast.Node(t) &&
				prev.Segment.Stop == t.Segment.Start &&
				!prev.SoftLineBreak() && !prev.HardLineBreak() {
				runs[len(runs)-1] = append(runs[len(runs)-1], t)
				continue
			}
		}
		runs = append(runs, []*ast.Text{t})
	}
	return runs
}

// span is a match as source offsets.
type span struct {
	start, stop int
}

func markRun(run []*ast.Text, source []byte, q *search.Query) {
	pos := run[0].Segment.Start
	value := source[pos:run[len(run)-1].Segment.Stop]

	var spans []span
	for _, s := range q.Split(string(value)) {
		end := pos + len(s.Text)
		if s.Match {
			spans = append(spans, span{pos, end})
		}
		pos = end
	}
	if len(spans) == 0 {
		return
	}
	for _, t := range run {
		markText(t, spans)
	}
}

// markText replaces t with text pieces cut at span boundaries, opening a
// <mark> where a span starts and closing it where the span stops. A span
// may open in one node of a run and close in a later one.
func markText(t *ast.Text, spans []span) {
	parent := t.Parent()
	insert := func(n ast.Node) {
		parent.InsertBefore(parent, t, n)
	}

	var last *ast.Text
	offset, stop := t.Segment.Start, t.Segment.Stop
	for offset < stop {
		cut := stop
		for _, sp := range spans {
			if sp.start == offset {
				insert(markString(search.MarkOpen))
			}
			if sp.start > offset && sp.start < cut {
				cut = sp.start
			}
			if sp.stop > offset && sp.stop < cut {
				cut = sp.stop
			}
		}

		last = ast.NewTextSegment(text.NewSegment(offset, cut))
		insert(last)
		for _, sp := range spans {
			if sp.stop == cut {
				insert(markString(search.MarkClose))
				last = nil
			}
		}
		offset = cut
	}

	if t.SoftLineBreak() || t.HardLineBreak() {
		if last == nil {
			last = ast.NewTextSegment(text.NewSegment(offset, offset))
			insert(last)
		}
		last.SetSoftLineBreak(t.SoftLineBreak())
		last.SetHardLineBreak(t.HardLineBreak())
	}
	parent.RemoveChild(parent, t)
}

// markString is an inline node written to the output verbatim.
func markString(tag string) *ast.String {
	s := ast.NewString([]byte(tag))
	s.SetCode(true)
	return s
}
