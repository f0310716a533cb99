// Package search implements case-insensitive literal substring matching over
// sessions and records, and highlighting of the matched text.
//
// Matching and highlighting share one compiled pattern, so every substring
// that makes a record match is exactly the substring that gets marked.
package search

import (
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sonnes/chatview/core"
)

// Marker tags wrapped around highlighted matches.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Query is a compiled search string. The zero value and a Query built from an
// empty string match everything and highlight nothing.
type Query struct {
	raw string
	re  *regexp.Regexp
}

// New compiles q. Regular expression metacharacters in q are literal.
// Invalid UTF-8 in q matches the same invalid bytes in text, which the
// regexp engine reads as U+FFFD.
func New(q string) *Query {
	if q == "" {
		return &Query{}
	}
	return &Query{
		raw: q,
		re:  regexp.MustCompile("(?i)" + regexp.QuoteMeta(validRunes(q))),
	}
}

// validRunes replaces each invalid byte of s with U+FFFD.
func validRunes(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		b.WriteRune(r)
	}
	return b.String()
}

// String returns the query as typed.
func (q *Query) String() string {
	if q == nil {
		return ""
	}
	return q.raw
}

// Empty reports whether the query matches everything.
func (q *Query) Empty() bool {
	return q == nil || q.re == nil
}

// MatchText reports whether text contains the query. Empty text never matches
// a non-empty query.
func (q *Query) MatchText(text string) bool {
	if q.Empty() {
		return true
	}
	return q.re.MatchString(text)
}

// matchOptional is MatchText for fields that may be absent.
func (q *Query) matchOptional(text *string) bool {
	if text == nil {
		return false
	}
	return q.re.MatchString(*text)
}

// MatchRecord reports whether the record's question or answer contains the query.
func (q *Query) MatchRecord(r core.Record) bool {
	if q.Empty() {
		return true
	}
	return q.matchOptional(r.Question) || q.matchOptional(r.Answer)
}

// MatchSession reports whether the session name, ID, or any record contains
// the query.
func (q *Query) MatchSession(s core.Session) bool {
	if q.Empty() {
		return true
	}
	if q.matchOptional(s.Name) || (s.ID != "" && q.re.MatchString(s.ID)) {
		return true
	}
	for _, r := range s.Records {
		if q.MatchRecord(r) {
			return true
		}
	}
	return false
}

// Segment is a piece of text that either matched the query or did not.
type Segment struct {
	Text  string
	Match bool
}

// Split cuts text into alternating non-matching and matching segments.
// Concatenating the segment texts reproduces text.
func (q *Query) Split(text string) []Segment {
	if text == "" {
		return nil
	}
	if q.Empty() {
		return []Segment{{Text: text}}
	}

	locs := q.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}

	segs := make([]Segment, 0, 2*len(locs)+1)
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			segs = append(segs, Segment{Text: text[pos:loc[0]]})
		}
		segs = append(segs, Segment{Text: text[loc[0]:loc[1]], Match: true})
		pos = loc[1]
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:]})
	}
	return segs
}

// HighlightFunc rebuilds text, passing matches through mark and everything
// else through plain. A nil plain keeps non-matching text unchanged.
func (q *Query) HighlightFunc(text string, mark, plain func(string) string) string {
	if q.Empty() {
		if plain != nil {
			return plain(text)
		}
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, seg := range q.Split(text) {
		switch {
		case seg.Match:
			b.WriteString(mark(seg.Text))
		case plain != nil:
			b.WriteString(plain(seg.Text))
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// Highlight wraps every match in text with <mark></mark>, preserving the
// original casing. Text is not HTML-escaped.
func (q *Query) Highlight(text string) string {
	return q.HighlightFunc(text, wrapMark, nil)
}

// HighlightHTML escapes text for HTML and wraps every match with
// <mark></mark>.
func (q *Query) HighlightHTML(text string) template.HTML {
	return template.HTML(q.HighlightFunc(text, func(s string) string {
		return wrapMark(template.HTMLEscapeString(s))
	}, template.HTMLEscapeString))
}

func wrapMark(s string) string {
	return MarkOpen + s + MarkClose
}

// MatchSession reports whether session s matches query.
func MatchSession(s core.Session, query string) bool {
	return New(query).MatchSession(s)
}

// MatchRecord reports whether record r matches query.
func MatchRecord(r core.Record, query string) bool {
	return New(query).MatchRecord(r)
}

// Highlight marks every occurrence of query in text. Absent text stays absent.
func Highlight(text *string, query string) *string {
	if text == nil || query == "" {
		return text
	}
	out := New(query).Highlight(*text)
	return &out
}

// FilterSessions returns the sessions matching q in their original order.
func (q *Query) FilterSessions(sessions []core.Session) []core.Session {
	if q.Empty() {
		return sessions
	}
	out := make([]core.Session, 0, len(sessions))
	for _, s := range sessions {
		if q.MatchSession(s) {
			out = append(out, s)
		}
	}
	return out
}
