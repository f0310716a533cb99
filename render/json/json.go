// Package json renders session views as JSON, for the HTTP API and the CLI.
package json

import (
	encjson "encoding/json"
	"io"
	"time"

	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/view"
)

// Renderer renders session views to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New creates a JSON Renderer with indented output.
func New() *Renderer {
	return &Renderer{Indent: true}
}

// SessionSummary is one entry of the session list.
type SessionSummary struct {
	ID      string  `json:"sessionId"`
	Name    *string `json:"sessionName,omitempty"`
	Records int     `json:"records"`
}

// List is the JSON form of view.ListView.
type List struct {
	Search   string           `json:"search"`
	HasData  bool             `json:"hasData"`
	Source   string           `json:"source,omitempty"`
	LoadedAt *time.Time       `json:"loadedAt,omitempty"`
	Sessions []SessionSummary `json:"sessions"`
}

// Turn is a matching record with its position in the session.
type Turn struct {
	Index    int     `json:"index"`
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
}

// Detail is the JSON form of view.DetailView.
type Detail struct {
	ID      string  `json:"sessionId"`
	Name    *string `json:"sessionName,omitempty"`
	Search  string  `json:"search"`
	Total   int     `json:"total"`
	Records []Turn  `json:"records"`
}

// NewList converts a list view to its JSON form.
func NewList(v view.ListView) List {
	out := List{
		Search:   v.SearchQuery(),
		HasData:  v.HasData,
		Source:   v.Info.Source,
		Sessions: make([]SessionSummary, len(v.Sessions)),
	}
	if !v.Info.LoadedAt.IsZero() {
		loaded := v.Info.LoadedAt
		out.LoadedAt = &loaded
	}
	for i, s := range v.Sessions {
		out.Sessions[i] = summarize(s)
	}
	return out
}

// NewDetail converts a detail view to its JSON form.
func NewDetail(v view.DetailView) Detail {
	out := Detail{
		ID:      v.Session.ID,
		Name:    v.Session.Name,
		Search:  v.SearchQuery(),
		Total:   len(v.Session.Records),
		Records: make([]Turn, len(v.Turns)),
	}
	for i, t := range v.Turns {
		out.Records[i] = Turn{
			Index:    t.Index,
			Question: t.Record.Question,
			Answer:   t.Record.Answer,
		}
	}
	return out
}

func summarize(s core.Session) SessionSummary {
	return SessionSummary{ID: s.ID, Name: s.Name, Records: len(s.Records)}
}

// RenderIndex writes the session list as JSON.
func (r *Renderer) RenderIndex(w io.Writer, v view.ListView) error {
	return r.Encode(w, NewList(v))
}

// RenderSession writes a session's matching records as JSON.
func (r *Renderer) RenderSession(w io.Writer, v view.DetailView) error {
	return r.Encode(w, NewDetail(v))
}

// Encode writes any value as JSON followed by a newline. HTML characters are
// left unescaped.
func (r *Renderer) Encode(w io.Writer, v any) error {
	enc := encjson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
