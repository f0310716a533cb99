// Package html renders the session list and session detail pages. Answers are
// converted from markdown with goldmark, code blocks are highlighted with
// chroma, and search matches are wrapped in <mark>.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/sonnes/chatview/search"
	"github.com/sonnes/chatview/view"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

//go:embed templates/*.html static/*
var content embed.FS

// Renderer renders list and detail pages.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// ChatHref builds the link to a session page. Defaults to /chat/{id}.
	ChatHref func(sessionID string) string
}

// New creates an HTML Renderer with goldmark configured for GFM, syntax
// highlighting, and search match marking. Raw HTML in answers is omitted.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(markTransformer{}, 1000)),
		),
	)

	r := &Renderer{
		md:       md,
		ChatHref: ChatHref,
	}
	r.tmpl = template.Must(
		template.New("index.html").
			Funcs(r.funcMap()).
			ParseFS(content, "templates/*.html"),
	)
	return r
}

// Static returns the embedded stylesheet and scripts, rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// RenderIndex writes the session list page.
func (r *Renderer) RenderIndex(w io.Writer, v view.ListView) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", v)
}

// RenderSession writes the session detail page.
func (r *Renderer) RenderSession(w io.Writer, v view.DetailView) error {
	return r.tmpl.ExecuteTemplate(w, "chat.html", v)
}

// Markdown converts an answer to HTML, marking matches of q outside code.
func (r *Renderer) Markdown(text string, q *search.Query) (template.HTML, error) {
	pc := parser.NewContext()
	pc.Set(queryKey, q)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return template.HTML(buf.String()), nil
}
