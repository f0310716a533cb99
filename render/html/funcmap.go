package html

import (
	"errors"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/search"
)

const previewLen = 140

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"highlight": func(q *search.Query, s string) template.HTML {
			return q.HighlightHTML(s)
		},
		"markdown": func(q *search.Query, s string) (template.HTML, error) {
			return r.Markdown(s, q)
		},
		"chatHref": func(id string) string {
			return r.ChatHref(id)
		},
		"dict":    dict,
		"value":   core.Value,
		"preview": preview,
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"plural": func(n int, word string) string {
			if n == 1 {
				return humanize.Comma(int64(n)) + " " + word
			}
			return humanize.Comma(int64(n)) + " " + word + "s"
		},
	}
}

// preview returns the first non-empty question of a session, shortened to a
// single line.
func preview(s core.Session) string {
	for _, r := range s.Records {
		text := strings.TrimSpace(core.Value(r.Question))
		if text == "" {
			continue
		}
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			text = text[:idx]
		}
		runes := []rune(text)
		if len(runes) > previewLen {
			text = string(runes[:previewLen-3]) + "..."
		}
		return text
	}
	return ""
}

// dict builds a map from alternating keys and values, for passing several
// arguments to a nested template.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// ChatHref is the default link to a session detail page.
func ChatHref(id string) string {
	return "/chat/" + url.PathEscape(id)
}
