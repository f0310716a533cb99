package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/store"
	"github.com/sonnes/chatview/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *store.Store {
	st := store.New()
	st.Replace([]core.Session{
		{
			ID:   "abc-123",
			Name: core.String("Fix the auth bug"),
			Records: []core.Record{
				{Question: core.String("Why does login fail?"), Answer: core.String("The token check is inverted.")},
				{Question: core.String("Thanks!")},
			},
		},
		{
			ID:      "def-456",
			Records: []core.Record{{Answer: core.String("Cache warmed.")}},
		},
	}, "data.json")
	return st
}

func renderIndex(t *testing.T, v view.ListView) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{Width: 100}).RenderIndex(&buf, v))
	return ansi.Strip(buf.String())
}

func renderSession(t *testing.T, v view.DetailView) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{Width: 80}).RenderSession(&buf, v))
	return ansi.Strip(buf.String())
}

func TestRenderIndexHeader(t *testing.T) {
	out := renderIndex(t, view.List(testStore(), ""))

	assert.Contains(t, out, "Chat sessions")
	assert.Contains(t, out, "2 sessions")
	assert.Contains(t, out, "3 records")
	assert.Contains(t, out, "data.json")
}

func TestRenderIndexSessions(t *testing.T) {
	out := renderIndex(t, view.List(testStore(), ""))

	assert.Contains(t, out, "Fix the auth bug")
	assert.Contains(t, out, "abc-123  2 records")
	assert.Contains(t, out, "Why does login fail?")
	assert.Contains(t, out, "def-456  1 record")
	assert.Contains(t, out, "Cache warmed.", "answer used when no question")

	assert.Less(t, strings.Index(out, "abc-123"), strings.Index(out, "def-456"))
}

func TestRenderIndexFiltered(t *testing.T) {
	out := renderIndex(t, view.List(testStore(), "TOKEN"))

	assert.Contains(t, out, `1 session matching "TOKEN"`)
	assert.Contains(t, out, "Fix the auth bug")
	assert.NotContains(t, out, "def-456")
}

func TestRenderIndexEmptyStates(t *testing.T) {
	out := renderIndex(t, view.List(store.New(), ""))
	assert.Contains(t, out, "No data loaded.")

	out = renderIndex(t, view.List(testStore(), "kubernetes"))
	assert.Contains(t, out, `No sessions match "kubernetes".`)
	assert.NotContains(t, out, "No data loaded.")
}

func TestRenderSession(t *testing.T) {
	v, err := view.Detail(testStore(), "abc-123", "")
	require.NoError(t, err)
	out := renderSession(t, v)

	assert.Contains(t, out, "Fix the auth bug")
	assert.Contains(t, out, "abc-123  2 records")
	assert.Contains(t, out, "#0")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "QUESTION")
	assert.Contains(t, out, "ANSWER")
	assert.Contains(t, out, "The token check is inverted.")
	assert.Equal(t, 1, strings.Count(out, "ANSWER"), "absent answer is not printed")
}

func TestRenderSessionFiltered(t *testing.T) {
	v, err := view.Detail(testStore(), "abc-123", "thanks")
	require.NoError(t, err)
	out := renderSession(t, v)

	assert.Contains(t, out, `1 matching "thanks"`)
	assert.Contains(t, out, "#1")
	assert.NotContains(t, out, "#0")
	assert.NotContains(t, out, "login")
}

func TestRenderSessionEmptyStates(t *testing.T) {
	st := store.New()
	st.Replace([]core.Session{{ID: "empty"}}, "")

	v, err := view.Detail(st, "empty", "")
	require.NoError(t, err)
	assert.Contains(t, renderSession(t, v), "This session has no records.")

	v, err = view.Detail(testStore(), "abc-123", "zzz")
	require.NoError(t, err)
	out := renderSession(t, v)
	assert.Contains(t, out, `No records match "zzz".`)
	assert.Contains(t, out, "Fix the auth bug")
}

func TestRenderSessionWrapsLongAnswers(t *testing.T) {
	st := store.New()
	st.Replace([]core.Session{{
		ID:      "long",
		Records: []core.Record{{Answer: core.String(strings.Repeat("word ", 40))}},
	}}, "")

	v, err := view.Detail(st, "long", "")
	require.NoError(t, err)
	out := renderSession(t, v)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 80, line)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  int
		expect string
	}{
		{"fits", "hello", 10, "hello"},
		{"cut", "hello world", 8, "hello..."},
		{"first line only", "line one\nline two", 20, "line one"},
		{"minimum width", "abcdef", 1, "a..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, truncate(tt.input, tt.width))
		})
	}
}
