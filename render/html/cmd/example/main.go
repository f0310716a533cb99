// Generates an example session page and writes it to stdout. An optional
// argument is used as the search query.
// Usage: go run ./render/html/cmd/example [query] > example.html
package main

import (
	"os"

	"github.com/sonnes/chatview/core"
	htmlrender "github.com/sonnes/chatview/render/html"
	"github.com/sonnes/chatview/store"
	"github.com/sonnes/chatview/view"
)

func main() {
	sessions := []core.Session{
		{
			ID:   "8397fc7c-39b9-4e25-81da-ed47a574a88a",
			Name: core.String("Add search highlighting to the viewer"),
			Records: []core.Record{
				{
					Question: core.String("How should search work on the session page?"),
					Answer:   core.String("Filter records with a **case-insensitive substring** match on the question and answer, then wrap every hit in `<mark>`.\n\nThe query is treated literally, so `a.b` only matches the text `a.b`."),
				},
				{
					Question: core.String("Can you show the matcher?"),
					Answer:   core.String("Compile the query once and reuse it for matching and highlighting:\n\n```go\nre := regexp.MustCompile(\"(?i)\" + regexp.QuoteMeta(query))\nmatched := re.MatchString(text)\n```\n\nBecause both steps share one pattern, a record is shown exactly when it has something to highlight."),
				},
				{
					Question: core.String("What about code blocks?"),
					Answer:   core.String("Matches inside code are left unmarked so syntax highlighting stays intact:\n\n| Where | Marked |\n|---|---|\n| prose | yes |\n| `inline code` | no |\n| fenced blocks | no |"),
				},
				{
					Question: core.String("Thanks!"),
				},
			},
		},
	}

	st := store.New()
	st.Replace(sessions, "example")

	var query string
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	v, err := view.Detail(st, sessions[0].ID, query)
	if err == nil {
		err = htmlrender.New().RenderSession(os.Stdout, v)
	}
	if err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
