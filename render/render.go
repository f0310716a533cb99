// Package render defines the interfaces for rendering session views into
// output formats.
package render

import (
	"io"

	"github.com/sonnes/chatview/view"
)

// ListRenderer writes the session list in a specific format.
type ListRenderer interface {
	RenderIndex(w io.Writer, v view.ListView) error
}

// SessionRenderer writes a single session's matching records in a specific
// format.
type SessionRenderer interface {
	RenderSession(w io.Writer, v view.DetailView) error
}

// Renderer renders both views.
type Renderer interface {
	ListRenderer
	SessionRenderer
}
