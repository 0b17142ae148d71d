// Package message renders the building blocks of a chat transcript row:
// the row container, the author avatar and the styled message body.
package message

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/ui/cn"
)

const (
	contentBaseClass = "flex flex-col gap-2 text-sm text-foreground"
	contentUserClass = "bg-primary text-primary-foreground px-4 py-3"
	contentUserInner = "dark"
)

// ContentProps configures Content.
type ContentProps struct {
	// IsUser marks the message as authored by the end user and switches on
	// the user colour scheme, padding and the dark inner wrapper.
	IsUser bool
	// Class is merged after the built-in classes and wins on conflict.
	Class string
	// Attrs are spread onto the container in order. Use Class for classes.
	Attrs []g.Node
}

// Content renders a message body. The container carries the merged classes
// and the pass-through attributes; children are wrapped exactly once by an
// inner div.
func Content(props ContentProps, children ...g.Node) g.Node {
	return h.Div(
		h.Class(cn.Merge(contentBaseClass, cn.If(props.IsUser, contentUserClass), props.Class)),
		g.Group(props.Attrs),
		h.Div(
			g.If(props.IsUser, h.Class(contentUserInner)),
			g.Group(children),
		),
	)
}
