package message

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/ui/cn"
)

const (
	rowBaseClass      = "group flex w-full items-end justify-end gap-2 py-4"
	rowUserClass      = "is-user"
	rowAssistantClass = "is-assistant flex-row-reverse justify-end"
	rowChildWidth     = "[&>div]:max-w-[80%]"
)

// Props configures Message.
type Props struct {
	IsUser bool
	Class  string
	Attrs  []g.Node
}

// Message renders the row that holds an avatar and a Content body. It also
// emits the is-user / is-assistant marker classes so stylesheets keyed on
// the ancestor class keep matching.
func Message(props Props, children ...g.Node) g.Node {
	marker := rowAssistantClass
	if props.IsUser {
		marker = rowUserClass
	}
	return h.Div(
		h.Class(cn.Merge(rowBaseClass, marker, rowChildWidth, props.Class)),
		g.Group(props.Attrs),
		g.Group(children),
	)
}
