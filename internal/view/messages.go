package view

import (
	"time"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/domain"
	"github.com/nfrund/parley/internal/ui/message"
)

// TranscriptID is the DOM id of the transcript container.
const TranscriptID = "transcript"

// MessageDOMID returns the element id used for a message row.
func MessageDOMID(id string) string {
	return "msg-" + id
}

// MessageItem renders one transcript row: avatar plus message body.
func MessageItem(m domain.Message) g.Node {
	isUser := m.IsUser()
	return message.Message(
		message.Props{
			IsUser: isUser,
			Attrs: []g.Node{
				h.ID(MessageDOMID(m.ID)),
				h.Data("role", string(m.Role)),
			},
		},
		message.Avatar(message.AvatarProps{Name: m.Author}),
		message.Content(
			message.ContentProps{IsUser: isUser},
			h.Span(h.Class("text-xs font-medium opacity-70"), g.Text(m.Author)),
			h.P(h.Class("whitespace-pre-wrap"), g.Text(m.Content)),
			g.El("time",
				h.Class("text-xs opacity-50"),
				g.Attr("datetime", m.SentAt.Format(time.RFC3339)),
				g.Text(m.SentAt.Format("15:04")),
			),
		),
	)
}

// Transcript renders the container holding msgs in order.
func Transcript(msgs []domain.Message) g.Node {
	return h.Div(
		h.ID(TranscriptID),
		h.Class("flex flex-col"),
		g.Map(msgs, MessageItem),
	)
}

// AppendMessage wraps a row as an out-of-band swap that appends it to the
// transcript of every page receiving the fragment.
func AppendMessage(m domain.Message) g.Node {
	return h.Div(
		hx.SwapOOB("beforeend:#"+TranscriptID),
		MessageItem(m),
	)
}
