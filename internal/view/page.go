package view

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/domain"
)

const (
	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSSrc   = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
	tailwindSrc = "https://cdn.tailwindcss.com"
)

// PageData is everything the transcript page needs.
type PageData struct {
	Title    string
	Flash    FlashData
	Messages []domain.Message
}

// PageTitle returns the document title for the given page title.
func PageTitle(title string) string {
	if title != "" {
		return title + " - Parley"
	}
	return "Parley"
}

// Page renders the full transcript document.
func Page(d PageData) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(PageTitle(d.Title))),
				h.Script(h.Src(tailwindSrc)),
				h.Script(h.Src(htmxSrc)),
				h.Script(h.Src(htmxWSSrc)),
			),
			h.Body(
				h.Class("bg-background text-foreground"),
				h.Main(
					h.Class("mx-auto flex max-w-3xl flex-col gap-4 p-6"),
					h.H1(h.Class("text-2xl font-semibold"), g.Text("Transcript")),
					flashBanner(d.Flash),
					h.Div(
						hx.Ext("ws"),
						g.Attr("ws-connect", "/ws"),
						Transcript(d.Messages),
					),
					Composer(),
				),
			),
		),
	)
}

func flashBanner(f FlashData) g.Node {
	if len(f.Success) == 0 && len(f.Error) == 0 {
		return nil
	}
	return h.Div(
		h.ID("flash"),
		g.Map(f.Success, func(s string) g.Node {
			return h.P(h.Class("rounded bg-green-100 px-3 py-2 text-green-900"), h.Role("status"), g.Text(s))
		}),
		g.Map(f.Error, func(s string) g.Node {
			return h.P(h.Class("rounded bg-red-100 px-3 py-2 text-red-900"), h.Role("alert"), g.Text(s))
		}),
	)
}

// Composer renders the message form. With htmx it posts in the background
// and relies on the live stream to show the new row; without it the form
// falls back to a regular POST and redirect.
func Composer() g.Node {
	return h.Form(
		h.ID("composer"),
		h.Class("flex flex-col gap-2"),
		h.Method("post"),
		h.Action("/messages"),
		hx.Post("/messages"),
		hx.Swap("none"),
		g.Attr("hx-on::after-request", "if (event.detail.successful) this.reset()"),
		h.Div(
			h.Class("flex gap-2"),
			h.Select(
				h.Name("role"),
				h.Option(h.Value(string(domain.RoleUser)), g.Text("User")),
				h.Option(h.Value(string(domain.RoleAssistant)), g.Text("Assistant")),
				h.Option(h.Value(string(domain.RoleSystem)), g.Text("System")),
			),
			h.Input(h.Type("text"), h.Name("author"), h.Placeholder("Name"), h.MaxLength("64")),
		),
		h.Textarea(h.Name("content"), h.Required(), h.MaxLength("4000"), h.Placeholder("Write a message")),
		h.Button(h.Type("submit"), g.Text("Send")),
	)
}
