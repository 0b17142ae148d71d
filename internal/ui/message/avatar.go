package message

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/ui/cn"
)

const (
	avatarClass         = "relative flex size-8 shrink-0 overflow-hidden rounded-full ring-1 ring-border"
	avatarImageClass    = "aspect-square size-full mt-0 mb-0"
	avatarFallbackClass = "bg-muted flex size-full items-center justify-center rounded-full"
	defaultInitials     = "ME"
)

// AvatarProps configures Avatar.
type AvatarProps struct {
	// Src is the image URL. When empty the initials fallback is rendered.
	Src string
	// Name provides the fallback initials (its first two runes).
	Name  string
	Class string
	Attrs []g.Node
}

// Avatar renders the author picture for a message row.
func Avatar(props AvatarProps) g.Node {
	return h.Span(
		h.Class(cn.Merge(avatarClass, props.Class)),
		g.Group(props.Attrs),
		g.Iff(props.Src != "", func() g.Node {
			return h.Img(h.Class(avatarImageClass), h.Alt(""), h.Src(props.Src))
		}),
		g.Iff(props.Src == "", func() g.Node {
			return h.Span(h.Class(avatarFallbackClass), g.Text(Initials(props.Name)))
		}),
	)
}

// Initials returns the first two runes of name, or "ME" when name is empty.
func Initials(name string) string {
	r := []rune(name)
	switch {
	case len(r) == 0:
		return defaultInitials
	case len(r) < 2:
		return string(r)
	default:
		return string(r[:2])
	}
}
