package message_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/ui/message"
)

func TestMessage_Markers(t *testing.T) {
	user := outerClasses(t, render(t, message.Message(message.Props{IsUser: true})))
	assert.Contains(t, user, "group")
	assert.Contains(t, user, "is-user")
	assert.NotContains(t, user, "is-assistant")
	assert.NotContains(t, user, "flex-row-reverse")

	assistant := outerClasses(t, render(t, message.Message(message.Props{})))
	assert.Contains(t, assistant, "group")
	assert.Contains(t, assistant, "is-assistant")
	assert.Contains(t, assistant, "flex-row-reverse")
	assert.NotContains(t, assistant, "is-user")
}

func TestMessage_ComposesContent(t *testing.T) {
	html := render(t, message.Message(
		message.Props{IsUser: true, Attrs: []g.Node{h.ID("row-1")}},
		message.Content(message.ContentProps{IsUser: true}, g.Text("Hello")),
	))

	assert.Equal(t, 1, strings.Count(html, `id="row-1"`))
	assert.Equal(t, 1, strings.Count(html, "Hello"))
	assert.Contains(t, html, `<div class="dark">Hello</div>`)
}

func TestAvatar(t *testing.T) {
	t.Run("image", func(t *testing.T) {
		html := render(t, message.Avatar(message.AvatarProps{Src: "/a.png", Name: "Ada"}))
		assert.Contains(t, html, `src="/a.png"`)
		assert.Contains(t, html, `alt=""`)
		assert.NotContains(t, html, ">Ad<")
	})

	t.Run("fallback initials", func(t *testing.T) {
		html := render(t, message.Avatar(message.AvatarProps{Name: "Ada"}))
		assert.NotContains(t, html, "<img")
		assert.Contains(t, html, ">Ad</span>")
	})

	t.Run("caller class", func(t *testing.T) {
		classes := outerClasses(t, render(t, message.Avatar(message.AvatarProps{Class: "rounded-md"})))
		assert.Contains(t, classes, "rounded-md")
		assert.NotContains(t, classes, "rounded-full")
	})
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "ME", message.Initials(""))
	assert.Equal(t, "A", message.Initials("A"))
	assert.Equal(t, "As", message.Initials("Assistant"))
	assert.Equal(t, "Zo", message.Initials("Zoë"))
	assert.Equal(t, "日本", message.Initials("日本語"))
}
