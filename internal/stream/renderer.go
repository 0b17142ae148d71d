// Package stream pushes newly posted transcript messages to connected
// browsers as HTMX out-of-band fragments over websockets.
package stream

import (
	"context"
	"fmt"

	"github.com/nfrund/parley/internal/hub"
	"github.com/nfrund/parley/internal/pubsub"
	"github.com/nfrund/parley/internal/rendering"
	"github.com/nfrund/parley/internal/transcript"
	"github.com/nfrund/parley/internal/view"
)

// Renderer turns TopicMessageCreated events into rendered fragments on the hub.
type Renderer struct {
	sub      pubsub.Subscriber
	hub      *hub.Hub
	renderer rendering.Renderer
}

// NewRenderer creates a Renderer.
func NewRenderer(sub pubsub.Subscriber, h *hub.Hub, r rendering.Renderer) *Renderer {
	return &Renderer{sub: sub, hub: h, renderer: r}
}

// Start subscribes to new transcript messages until ctx is canceled.
func (r *Renderer) Start(ctx context.Context) error {
	return r.sub.Subscribe(ctx, transcript.TopicMessageCreated, r.handle)
}

func (r *Renderer) handle(ctx context.Context, msg pubsub.Message) error {
	m, err := transcript.DecodeMessage(msg.Payload)
	if err != nil {
		return err
	}
	fragment, err := r.renderer.RenderComponent(ctx, view.AdaptGomponentToTempl(view.AppendMessage(m)))
	if err != nil {
		return fmt.Errorf("failed to render message %s: %w", m.ID, err)
	}
	r.hub.Broadcast(fragment)
	return nil
}
