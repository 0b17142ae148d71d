package hub

import (
	"context"
	"log/slog"
)

// DefaultSendBuffer is the outbound buffer given to each subscriber.
const DefaultSendBuffer = 32

// Subscriber is a single consumer of rendered transcript fragments.
type Subscriber struct {
	// Send receives every broadcast fragment. The hub closes it when the
	// subscriber is unregistered, dropped for lagging, or the hub stops.
	Send chan []byte
}

// NewSubscriber returns a subscriber with a DefaultSendBuffer outbound queue.
func NewSubscriber() *Subscriber {
	return &Subscriber{Send: make(chan []byte, DefaultSendBuffer)}
}

// Hub fans fragments out to every registered subscriber. All state is owned
// by the Run goroutine.
type Hub struct {
	subscribers map[*Subscriber]bool

	broadcast  chan []byte
	register   chan *Subscriber
	unregister chan *Subscriber
	done       chan struct{}
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		broadcast:   make(chan []byte),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		done:        make(chan struct{}),
		subscribers: make(map[*Subscriber]bool),
	}
}

// Register adds s to the hub. It is a no-op once the hub has stopped.
func (h *Hub) Register(s *Subscriber) {
	select {
	case h.register <- s:
	case <-h.done:
	}
}

// Unregister removes s and closes its Send channel.
func (h *Hub) Unregister(s *Subscriber) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// Broadcast queues msg for every subscriber.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Run processes registrations and broadcasts until ctx is canceled, then
// closes every remaining subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for s := range h.subscribers {
				close(s.Send)
				delete(h.subscribers, s)
			}
			slog.Info("Hub stopped")
			return

		case s := <-h.register:
			h.subscribers[s] = true
			slog.Info("New subscriber registered", "total_subscribers", len(h.subscribers))

		case s := <-h.unregister:
			if _, ok := h.subscribers[s]; ok {
				delete(h.subscribers, s)
				close(s.Send)
				slog.Info("Subscriber unregistered", "total_subscribers", len(h.subscribers))
			}

		case msg := <-h.broadcast:
			slog.Debug("Broadcasting fragment", "recipient_count", len(h.subscribers))
			for s := range h.subscribers {
				select {
				case s.Send <- msg:
				default:
					// Buffer full: the client is stuck or gone.
					close(s.Send)
					delete(h.subscribers, s)
					slog.Warn("Unregistering slow subscriber", "total_subscribers", len(h.subscribers))
				}
			}
		}
	}
}
