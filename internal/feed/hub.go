package feed

import (
	"context"
	"sync"

	"pokedex-companion/internal/domain"

	"github.com/rs/zerolog"
)

// Hub is the in-process live-query primitive for the feed: every change
// pushes the full ordered snapshot to every subscriber. Delivery is
// latest-wins per subscriber, so a slow reader skips intermediate
// snapshots instead of blocking the writer.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan []domain.FeedPost
	nextID uint64
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subs:   make(map[uint64]chan []domain.FeedPost),
		logger: logger,
	}
}

// Subscribe registers a listener and queues initial as its first delivery.
// The channel is closed and the listener removed when ctx ends; there is
// no separate unsubscribe call to forget.
func (h *Hub) Subscribe(ctx context.Context, initial []domain.FeedPost) <-chan []domain.FeedPost {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan []domain.FeedPost, 1)
	ch <- initial
	h.subs[id] = ch
	count := len(h.subs)
	h.mu.Unlock()

	h.logger.Debug().Uint64("sub_id", id).Int("subscribers", count).Msg("feed subscriber registered")

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
		remaining := len(h.subs)
		h.mu.Unlock()
		h.logger.Debug().Uint64("sub_id", id).Int("subscribers", remaining).Msg("feed subscriber removed")
	}()

	return ch
}

// Broadcast delivers a snapshot to every live subscriber. A pending
// undelivered snapshot is replaced by the newer one.
func (h *Hub) Broadcast(snapshot []domain.FeedPost) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
