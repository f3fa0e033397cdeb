package feed_test

import (
	"context"
	"testing"
	"time"

	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/feed"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(content string) domain.FeedPost {
	return domain.FeedPost{ID: content, Content: content, CreatedAt: time.Now()}
}

func recv(t *testing.T, ch <-chan []domain.FeedPost) []domain.FeedPost {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok)
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	hub := feed.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial := []domain.FeedPost{post("hello")}
	ch := hub.Subscribe(ctx, initial)

	assert.Equal(t, initial, recv(t, ch))
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := feed.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := hub.Subscribe(ctx, nil)
	b := hub.Subscribe(ctx, nil)
	recv(t, a)
	recv(t, b)

	snap := []domain.FeedPost{post("new")}
	hub.Broadcast(snap)

	assert.Equal(t, snap, recv(t, a))
	assert.Equal(t, snap, recv(t, b))
}

func TestSlowSubscriberGetsLatestSnapshot(t *testing.T) {
	hub := feed.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Subscribe(ctx, nil)
	recv(t, ch)

	// Two broadcasts without a read in between: the pending snapshot is
	// replaced, never queued behind.
	hub.Broadcast([]domain.FeedPost{post("stale")})
	hub.Broadcast([]domain.FeedPost{post("fresh")})

	snap := recv(t, ch)
	require.Len(t, snap, 1)
	assert.Equal(t, "fresh", snap[0].Content)
}

func TestUnsubscribeOnContextEnd(t *testing.T) {
	hub := feed.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	ch := hub.Subscribe(ctx, nil)
	recv(t, ch)
	require.Equal(t, 1, hub.SubscriberCount())

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancellation")
	}

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 0 },
		2*time.Second, 10*time.Millisecond)

	// A broadcast after teardown must not panic.
	hub.Broadcast([]domain.FeedPost{post("late")})
}
