package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) (Toast, bool) {
	t.Helper()
	select {
	case ts, ok := <-sub.C():
		return ts, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for toast")
		return Toast{}, false
	}
}

func TestFeed_Toast(t *testing.T) {
	t.Parallel()

	t.Run("delivers only to matching session", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(4)
		defer feed.Close()

		a := feed.Subscribe(context.Background(), "sess-a")
		b := feed.Subscribe(context.Background(), "sess-b")

		require.NoError(t, feed.Toast(context.Background(), Toast{SessionID: "sess-a", Title: "hi"}))

		ts, ok := receive(t, a)
		require.True(t, ok)
		assert.Equal(t, "hi", ts.Title)

		select {
		case <-b.C():
			t.Fatal("unexpected toast for other session")
		default:
		}
	})

	t.Run("fans out to every subscriber of a session", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(4)
		defer feed.Close()

		first := feed.Subscribe(context.Background(), "sess-1")
		second := feed.Subscribe(context.Background(), "sess-1")
		assert.Equal(t, 2, feed.Subscribers("sess-1"))

		require.NoError(t, feed.Toast(context.Background(), Toast{SessionID: "sess-1", Title: "both"}))

		for _, sub := range []*Subscription{first, second} {
			ts, ok := receive(t, sub)
			require.True(t, ok)
			assert.Equal(t, "both", ts.Title)
		}
	})

	t.Run("no subscribers is not an error", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(1)
		defer feed.Close()

		assert.NoError(t, feed.Toast(context.Background(), Toast{SessionID: "nobody"}))
	})

	t.Run("drops slow subscriber", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(1)
		defer feed.Close()

		sub := feed.Subscribe(context.Background(), "sess-1")
		require.NoError(t, feed.Toast(context.Background(), Toast{SessionID: "sess-1", Title: "1"}))
		require.NoError(t, feed.Toast(context.Background(), Toast{SessionID: "sess-1", Title: "2"}))

		assert.Equal(t, 0, feed.Subscribers("sess-1"))

		ts, ok := receive(t, sub)
		require.True(t, ok)
		assert.Equal(t, "1", ts.Title)
		_, ok = receive(t, sub)
		assert.False(t, ok)
	})

	t.Run("closed feed", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(1)
		require.NoError(t, feed.Close())
		require.NoError(t, feed.Close())

		err := feed.Toast(context.Background(), Toast{SessionID: "sess-1"})
		assert.ErrorIs(t, err, ErrFeedClosed)

		sub := feed.Subscribe(context.Background(), "sess-1")
		_, ok := <-sub.C()
		assert.False(t, ok)
	})
}

func TestFeed_SubscriptionLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(1)
		defer feed.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := feed.Subscribe(ctx, "sess-1")
		cancel()

		_, ok := receive(t, sub)
		assert.False(t, ok)
		assert.Eventually(t, func() bool { return feed.Subscribers("sess-1") == 0 }, time.Second, 10*time.Millisecond)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(1)
		defer feed.Close()

		sub := feed.Subscribe(context.Background(), "sess-1")
		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())
		assert.Equal(t, 0, feed.Subscribers("sess-1"))
		assert.Equal(t, "sess-1", sub.SessionID())
	})

	t.Run("forget closes session subscriptions", func(t *testing.T) {
		t.Parallel()

		feed := NewFeed(1)
		defer feed.Close()

		sub := feed.Subscribe(context.Background(), "sess-1")
		other := feed.Subscribe(context.Background(), "sess-2")
		feed.Forget("sess-1")

		_, ok := receive(t, sub)
		assert.False(t, ok)
		assert.Equal(t, 1, feed.Subscribers("sess-2"))
		require.NoError(t, other.Close())
	})
}
