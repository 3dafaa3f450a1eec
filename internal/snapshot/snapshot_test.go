package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHub_DeliversToMatchingSubscriber(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe(1, Incomes)
	defer unsubscribe()

	hub.Publish(Snapshot{Collection: Incomes, UserId: 1, Records: []string{"a", "b"}})

	select {
	case snap := <-ch:
		assert.Equal(t, Incomes, snap.Collection)
		assert.Equal(t, 1, snap.UserId)
		assert.Equal(t, []string{"a", "b"}, snap.Records)
		assert.False(t, snap.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestHub_FiltersByUserAndCollection(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe(1, Incomes)
	defer unsubscribe()

	hub.Publish(Snapshot{Collection: Expenses, UserId: 1})
	hub.Publish(Snapshot{Collection: Incomes, UserId: 2})

	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot delivered: %+v", snap)
	default:
	}
}

func TestHub_LatestSnapshotWins(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe(1, Categories)
	defer unsubscribe()

	hub.Publish(Snapshot{Collection: Categories, UserId: 1, Records: "old"})
	hub.Publish(Snapshot{Collection: Categories, UserId: 1, Records: "new"})

	snap := <-ch
	assert.Equal(t, "new", snap.Records)
}

func TestHub_NoDeliveryAfterUnsubscribe(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe(1, Incomes)
	unsubscribe()
	// Unsubscribing twice must be safe.
	unsubscribe()

	hub.Publish(Snapshot{Collection: Incomes, UserId: 1})

	_, open := <-ch
	assert.False(t, open)
}
