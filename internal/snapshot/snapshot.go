package snapshot

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Collection identifies one of the replicated record collections.
type Collection string

const (
	Incomes     Collection = "incomes"
	Expenses    Collection = "expenses"
	Categories  Collection = "categories"
	BudgetItems Collection = "budgetItems"
)

// Snapshot is the complete, consistent state of one collection for one user,
// as of the moment it was published. Subscribers always receive whole
// collections, never deltas, so a reader can replace its local copy wholesale.
type Snapshot struct {
	Collection Collection
	UserId     int
	Timestamp  time.Time
	Records    any
}

type subscriber struct {
	userId      int
	collections map[Collection]bool
	ch          chan Snapshot
}

func (s *subscriber) wants(snap Snapshot) bool {
	return s.userId == snap.UserId && s.collections[snap.Collection]
}

// Hub fans out collection snapshots to subscribers. Delivery is latest-wins:
// a slow subscriber may miss intermediate snapshots but always ends up with
// the most recent full state, which supersedes anything it missed.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*subscriber)}
}

// Subscribe registers interest in the given collections for one user. The
// returned channel carries full snapshots. After the unsubscribe function
// returns, no further snapshots are delivered; at most one already-published
// snapshot may still be pending in the channel.
func (h *Hub) Subscribe(userId int, collections ...Collection) (<-chan Snapshot, func()) {
	wanted := make(map[Collection]bool, len(collections))
	for _, c := range collections {
		wanted[c] = true
	}
	sub := &subscriber{
		userId:      userId,
		collections: wanted,
		ch:          make(chan Snapshot, 1),
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = sub
	h.mu.Unlock()

	return sub.ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
}

// Publish delivers the snapshot to every matching subscriber without blocking.
// If a subscriber has not drained the previous snapshot, it is replaced: only
// the newest full state matters.
func (h *Hub) Publish(snap Snapshot) {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sub.wants(snap) {
			continue
		}
		select {
		case sub.ch <- snap:
		default:
			// Drop the stale pending snapshot, then try once more.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snap:
			default:
				log.Warnf("snapshot for %s dropped: subscriber not draining", snap.Collection)
			}
		}
	}
}
