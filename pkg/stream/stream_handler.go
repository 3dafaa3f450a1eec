package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/pkg/budgetitem"
	"github.com/paydivvy/paydivvy/pkg/category"
	"github.com/paydivvy/paydivvy/pkg/expense"
	"github.com/paydivvy/paydivvy/pkg/income"
	"github.com/paydivvy/paydivvy/pkg/user"
	log "github.com/sirupsen/logrus"
)

type snapshotEvent struct {
	Collection string `json:"collection"`
	Timestamp  string `json:"timestamp"`
	Records    any    `json:"records"`
}

// CollectionLoader returns the current full state of one collection for the
// user in the context.
type CollectionLoader func(ctx context.Context) (any, error)

// StreamHandler pushes full-collection snapshots to the client over
// Server-Sent Events. Every event replaces the client's copy of that
// collection wholesale; there is no incremental patching.
type StreamHandler struct {
	hub     *snapshot.Hub
	loaders map[snapshot.Collection]CollectionLoader
}

func NewStreamHandler(hub *snapshot.Hub, loaders map[snapshot.Collection]CollectionLoader) *StreamHandler {
	return &StreamHandler{hub: hub, loaders: loaders}
}

func (handler *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	collections := parseCollections(r.URL.Query().Get("collections"))
	ch, unsubscribe := handler.hub.Subscribe(userId, collections...)
	defer unsubscribe()

	// The server-wide write timeout would sever the stream after its first
	// interval; this connection has to outlive it.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Debugf("could not clear write deadline: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log.Debugf("snapshot stream opened for user %d", userId)

	// A subscriber must not sit stale until the next mutation: each requested
	// collection's current state goes out first, then the hub takes over.
	for _, collection := range collections {
		loader, ok := handler.loaders[collection]
		if !ok {
			continue
		}
		records, err := loader(r.Context())
		if err != nil {
			log.Warnf("skipping initial %s snapshot: %v", collection, err)
			continue
		}
		if !handler.writeEvent(w, flusher, snapshot.Snapshot{
			Collection: collection,
			UserId:     userId,
			Timestamp:  time.Now(),
			Records:    records,
		}) {
			return
		}
	}

	for {
		select {
		case <-r.Context().Done():
			log.Debugf("snapshot stream closed for user %d", userId)
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if !handler.writeEvent(w, flusher, snap) {
				return
			}
		}
	}
}

func (handler *StreamHandler) writeEvent(w http.ResponseWriter, flusher http.Flusher, snap snapshot.Snapshot) bool {
	payload, err := json.Marshal(snapshotEvent{
		Collection: string(snap.Collection),
		Timestamp:  snap.Timestamp.Format(time.RFC3339),
		Records:    recordsToDTO(snap),
	})
	if err != nil {
		log.Errorf("failed to encode snapshot event: %v", err)
		return true
	}
	if _, err := w.Write([]byte("event: " + string(snap.Collection) + "\ndata: " + string(payload) + "\n\n")); err != nil {
		return false
	}
	flusher.Flush()
	return true
}

func parseCollections(raw string) []snapshot.Collection {
	if raw == "" {
		return []snapshot.Collection{snapshot.Incomes, snapshot.Expenses, snapshot.Categories, snapshot.BudgetItems}
	}
	var collections []snapshot.Collection
	for _, name := range strings.Split(raw, ",") {
		collections = append(collections, snapshot.Collection(strings.TrimSpace(name)))
	}
	return collections
}

func recordsToDTO(snap snapshot.Snapshot) any {
	switch records := snap.Records.(type) {
	case []income.Income:
		dtos := make([]income.IncomeDTO, 0, len(records))
		for _, record := range records {
			dtos = append(dtos, income.IncomeToDTO(record))
		}
		return dtos
	case []expense.Expense:
		dtos := make([]expense.ExpenseDTO, 0, len(records))
		for _, record := range records {
			dtos = append(dtos, expense.ExpenseToDTO(record))
		}
		return dtos
	case []category.Category:
		dtos := make([]category.CategoryDTO, 0, len(records))
		for _, record := range records {
			dtos = append(dtos, category.CategoryToDTO(record))
		}
		return dtos
	case []budgetitem.BudgetItem:
		dtos := make([]budgetitem.BudgetItemDTO, 0, len(records))
		for _, record := range records {
			dtos = append(dtos, budgetitem.BudgetItemToDTO(record))
		}
		return dtos
	default:
		return snap.Records
	}
}
