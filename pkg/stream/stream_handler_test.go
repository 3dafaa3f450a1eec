package stream

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/pkg/income"
	"github.com/paydivvy/paydivvy/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamHandler_DeliversSnapshots(t *testing.T) {
	hub := snapshot.NewHub()
	handler := NewStreamHandler(hub, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := user.WithUser(r.Context(), user.User{Id: 1, Uid: "user-1"})
		handler.Stream(w, r.WithContext(ctx))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL + "?collections=incomes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Response headers are written after the subscription is registered, so
	// publishing now is guaranteed to reach the stream.
	hub.Publish(snapshot.Snapshot{
		Collection: snapshot.Incomes,
		UserId:     1,
		Records: []income.Income{
			{Id: "i1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), Source: "Acme", Received: 1000},
		},
	})

	eventLine, dataLine := readEvent(t, resp.Body)

	assert.Equal(t, "event: incomes", eventLine)
	assert.Contains(t, dataLine, `"collection":"incomes"`)
	assert.Contains(t, dataLine, `"source":"Acme"`)
}

func TestStreamHandler_SendsCurrentStateOnConnect(t *testing.T) {
	hub := snapshot.NewHub()
	loaders := map[snapshot.Collection]CollectionLoader{
		snapshot.Incomes: func(ctx context.Context) (any, error) {
			return []income.Income{
				{Id: "i1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), Source: "Acme", Received: 1000},
			}, nil
		},
	}
	handler := NewStreamHandler(hub, loaders)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := user.WithUser(r.Context(), user.User{Id: 1, Uid: "user-1"})
		handler.Stream(w, r.WithContext(ctx))
	}))
	defer server.Close()

	// No publication after connecting: the stream must carry the current
	// collection state on its own.
	resp, err := http.Get(server.URL + "?collections=incomes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	eventLine, dataLine := readEvent(t, resp.Body)

	assert.Equal(t, "event: incomes", eventLine)
	assert.Contains(t, dataLine, `"collection":"incomes"`)
	assert.Contains(t, dataLine, `"source":"Acme"`)
}

func TestStreamHandler_ClearsWriteDeadline(t *testing.T) {
	hub := snapshot.NewHub()
	handler := NewStreamHandler(hub, nil)

	recorder := &deadlineRecorder{ResponseRecorder: httptest.NewRecorder()}
	ctx, cancel := context.WithCancel(user.WithUser(context.Background(), user.User{Id: 1, Uid: "user-1"}))
	cancel()
	request := httptest.NewRequest(http.MethodGet, "/api/stream?collections=incomes", nil).WithContext(ctx)

	handler.Stream(recorder, request)

	require.Len(t, recorder.deadlines, 1)
	assert.True(t, recorder.deadlines[0].IsZero(), "write deadline should be cleared, not extended")
}

func TestStreamHandler_RequiresUser(t *testing.T) {
	hub := snapshot.NewHub()
	handler := NewStreamHandler(hub, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/stream", nil)

	handler.Stream(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestParseCollections(t *testing.T) {
	assert.Equal(t,
		[]snapshot.Collection{snapshot.Incomes, snapshot.Expenses, snapshot.Categories, snapshot.BudgetItems},
		parseCollections(""),
	)
	assert.Equal(t,
		[]snapshot.Collection{snapshot.Incomes, snapshot.Expenses},
		parseCollections("incomes, expenses"),
	)
}

// readEvent scans the body until one complete SSE event has been seen.
func readEvent(t *testing.T, body io.Reader) (eventLine, dataLine string) {
	t.Helper()
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			eventLine = line
		}
		if strings.HasPrefix(line, "data: ") {
			dataLine = line
			return
		}
	}
	t.Fatal("stream ended before a data line arrived")
	return
}

// deadlineRecorder lets http.ResponseController reach a write deadline
// setter during handler tests.
type deadlineRecorder struct {
	*httptest.ResponseRecorder
	deadlines []time.Time
}

func (r *deadlineRecorder) SetWriteDeadline(t time.Time) error {
	r.deadlines = append(r.deadlines, t)
	return nil
}
