package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/session"
)

// JobEvent is a job lifecycle notification pushed by the platform.
// Type is the combined tag, e.g. "job.created" or "job.updated".
type JobEvent struct {
	Type      string          `json:"type"`
	Entity    string          `json:"entity"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// JobWatcher subscribes to the platform's job event stream for a workspace
type JobWatcher struct {
	baseURL string
	session session.Store
}

// NewJobWatcher creates a watcher against the same base URL the transport
// uses. The http(s) scheme is rewritten to ws(s) at dial time.
func NewJobWatcher(baseURL string, sess session.Store) *JobWatcher {
	return &JobWatcher{baseURL: strings.TrimRight(baseURL, "/"), session: sess}
}

// Watch connects to the job stream and delivers events until the context is
// cancelled or the connection drops. The returned channel is closed on exit.
func (w *JobWatcher) Watch(ctx context.Context, workspaceID string) (<-chan JobEvent, error) {
	wsURL := strings.Replace(w.baseURL, "http", "ws", 1) + "/ws/jobs?workspace_id=" + workspaceID

	header := http.Header{}
	if token, ok := w.session.Token(); ok {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, err
	}

	events := make(chan JobEvent)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()
		for {
			var ev JobEvent
			if err := conn.ReadJSON(&ev); err != nil {
				if ctx.Err() == nil {
					log.Debug().Err(err).Str("workspace_id", workspaceID).Msg("Job stream closed")
				}
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
