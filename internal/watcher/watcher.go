// Package watcher follows the vote tallies of one pending event from the
// outside: it loads a snapshot over HTTP, then applies the websocket delta
// stream to a tally.Reconciler.
package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/lib/tally"
	"studyPlanner/internal/models"

	"github.com/gorilla/websocket"
)

// ErrResync is returned by Session when the server cut the stream because
// the watcher fell behind.
var ErrResync = errors.New("stream closed, resync required")

type snapshot struct {
	response.Response
	models.PendingEventDetails
}

type Watcher struct {
	log     *slog.Logger
	baseURL string
	eventID int64
	client  *http.Client
	dialer  *websocket.Dialer

	// OnSnapshot is called once per session after the reconciler is seeded.
	OnSnapshot func(details *models.PendingEventDetails)
	// OnChange is called after every delta that changed a count.
	OnChange func(e tally.Entity, count int)
}

func New(log *slog.Logger, baseURL string, eventID int64) *Watcher {
	return &Watcher{
		log:     log.With(slog.String("component", "watcher"), slog.Int64("event_id", eventID)),
		baseURL: strings.TrimRight(baseURL, "/"),
		eventID: eventID,
		client:  &http.Client{Timeout: 10 * time.Second},
		dialer:  websocket.DefaultDialer,
	}
}

// Run keeps a session alive until ctx is done, reloading the snapshot after
// every resync.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		_, err := w.Session(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrResync):
			w.log.Warn("resyncing")
		default:
			return err
		}
	}
}

// Session runs one snapshot+stream cycle and returns the reconciler it
// built, which holds the last known counts.
func (w *Watcher) Session(ctx context.Context) (*tally.Reconciler, error) {
	const op = "watcher.Session"

	conn, err := w.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	// The server subscribes before completing the handshake, so every delta
	// committed after the snapshot arrives on conn. Deltas the snapshot
	// already reflects carry a seq not above its vote version and are
	// discarded.
	details, err := w.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec := tally.NewReconciler()
	rec.Seed(*details)

	w.log.Info("snapshot loaded",
		slog.String("state", string(details.Event.State)),
		slog.Int("time_options", len(details.TimeOptions)),
		slog.Int("location_options", len(details.LocationOptions)),
	)
	if w.OnSnapshot != nil {
		w.OnSnapshot(details)
	}

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		var d models.VoteDelta
		if err = conn.ReadJSON(&d); err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseTryAgainLater {
				return rec, ErrResync
			}
			if ctx.Err() != nil {
				return rec, nil
			}
			return rec, fmt.Errorf("%s: %w", op, err)
		}

		if rec.Apply(d) {
			e := tally.Entity{Kind: d.Kind, ID: d.EntityID}
			count := rec.Count(e)
			w.log.Debug("tally changed", slog.String("kind", string(e.Kind)), slog.Int64("option_id", e.ID), slog.Int("votes", count))
			if w.OnChange != nil {
				w.OnChange(e, count)
			}
		}
	}
}

func (w *Watcher) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(fmt.Sprintf("%s/pending-events/%d/stream", w.baseURL, w.eventID))
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := w.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func (w *Watcher) snapshot(ctx context.Context) (*models.PendingEventDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/pending-events/%d", w.baseURL, w.eventID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			w.log.Warn("failed to close snapshot body", sl.Err(err))
		}
	}()

	var s snapshot
	if err = json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Status != response.StatusOK {
		return nil, fmt.Errorf("snapshot: %s (%d)", s.Error, resp.StatusCode)
	}

	return &s.PendingEventDetails, nil
}
