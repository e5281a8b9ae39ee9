package watcher

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"studyPlanner/internal/http-server/handlers/pending/getPending"
	"studyPlanner/internal/http-server/handlers/realtime/stream"
	"studyPlanner/internal/lib/logger/handlers/slogdiscard"
	"studyPlanner/internal/lib/tally"
	"studyPlanner/internal/models"
	"studyPlanner/internal/planner"
	"studyPlanner/internal/realtime"
	"studyPlanner/internal/storage"
	"studyPlanner/internal/storage/memory"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hour = int64(time.Hour / time.Millisecond)

func TestWatcherConvergesOnServerCounts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	log := slogdiscard.NewDiscardLogger()
	hub := realtime.NewHub(64)
	svc := planner.New(log, memory.New(storage.WithClock(func() time.Time { return now })), hub, 0)

	start := now.UnixMilli() + 48*hour
	eventID, err := svc.CreatePendingEvent(ctx, models.PendingEvent{
		GroupID:              1,
		Title:                "Stats study session",
		EventCreatorID:       "alice",
		PossibleStartTime:    start,
		PossibleEndTime:      start + 6*hour,
		RegistrationDeadline: start - 24*hour,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, eventID, "bob"))

	optID, err := svc.AddTimeOption(ctx, eventID, "alice", start, start+hour)
	require.NoError(t, err)
	require.NoError(t, svc.Vote(ctx, eventID, models.OptionTime, optID, "alice"))

	router := chi.NewRouter()
	router.Get("/pending-events/{id}", getPending.New(log, svc))
	router.Get("/pending-events/{id}/stream", stream.New(log, hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	var mu sync.Mutex
	var history []int

	loaded := make(chan int, 1)

	w := New(log, srv.URL, eventID)
	w.OnSnapshot = func(d *models.PendingEventDetails) {
		loaded <- d.TimeOptions[0].Votes
	}
	w.OnChange = func(e tally.Entity, count int) {
		mu.Lock()
		defer mu.Unlock()
		history = append(history, count)
	}

	done := make(chan *tally.Reconciler, 1)
	go func() {
		rec, _ := w.Session(ctx)
		done <- rec
	}()

	select {
	case votes := <-loaded:
		require.Equal(t, 1, votes)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot not loaded")
	}

	require.Eventually(t, func() bool {
		return hub.Subscribers(eventID) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, svc.Vote(ctx, eventID, models.OptionTime, optID, "bob"))
	require.NoError(t, svc.Unvote(ctx, eventID, models.OptionTime, optID, "alice"))
	require.NoError(t, svc.Vote(ctx, eventID, models.OptionTime, optID, "alice"))

	entity := tally.Entity{Kind: models.OptionTime, ID: optID}

	details, err := svc.GetPendingEvent(ctx, eventID)
	require.NoError(t, err)
	want := details.TimeOptions[0].Votes
	require.Equal(t, 2, want)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(history) == 3
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{2, 1, 2}, history)
	mu.Unlock()

	cancel()

	select {
	case rec := <-done:
		require.NotNil(t, rec)
		assert.Equal(t, want, rec.Count(entity))
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}
}
