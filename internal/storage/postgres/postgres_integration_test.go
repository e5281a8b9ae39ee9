package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type finalizeRecorder struct {
	mu   sync.Mutex
	lazy []bool
}

func (r *finalizeRecorder) hook(_ int64, _ models.FinalizeResult, lazy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lazy = append(r.lazy, lazy)
}

func (r *finalizeRecorder) Lazy() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.lazy...)
}

// newContainerStorage starts a throwaway postgres, applies the migrations and
// returns a driver on it. Skipped when no container runtime is available.
func newContainerStorage(t *testing.T, opts ...storage.Option) (*Storage, *testClock) {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("study_planner"),
		tcpostgres.WithUsername("planner"),
		tcpostgres.WithPassword("planner"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))

	c := &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	s := New(db, append([]storage.Option{storage.WithClock(c.Now)}, opts...)...)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { _ = s.Close() })

	return s, c
}

func createTestEvent(t *testing.T, s *Storage, c *testClock, limit *int) (int64, models.PendingEvent) {
	t.Helper()

	now := storage.Millis(c.Now())
	e := models.PendingEvent{
		GroupID:              7,
		Title:                "Operating systems review",
		EventCreatorID:       "alice",
		PossibleStartTime:    now + int64(48*time.Hour/time.Millisecond),
		PossibleEndTime:      now + int64(72*time.Hour/time.Millisecond),
		RegistrationDeadline: now + int64(24*time.Hour/time.Millisecond),
		ParticipantLimit:     limit,
	}

	id, err := s.CreatePendingEvent(context.Background(), e)
	require.NoError(t, err)
	e.ID = id

	return id, e
}

func TestJoinCapacityConcurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, c := newContainerStorage(t)
	limit := 3
	id, _ := createTestEvent(t, s, c, &limit)

	var joined, full atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			err := s.JoinPending(ctx, id, u)
			switch {
			case err == nil:
				joined.Add(1)
			case errors.Is(err, storage.ErrCapacityExceeded):
				full.Add(1)
			default:
				t.Errorf("join %s: %v", u, err)
			}
		}(fmt.Sprintf("user-%d", i))
	}
	wg.Wait()

	// the creator holds the first seat
	assert.Equal(t, int32(2), joined.Load())
	assert.Equal(t, int32(8), full.Load())

	d, err := s.GetPendingEvent(ctx, id)
	require.NoError(t, err)
	assert.Len(t, d.Participants, 3)
}

func TestFinalizeConcurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	s, c := newContainerStorage(t, storage.WithFinalizeHook(rec.hook))
	id, e := createTestEvent(t, s, c, nil)

	optID, err := s.AddTimeOption(ctx, id, "alice", e.PossibleStartTime, e.PossibleStartTime+3_600_000)
	require.NoError(t, err)
	_, err = s.Vote(ctx, id, models.OptionTime, optID, "alice")
	require.NoError(t, err)

	var finalized, already atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Finalize(ctx, id, "alice")
			switch {
			case err == nil && res.Outcome == models.OutcomeFinalized:
				finalized.Add(1)
			case errors.Is(err, storage.ErrAlreadyFinalized):
				already.Add(1)
			default:
				t.Errorf("unexpected result %v, %v", res, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), finalized.Load())
	assert.Equal(t, int32(9), already.Load())
	assert.Equal(t, []bool{false}, rec.Lazy())

	events, err := s.ListUserEvents(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, e.PossibleStartTime, events[0].StartTime)
}

func TestDeadlineFinalizesOnRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	s, c := newContainerStorage(t, storage.WithFinalizeHook(rec.hook))
	id, e := createTestEvent(t, s, c, nil)

	require.NoError(t, s.JoinPending(ctx, id, "bob"))
	optID, err := s.AddTimeOption(ctx, id, "bob", e.PossibleStartTime, e.PossibleStartTime+3_600_000)
	require.NoError(t, err)

	c.Advance(24 * time.Hour)

	d, err := s.GetPendingEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateFinalized, d.Event.State)
	require.NotNil(t, d.Event.FinalizedEventID)
	assert.Empty(t, d.TimeOptions)
	assert.Empty(t, d.Participants)

	fd, err := s.GetFinalizedEvent(ctx, *d.Event.FinalizedEventID)
	require.NoError(t, err)
	assert.Len(t, fd.Participants, 2)

	_, err = s.Vote(ctx, id, models.OptionTime, optID, "bob")
	assert.ErrorIs(t, err, storage.ErrAlreadyFinalized)
	_, err = s.Finalize(ctx, id, "bob")
	assert.ErrorIs(t, err, storage.ErrAlreadyFinalized)

	assert.Equal(t, []bool{true}, rec.Lazy())
}

// A non-creator's Finalize past the deadline commits the deadline
// finalization before being refused.
func TestFinalizeChecksDeadlineBeforePermission(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	s, c := newContainerStorage(t, storage.WithFinalizeHook(rec.hook))
	id, _ := createTestEvent(t, s, c, nil)

	c.Advance(25 * time.Hour)

	_, err := s.Finalize(ctx, id, "bob")
	assert.ErrorIs(t, err, storage.ErrAlreadyFinalized)
	assert.Equal(t, []bool{true}, rec.Lazy())

	events, err := s.ListPendingEvents(ctx, 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.StateExpiredNoWinner, events[0].State)
}

func TestVoteIdempotentAndVersioned(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, c := newContainerStorage(t)
	id, e := createTestEvent(t, s, c, nil)

	optID, err := s.AddTimeOption(ctx, id, "alice", e.PossibleStartTime, e.PossibleStartTime+3_600_000)
	require.NoError(t, err)

	seq, err := s.Vote(ctx, id, models.OptionTime, optID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	seq, err = s.Vote(ctx, id, models.OptionTime, optID, "alice")
	require.NoError(t, err)
	assert.Zero(t, seq)

	seq, err = s.Unvote(ctx, id, models.OptionTime, optID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	// concurrent duplicates: exactly one of them changes anything
	var changed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := s.Vote(ctx, id, models.OptionTime, optID, "alice")
			if err != nil {
				t.Errorf("vote: %v", err)
				return
			}
			if seq > 0 {
				changed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), changed.Load())

	d, err := s.GetPendingEvent(ctx, id)
	require.NoError(t, err)
	require.Len(t, d.TimeOptions, 1)
	assert.Equal(t, 1, d.TimeOptions[0].Votes)
	assert.Equal(t, []string{"alice"}, d.TimeOptions[0].Voters)
	assert.Equal(t, int64(3), d.Event.VoteVersion)
}

func TestLeaveKeepsVotesBanPurgesThem(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, c := newContainerStorage(t)
	id, e := createTestEvent(t, s, c, nil)

	require.NoError(t, s.JoinPending(ctx, id, "bob"))
	require.NoError(t, s.JoinPending(ctx, id, "carol"))

	_, err := s.AddTimeOption(ctx, id, "alice", e.PossibleStartTime, e.PossibleStartTime+3_600_000)
	require.NoError(t, err)
	c.Advance(time.Minute)
	later, err := s.AddTimeOption(ctx, id, "bob", e.PossibleStartTime+7_200_000, e.PossibleStartTime+10_800_000)
	require.NoError(t, err)
	loc, err := s.AddLocationOption(ctx, id, "carol", "Room 204")
	require.NoError(t, err)

	_, err = s.Vote(ctx, id, models.OptionTime, later, "bob")
	require.NoError(t, err)
	_, err = s.Vote(ctx, id, models.OptionLocation, loc, "carol")
	require.NoError(t, err)

	require.NoError(t, s.LeavePending(ctx, id, "bob", "bob"))

	purged, err := s.Moderate(ctx, models.ScopePending, id, "alice", "carol", models.ActionBan)
	require.NoError(t, err)
	assert.Equal(t, []models.VoteRef{
		{EventID: id, Kind: models.OptionLocation, OptionID: loc, UserID: "carol", Seq: 3},
	}, purged)

	res, err := s.Finalize(ctx, id, "alice")
	require.NoError(t, err)
	require.NotNil(t, res.Event)
	// bob's vote survives the leave, so the later option wins
	assert.Equal(t, e.PossibleStartTime+7_200_000, res.Event.StartTime)
	require.NotNil(t, res.Event.Location)
	assert.Equal(t, "Room 204", *res.Event.Location)
}
