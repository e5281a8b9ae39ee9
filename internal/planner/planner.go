// Package planner is the application layer behind the HTTP handlers. It
// delegates state changes to a storage driver, pushes vote deltas stamped
// with the store's vote version to the realtime channel and records metrics.
package planner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/lib/metrics"
	"studyPlanner/internal/lib/suggest"
	"studyPlanner/internal/models"
	"studyPlanner/internal/realtime"
	"studyPlanner/internal/storage"
)

// Storage is implemented by storage/postgres and storage/memory.
type Storage interface {
	CreatePendingEvent(ctx context.Context, e models.PendingEvent) (int64, error)
	GetPendingEvent(ctx context.Context, id int64) (*models.PendingEventDetails, error)
	ListPendingEvents(ctx context.Context, groupID int64) ([]models.PendingEvent, error)
	DeletePendingEvent(ctx context.Context, id int64, userID string) error
	Finalize(ctx context.Context, id int64, userID string) (*models.FinalizeResult, error)

	AddTimeOption(ctx context.Context, eventID int64, userID string, start, end int64) (int64, error)
	AddLocationOption(ctx context.Context, eventID int64, userID, location string) (int64, error)
	DeleteOption(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) error
	// Vote and Unvote return the event's vote version after the change, or
	// 0 when nothing changed.
	Vote(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) (int64, error)
	Unvote(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) (int64, error)

	JoinPending(ctx context.Context, eventID int64, userID string) error
	LeavePending(ctx context.Context, eventID int64, actorID, targetID string) error
	Moderate(ctx context.Context, scope models.Scope, eventID int64, actorID, targetID string, action models.ModerationAction) ([]models.VoteRef, error)
	IsMuted(ctx context.Context, scope models.Scope, eventID int64, userID string) (bool, error)

	CreateFinalizedEvent(ctx context.Context, e models.FinalizedEvent) (int64, error)
	GetFinalizedEvent(ctx context.Context, id int64) (*models.FinalizedEventDetails, error)
	ListUserEvents(ctx context.Context, userID string) ([]models.FinalizedEvent, error)
	JoinFinalized(ctx context.Context, id int64, userID string) error
	LeaveFinalized(ctx context.Context, id int64, userID string) error
	BusyIntervals(ctx context.Context, userIDs []string, window models.Interval) ([]models.Interval, error)
}

type Service struct {
	log         *slog.Logger
	store       Storage
	publisher   realtime.Publisher
	minDuration time.Duration
}

func New(log *slog.Logger, store Storage, publisher realtime.Publisher, minDuration time.Duration) *Service {
	return &Service{
		log:         log.With(slog.String("component", "planner")),
		store:       store,
		publisher:   publisher,
		minDuration: minDuration,
	}
}

func (s *Service) CreatePendingEvent(ctx context.Context, e models.PendingEvent) (int64, error) {
	return s.store.CreatePendingEvent(ctx, e)
}

func (s *Service) GetPendingEvent(ctx context.Context, id int64) (*models.PendingEventDetails, error) {
	return s.store.GetPendingEvent(ctx, id)
}

func (s *Service) ListPendingEvents(ctx context.Context, groupID int64) ([]models.PendingEvent, error) {
	return s.store.ListPendingEvents(ctx, groupID)
}

func (s *Service) DeletePendingEvent(ctx context.Context, id int64, userID string) error {
	return s.store.DeletePendingEvent(ctx, id, userID)
}

// Finalize is observed through the store's finalize hook, see
// FinalizeObserver.
func (s *Service) Finalize(ctx context.Context, id int64, userID string) (*models.FinalizeResult, error) {
	return s.store.Finalize(ctx, id, userID)
}

// FinalizeObserver records committed finalizations. The storage drivers call
// it for explicit ones and for those the registration deadline triggers on
// first access.
func FinalizeObserver(log *slog.Logger) storage.FinalizeHook {
	log = log.With(slog.String("component", "planner"))

	return func(id int64, res models.FinalizeResult, lazy bool) {
		trigger := "explicit"
		if lazy {
			trigger = "deadline"
		}

		metrics.Finalization(string(res.Outcome), trigger)

		attrs := []any{
			slog.Int64("pending_event_id", id),
			slog.String("outcome", string(res.Outcome)),
			slog.String("trigger", trigger),
		}
		if res.Event != nil {
			attrs = append(attrs, slog.Int64("finalized_event_id", res.Event.ID))
		}
		log.Info("pending event finalized", attrs...)
	}
}

func (s *Service) AddTimeOption(ctx context.Context, eventID int64, userID string, start, end int64) (int64, error) {
	return s.store.AddTimeOption(ctx, eventID, userID, start, end)
}

func (s *Service) AddLocationOption(ctx context.Context, eventID int64, userID, location string) (int64, error) {
	return s.store.AddLocationOption(ctx, eventID, userID, location)
}

func (s *Service) DeleteOption(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) error {
	return s.store.DeleteOption(ctx, eventID, kind, optionID, userID)
}

func (s *Service) Vote(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) error {
	seq, err := s.store.Vote(ctx, eventID, kind, optionID, userID)
	if err != nil {
		return err
	}
	if seq > 0 {
		metrics.Vote(string(kind), "vote")
		s.publish(ctx, realtime.NewDelta(eventID, kind, optionID, userID, 1, seq))
	}
	return nil
}

func (s *Service) Unvote(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) error {
	seq, err := s.store.Unvote(ctx, eventID, kind, optionID, userID)
	if err != nil {
		return err
	}
	if seq > 0 {
		metrics.Vote(string(kind), "unvote")
		s.publish(ctx, realtime.NewDelta(eventID, kind, optionID, userID, -1, seq))
	}
	return nil
}

// publish never fails the request: the vote is already committed and
// observers converge on the next snapshot.
func (s *Service) publish(ctx context.Context, d models.VoteDelta) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, d); err != nil {
		metrics.DeltaPublishFailed()
		s.log.Warn("failed to publish vote delta",
			sl.Err(err),
			slog.Int64("pending_event_id", d.EventID),
			slog.String("delta_id", d.ID),
		)
	}
}

func (s *Service) Join(ctx context.Context, eventID int64, userID string) error {
	err := s.store.JoinPending(ctx, eventID, userID)

	switch {
	case err == nil:
		metrics.Join("joined")
	case errors.Is(err, storage.ErrCapacityExceeded):
		metrics.Join("capacity_exceeded")
	case errors.Is(err, storage.ErrBanned):
		metrics.Join("banned")
	}

	return err
}

func (s *Service) Leave(ctx context.Context, eventID int64, actorID, targetID string) error {
	return s.store.LeavePending(ctx, eventID, actorID, targetID)
}

// Moderate applies a moderation action. Votes purged by a pending-scope ban
// are announced as unvote deltas.
func (s *Service) Moderate(ctx context.Context, scope models.Scope, eventID int64, actorID, targetID string, action models.ModerationAction) error {
	purged, err := s.store.Moderate(ctx, scope, eventID, actorID, targetID, action)
	if err != nil {
		return err
	}

	metrics.Moderation(string(scope), string(action))
	s.log.Info("moderation applied",
		slog.String("scope", string(scope)),
		slog.Int64("event_id", eventID),
		slog.String("action", string(action)),
		slog.String("target_user_id", targetID),
		slog.Int("purged_votes", len(purged)),
	)

	for _, v := range purged {
		metrics.Vote(string(v.Kind), "purge")
		s.publish(ctx, realtime.NewDelta(v.EventID, v.Kind, v.OptionID, v.UserID, -1, v.Seq))
	}

	return nil
}

func (s *Service) IsMuted(ctx context.Context, scope models.Scope, eventID int64, userID string) (bool, error) {
	return s.store.IsMuted(ctx, scope, eventID, userID)
}

func (s *Service) CreateFinalizedEvent(ctx context.Context, e models.FinalizedEvent) (int64, error) {
	return s.store.CreateFinalizedEvent(ctx, e)
}

func (s *Service) GetFinalizedEvent(ctx context.Context, id int64) (*models.FinalizedEventDetails, error) {
	return s.store.GetFinalizedEvent(ctx, id)
}

func (s *Service) ListUserEvents(ctx context.Context, userID string) ([]models.FinalizedEvent, error) {
	return s.store.ListUserEvents(ctx, userID)
}

func (s *Service) JoinFinalized(ctx context.Context, id int64, userID string) error {
	return s.store.JoinFinalized(ctx, id, userID)
}

func (s *Service) LeaveFinalized(ctx context.Context, id int64, userID string) error {
	return s.store.LeaveFinalized(ctx, id, userID)
}

// SuggestRequest asks for free time of UserIDs inside Window. Busy carries
// intervals from external calendars; committed events of the users are
// looked up in storage. MinDuration overrides the configured minimum.
type SuggestRequest struct {
	UserIDs     []string
	Busy        []models.Interval
	Window      models.Interval
	MinDuration *int64
}

func (s *Service) SuggestTimes(ctx context.Context, req SuggestRequest) ([]models.Interval, error) {
	start := time.Now()
	defer metrics.ObserveSuggest(start)

	minDuration := s.minDuration.Milliseconds()
	if req.MinDuration != nil {
		minDuration = *req.MinDuration
	}

	busy := append([]models.Interval(nil), req.Busy...)

	if len(req.UserIDs) > 0 && req.Window.End > req.Window.Start {
		committed, err := s.store.BusyIntervals(ctx, req.UserIDs, req.Window)
		if err != nil {
			return nil, err
		}
		busy = append(busy, committed...)
	}

	return suggest.CalcSuggestedTimes(busy, req.Window, minDuration)
}
