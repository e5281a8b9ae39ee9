// Package memory is an in-process storage driver. One mutex serializes every
// call, which gives the same per-event atomicity the postgres driver gets
// from row locks. It backs `storage_driver: memory` and the lifecycle tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"
)

type members map[string]int64

type scopedKey struct {
	scope models.Scope
	id    int64
}

type Storage struct {
	mu   sync.Mutex
	opts storage.Options

	lastID int64

	pending         map[int64]*models.PendingEvent
	timeOptions     map[int64]*models.TimeOption
	locationOptions map[int64]*models.LocationOption
	votes           map[models.OptionKind]map[int64]members
	participants    map[int64]members

	finalized             map[int64]*models.FinalizedEvent
	finalizedParticipants map[int64]members

	bans  map[scopedKey]members
	mutes map[scopedKey]members
}

func New(opts ...storage.Option) *Storage {
	return &Storage{
		opts:            storage.BuildOptions(opts...),
		pending:         make(map[int64]*models.PendingEvent),
		timeOptions:     make(map[int64]*models.TimeOption),
		locationOptions: make(map[int64]*models.LocationOption),
		votes: map[models.OptionKind]map[int64]members{
			models.OptionTime:     {},
			models.OptionLocation: {},
		},
		participants:          make(map[int64]members),
		finalized:             make(map[int64]*models.FinalizedEvent),
		finalizedParticipants: make(map[int64]members),
		bans:                  make(map[scopedKey]members),
		mutes:                 make(map[scopedKey]members),
	}
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) now() int64 {
	return storage.Millis(s.opts.Now())
}

func (s *Storage) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *Storage) CreatePendingEvent(_ context.Context, e models.PendingEvent) (int64, error) {
	const op = "storage.memory.CreatePendingEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := lifecycle.ValidateNewPendingEvent(e, now); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	e.ID = s.nextID()
	e.State = models.StateOpen
	e.FinalizedEventID = nil
	e.VoteVersion = 0
	e.CreatedAt = now
	s.pending[e.ID] = &e
	s.participants[e.ID] = members{e.EventCreatorID: now}

	return e.ID, nil
}

// touch loads a pending event and finalizes it first when its deadline has
// passed. Callers hold s.mu.
func (s *Storage) touch(id int64) (*models.PendingEvent, error) {
	e, ok := s.pending[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	if lifecycle.Expired(*e, s.now()) {
		s.opts.Finalized(e.ID, s.finalize(e), true)
	}

	return e, nil
}

// touchOpen is touch for mutations: terminal events are rejected.
func (s *Storage) touchOpen(id int64) (*models.PendingEvent, error) {
	e, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	if e.State.Terminal() {
		return nil, storage.ErrAlreadyFinalized
	}
	return e, nil
}

func (s *Storage) GetPendingEvent(_ context.Context, id int64) (*models.PendingEventDetails, error) {
	const op = "storage.memory.GetPendingEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.touch(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.details(e), nil
}

func (s *Storage) details(e *models.PendingEvent) *models.PendingEventDetails {
	d := &models.PendingEventDetails{
		Event:           *e,
		TimeOptions:     s.listTimeOptions(e.ID),
		LocationOptions: s.listLocationOptions(e.ID),
		Participants:    sortedMembers(e.ID, s.participants[e.ID]),
	}
	return d
}

func (s *Storage) ListPendingEvents(_ context.Context, groupID int64) ([]models.PendingEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.PendingEvent, 0)
	for id, e := range s.pending {
		if e.GroupID != groupID {
			continue
		}
		if _, err := s.touch(id); err != nil {
			return nil, err
		}
		events = append(events, *e)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].PossibleStartTime != events[j].PossibleStartTime {
			return events[i].PossibleStartTime < events[j].PossibleStartTime
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}

func (s *Storage) DeletePendingEvent(_ context.Context, id int64, userID string) error {
	const op = "storage.memory.DeletePendingEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.touchOpen(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if e.EventCreatorID != userID {
		return fmt.Errorf("%s: %w", op, storage.ErrForbidden)
	}

	s.purgeOptions(id)
	delete(s.participants, id)
	delete(s.pending, id)
	delete(s.bans, scopedKey{models.ScopePending, id})
	delete(s.mutes, scopedKey{models.ScopePending, id})

	return nil
}

func (s *Storage) Finalize(_ context.Context, id int64, userID string) (*models.FinalizeResult, error) {
	const op = "storage.memory.Finalize"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.touchOpen(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if e.EventCreatorID != userID {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrForbidden)
	}

	res := s.finalize(e)
	s.opts.Finalized(id, res, false)

	return res, nil
}

// finalize converts an open event. Callers hold s.mu, which makes the
// OPEN -> FINALIZING -> terminal transition atomic.
func (s *Storage) finalize(e *models.PendingEvent) *models.FinalizeResult {
	e.State = models.StateFinalizing

	d := lifecycle.Decide(s.listTimeOptions(e.ID), s.listLocationOptions(e.ID), s.opts.RequireVotes)
	if d.Outcome == models.OutcomeExpiredNoWinner {
		e.State = models.StateExpiredNoWinner
		return &models.FinalizeResult{Outcome: d.Outcome}
	}

	now := s.now()
	fe := lifecycle.FinalizedFrom(*e, d, now)
	fe.ID = s.nextID()
	s.finalized[fe.ID] = &fe

	attendees := make(members, len(s.participants[e.ID]))
	for u := range s.participants[e.ID] {
		attendees[u] = now
	}
	s.finalizedParticipants[fe.ID] = attendees

	s.purgeOptions(e.ID)
	delete(s.participants, e.ID)

	e.State = models.StateFinalized
	e.FinalizedEventID = &fe.ID

	out := fe
	return &models.FinalizeResult{Outcome: models.OutcomeFinalized, Event: &out}
}

func (s *Storage) purgeOptions(eventID int64) {
	for id, o := range s.timeOptions {
		if o.EventID == eventID {
			delete(s.timeOptions, id)
			delete(s.votes[models.OptionTime], id)
		}
	}
	for id, o := range s.locationOptions {
		if o.EventID == eventID {
			delete(s.locationOptions, id)
			delete(s.votes[models.OptionLocation], id)
		}
	}
}

func (s *Storage) listTimeOptions(eventID int64) []models.TimeOption {
	opts := make([]models.TimeOption, 0)
	for _, o := range s.timeOptions {
		if o.EventID != eventID {
			continue
		}
		c := *o
		c.Voters = sortedUsers(s.votes[models.OptionTime][o.ID])
		c.Votes = len(c.Voters)
		opts = append(opts, c)
	}
	sort.Slice(opts, func(i, j int) bool {
		return createdBefore(opts[i].CreatedAt, opts[i].ID, opts[j].CreatedAt, opts[j].ID)
	})
	return opts
}

func (s *Storage) listLocationOptions(eventID int64) []models.LocationOption {
	opts := make([]models.LocationOption, 0)
	for _, o := range s.locationOptions {
		if o.EventID != eventID {
			continue
		}
		c := *o
		c.Voters = sortedUsers(s.votes[models.OptionLocation][o.ID])
		c.Votes = len(c.Voters)
		opts = append(opts, c)
	}
	sort.Slice(opts, func(i, j int) bool {
		return createdBefore(opts[i].CreatedAt, opts[i].ID, opts[j].CreatedAt, opts[j].ID)
	})
	return opts
}

func createdBefore(aAt, aID, bAt, bID int64) bool {
	if aAt != bAt {
		return aAt < bAt
	}
	return aID < bID
}

func sortedUsers(m members) []string {
	users := make([]string, 0, len(m))
	for u := range m {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

func sortedMembers(eventID int64, m members) []models.Participant {
	out := make([]models.Participant, 0, len(m))
	for u, at := range m {
		out = append(out, models.Participant{EventID: eventID, UserID: u, JoinedAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt != out[j].JoinedAt {
			return out[i].JoinedAt < out[j].JoinedAt
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
