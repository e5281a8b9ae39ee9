package memory

import (
	"context"
	"fmt"

	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"
)

func (s *Storage) requireParticipant(eventID int64, userID string) error {
	if _, ok := s.participants[eventID][userID]; !ok {
		return storage.ErrNotParticipant
	}
	return nil
}

func (s *Storage) AddTimeOption(_ context.Context, eventID int64, userID string, start, end int64) (int64, error) {
	const op = "storage.memory.AddTimeOption"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.touchOpen(eventID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = lifecycle.ValidateTimeOption(*e, start, end); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.requireParticipant(eventID, userID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	o := &models.TimeOption{
		ID:        s.nextID(),
		EventID:   eventID,
		StartTime: start,
		EndTime:   end,
		CreatedBy: userID,
		CreatedAt: s.now(),
	}
	s.timeOptions[o.ID] = o

	return o.ID, nil
}

func (s *Storage) AddLocationOption(_ context.Context, eventID int64, userID, location string) (int64, error) {
	const op = "storage.memory.AddLocationOption"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.touchOpen(eventID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := lifecycle.ValidateLocation(location); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.requireParticipant(eventID, userID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	o := &models.LocationOption{
		ID:        s.nextID(),
		EventID:   eventID,
		Location:  location,
		CreatedBy: userID,
		CreatedAt: s.now(),
	}
	s.locationOptions[o.ID] = o

	return o.ID, nil
}

// option returns the owning event id and proposer of an option.
func (s *Storage) option(kind models.OptionKind, optionID int64) (eventID int64, createdBy string, ok bool) {
	switch kind {
	case models.OptionTime:
		if o, found := s.timeOptions[optionID]; found {
			return o.EventID, o.CreatedBy, true
		}
	case models.OptionLocation:
		if o, found := s.locationOptions[optionID]; found {
			return o.EventID, o.CreatedBy, true
		}
	}
	return 0, "", false
}

// openOption resolves an option of an open event, running the lazy expiry
// check on the event first.
func (s *Storage) openOption(eventID int64, kind models.OptionKind, optionID int64) (*models.PendingEvent, string, error) {
	e, err := s.touchOpen(eventID)
	if err != nil {
		return nil, "", err
	}

	owner, createdBy, ok := s.option(kind, optionID)
	if !ok || owner != eventID {
		return nil, "", storage.ErrOptionNotFound
	}

	return e, createdBy, nil
}

func (s *Storage) DeleteOption(_ context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) error {
	const op = "storage.memory.DeleteOption"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, createdBy, err := s.openOption(eventID, kind, optionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if userID != createdBy && userID != e.EventCreatorID {
		return fmt.Errorf("%s: %w", op, storage.ErrForbidden)
	}

	if kind == models.OptionTime {
		delete(s.timeOptions, optionID)
	} else {
		delete(s.locationOptions, optionID)
	}
	delete(s.votes[kind], optionID)

	return nil
}

// Vote records the caller's vote and returns the event's new vote version,
// or 0 when the vote already existed.
func (s *Storage) Vote(_ context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) (int64, error) {
	const op = "storage.memory.Vote"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, _, err := s.openOption(eventID, kind, optionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.requireParticipant(eventID, userID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	voters := s.votes[kind][optionID]
	if voters == nil {
		voters = members{}
		s.votes[kind][optionID] = voters
	}
	if _, ok := voters[userID]; ok {
		return 0, nil
	}
	voters[userID] = s.now()

	e.VoteVersion++
	return e.VoteVersion, nil
}

// Unvote removes the caller's vote. It does not require current
// participation so a user who left can still withdraw a vote.
func (s *Storage) Unvote(_ context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) (int64, error) {
	const op = "storage.memory.Unvote"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, _, err := s.openOption(eventID, kind, optionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	voters := s.votes[kind][optionID]
	if _, ok := voters[userID]; !ok {
		return 0, nil
	}
	delete(voters, userID)

	e.VoteVersion++
	return e.VoteVersion, nil
}
