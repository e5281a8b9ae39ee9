package memory

import (
	"context"
	"fmt"
	"sort"

	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"
)

func (s *Storage) CreateFinalizedEvent(_ context.Context, e models.FinalizedEvent) (int64, error) {
	const op = "storage.memory.CreateFinalizedEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := lifecycle.ValidateFinalizedEvent(e); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	e.ID = s.nextID()
	e.CreatedAt = now
	s.finalized[e.ID] = &e
	s.finalizedParticipants[e.ID] = members{e.EventCreatorID: now}

	return e.ID, nil
}

func (s *Storage) GetFinalizedEvent(_ context.Context, id int64) (*models.FinalizedEventDetails, error) {
	const op = "storage.memory.GetFinalizedEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.finalized[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	return &models.FinalizedEventDetails{
		Event:        *e,
		Participants: sortedMembers(id, s.finalizedParticipants[id]),
	}, nil
}

func (s *Storage) ListUserEvents(_ context.Context, userID string) ([]models.FinalizedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.FinalizedEvent, 0)
	for id, attendees := range s.finalizedParticipants {
		if _, ok := attendees[userID]; ok {
			events = append(events, *s.finalized[id])
		}
	}
	sortFinalized(events)

	return events, nil
}

func sortFinalized(events []models.FinalizedEvent) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTime != events[j].StartTime {
			return events[i].StartTime < events[j].StartTime
		}
		return events[i].ID < events[j].ID
	})
}

func (s *Storage) JoinFinalized(_ context.Context, id int64, userID string) error {
	const op = "storage.memory.JoinFinalized"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.finalized[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}
	if _, banned := s.bans[scopedKey{models.ScopeFinalized, id}][userID]; banned {
		return fmt.Errorf("%s: %w", op, storage.ErrBanned)
	}

	if _, ok := s.finalizedParticipants[id][userID]; !ok {
		if s.finalizedParticipants[id] == nil {
			s.finalizedParticipants[id] = members{}
		}
		s.finalizedParticipants[id][userID] = s.now()
	}

	return nil
}

func (s *Storage) LeaveFinalized(_ context.Context, id int64, userID string) error {
	const op = "storage.memory.LeaveFinalized"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.finalized[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}
	delete(s.finalizedParticipants[id], userID)

	return nil
}

// BusyIntervals returns the committed time of the given users that overlaps
// window, one interval per attended finalized event.
func (s *Storage) BusyIntervals(_ context.Context, userIDs []string, window models.Interval) ([]models.Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	busy := make([]models.Interval, 0)
	for id, attendees := range s.finalizedParticipants {
		e := s.finalized[id]
		i := models.Interval{Start: e.StartTime, End: e.EndTime}
		if !i.Overlaps(window) {
			continue
		}
		for _, u := range userIDs {
			if _, ok := attendees[u]; ok {
				busy = append(busy, i)
				break
			}
		}
	}

	return busy, nil
}
