package memory

import (
	"context"
	"fmt"

	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"
)

func (s *Storage) JoinPending(_ context.Context, eventID int64, userID string) error {
	const op = "storage.memory.JoinPending"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.touchOpen(eventID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	current := s.participants[eventID]
	if _, ok := current[userID]; ok {
		return nil
	}

	_, banned := s.bans[scopedKey{models.ScopePending, eventID}][userID]
	if err = lifecycle.CanJoin(*e, banned, len(current)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if current == nil {
		current = members{}
		s.participants[eventID] = current
	}
	current[userID] = s.now()

	return nil
}

// LeavePending removes targetID. actorID must be the target or the event
// creator. Removing a non-participant is a no-op.
func (s *Storage) LeavePending(_ context.Context, eventID int64, actorID, targetID string) error {
	const op = "storage.memory.LeavePending"

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.touchOpen(eventID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if actorID != targetID && actorID != e.EventCreatorID {
		return fmt.Errorf("%s: %w", op, storage.ErrForbidden)
	}

	delete(s.participants[eventID], targetID)

	return nil
}

// Moderate applies a ban, unban, mute or unmute issued by the event's
// creator. A pending-scope ban also removes the target from participants and
// purges their votes; the purged votes are returned.
func (s *Storage) Moderate(_ context.Context, scope models.Scope, eventID int64, actorID, targetID string, action models.ModerationAction) ([]models.VoteRef, error) {
	const op = "storage.memory.Moderate"

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		creator string
		pending *models.PendingEvent
	)
	switch scope {
	case models.ScopePending:
		e, err := s.touchOpen(eventID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		creator = e.EventCreatorID
		pending = e
	case models.ScopeFinalized:
		fe, ok := s.finalized[eventID]
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		creator = fe.EventCreatorID
	default:
		return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("scope", "unknown scope"))
	}

	if actorID != creator || targetID == creator {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrForbidden)
	}

	key := scopedKey{scope, eventID}
	var purged []models.VoteRef

	switch action {
	case models.ActionBan:
		addMember(s.bans, key, targetID, s.now())
		if scope == models.ScopePending {
			delete(s.participants[eventID], targetID)
			purged = s.purgeVotes(pending, targetID)
		} else {
			delete(s.finalizedParticipants[eventID], targetID)
		}
	case models.ActionUnban:
		delete(s.bans[key], targetID)
	case models.ActionMute:
		addMember(s.mutes, key, targetID, s.now())
	case models.ActionUnmute:
		delete(s.mutes[key], targetID)
	default:
		return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("action", "unknown action"))
	}

	return purged, nil
}

func addMember(m map[scopedKey]members, key scopedKey, userID string, at int64) {
	if m[key] == nil {
		m[key] = members{}
	}
	if _, ok := m[key][userID]; !ok {
		m[key][userID] = at
	}
}

// purgeVotes removes every vote of userID on the event. The removals share
// one bump of the event's vote version.
func (s *Storage) purgeVotes(e *models.PendingEvent, userID string) []models.VoteRef {
	eventID := e.ID

	var purged []models.VoteRef
	for _, o := range s.listTimeOptions(eventID) {
		if _, ok := s.votes[models.OptionTime][o.ID][userID]; ok {
			delete(s.votes[models.OptionTime][o.ID], userID)
			purged = append(purged, models.VoteRef{EventID: eventID, Kind: models.OptionTime, OptionID: o.ID, UserID: userID})
		}
	}
	for _, o := range s.listLocationOptions(eventID) {
		if _, ok := s.votes[models.OptionLocation][o.ID][userID]; ok {
			delete(s.votes[models.OptionLocation][o.ID], userID)
			purged = append(purged, models.VoteRef{EventID: eventID, Kind: models.OptionLocation, OptionID: o.ID, UserID: userID})
		}
	}

	if len(purged) > 0 {
		e.VoteVersion++
		for i := range purged {
			purged[i].Seq = e.VoteVersion
		}
	}
	return purged
}

func (s *Storage) IsMuted(_ context.Context, scope models.Scope, eventID int64, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, muted := s.mutes[scopedKey{scope, eventID}][userID]
	return muted, nil
}
