// Package lifecycle holds the driver-independent rules of the proposal
// lifecycle: input validation, lazy deadline expiry and winner selection.
// Both storage drivers call into it inside their atomic sections.
package lifecycle

import (
	"strings"

	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"
)

const MaxLocationLength = 255

// ValidateNewPendingEvent checks a proposal at creation time. now is epoch
// milliseconds.
func ValidateNewPendingEvent(e models.PendingEvent, now int64) error {
	if strings.TrimSpace(e.Title) == "" {
		return models.NewValidationError("title", "must not be empty")
	}
	if e.EventCreatorID == "" {
		return models.NewValidationError("event_creator_id", "must not be empty")
	}
	if e.PossibleEndTime <= e.PossibleStartTime {
		return models.NewValidationError("possible_end_time", "must be after possible_start_time")
	}
	if e.RegistrationDeadline >= e.PossibleStartTime {
		return models.NewValidationError("registration_deadline", "must be before possible_start_time")
	}
	if e.RegistrationDeadline <= now {
		return models.NewValidationError("registration_deadline", "must be in the future")
	}
	if e.PossibleStartTime <= now {
		return models.NewValidationError("possible_start_time", "must be in the future")
	}
	if e.ParticipantLimit != nil && *e.ParticipantLimit <= 0 {
		return models.NewValidationError("participant_limit", "must be positive")
	}

	return nil
}

// ValidateInterval rejects empty and inverted intervals.
func ValidateInterval(field string, i models.Interval) error {
	if i.End <= i.Start {
		return models.NewValidationError(field, "end must be after start")
	}
	return nil
}

// ValidateTimeOption checks a candidate slot against the event's window.
func ValidateTimeOption(e models.PendingEvent, start, end int64) error {
	if err := ValidateInterval("time_option", models.Interval{Start: start, End: end}); err != nil {
		return err
	}
	if start < e.PossibleStartTime || end > e.PossibleEndTime {
		return models.NewValidationError("time_option", "must lie within the possible time window")
	}
	return nil
}

func ValidateLocation(location string) error {
	l := strings.TrimSpace(location)
	if l == "" {
		return models.NewValidationError("location", "must not be empty")
	}
	if len(l) > MaxLocationLength {
		return models.NewValidationError("location", "is too long")
	}
	return nil
}

func ValidateFinalizedEvent(e models.FinalizedEvent) error {
	if strings.TrimSpace(e.Title) == "" {
		return models.NewValidationError("title", "must not be empty")
	}
	if e.EventCreatorID == "" {
		return models.NewValidationError("event_creator_id", "must not be empty")
	}
	if e.EndTime <= e.StartTime {
		return models.NewValidationError("end_time", "must be after start_time")
	}
	switch e.Type {
	case models.EventTypeCustom, models.EventTypeClass, models.EventTypeGoogle:
	default:
		return models.NewValidationError("type", "must be one of custom, class, google")
	}
	return nil
}

// Expired reports whether an open event has passed its registration
// deadline and must be finalized before anything else touches it.
func Expired(e models.PendingEvent, now int64) bool {
	return e.State == models.StateOpen && now >= e.RegistrationDeadline
}

// CanJoin applies the ban check before the capacity check so a banned user
// is refused even when seats are free.
func CanJoin(e models.PendingEvent, banned bool, participants int) error {
	if banned {
		return storage.ErrBanned
	}
	if e.ParticipantLimit != nil && participants >= *e.ParticipantLimit {
		return storage.ErrCapacityExceeded
	}
	return nil
}
