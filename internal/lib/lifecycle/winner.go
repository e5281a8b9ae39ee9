package lifecycle

import "studyPlanner/internal/models"

// SelectWinner returns the index of the option with the most votes. Ties go
// to the earliest created option, then the lowest id. ok is false for an
// empty slice.
func SelectWinner(options []models.OptionTally) (idx int, ok bool) {
	if len(options) == 0 {
		return 0, false
	}

	best := 0
	for i := 1; i < len(options); i++ {
		if beats(options[i], options[best]) {
			best = i
		}
	}

	return best, true
}

func beats(a, b models.OptionTally) bool {
	if a.Votes != b.Votes {
		return a.Votes > b.Votes
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.ID < b.ID
}

// Decision is the outcome of tallying a pending event's options.
type Decision struct {
	Outcome  models.FinalizeOutcome
	Time     *models.TimeOption
	Location *models.LocationOption
}

// Decide picks the winning time and location independently. Without a time
// option the event expires; with requireVotes set, so does an event whose
// time options never received a vote.
func Decide(times []models.TimeOption, locations []models.LocationOption, requireVotes bool) Decision {
	timeTallies := make([]models.OptionTally, len(times))
	total := 0
	for i, o := range times {
		timeTallies[i] = o.Tally()
		total += o.Votes
	}

	ti, ok := SelectWinner(timeTallies)
	if !ok || (requireVotes && total == 0) {
		return Decision{Outcome: models.OutcomeExpiredNoWinner}
	}

	d := Decision{
		Outcome: models.OutcomeFinalized,
		Time:    &times[ti],
	}

	locTallies := make([]models.OptionTally, len(locations))
	for i, o := range locations {
		locTallies[i] = o.Tally()
	}
	if li, ok := SelectWinner(locTallies); ok {
		d.Location = &locations[li]
	}

	return d
}

// FinalizedFrom builds the committed event for a winning decision.
func FinalizedFrom(e models.PendingEvent, d Decision, now int64) models.FinalizedEvent {
	fe := models.FinalizedEvent{
		EventCreatorID: e.EventCreatorID,
		Title:          e.Title,
		Description:    e.Description,
		StartTime:      d.Time.StartTime,
		EndTime:        d.Time.EndTime,
		CreatedAt:      now,
		Type:           models.EventTypeCustom,
	}
	if d.Location != nil {
		loc := d.Location.Location
		fe.Location = &loc
	}
	return fe
}
