package models

type EventType string

const (
	EventTypeCustom EventType = "custom"
	EventTypeClass  EventType = "class"
	EventTypeGoogle EventType = "google"
)

// FinalizedEvent is a committed calendar event. Location is nil when no
// location option existed at finalization.
type FinalizedEvent struct {
	ID             int64     `json:"id"`
	EventCreatorID string    `json:"event_creator_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       *string   `json:"location"`
	StartTime      int64     `json:"start_time"`
	EndTime        int64     `json:"end_time"`
	CreatedAt      int64     `json:"created_at"`
	Type           EventType `json:"type"`
}

type FinalizedEventDetails struct {
	Event        FinalizedEvent `json:"event"`
	Participants []Participant  `json:"participants"`
}

type FinalizeOutcome string

const (
	OutcomeFinalized       FinalizeOutcome = "FINALIZED"
	OutcomeExpiredNoWinner FinalizeOutcome = "EXPIRED_NO_WINNER"
)

// FinalizeResult is the result of a finalization attempt. Event is set only
// for OutcomeFinalized.
type FinalizeResult struct {
	Outcome FinalizeOutcome `json:"outcome"`
	Event   *FinalizedEvent `json:"event,omitempty"`
}
