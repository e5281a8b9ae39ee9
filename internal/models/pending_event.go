package models

// EventState is the lifecycle state of a pending event.
type EventState string

const (
	StateOpen            EventState = "OPEN"
	StateFinalizing      EventState = "FINALIZING"
	StateFinalized       EventState = "FINALIZED"
	StateExpiredNoWinner EventState = "EXPIRED_NO_WINNER"
)

// Terminal reports whether no further votes, joins or option changes are
// accepted in this state.
func (s EventState) Terminal() bool {
	return s == StateFinalized || s == StateExpiredNoWinner
}

// PendingEvent is a study event proposal open for voting. Times are epoch
// milliseconds.
type PendingEvent struct {
	ID                   int64      `json:"id"`
	GroupID              int64      `json:"group_id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	EventCreatorID       string     `json:"event_creator_id"`
	PossibleStartTime    int64      `json:"possible_start_time"`
	PossibleEndTime      int64      `json:"possible_end_time"`
	RegistrationDeadline int64      `json:"registration_deadline"`
	ParticipantLimit     *int       `json:"participant_limit"`
	State                EventState `json:"state"`
	FinalizedEventID     *int64     `json:"finalized_event_id,omitempty"`
	CreatedAt            int64      `json:"created_at"`
	// VoteVersion is bumped in the same atomic step as every vote change of
	// the event. Deltas carry it as Seq, so it orders them by commit.
	VoteVersion int64 `json:"vote_version"`
}

// Window is the outer interval candidate time options must fall within.
func (e PendingEvent) Window() Interval {
	return Interval{Start: e.PossibleStartTime, End: e.PossibleEndTime}
}

type Participant struct {
	EventID  int64  `json:"event_id"`
	UserID   string `json:"user_id"`
	JoinedAt int64  `json:"joined_at"`
}

// PendingEventDetails is the read model of a pending event with everything
// attached to it.
type PendingEventDetails struct {
	Event           PendingEvent     `json:"event"`
	TimeOptions     []TimeOption     `json:"time_options"`
	LocationOptions []LocationOption `json:"location_options"`
	Participants    []Participant    `json:"participants"`
}
