package models

type OptionKind string

const (
	OptionTime     OptionKind = "time"
	OptionLocation OptionKind = "location"
)

func (k OptionKind) Valid() bool {
	return k == OptionTime || k == OptionLocation
}

// TimeOption is a candidate time slot. Votes is derived from vote rows.
type TimeOption struct {
	ID        int64    `json:"id"`
	EventID   int64    `json:"event_id"`
	StartTime int64    `json:"start_time"`
	EndTime   int64    `json:"end_time"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
	Votes     int      `json:"votes"`
	Voters    []string `json:"voters"`
}

type LocationOption struct {
	ID        int64    `json:"id"`
	EventID   int64    `json:"event_id"`
	Location  string   `json:"location"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
	Votes     int      `json:"votes"`
	Voters    []string `json:"voters"`
}

// OptionTally is the kind-independent view of an option used to pick a
// winner.
type OptionTally struct {
	ID        int64
	Votes     int
	CreatedAt int64
}

func (o TimeOption) Tally() OptionTally {
	return OptionTally{ID: o.ID, Votes: o.Votes, CreatedAt: o.CreatedAt}
}

func (o LocationOption) Tally() OptionTally {
	return OptionTally{ID: o.ID, Votes: o.Votes, CreatedAt: o.CreatedAt}
}

// VoteRef identifies a vote row removed as a side effect, e.g. by a ban.
// Seq is the event's vote version stamped on the removal.
type VoteRef struct {
	EventID  int64      `json:"pending_event_id"`
	Kind     OptionKind `json:"kind"`
	OptionID int64      `json:"option_id"`
	UserID   string     `json:"user_id"`
	Seq      int64      `json:"seq"`
}
