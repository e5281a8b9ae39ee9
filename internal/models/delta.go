package models

// VoteDelta is a keyed, idempotent vote change pushed to observers.
// Receivers key state by (Kind, EntityID, ActingUserID) and discard deltas
// whose Seq is not newer than the last one applied for that key. Seq is the
// event's vote version after the change committed.
type VoteDelta struct {
	ID           string     `json:"id"`
	EventID      int64      `json:"pending_event_id"`
	EntityID     int64      `json:"entity_id"`
	Kind         OptionKind `json:"kind"`
	Delta        int        `json:"delta"`
	ActingUserID string     `json:"acting_user_id"`
	Seq          int64      `json:"seq"`
}
