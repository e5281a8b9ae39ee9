package models

// Scope separates moderation of pending proposals from finalized events.
type Scope string

const (
	ScopePending   Scope = "pending"
	ScopeFinalized Scope = "finalized"
)

type ModerationAction string

const (
	ActionBan    ModerationAction = "ban"
	ActionUnban  ModerationAction = "unban"
	ActionMute   ModerationAction = "mute"
	ActionUnmute ModerationAction = "unmute"
)

func (a ModerationAction) Valid() bool {
	switch a {
	case ActionBan, ActionUnban, ActionMute, ActionUnmute:
		return true
	}
	return false
}
