package storage

import (
	"errors"
	"time"

	"studyPlanner/internal/models"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrCapacityExceeded = errors.New("participant limit reached")
	ErrBanned           = errors.New("user is banned from this event")
	ErrAlreadyFinalized = errors.New("event is already finalized")
	ErrNotParticipant   = errors.New("user is not a participant of this event")
	ErrForbidden        = errors.New("action is not allowed for this user")
)

// FinalizeHook is called once a finalization has committed. Lazy is set
// when the registration deadline triggered it rather than the creator.
type FinalizeHook func(pendingEventID int64, res models.FinalizeResult, lazy bool)

// Options shared by the storage drivers.
type Options struct {
	Now          func() time.Time
	RequireVotes bool
	OnFinalize   FinalizeHook
}

type Option func(*Options)

// WithClock replaces time.Now, which drives deadline expiry and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// WithRequireVotes makes finalization expire events whose time options have
// no votes at all.
func WithRequireVotes(require bool) Option {
	return func(o *Options) {
		o.RequireVotes = require
	}
}

// WithFinalizeHook registers fn for every committed finalization, explicit
// or lazy.
func WithFinalizeHook(fn FinalizeHook) Option {
	return func(o *Options) {
		o.OnFinalize = fn
	}
}

// Finalized runs the finalize hook, if any.
func (o Options) Finalized(pendingEventID int64, res *models.FinalizeResult, lazy bool) {
	if o.OnFinalize == nil || res == nil {
		return
	}
	o.OnFinalize(pendingEventID, *res, lazy)
}

func BuildOptions(opts ...Option) Options {
	o := Options{Now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
