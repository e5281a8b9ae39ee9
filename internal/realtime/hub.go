// Package realtime delivers vote deltas to observers of a pending event.
package realtime

import (
	"context"
	"sync"

	"studyPlanner/internal/models"

	"github.com/google/uuid"
)

// Publisher hands a delta to the delivery channel.
type Publisher interface {
	Publish(ctx context.Context, d models.VoteDelta) error
}

const defaultBuffer = 64

// Hub fans deltas out to the local subscribers of each event. A subscriber
// that falls behind is closed instead of blocking publishers; it is expected
// to reload a snapshot and subscribe again.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int64]map[*Subscription]struct{}
	buffer int
}

type Subscription struct {
	C <-chan models.VoteDelta

	ch      chan models.VoteDelta
	hub     *Hub
	eventID int64
	once    sync.Once
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[int64]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

func (h *Hub) Subscribe(eventID int64) *Subscription {
	ch := make(chan models.VoteDelta, h.buffer)
	sub := &Subscription{C: ch, ch: ch, hub: h, eventID: eventID}

	h.mu.Lock()
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[*Subscription]struct{})
	}
	h.subs[eventID][sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Close unsubscribes and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	s.hub.remove(s)
}

// remove expects h.mu to be held.
func (h *Hub) remove(s *Subscription) {
	s.once.Do(func() {
		if subs, ok := h.subs[s.eventID]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(h.subs, s.eventID)
			}
		}
		close(s.ch)
	})
}

func (h *Hub) Publish(_ context.Context, d models.VoteDelta) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[d.EventID] {
		select {
		case sub.ch <- d:
		default:
			h.remove(sub)
		}
	}

	return nil
}

// Subscribers returns the number of local subscribers of an event.
func (h *Hub) Subscribers(eventID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs[eventID])
}

// NewDelta builds a vote (+1) or unvote (-1) delta. seq is the event's vote
// version returned by the store for that change.
func NewDelta(eventID int64, kind models.OptionKind, optionID int64, userID string, delta int, seq int64) models.VoteDelta {
	return models.VoteDelta{
		ID:           uuid.NewString(),
		EventID:      eventID,
		EntityID:     optionID,
		Kind:         kind,
		Delta:        delta,
		ActingUserID: userID,
		Seq:          seq,
	}
}
