// Package tally keeps vote counts on the receiving side of the realtime
// stream. Deltas are applied as keyed patches so duplicated or reordered
// delivery converges on the same counts.
package tally

import (
	"sync"

	"studyPlanner/internal/models"
)

type Entity struct {
	Kind models.OptionKind
	ID   int64
}

type key struct {
	entity  Entity
	reactor string
}

type reaction struct {
	voted bool
	seq   int64
}

// Reconciler tracks the tallies of one pending event.
type Reconciler struct {
	mu        sync.Mutex
	counts    map[Entity]int
	reactions map[key]reaction
	// floor is the vote version of the seeded snapshot
	floor int64
}

func NewReconciler() *Reconciler {
	return &Reconciler{
		counts:    make(map[Entity]int),
		reactions: make(map[key]reaction),
	}
}

// Seed loads a snapshot. Deltas with a seq at or below the snapshot's vote
// version are already part of it and get discarded.
func (r *Reconciler) Seed(details models.PendingEventDetails) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.floor = details.Event.VoteVersion

	for _, o := range details.TimeOptions {
		r.seed(Entity{Kind: models.OptionTime, ID: o.ID}, o.Voters)
	}
	for _, o := range details.LocationOptions {
		r.seed(Entity{Kind: models.OptionLocation, ID: o.ID}, o.Voters)
	}
}

func (r *Reconciler) seed(e Entity, voters []string) {
	r.counts[e] = len(voters)
	for _, v := range voters {
		r.reactions[key{entity: e, reactor: v}] = reaction{voted: true, seq: r.floor}
	}
}

// Apply patches the count for the delta's entity and reports whether the
// count changed. Deltas not newer than the last one seen for the same
// (entity, reactor) are discarded, as are deltas that restate the current
// state of that reactor.
func (r *Reconciler) Apply(d models.VoteDelta) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Seq <= r.floor {
		return false
	}

	e := Entity{Kind: d.Kind, ID: d.EntityID}
	k := key{entity: e, reactor: d.ActingUserID}

	prev, seen := r.reactions[k]
	if seen && d.Seq <= prev.seq {
		return false
	}

	voted := d.Delta > 0
	r.reactions[k] = reaction{voted: voted, seq: d.Seq}

	if voted == prev.voted {
		return false
	}

	if voted {
		r.counts[e]++
	} else {
		r.counts[e]--
	}
	return true
}

// Forget drops an entity, e.g. after its option was deleted.
func (r *Reconciler) Forget(e Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.counts, e)
	for k := range r.reactions {
		if k.entity == e {
			delete(r.reactions, k)
		}
	}
}

func (r *Reconciler) Count(e Entity) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counts[e]
}

// Counts returns a copy of all tallies.
func (r *Reconciler) Counts() map[Entity]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[Entity]int, len(r.counts))
	for e, c := range r.counts {
		out[e] = c
	}
	return out
}
