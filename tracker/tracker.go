package tracker

import (
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/conduit/hal"
	"github.com/vkngwrapper/conduit/resource"
)

// Tracker logs the barriers of a single command list. Transitions on resources the list has
// already touched are resolved immediately against the list's own final states; the first
// transition of each resource is deferred until submission, when it is resolved against the
// device's GlobalState.
//
// A Tracker belongs to one command list and is not safe for concurrent use.
type Tracker struct {
	global *GlobalState

	barriers []resource.Barrier
	pending  []resource.Barrier
	final    *swiss.Map[resource.ID, *resource.SubresourceState]
}

func New(global *GlobalState) *Tracker {
	return &Tracker{
		global: global,
		final:  swiss.NewMap[resource.ID, *resource.SubresourceState](42),
	}
}

// ResourceBarrier pushes a barrier into the tracker. The before state of transition barriers
// is ignored and replaced with the tracked state.
func (t *Tracker) ResourceBarrier(barrier resource.Barrier) {
	if barrier.Type != resource.BarrierTransition {
		t.barriers = append(t.barriers, barrier)
		return
	}

	if resource.IsNil(barrier.Resource) {
		return
	}

	id := barrier.Resource.ID()
	state, ok := t.final.Get(id)
	if ok {
		t.barriers = resolveTransition(barrier, state, t.barriers)
	} else {
		// First use of the resource on this list
		t.pending = append(t.pending, barrier)
		state = resource.NewSubresourceState(resource.StateCommon)
		t.final.Put(id, state)
	}

	state.Set(barrier.Subresource, barrier.After)
}

// TransitionResource transitions one subresource, or all of them, to after
func (t *Tracker) TransitionResource(res resource.Resource, after resource.State, subresource resource.Subresource) {
	if resource.IsNil(res) {
		return
	}

	t.ResourceBarrier(resource.Transition(res, after, subresource))
}

// UAVBarrier pushes an unordered-access barrier. A nil resource applies to every UAV access.
func (t *Tracker) UAVBarrier(res resource.Resource) {
	if resource.IsNil(res) {
		res = nil
	}
	t.ResourceBarrier(resource.UAV(res))
}

// AliasBarrier pushes an aliasing barrier. Either resource may be nil.
func (t *Tracker) AliasBarrier(before, after resource.Resource) {
	if resource.IsNil(before) {
		before = nil
	}
	if resource.IsNil(after) {
		after = nil
	}
	t.ResourceBarrier(resource.Aliasing(before, after))
}

// FlushResourceBarriers records every resolved barrier into recorder as one batch and clears them.
// It returns the number of barriers recorded.
func (t *Tracker) FlushResourceBarriers(recorder hal.CommandRecorder) int {
	count := len(t.barriers)
	if count > 0 {
		batch := make([]resource.Barrier, count)
		copy(batch, t.barriers)
		recorder.ResourceBarrier(batch)
		t.barriers = t.barriers[:0]
	}

	return count
}

// FlushPendingResourceBarriers resolves the deferred transitions against the global state and
// records the resulting barriers into recorder. Transitions on resources that are not registered
// in the global state are dropped. The global state must be locked.
func (t *Tracker) FlushPendingResourceBarriers(recorder hal.CommandRecorder) int {
	if !t.global.IsLocked() {
		panic("pending resource barriers may only be flushed while the global state is locked")
	}

	var resolved []resource.Barrier
	for _, pending := range t.pending {
		if pending.Type != resource.BarrierTransition {
			continue
		}

		state, ok := t.global.lookup(pending.Resource.ID())
		if !ok {
			continue
		}

		resolved = resolveTransition(pending, state, resolved)
	}

	if len(resolved) > 0 {
		recorder.ResourceBarrier(resolved)
	}

	t.pending = t.pending[:0]
	return len(resolved)
}

// CommitFinalResourceStates overwrites the global state of every resource this list touched with
// the state the list leaves it in. The global state must be locked.
func (t *Tracker) CommitFinalResourceStates() {
	if !t.global.IsLocked() {
		panic("final resource states may only be committed while the global state is locked")
	}

	t.final.Iter(func(id resource.ID, state *resource.SubresourceState) bool {
		t.global.commit(id, state.Clone())
		return false
	})

	t.final = swiss.NewMap[resource.ID, *resource.SubresourceState](42)
}

// Reset clears the barrier logs and final states so the tracker can be reused
func (t *Tracker) Reset() {
	t.pending = t.pending[:0]
	t.barriers = t.barriers[:0]
	if t.final.Count() > 0 {
		t.final = swiss.NewMap[resource.ID, *resource.SubresourceState](42)
	}
}

func (t *Tracker) PendingCount() int { return len(t.pending) }
func (t *Tracker) BarrierCount() int { return len(t.barriers) }

// FinalState returns the state this list currently leaves a resource in
func (t *Tracker) FinalState(res resource.Resource) (*resource.SubresourceState, bool) {
	if resource.IsNil(res) {
		return nil, false
	}
	state, ok := t.final.Get(res.ID())
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

// resolveTransition appends the concrete barriers needed to move a resource currently in state
// to barrier.After. Transitions of all subresources on a resource with individually tracked
// subresources are split into one barrier per differing subresource.
func resolveTransition(barrier resource.Barrier, state *resource.SubresourceState, out []resource.Barrier) []resource.Barrier {
	if barrier.Subresource == resource.AllSubresources && !state.IsUniform() {
		for _, subresource := range state.Subresources() {
			before := state.PerSubresource[subresource]
			if barrier.After == before {
				continue
			}

			split := barrier
			split.Subresource = subresource
			split.Before = before
			out = append(out, split)
		}
		return out
	}

	before := state.Get(barrier.Subresource)
	if barrier.After != before {
		barrier.Before = before
		out = append(out, barrier)
	}
	return out
}
