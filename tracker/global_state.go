package tracker

import (
	"sync"
	"sync/atomic"

	"github.com/dolthub/swiss"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/conduit/resource"
	"golang.org/x/exp/slog"
)

// GlobalState is the device-wide record of the state every registered resource will be in once all
// previously submitted GPU work completes. It is owned by a device and shared by every tracker and
// queue created from that device.
//
// Submission holds the lock from the moment pending barriers are resolved until final states are
// committed. AddResource and RemoveResource take the same lock internally. Commits made while the
// lock is held are journaled until Unlock, so a submission that fails partway can Rollback.
type GlobalState struct {
	logger *slog.Logger

	mutex   sync.Mutex
	locked  atomic.Bool
	states  *swiss.Map[resource.ID, *resource.SubresourceState]
	journal *swiss.Map[resource.ID, journalEntry]
}

type journalEntry struct {
	state   *resource.SubresourceState
	present bool
}

func NewGlobalState(logger *slog.Logger) *GlobalState {
	return &GlobalState{
		logger: logger,
		states: swiss.NewMap[resource.ID, *resource.SubresourceState](42),
	}
}

// Lock acquires the submission lock. Resolving pending barriers and committing final states
// may only happen while it is held.
func (g *GlobalState) Lock() {
	g.mutex.Lock()
	g.locked.Store(true)
}

// Unlock releases the submission lock and keeps every commit made while it was held
func (g *GlobalState) Unlock() {
	g.journal = nil
	g.locked.Store(false)
	g.mutex.Unlock()
}

// Rollback restores every resource committed since Lock to the state it had before. The lock must
// be held and remains held.
func (g *GlobalState) Rollback() {
	if !g.IsLocked() {
		panic("resource states may only be rolled back while the global state is locked")
	}
	if g.journal == nil {
		return
	}

	g.journal.Iter(func(id resource.ID, entry journalEntry) bool {
		if entry.present {
			g.states.Put(id, entry.state)
		} else {
			g.states.Delete(id)
		}
		return false
	})

	g.logger.Debug("GlobalState::Rollback", slog.Int("resources", g.journal.Count()))
	g.journal = nil
}

// IsLocked reports whether the submission lock is currently held by anyone
func (g *GlobalState) IsLocked() bool {
	return g.locked.Load()
}

// AddResource registers a resource in a uniform initial state. It must be called once when the
// resource is created, before any command list references it.
func (g *GlobalState) AddResource(res resource.Resource, state resource.State) {
	if resource.IsNil(res) {
		return
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.states.Put(res.ID(), resource.NewSubresourceState(state))
	g.logger.Debug("GlobalState::AddResource", slog.Uint64("resource.id", uint64(res.ID())), slog.String("state", state.String()))
}

// RemoveResource forgets a resource. It must be called once when the resource is destroyed.
func (g *GlobalState) RemoveResource(res resource.Resource) {
	if resource.IsNil(res) {
		return
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.states.Delete(res.ID())
	g.logger.Debug("GlobalState::RemoveResource", slog.Uint64("resource.id", uint64(res.ID())))
}

// State returns a copy of the committed state of a resource
func (g *GlobalState) State(res resource.Resource) (*resource.SubresourceState, bool) {
	if resource.IsNil(res) {
		return nil, false
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	state, ok := g.states.Get(res.ID())
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

// Count is the number of registered resources
func (g *GlobalState) Count() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.states.Count()
}

func (g *GlobalState) Validate() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	var err error
	g.states.Iter(func(id resource.ID, state *resource.SubresourceState) bool {
		if state == nil {
			err = errors.Errorf("resource %d has a nil state record", id)
			return true
		}
		if _, ok := state.PerSubresource[resource.AllSubresources]; ok {
			err = errors.Errorf("resource %d has an individual state recorded for all subresources", id)
			return true
		}
		return false
	})

	return err
}

func (g *GlobalState) lookup(id resource.ID) (*resource.SubresourceState, bool) {
	return g.states.Get(id)
}

func (g *GlobalState) commit(id resource.ID, state *resource.SubresourceState) {
	if g.journal == nil {
		g.journal = swiss.NewMap[resource.ID, journalEntry](8)
	}
	if !g.journal.Has(id) {
		previous, present := g.states.Get(id)
		g.journal.Put(id, journalEntry{state: previous, present: present})
	}

	g.states.Put(id, state)
}
