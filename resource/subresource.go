package resource

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Subresource addresses one mip level of one array slice of a resource
type Subresource uint32

// AllSubresources addresses every subresource of a resource at once
const AllSubresources Subresource = 0xffffffff

// SubresourceIndex computes the flat subresource index of a mip level within an array slice
func SubresourceIndex(mipLevel, arraySlice, mipLevels int) Subresource {
	return Subresource(mipLevel + arraySlice*mipLevels)
}

// MipAndSlice splits a flat subresource index back into its mip level and array slice
func (s Subresource) MipAndSlice(mipLevels int) (mipLevel int, arraySlice int) {
	if mipLevels < 1 {
		mipLevels = 1
	}
	return int(s) % mipLevels, int(s) / mipLevels
}

// SubresourceState records the state of a resource. When PerSubresource is empty the resource
// is uniformly in Default; otherwise Default only applies to subresources absent from the map.
type SubresourceState struct {
	Default        State
	PerSubresource map[Subresource]State
}

// NewSubresourceState creates a uniform state record
func NewSubresourceState(state State) *SubresourceState {
	return &SubresourceState{Default: state}
}

// Set records the state of one subresource. Setting AllSubresources collapses the record back
// to a uniform state.
func (s *SubresourceState) Set(subresource Subresource, state State) {
	if subresource == AllSubresources {
		s.Default = state
		s.PerSubresource = nil
		return
	}

	if s.PerSubresource == nil {
		s.PerSubresource = make(map[Subresource]State)
	}
	s.PerSubresource[subresource] = state
}

// Get returns the state of one subresource, falling back to the default
func (s *SubresourceState) Get(subresource Subresource) State {
	state, ok := s.PerSubresource[subresource]
	if ok {
		return state
	}
	return s.Default
}

// IsUniform reports whether every subresource shares the default state record
func (s *SubresourceState) IsUniform() bool {
	return len(s.PerSubresource) == 0
}

// Subresources lists the subresources with an individual state, in ascending order
func (s *SubresourceState) Subresources() []Subresource {
	keys := maps.Keys(s.PerSubresource)
	slices.Sort(keys)
	return keys
}

func (s *SubresourceState) Clone() *SubresourceState {
	return &SubresourceState{
		Default:        s.Default,
		PerSubresource: maps.Clone(s.PerSubresource),
	}
}
