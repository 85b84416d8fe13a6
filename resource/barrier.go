package resource

import "fmt"

// BarrierType discriminates the barrier variants
type BarrierType int8

const (
	BarrierTransition BarrierType = iota
	BarrierUAV
	BarrierAliasing
)

var barrierTypeMapping = map[BarrierType]string{
	BarrierTransition: "BarrierTransition",
	BarrierUAV:        "BarrierUAV",
	BarrierAliasing:   "BarrierAliasing",
}

func (t BarrierType) String() string {
	return barrierTypeMapping[t]
}

// Barrier is one synchronization directive. Which fields are meaningful depends on Type:
//
// BarrierTransition uses Resource, Subresource, Before and After.
//
// BarrierUAV uses Resource, which may be nil to mean every UAV access.
//
// BarrierAliasing uses Resource as the resource being aliased away from and AliasAfter
// as the resource being aliased to; either may be nil.
type Barrier struct {
	Type        BarrierType
	Resource    Resource
	Subresource Subresource
	Before      State
	After       State
	AliasAfter  Resource
}

// Transition builds a transition barrier. The before state is left as StateCommon; the tracker
// fills in the real value.
func Transition(resource Resource, after State, subresource Subresource) Barrier {
	return Barrier{
		Type:        BarrierTransition,
		Resource:    resource,
		Subresource: subresource,
		Before:      StateCommon,
		After:       after,
	}
}

// UAV builds an unordered-access barrier
func UAV(resource Resource) Barrier {
	return Barrier{
		Type:     BarrierUAV,
		Resource: resource,
	}
}

// Aliasing builds an aliasing barrier between two resources sharing memory
func Aliasing(before, after Resource) Barrier {
	return Barrier{
		Type:       BarrierAliasing,
		Resource:   before,
		AliasAfter: after,
	}
}

func (b Barrier) String() string {
	switch b.Type {
	case BarrierTransition:
		sub := "all"
		if b.Subresource != AllSubresources {
			sub = fmt.Sprintf("%d", b.Subresource)
		}
		return fmt.Sprintf("Transition(%v[%s]: %s -> %s)", b.Resource, sub, b.Before, b.After)
	case BarrierUAV:
		return fmt.Sprintf("UAV(%v)", b.Resource)
	default:
		return fmt.Sprintf("Aliasing(%v -> %v)", b.Resource, b.AliasAfter)
	}
}
