package descriptor

import (
	"github.com/pkg/errors"
	"github.com/vkngwrapper/conduit/hal"
)

// PageID identifies a page within the allocator that created it. Pages never move or disappear
// once created, so an id stays valid for the lifetime of the allocator.
type PageID int

// Allocation is a contiguous range of CPU-visible descriptors. It is owned by whoever requested it
// and must be returned with Free once no recorded GPU work can still reference it.
type Allocation struct {
	handle    hal.CPUHandle
	count     int
	increment int
	page      PageID
	allocator *Allocator
}

// IsNull reports whether the allocation holds no descriptors
func (a Allocation) IsNull() bool {
	return a.count == 0
}

// Handle returns the CPU handle of the descriptor at offset within the range
func (a Allocation) Handle(offset int) hal.CPUHandle {
	return a.handle.Offset(offset, a.increment)
}

func (a Allocation) Count() int     { return a.count }
func (a Allocation) Increment() int { return a.increment }
func (a Allocation) Page() PageID   { return a.page }

// Free returns the range to its page. The descriptors are not reused until the allocator releases
// stale descriptors for a frame at or after frameNumber.
func (a Allocation) Free(frameNumber uint64) error {
	if a.IsNull() {
		return nil
	}

	if a.allocator == nil {
		return errors.New("allocation was not created by an allocator and must be freed through its page")
	}

	return a.allocator.Free(a, frameNumber)
}
