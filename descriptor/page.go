package descriptor

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	pkgerrors "github.com/pkg/errors"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
	"github.com/vkngwrapper/conduit/internal/utils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

type staleRange struct {
	offset int
	size   int
	frame  uint64
}

// Page is a fixed-capacity, CPU-visible descriptor heap carved into ranges. Freed ranges are
// parked in a FIFO until ReleaseStaleDescriptors is called with a frame number at or after the
// one they were freed with, and are then merged back into the free list.
type Page struct {
	logger *slog.Logger
	id     PageID
	kind   hal.HeapKind
	heap   hal.DescriptorHeap

	base      hal.CPUHandle
	increment int
	capacity  int

	mutex       sync.Locker
	freeHandles int
	free        freeList
	allocated   *swiss.Map[int, int]
	stale       []staleRange
}

var _ gpuutils.Validatable = &Page{}

// NewPage creates a page backed by a new CPU-visible descriptor heap
func NewPage(logger *slog.Logger, device hal.Device, kind hal.HeapKind, capacity int, id PageID, useMutex bool) (*Page, error) {
	if capacity <= 0 {
		return nil, errors.Newf("descriptor page capacity must be positive, but was %d", capacity)
	}

	increment := device.DescriptorIncrement(kind)
	if increment <= 0 {
		return nil, errors.Newf("device reported a descriptor increment of %d for %s", increment, kind)
	}

	heap, err := device.CreateDescriptorHeap(kind, capacity, false)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s descriptor heap with %d descriptors", kind, capacity)
	}

	page := &Page{
		logger:      logger,
		id:          id,
		kind:        kind,
		heap:        heap,
		base:        heap.CPUStart(),
		increment:   increment,
		capacity:    capacity,
		mutex:       utils.NewLocker(useMutex),
		freeHandles: capacity,
		free:        newFreeList(),
		allocated:   swiss.NewMap[int, int](42),
	}
	page.free.add(0, capacity)

	logger.LogAttrs(context.Background(), slog.LevelDebug, "Created descriptor page",
		slog.Int("page.id", int(id)),
		slog.String("kind", kind.String()),
		slog.Int("capacity", capacity))

	return page, nil
}

func (p *Page) ID() PageID                { return p.id }
func (p *Page) Kind() hal.HeapKind        { return p.kind }
func (p *Page) Capacity() int             { return p.capacity }
func (p *Page) Heap() hal.DescriptorHeap  { return p.heap }
func (p *Page) Increment() int            { return p.increment }
func (p *Page) BaseHandle() hal.CPUHandle { return p.base }

// NumFreeHandles is the number of descriptors that are neither allocated nor waiting to be released
func (p *Page) NumFreeHandles() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.freeHandles
}

// HasSpace reports whether a single free block can hold count descriptors
func (p *Page) HasSpace(count int) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	_, _, ok := p.free.smallestFit(count)
	return ok
}

// Allocate carves count descriptors out of the smallest free block that can hold them. It
// returns false when no single free block is large enough.
func (p *Page) Allocate(count int) (Allocation, bool) {
	if count <= 0 {
		return Allocation{}, false
	}

	p.mutex.Lock()
	alloc, ok := p.allocate(count)
	p.mutex.Unlock()

	if ok {
		gpuutils.DebugValidate(p)
	}
	return alloc, ok
}

func (p *Page) allocate(count int) (Allocation, bool) {
	if count > p.freeHandles {
		return Allocation{}, false
	}

	offset, size, ok := p.free.smallestFit(count)
	if !ok {
		return Allocation{}, false
	}

	p.free.remove(offset)
	if size > count {
		p.free.add(offset+count, size-count)
	}

	p.freeHandles -= count
	p.allocated.Put(offset, count)

	return Allocation{
		handle:    p.base.Offset(offset, p.increment),
		count:     count,
		increment: p.increment,
		page:      p.id,
	}, true
}

func (p *Page) computeOffset(handle hal.CPUHandle) int {
	return int(handle-p.base) / p.increment
}

// Free parks an allocation's range until ReleaseStaleDescriptors is called with a frame number
// at or after frameNumber
func (p *Page) Free(alloc Allocation, frameNumber uint64) error {
	if alloc.IsNull() {
		return nil
	}

	offset := p.computeOffset(alloc.handle)

	p.mutex.Lock()
	defer p.mutex.Unlock()

	size, ok := p.allocated.Get(offset)
	if !ok || size != alloc.count || alloc.page != p.id {
		return errors.Wrapf(gpuutils.UnknownAllocationError, "page %d, offset %d, count %d", p.id, offset, alloc.count)
	}

	p.allocated.Delete(offset)
	p.stale = append(p.stale, staleRange{
		offset: offset,
		size:   size,
		frame:  frameNumber,
	})

	return nil
}

// ReleaseStaleDescriptors returns every range freed with a frame number at or before frameNumber
// to the free list, merging it with adjacent free blocks
func (p *Page) ReleaseStaleDescriptors(frameNumber uint64) {
	p.mutex.Lock()

	released := 0
	for len(p.stale) > 0 && p.stale[0].frame <= frameNumber {
		stale := p.stale[0]
		p.freeBlock(stale.offset, stale.size)
		p.stale = p.stale[1:]
		released++
	}

	if len(p.stale) == 0 {
		p.stale = nil
	}

	p.mutex.Unlock()

	if released > 0 {
		gpuutils.DebugValidate(p)
	}
}

func (p *Page) freeBlock(offset, count int) {
	prev, hasPrev, next, hasNext := p.free.neighbors(offset)

	p.freeHandles += count

	if hasPrev {
		prevSize := p.free.size(prev)
		if prev+prevSize == offset {
			p.free.remove(prev)
			offset = prev
			count += prevSize
		}
	}

	if hasNext && offset+count == next {
		count += p.free.remove(next)
	}

	p.free.add(offset, count)
}

// StaleCount is the number of freed ranges waiting to be released
func (p *Page) StaleCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return len(p.stale)
}

// FreeBlockCount is the number of free blocks in the free list
func (p *Page) FreeBlockCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.free.Count()
}

type pageRegion struct {
	offset int
	size   int
	kind   string
	frame  uint64
}

const (
	regionFree      = "FREE"
	regionAllocated = "ALLOCATED"
	regionStale     = "STALE"
)

func sortRegions(regions []pageRegion) {
	slices.SortFunc(regions, func(a, b pageRegion) bool {
		return a.offset < b.offset
	})
}

func (p *Page) regions() []pageRegion {
	regions := make([]pageRegion, 0, p.free.Count()+p.allocated.Count()+len(p.stale))

	p.free.visit(func(offset, size int) {
		regions = append(regions, pageRegion{offset: offset, size: size, kind: regionFree})
	})
	p.allocated.Iter(func(offset int, size int) bool {
		regions = append(regions, pageRegion{offset: offset, size: size, kind: regionAllocated})
		return false
	})
	for _, stale := range p.stale {
		regions = append(regions, pageRegion{offset: stale.offset, size: stale.size, kind: regionStale, frame: stale.frame})
	}

	sortRegions(regions)
	return regions
}

// Validate verifies that free blocks and outstanding ranges exactly tile the page, that both free
// indexes agree, and that the free handle count matches the free blocks
func (p *Page) Validate() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.free.offsets) != len(p.free.bySize) || len(p.free.offsets) != p.free.sizes.Count() {
		return pkgerrors.Errorf("free list indexes disagree: %d by offset, %d by size, %d sizes",
			len(p.free.offsets), len(p.free.bySize), p.free.sizes.Count())
	}

	freeTotal := 0
	for _, key := range p.free.bySize {
		offset, size := int(uint32(key)), int(key>>32)
		indexedSize, ok := p.free.sizes.Get(offset)
		if !ok || indexedSize != size {
			return pkgerrors.Errorf("free block at offset %d has size %d in the size index but %d in the offset index", offset, size, indexedSize)
		}
		if size <= 0 {
			return pkgerrors.Errorf("free block at offset %d has non-positive size %d", offset, size)
		}
		freeTotal += size
	}

	if freeTotal != p.freeHandles {
		return pkgerrors.Errorf("free blocks hold %d descriptors, but the page lists %d free handles", freeTotal, p.freeHandles)
	}

	expectedOffset := 0
	previousFree := false
	for _, region := range p.regions() {
		if region.offset != expectedOffset {
			return pkgerrors.Errorf("%s region at offset %d does not start where the previous region ended (%d)", region.kind, region.offset, expectedOffset)
		}

		isFree := region.kind == regionFree
		if isFree && previousFree {
			return pkgerrors.Errorf("free region at offset %d was not merged with the free region before it", region.offset)
		}

		previousFree = isFree
		expectedOffset += region.size
	}

	if expectedOffset != p.capacity {
		return pkgerrors.Errorf("regions cover %d descriptors, but the page holds %d", expectedOffset, p.capacity)
	}

	return nil
}

func (p *Page) AddStatistics(stats *gpuutils.Statistics) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	stats.PageCount++
	stats.PageDescriptors += p.capacity
	stats.AllocationCount += p.allocated.Count() + len(p.stale)
	stats.AllocatedDescriptors += p.capacity - p.freeHandles
}

func (p *Page) AddDetailedStatistics(stats *gpuutils.DetailedStatistics) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	stats.PageCount++
	stats.PageDescriptors += p.capacity

	for _, region := range p.regions() {
		if region.kind == regionFree {
			stats.AddFreeRange(region.size)
		} else {
			stats.AddAllocation(region.size)
		}
	}
}

// PrintDetailedMap writes the page header and every region into json
func (p *Page) PrintDetailedMap(json jwriter.ObjectState) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	json.Name("Kind").String(p.kind.String())
	json.Name("Capacity").Int(p.capacity)
	json.Name("FreeHandles").Int(p.freeHandles)
	json.Name("FreeBlocks").Int(p.free.Count())
	json.Name("StaleRanges").Int(len(p.stale))

	arrayState := json.Name("Ranges").Array()
	defer arrayState.End()

	for _, region := range p.regions() {
		obj := arrayState.Object()
		obj.Name("Offset").Int(region.offset)
		obj.Name("Type").String(region.kind)
		obj.Name("Size").Int(region.size)
		if region.kind == regionStale {
			obj.Name("Frame").Int(int(region.frame))
		}
		obj.End()
	}
}
