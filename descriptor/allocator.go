package descriptor

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	pkgerrors "github.com/pkg/errors"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
	"github.com/vkngwrapper/conduit/internal/utils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

const (
	// DefaultDescriptorsPerPage is the page capacity used when AllocatorOptions.DescriptorsPerPage is 0
	DefaultDescriptorsPerPage int = 256
)

// AllocatorOptions contains optional settings when creating an allocator
type AllocatorOptions struct {
	// DescriptorsPerPage is the capacity of each page. Requests larger than this grow the
	// capacity of the page created for them and of every page after it.
	DescriptorsPerPage int
	// ExternallySynchronized disables the internal mutexes of the allocator and its pages. The
	// consumer must guarantee that the allocator is used from one goroutine at a time.
	ExternallySynchronized bool
}

// Allocator hands out CPU-visible descriptor ranges of one heap kind from a growing arena of pages
type Allocator struct {
	logger *slog.Logger
	device hal.Device
	kind   hal.HeapKind

	useMutex           bool
	mutex              utils.RWLocker
	descriptorsPerPage int
	pages              []*Page
	// available is the sorted set of pages that still have free handles
	available []PageID
}

var _ gpuutils.Validatable = &Allocator{}

func NewAllocator(logger *slog.Logger, device hal.Device, kind hal.HeapKind, options AllocatorOptions) *Allocator {
	perPage := options.DescriptorsPerPage
	if perPage == 0 {
		perPage = DefaultDescriptorsPerPage
	}

	return &Allocator{
		logger:             logger,
		device:             device,
		kind:               kind,
		useMutex:           !options.ExternallySynchronized,
		mutex:              utils.NewRWLocker(!options.ExternallySynchronized),
		descriptorsPerPage: perPage,
	}
}

func (a *Allocator) Kind() hal.HeapKind { return a.kind }

func (a *Allocator) DescriptorsPerPage() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.descriptorsPerPage
}

func (a *Allocator) PageCount() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return len(a.pages)
}

// Page returns the page with the given id, or nil if no such page exists
func (a *Allocator) Page(id PageID) *Page {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if int(id) < 0 || int(id) >= len(a.pages) {
		return nil
	}
	return a.pages[id]
}

// AvailablePages lists the ids of pages that are candidates for new allocations
func (a *Allocator) AvailablePages() []PageID {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return slices.Clone(a.available)
}

// Allocate finds a page that can hold count contiguous descriptors, creating a new page if none can
func (a *Allocator) Allocate(count int) (Allocation, error) {
	if count <= 0 {
		return Allocation{}, errors.Newf("descriptor allocations must contain at least one descriptor, but %d were requested", count)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	var alloc Allocation
	var ok bool

	for i := 0; i < len(a.available); {
		page := a.pages[a.available[i]]
		alloc, ok = page.Allocate(count)

		if page.NumFreeHandles() == 0 {
			a.available = slices.Delete(a.available, i, i+1)
		} else {
			i++
		}

		if ok {
			break
		}
	}

	if !ok {
		a.descriptorsPerPage = gpuutils.MaxInt(a.descriptorsPerPage, count)

		page, err := a.createPage()
		if err != nil {
			return Allocation{}, err
		}

		alloc, ok = page.Allocate(count)
		if !ok {
			panic("a freshly created descriptor page could not satisfy the request it was sized for")
		}

		if page.NumFreeHandles() == 0 {
			a.removeAvailable(page.ID())
		}
	}

	alloc.allocator = a
	return alloc, nil
}

func (a *Allocator) createPage() (*Page, error) {
	id := PageID(len(a.pages))
	page, err := NewPage(a.logger, a.device, a.kind, a.descriptorsPerPage, id, a.useMutex)
	if err != nil {
		return nil, err
	}

	a.pages = append(a.pages, page)
	a.addAvailable(id)

	return page, nil
}

func (a *Allocator) addAvailable(id PageID) {
	index, found := slices.BinarySearch(a.available, id)
	if !found {
		a.available = slices.Insert(a.available, index, id)
	}
}

func (a *Allocator) removeAvailable(id PageID) {
	index, found := slices.BinarySearch(a.available, id)
	if found {
		a.available = slices.Delete(a.available, index, index+1)
	}
}

// Free parks an allocation in its page until stale descriptors for frameNumber are released
func (a *Allocator) Free(alloc Allocation, frameNumber uint64) error {
	if alloc.IsNull() {
		return nil
	}

	page := a.Page(alloc.page)
	if page == nil {
		return errors.Wrapf(gpuutils.UnknownAllocationError, "page %d does not exist", alloc.page)
	}

	return page.Free(alloc, frameNumber)
}

// ReleaseStaleDescriptors releases stale ranges on every page and makes pages with free handles
// available again
func (a *Allocator) ReleaseStaleDescriptors(frameNumber uint64) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, page := range a.pages {
		page.ReleaseStaleDescriptors(frameNumber)

		if page.NumFreeHandles() > 0 {
			a.addAvailable(page.ID())
		}
	}
}

func (a *Allocator) Validate() error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	for i, page := range a.pages {
		if page.ID() != PageID(i) {
			return pkgerrors.Errorf("page at index %d has id %d", i, page.ID())
		}

		err := page.Validate()
		if err != nil {
			return errors.Wrapf(err, "page %d", i)
		}
	}

	for _, id := range a.available {
		if int(id) >= len(a.pages) {
			return pkgerrors.Errorf("available page %d does not exist", id)
		}
	}

	return nil
}

func (a *Allocator) AddStatistics(stats *gpuutils.Statistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	for _, page := range a.pages {
		page.AddStatistics(stats)
	}
}

func (a *Allocator) AddDetailedStatistics(stats *gpuutils.DetailedStatistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	for _, page := range a.pages {
		page.AddDetailedStatistics(stats)
	}
}

// PrintDetailedMap writes one object per page, keyed by page id
func (a *Allocator) PrintDetailedMap(writer *jwriter.Writer) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	objState := writer.Object()
	defer objState.End()

	for _, page := range a.pages {
		pageObj := objState.Name(strconv.Itoa(int(page.ID()))).Object()
		page.PrintDetailedMap(pageObj)
		pageObj.End()
	}
}
