// Package queue ties the synchronization core together. A Device owns the global resource state
// and the descriptor allocators of one graphics device; its CommandQueues hand out CommandLists,
// resolve their deferred barriers at submission and reclaim them once the GPU is done with them.
package queue

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/conduit/descriptor"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
	"github.com/vkngwrapper/conduit/resource"
	"github.com/vkngwrapper/conduit/tracker"
	"golang.org/x/exp/slog"
)

// Device is the context every queue, command list and descriptor allocation of one graphics device
// shares. It replaces process-wide state: two Devices never observe each other's resources.
type Device struct {
	logger  *slog.Logger
	device  hal.Device
	options DeviceOptions

	global     *tracker.GlobalState
	allocators [hal.HeapKindCount]*descriptor.Allocator

	queueMutex sync.Mutex
	queues     [hal.QueueKindCount]*CommandQueue
	destroyed  bool
}

// New creates a Device
//
// device - The backend device that heaps, recorders, queues and fences are created from
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, device hal.Device, options DeviceOptions) (*Device, error) {
	if device == nil {
		return nil, errors.New("queue.New requires a backend device")
	}

	options = options.withDefaults()
	if options.DescriptorsPerPage < 0 || options.DynamicDescriptorsPerHeap < 0 || options.UploadPageSize < 0 ||
		options.InFlightCapacity < 0 || options.MaxPooledCommandLists < 0 {
		return nil, errors.Newf("device options must not be negative: %+v", options)
	}

	d := &Device{
		logger:  logger,
		device:  device,
		options: options,
		global:  tracker.NewGlobalState(logger),
	}

	allocatorOptions := descriptor.AllocatorOptions{
		DescriptorsPerPage:     options.DescriptorsPerPage,
		ExternallySynchronized: options.Flags&DeviceCreateExternallySynchronized != 0,
	}
	for kind := hal.HeapKind(0); kind < hal.HeapKindCount; kind++ {
		d.allocators[kind] = descriptor.NewAllocator(logger, device, kind, allocatorOptions)
	}

	return d, nil
}

func (d *Device) HAL() hal.Device                   { return d.device }
func (d *Device) Options() DeviceOptions            { return d.options }
func (d *Device) GlobalState() *tracker.GlobalState { return d.global }

func (d *Device) Allocator(kind hal.HeapKind) *descriptor.Allocator {
	return d.allocators[kind]
}

// Queue returns the device's queue of the given kind, creating it on first use
func (d *Device) Queue(kind hal.QueueKind) (*CommandQueue, error) {
	if kind < 0 || kind >= hal.QueueKindCount {
		return nil, errors.Newf("unknown queue kind %d", kind)
	}

	d.queueMutex.Lock()
	defer d.queueMutex.Unlock()

	if d.destroyed {
		return nil, errors.Wrapf(gpuutils.QueueDestroyedError, "device has been destroyed")
	}

	if d.queues[kind] != nil {
		return d.queues[kind], nil
	}

	queue, err := newCommandQueue(d, kind)
	if err != nil {
		return nil, err
	}

	d.queues[kind] = queue
	return queue, nil
}

// AllocateDescriptors allocates count CPU-visible descriptors of the given kind
func (d *Device) AllocateDescriptors(kind hal.HeapKind, count int) (descriptor.Allocation, error) {
	if kind < 0 || kind >= hal.HeapKindCount {
		return descriptor.Allocation{}, errors.Newf("unknown descriptor heap kind %d", kind)
	}

	return d.allocators[kind].Allocate(count)
}

// ReleaseStaleDescriptors releases every descriptor range freed with a frame number at or before
// frameNumber
func (d *Device) ReleaseStaleDescriptors(frameNumber uint64) {
	for _, allocator := range d.allocators {
		allocator.ReleaseStaleDescriptors(frameNumber)
	}
}

// RegisterResource records the initial state of a new resource. Every resource must be registered
// before a command list references it: transitions on unregistered resources resolve to no barrier.
func (d *Device) RegisterResource(res resource.Resource, initialState resource.State) {
	d.global.AddResource(res, initialState)
}

func (d *Device) UnregisterResource(res resource.Resource) {
	d.global.RemoveResource(res)
}

func (d *Device) createdQueues() []*CommandQueue {
	d.queueMutex.Lock()
	defer d.queueMutex.Unlock()

	var queues []*CommandQueue
	for _, queue := range d.queues {
		if queue != nil {
			queues = append(queues, queue)
		}
	}
	return queues
}

// Flush blocks until every queue of this device is idle
func (d *Device) Flush() error {
	for _, queue := range d.createdQueues() {
		err := queue.Flush()
		if err != nil {
			return err
		}
	}

	return nil
}

// Destroy flushes and destroys every queue of this device. The device cannot create queues afterward.
func (d *Device) Destroy() error {
	queues := d.createdQueues()

	d.queueMutex.Lock()
	d.destroyed = true
	d.queueMutex.Unlock()

	var err error
	for _, queue := range queues {
		err = errors.CombineErrors(err, queue.Destroy())
	}

	return err
}

// Statistics summarizes descriptor usage of a device
type Statistics struct {
	HeapKinds [hal.HeapKindCount]gpuutils.DetailedStatistics
	Total     gpuutils.DetailedStatistics
	// Resources is the number of resources registered in the global state
	Resources int
}

func (d *Device) CalculateStatistics(stats *Statistics) {
	stats.Total.Clear()

	for kind, allocator := range d.allocators {
		stats.HeapKinds[kind].Clear()
		allocator.AddDetailedStatistics(&stats.HeapKinds[kind])
		stats.Total.AddDetailedStatistics(&stats.HeapKinds[kind])
	}

	stats.Resources = d.global.Count()
}

func printDetailedStatistics(json jwriter.ObjectState, stats *gpuutils.DetailedStatistics) {
	json.Name("PageCount").Int(stats.PageCount)
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("FreeRangeCount").Int(stats.FreeRangeCount)
	json.Name("PageDescriptors").Int(stats.PageDescriptors)
	json.Name("AllocatedDescriptors").Int(stats.AllocatedDescriptors)

	if stats.AllocationCount > 0 {
		json.Name("AllocationSizeMin").Int(stats.AllocationMin)
		json.Name("AllocationSizeMax").Int(stats.AllocationMax)
	}
	if stats.FreeRangeCount > 0 {
		json.Name("FreeRangeSizeMin").Int(stats.FreeRangeSizeMin)
		json.Name("FreeRangeSizeMax").Int(stats.FreeRangeSizeMax)
	}
}

// BuildStatsString returns a JSON document describing descriptor usage. When detailedMap is true,
// every page and range is listed as well.
func (d *Device) BuildStatsString(detailedMap bool) string {
	var stats Statistics
	d.CalculateStatistics(&stats)

	writer := jwriter.NewWriter()
	rootObj := writer.Object()

	rootObj.Name("Resources").Int(stats.Resources)

	totalObj := rootObj.Name("Total").Object()
	printDetailedStatistics(totalObj, &stats.Total)
	totalObj.End()

	kindsObj := rootObj.Name("HeapKinds").Object()
	for kind := hal.HeapKind(0); kind < hal.HeapKindCount; kind++ {
		kindObj := kindsObj.Name(kind.String()).Object()
		printDetailedStatistics(kindObj, &stats.HeapKinds[kind])

		if detailedMap {
			d.allocators[kind].PrintDetailedMap(kindObj.Name("Pages"))
		}

		kindObj.End()
	}
	kindsObj.End()

	rootObj.End()
	return string(writer.Bytes())
}
