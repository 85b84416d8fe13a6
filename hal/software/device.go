// Package software is an in-memory implementation of the hal interfaces. Descriptor heaps are
// slices, command recorders log commands, and queues execute those logs and signal fences on a
// worker goroutine. It is used to drive the synchronization core without a GPU.
package software

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/hal"
)

const (
	// DescriptorIncrement is the size, in bytes, of every descriptor on a software device
	DescriptorIncrement int = 32

	cpuAddressBase uint64 = 0x10000
	gpuAddressBase uint64 = 0x100000000
	// heaps are placed on boundaries of this size so handles from different heaps never overlap
	addressGranularity uint64 = 0x10000
)

// Descriptor is the payload of a software descriptor slot. Tests write descriptors with
// Device.WriteDescriptor and read them back after copies.
type Descriptor uint64

type Device struct {
	mutex      sync.Mutex
	nextCPU    uint64
	nextGPU    uint64
	heaps      []*DescriptorHeap
	queues     []*Queue
	recorders  int
	uploadSize int
}

var _ hal.Device = &Device{}

func NewDevice() *Device {
	return &Device{
		nextCPU: cpuAddressBase,
		nextGPU: gpuAddressBase,
	}
}

func alignAddress(size uint64) uint64 {
	return (size + addressGranularity - 1) / addressGranularity * addressGranularity
}

func (d *Device) CreateDescriptorHeap(kind hal.HeapKind, capacity int, shaderVisible bool) (hal.DescriptorHeap, error) {
	if capacity <= 0 {
		return nil, errors.Newf("descriptor heap capacity must be positive, but was %d", capacity)
	}
	if shaderVisible && !kind.ShaderVisible() {
		return nil, errors.Newf("%s heaps cannot be shader-visible", kind)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	size := alignAddress(uint64(capacity * DescriptorIncrement))
	heap := &DescriptorHeap{
		kind:        kind,
		capacity:    capacity,
		cpu:         hal.CPUHandle(d.nextCPU),
		descriptors: make([]Descriptor, capacity),
	}
	d.nextCPU += size + addressGranularity

	if shaderVisible {
		heap.gpu = hal.GPUHandle(d.nextGPU)
		d.nextGPU += size + addressGranularity
	}

	d.heaps = append(d.heaps, heap)
	return heap, nil
}

func (d *Device) DescriptorIncrement(kind hal.HeapKind) int {
	return DescriptorIncrement
}

// HeapCount is the number of descriptor heaps created on this device
func (d *Device) HeapCount() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return len(d.heaps)
}

// ShaderVisibleHeapCount is the number of shader-visible descriptor heaps created on this device
func (d *Device) ShaderVisibleHeapCount() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	count := 0
	for _, heap := range d.heaps {
		if heap.gpu != 0 {
			count++
		}
	}
	return count
}

// RecorderCount is the number of command recorders created on this device
func (d *Device) RecorderCount() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.recorders
}

func (d *Device) slotForCPU(handle hal.CPUHandle) (*DescriptorHeap, int, bool) {
	for _, heap := range d.heaps {
		if handle < heap.cpu {
			continue
		}

		offset := int(handle-heap.cpu) / DescriptorIncrement
		if offset < heap.capacity && int(handle-heap.cpu)%DescriptorIncrement == 0 {
			return heap, offset, true
		}
	}

	return nil, 0, false
}

func (d *Device) slotForGPU(handle hal.GPUHandle) (*DescriptorHeap, int, bool) {
	for _, heap := range d.heaps {
		if heap.gpu == 0 || handle < heap.gpu {
			continue
		}

		offset := int(handle-heap.gpu) / DescriptorIncrement
		if offset < heap.capacity && int(handle-heap.gpu)%DescriptorIncrement == 0 {
			return heap, offset, true
		}
	}

	return nil, 0, false
}

// WriteDescriptor stores value in the slot addressed by handle, the way creating a view would
func (d *Device) WriteDescriptor(handle hal.CPUHandle, value Descriptor) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	heap, offset, ok := d.slotForCPU(handle)
	if !ok {
		return errors.Newf("cpu handle %#x does not address a descriptor slot", uint64(handle))
	}

	heap.descriptors[offset] = value
	return nil
}

// ReadDescriptor returns the descriptor in the slot addressed by handle
func (d *Device) ReadDescriptor(handle hal.CPUHandle) (Descriptor, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	heap, offset, ok := d.slotForCPU(handle)
	if !ok {
		return 0, false
	}
	return heap.descriptors[offset], true
}

// ReadGPUDescriptor returns the descriptor a shader would see through handle
func (d *Device) ReadGPUDescriptor(handle hal.GPUHandle) (Descriptor, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	heap, offset, ok := d.slotForGPU(handle)
	if !ok {
		return 0, false
	}
	return heap.descriptors[offset], true
}

func (d *Device) copyDescriptor(dst, src hal.CPUHandle) {
	var value Descriptor
	srcHeap, srcOffset, ok := d.slotForCPU(src)
	if ok {
		value = srcHeap.descriptors[srcOffset]
	}

	dstHeap, dstOffset, ok := d.slotForCPU(dst)
	if !ok {
		panic(errors.Newf("descriptor copy into cpu handle %#x, which does not address a descriptor slot", uint64(dst)))
	}
	dstHeap.descriptors[dstOffset] = value
}

func (d *Device) CopyDescriptors(kind hal.HeapKind, dst hal.CPUHandle, src []hal.CPUHandle) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for i, handle := range src {
		d.copyDescriptor(dst.Offset(i, DescriptorIncrement), handle)
	}
}

func (d *Device) CopyDescriptorsSimple(kind hal.HeapKind, count int, dst hal.CPUHandle, src hal.CPUHandle) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for i := 0; i < count; i++ {
		d.copyDescriptor(dst.Offset(i, DescriptorIncrement), src.Offset(i, DescriptorIncrement))
	}
}

func (d *Device) CreateCommandRecorder(kind hal.QueueKind) (hal.CommandRecorder, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.recorders++
	return &Recorder{kind: kind}, nil
}

func (d *Device) CreateQueue(kind hal.QueueKind) (hal.Queue, error) {
	queue := newQueue(kind)

	d.mutex.Lock()
	d.queues = append(d.queues, queue)
	d.mutex.Unlock()

	return queue, nil
}

func (d *Device) CreateFence(initialValue uint64) (hal.Fence, error) {
	return NewFence(initialValue), nil
}

func (d *Device) CreateUploadPage(size int) (hal.UploadPage, error) {
	if size <= 0 {
		return nil, errors.Newf("upload page size must be positive, but was %d", size)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	address := d.nextGPU
	d.nextGPU += alignAddress(uint64(size)) + addressGranularity
	d.uploadSize += size

	return &UploadPage{
		data:    make([]byte, size),
		address: address,
	}, nil
}

// UploadBytes is the total size of every upload page created on this device
func (d *Device) UploadBytes() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.uploadSize
}

// Destroy stops the worker of every queue created on this device
func (d *Device) Destroy() {
	d.mutex.Lock()
	queues := d.queues
	d.queues = nil
	d.mutex.Unlock()

	for _, queue := range queues {
		queue.stop()
	}
}

type DescriptorHeap struct {
	kind        hal.HeapKind
	capacity    int
	cpu         hal.CPUHandle
	gpu         hal.GPUHandle
	descriptors []Descriptor
}

var _ hal.DescriptorHeap = &DescriptorHeap{}

func (h *DescriptorHeap) Kind() hal.HeapKind      { return h.kind }
func (h *DescriptorHeap) Capacity() int           { return h.capacity }
func (h *DescriptorHeap) CPUStart() hal.CPUHandle { return h.cpu }
func (h *DescriptorHeap) GPUStart() hal.GPUHandle { return h.gpu }

type UploadPage struct {
	data    []byte
	address uint64
}

var _ hal.UploadPage = &UploadPage{}

func (p *UploadPage) Size() int          { return len(p.data) }
func (p *UploadPage) Bytes() []byte      { return p.data }
func (p *UploadPage) GPUAddress() uint64 { return p.address }
