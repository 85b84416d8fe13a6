// Package hal describes the native graphics API surface the synchronization core drives.
// Backends implement these interfaces; the core never talks to a driver directly.
package hal

//go:generate mockgen -package mocks -destination ./mocks/mocks.go github.com/vkngwrapper/conduit/hal CommandRecorder,DescriptorHeap,Device,Fence,Queue,RootSignature,UploadPage

import "github.com/vkngwrapper/conduit/resource"

// QueueKind is the type of hardware queue a command recorder is created for
type QueueKind int8

const (
	QueueDirect QueueKind = iota
	QueueCompute
	QueueCopy
	QueueKindCount
)

var queueKindMapping = map[QueueKind]string{
	QueueDirect:  "QueueDirect",
	QueueCompute: "QueueCompute",
	QueueCopy:    "QueueCopy",
}

func (k QueueKind) String() string {
	return queueKindMapping[k]
}

// HeapKind is the type of descriptor a descriptor heap holds
type HeapKind int8

const (
	HeapCBVSRVUAV HeapKind = iota
	HeapSampler
	HeapRTV
	HeapDSV
	HeapKindCount
)

var heapKindMapping = map[HeapKind]string{
	HeapCBVSRVUAV: "HeapCBVSRVUAV",
	HeapSampler:   "HeapSampler",
	HeapRTV:       "HeapRTV",
	HeapDSV:       "HeapDSV",
}

func (k HeapKind) String() string {
	return heapKindMapping[k]
}

// ShaderVisible reports whether heaps of this kind can be bound for shader access
func (k HeapKind) ShaderVisible() bool {
	return k == HeapCBVSRVUAV || k == HeapSampler
}

// CPUHandle addresses a descriptor slot in CPU-visible descriptor memory
type CPUHandle uint64

// Offset advances the handle by count descriptors of the given increment size
func (h CPUHandle) Offset(count int, increment int) CPUHandle {
	return h + CPUHandle(count*increment)
}

// GPUHandle addresses a descriptor slot in a shader-visible heap as seen by the GPU
type GPUHandle uint64

// Offset advances the handle by count descriptors of the given increment size
func (h GPUHandle) Offset(count int, increment int) GPUHandle {
	return h + GPUHandle(count*increment)
}

// DescriptorHeap is a contiguous, fixed-capacity array of descriptor slots
type DescriptorHeap interface {
	Kind() HeapKind
	Capacity() int
	CPUStart() CPUHandle
	// GPUStart is the GPU address of the first slot. It is zero for heaps that are not shader-visible.
	GPUStart() GPUHandle
}

// RootSignature exposes the descriptor-table layout of a bound root signature
type RootSignature interface {
	NumParameters() int
	// DescriptorTableMask has bit i set when root parameter i is a descriptor table of the given kind
	DescriptorTableMask(kind HeapKind) uint32
	// NumDescriptors is the number of descriptors in the table at rootIndex
	NumDescriptors(rootIndex int) int
}

// UploadPage is a CPU-writable, GPU-readable block of memory used to stage data for copies
type UploadPage interface {
	Size() int
	Bytes() []byte
	GPUAddress() uint64
}

// CommandRecorder records commands for one queue kind. It is only ever used from one goroutine at a time.
type CommandRecorder interface {
	Kind() QueueKind

	ResourceBarrier(barriers []resource.Barrier)

	SetDescriptorHeaps(heaps []DescriptorHeap)
	SetGraphicsRootSignature(signature RootSignature)
	SetComputeRootSignature(signature RootSignature)
	SetGraphicsRootDescriptorTable(rootIndex int, handle GPUHandle)
	SetComputeRootDescriptorTable(rootIndex int, handle GPUHandle)

	CopyResource(dst, src resource.Resource)
	CopyBufferRegion(dst resource.Resource, dstOffset int, src UploadPage, srcOffset int, size int)
	ResolveSubresource(dst resource.Resource, dstSubresource resource.Subresource, src resource.Resource, srcSubresource resource.Subresource)

	Draw(vertexCount, instanceCount, startVertex, startInstance int)
	DrawIndexed(indexCount, instanceCount, startIndex, baseVertex, startInstance int)
	Dispatch(groupsX, groupsY, groupsZ int)

	Close() error
	Reset() error
}

// Fence is a GPU/CPU synchronization counter advanced by the GPU
type Fence interface {
	CompletedValue() uint64
	// Wait blocks the calling goroutine until the fence reaches value
	Wait(value uint64) error
}

// Queue is a hardware queue that executes closed command recorders in submission order
type Queue interface {
	Kind() QueueKind
	Execute(recorders []CommandRecorder) error
	// Signal asks the GPU to set fence to value once all previously executed work completes
	Signal(fence Fence, value uint64) error
	// Wait makes the GPU stall this queue until fence reaches value; it does not block the CPU
	Wait(fence Fence, value uint64) error
}

// Device creates hardware objects and performs CPU-side descriptor copies
type Device interface {
	CreateDescriptorHeap(kind HeapKind, capacity int, shaderVisible bool) (DescriptorHeap, error)
	DescriptorIncrement(kind HeapKind) int
	// CopyDescriptors copies the descriptors at each source handle into consecutive slots starting at dst
	CopyDescriptors(kind HeapKind, dst CPUHandle, src []CPUHandle)
	// CopyDescriptorsSimple copies count consecutive descriptors starting at src into consecutive slots starting at dst
	CopyDescriptorsSimple(kind HeapKind, count int, dst CPUHandle, src CPUHandle)

	CreateCommandRecorder(kind QueueKind) (CommandRecorder, error)
	CreateQueue(kind QueueKind) (Queue, error)
	CreateFence(initialValue uint64) (Fence, error)
	CreateUploadPage(size int) (UploadPage, error)
}
