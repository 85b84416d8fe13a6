package descriptor

import (
	"context"
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

const (
	// MaxDescriptorTables is the number of root parameters a dynamic heap can stage descriptors for
	MaxDescriptorTables int = 32
	// DefaultDescriptorsPerHeap is the capacity of GPU-visible heaps when none is specified
	DefaultDescriptorsPerHeap int = 1024
)

// CommandContext is the recording context a dynamic heap commits into
type CommandContext interface {
	Recorder() hal.CommandRecorder
	// SetDescriptorHeap binds heap as the context's GPU-visible heap for kind
	SetDescriptorHeap(kind hal.HeapKind, heap hal.DescriptorHeap)
}

// TableBinder binds a committed descriptor table to a root parameter. The recorder's
// SetGraphicsRootDescriptorTable and SetComputeRootDescriptorTable method expressions both satisfy it.
type TableBinder func(recorder hal.CommandRecorder, rootIndex int, handle hal.GPUHandle)

type tableCache struct {
	numDescriptors int
	base           int
}

// DynamicHeap stages CPU-visible descriptors per root parameter and copies the stale tables into
// a GPU-visible heap right before a draw or dispatch. A DynamicHeap belongs to one command list
// and is not safe for concurrent use.
type DynamicHeap struct {
	logger    *slog.Logger
	device    hal.Device
	kind      hal.HeapKind
	perHeap   int
	increment int

	handles   []hal.CPUHandle
	tables    [MaxDescriptorTables]tableCache
	tableMask uint32
	staleMask uint32

	pool      []hal.DescriptorHeap
	available []hal.DescriptorHeap

	current    hal.DescriptorHeap
	currentCPU hal.CPUHandle
	currentGPU hal.GPUHandle
	numFree    int
}

func NewDynamicHeap(logger *slog.Logger, device hal.Device, kind hal.HeapKind, descriptorsPerHeap int) (*DynamicHeap, error) {
	if !kind.ShaderVisible() {
		return nil, errors.Newf("%s heaps cannot be bound for shader access", kind)
	}

	if descriptorsPerHeap == 0 {
		descriptorsPerHeap = DefaultDescriptorsPerHeap
	}
	if descriptorsPerHeap < 0 {
		return nil, errors.Newf("descriptors per heap must be positive, but was %d", descriptorsPerHeap)
	}

	increment := device.DescriptorIncrement(kind)
	if increment <= 0 {
		return nil, errors.Newf("device reported a descriptor increment of %d for %s", increment, kind)
	}

	return &DynamicHeap{
		logger:    logger,
		device:    device,
		kind:      kind,
		perHeap:   descriptorsPerHeap,
		increment: increment,
		handles:   make([]hal.CPUHandle, descriptorsPerHeap),
	}, nil
}

func (h *DynamicHeap) Kind() hal.HeapKind               { return h.kind }
func (h *DynamicHeap) DescriptorsPerHeap() int          { return h.perHeap }
func (h *DynamicHeap) CurrentHeap() hal.DescriptorHeap  { return h.current }
func (h *DynamicHeap) NumFreeHandles() int              { return h.numFree }
func (h *DynamicHeap) HeapCount() int                   { return len(h.pool) }
func (h *DynamicHeap) DescriptorTableMask() uint32      { return h.tableMask }
func (h *DynamicHeap) StaleDescriptorTableMask() uint32 { return h.staleMask }

// ParseRootSignature lays out the staging cache for every descriptor table of this heap's kind in
// signature. Staged descriptors that were not committed yet are discarded.
func (h *DynamicHeap) ParseRootSignature(signature hal.RootSignature) error {
	h.staleMask = 0
	h.tables = [MaxDescriptorTables]tableCache{}

	mask := signature.DescriptorTableMask(h.kind)
	numParameters := signature.NumParameters()

	var parsed uint32
	offset := 0
	for mask != 0 {
		rootIndex := bits.TrailingZeros32(mask)
		if rootIndex >= numParameters {
			break
		}

		numDescriptors := signature.NumDescriptors(rootIndex)
		h.tables[rootIndex] = tableCache{
			numDescriptors: numDescriptors,
			base:           offset,
		}

		offset += numDescriptors
		parsed |= 1 << rootIndex
		mask ^= 1 << rootIndex
	}

	if offset > h.perHeap {
		h.tables = [MaxDescriptorTables]tableCache{}
		h.tableMask = 0
		return errors.Wrapf(gpuutils.RootSignatureTooLargeError, "%s tables need %d descriptors, but heaps hold %d", h.kind, offset, h.perHeap)
	}

	h.tableMask = parsed
	return nil
}

// StageDescriptors copies count consecutive CPU handles starting at src into the cache for the
// table at rootIndex, beginning at offset within the table, and marks the table stale
func (h *DynamicHeap) StageDescriptors(rootIndex, offset, count int, src hal.CPUHandle) error {
	if count > h.perHeap {
		return errors.Wrapf(gpuutils.TooManyDescriptorsError, "%d descriptors staged, but heaps hold %d", count, h.perHeap)
	}
	if rootIndex < 0 || rootIndex >= MaxDescriptorTables {
		return errors.Wrapf(gpuutils.RootIndexOutOfRangeError, "root index %d", rootIndex)
	}

	table := h.tables[rootIndex]
	if offset < 0 || offset+count > table.numDescriptors {
		return errors.Wrapf(gpuutils.TableOverflowError, "descriptors [%d, %d) staged into table %d, which holds %d", offset, offset+count, rootIndex, table.numDescriptors)
	}

	start := table.base + offset
	for i := 0; i < count; i++ {
		h.handles[start+i] = src.Offset(i, h.increment)
	}

	h.staleMask |= 1 << rootIndex
	return nil
}

// StaleDescriptorCount is the number of descriptors the next commit will copy
func (h *DynamicHeap) StaleDescriptorCount() int {
	count := 0
	mask := h.staleMask
	for mask != 0 {
		rootIndex := bits.TrailingZeros32(mask)
		count += h.tables[rootIndex].numDescriptors
		mask ^= 1 << rootIndex
	}

	return count
}

func (h *DynamicHeap) requestHeap() (hal.DescriptorHeap, error) {
	if len(h.available) > 0 {
		heap := h.available[0]
		h.available = h.available[1:]
		return heap, nil
	}

	heap, err := h.device.CreateDescriptorHeap(h.kind, h.perHeap, true)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create shader-visible %s heap with %d descriptors", h.kind, h.perHeap)
	}
	h.pool = append(h.pool, heap)

	h.logger.LogAttrs(context.Background(), slog.LevelDebug, "Created shader-visible descriptor heap",
		slog.String("kind", h.kind.String()),
		slog.Int("capacity", h.perHeap),
		slog.Int("heaps", len(h.pool)))

	return heap, nil
}

func (h *DynamicHeap) ensureSpace(ctx CommandContext, count int) error {
	if h.current != nil && h.numFree >= count {
		return nil
	}

	heap, err := h.requestHeap()
	if err != nil {
		return err
	}

	h.current = heap
	h.currentCPU = heap.CPUStart()
	h.currentGPU = heap.GPUStart()
	h.numFree = h.perHeap

	ctx.SetDescriptorHeap(h.kind, heap)

	// Tables committed to the previous heap are not visible through the new one
	h.staleMask = h.tableMask
	return nil
}

// Commit copies every stale table into the current GPU-visible heap and binds it with bind,
// switching to a new heap first if the current one cannot hold them
func (h *DynamicHeap) Commit(ctx CommandContext, bind TableBinder) error {
	if h.staleMask == 0 {
		return nil
	}

	err := h.ensureSpace(ctx, h.StaleDescriptorCount())
	if err != nil {
		return err
	}

	recorder := ctx.Recorder()
	for h.staleMask != 0 {
		rootIndex := bits.TrailingZeros32(h.staleMask)
		table := h.tables[rootIndex]

		if table.numDescriptors > 0 {
			h.device.CopyDescriptors(h.kind, h.currentCPU, h.handles[table.base:table.base+table.numDescriptors])
		}
		bind(recorder, rootIndex, h.currentGPU)

		h.currentCPU = h.currentCPU.Offset(table.numDescriptors, h.increment)
		h.currentGPU = h.currentGPU.Offset(table.numDescriptors, h.increment)
		h.numFree -= table.numDescriptors

		h.staleMask ^= 1 << rootIndex
	}

	return nil
}

func (h *DynamicHeap) CommitForDraw(ctx CommandContext) error {
	return h.Commit(ctx, hal.CommandRecorder.SetGraphicsRootDescriptorTable)
}

func (h *DynamicHeap) CommitForDispatch(ctx CommandContext) error {
	return h.Commit(ctx, hal.CommandRecorder.SetComputeRootDescriptorTable)
}

// CopyDescriptor copies a single CPU-visible descriptor into the current GPU-visible heap and
// returns its GPU handle
func (h *DynamicHeap) CopyDescriptor(ctx CommandContext, src hal.CPUHandle) (hal.GPUHandle, error) {
	err := h.ensureSpace(ctx, 1)
	if err != nil {
		return 0, err
	}

	gpu := h.currentGPU
	h.device.CopyDescriptorsSimple(h.kind, 1, h.currentCPU, src)

	h.currentCPU = h.currentCPU.Offset(1, h.increment)
	h.currentGPU = h.currentGPU.Offset(1, h.increment)
	h.numFree--

	return gpu, nil
}

// Reset makes every heap this DynamicHeap created available again and forgets the root signature
// layout. It must only be called once the GPU has finished with the command list.
func (h *DynamicHeap) Reset() {
	h.available = slices.Clone(h.pool)
	h.current = nil
	h.currentCPU = 0
	h.currentGPU = 0
	h.numFree = 0
	h.tableMask = 0
	h.staleMask = 0
	h.tables = [MaxDescriptorTables]tableCache{}
}
