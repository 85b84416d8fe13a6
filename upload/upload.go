// Package upload implements the linear upload buffer a command list stages copy data in. Pages are
// only recycled when the owning command list is reset, after the GPU has finished reading them.
package upload

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
	"golang.org/x/exp/slog"
)

// DefaultPageSize is the upload page size used when none is specified
const DefaultPageSize int = 2 * 1024 * 1024

// Allocation is a CPU-writable window into an upload page
type Allocation struct {
	// Data is the CPU-visible memory of the allocation
	Data []byte
	// GPUAddress is the address the GPU reads the allocation from
	GPUAddress uint64
	Page       hal.UploadPage
	// Offset is the allocation's offset within Page
	Offset int
}

type page struct {
	memory hal.UploadPage
	offset int
}

func (p *page) hasSpace(size int, alignment uint) bool {
	alignedSize := gpuutils.AlignUp(size, alignment)
	alignedOffset := gpuutils.AlignUp(p.offset, alignment)

	return alignedOffset+alignedSize <= p.memory.Size()
}

func (p *page) allocate(size int, alignment uint) Allocation {
	alignedSize := gpuutils.AlignUp(size, alignment)
	p.offset = gpuutils.AlignUp(p.offset, alignment)

	alloc := Allocation{
		Data:       p.memory.Bytes()[p.offset : p.offset+size],
		GPUAddress: p.memory.GPUAddress() + uint64(p.offset),
		Page:       p.memory,
		Offset:     p.offset,
	}
	p.offset += alignedSize

	return alloc
}

// Buffer hands out upload memory from a list of fixed-size pages. It is owned by one command list
// and is not safe for concurrent use.
type Buffer struct {
	logger   *slog.Logger
	device   hal.Device
	pageSize int

	pool      []*page
	available []*page
	current   *page
}

func New(logger *slog.Logger, device hal.Device, pageSize int) (*Buffer, error) {
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 0 {
		return nil, errors.Newf("upload page size must be positive, but was %d", pageSize)
	}

	return &Buffer{
		logger:   logger,
		device:   device,
		pageSize: pageSize,
	}, nil
}

func (b *Buffer) PageSize() int  { return b.pageSize }
func (b *Buffer) PageCount() int { return len(b.pool) }

// Allocate returns size bytes aligned to alignment, which must be a power of two
func (b *Buffer) Allocate(size int, alignment uint) (Allocation, error) {
	err := gpuutils.CheckPow2(alignment, "alignment")
	if err != nil {
		return Allocation{}, err
	}

	if size < 0 {
		return Allocation{}, errors.Newf("upload allocation size must not be negative, but was %d", size)
	}

	if size > b.pageSize {
		return Allocation{}, errors.Wrapf(gpuutils.UploadTooLargeError, "%d bytes requested from %d byte pages", size, b.pageSize)
	}

	if b.current == nil || !b.current.hasSpace(size, alignment) {
		b.current, err = b.requestPage()
		if err != nil {
			return Allocation{}, err
		}

		if !b.current.hasSpace(size, alignment) {
			return Allocation{}, errors.Wrapf(gpuutils.UploadTooLargeError, "%d bytes aligned to %d do not fit in %d byte pages", size, alignment, b.pageSize)
		}
	}

	return b.current.allocate(size, alignment), nil
}

func (b *Buffer) requestPage() (*page, error) {
	if len(b.available) > 0 {
		next := b.available[0]
		b.available = b.available[1:]
		return next, nil
	}

	memory, err := b.device.CreateUploadPage(b.pageSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %d byte upload page", b.pageSize)
	}

	next := &page{memory: memory}
	b.pool = append(b.pool, next)

	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "Created upload page",
		slog.Int("size", b.pageSize),
		slog.Int("pages", len(b.pool)))

	return next, nil
}

// Reset makes every page available again. It must only be called once the GPU has finished
// reading every allocation.
func (b *Buffer) Reset() {
	b.current = nil
	b.available = make([]*page, len(b.pool))
	copy(b.available, b.pool)

	for _, p := range b.available {
		p.offset = 0
	}
}
