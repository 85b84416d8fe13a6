package descriptor

import (
	"fmt"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// freeList indexes the free blocks of a page twice: by offset, for finding the neighbors of a
// released range, and by size, for finding the smallest block that fits a request. Both indexes
// hold exactly one entry per free block.
type freeList struct {
	sizes   *swiss.Map[int, int]
	offsets []int
	// bySize holds size<<32|offset so that sorting orders by size and then by offset
	bySize []uint64
}

func newFreeList() freeList {
	return freeList{
		sizes: swiss.NewMap[int, int](42),
	}
}

func sizeKey(offset, size int) uint64 {
	return uint64(size)<<32 | uint64(uint32(offset))
}

func (l *freeList) Count() int { return len(l.offsets) }

func (l *freeList) add(offset, size int) {
	l.sizes.Put(offset, size)

	index, found := slices.BinarySearch(l.offsets, offset)
	if found {
		panic(fmt.Sprintf("free block at offset %d was added twice", offset))
	}
	l.offsets = slices.Insert(l.offsets, index, offset)

	key := sizeKey(offset, size)
	index, _ = slices.BinarySearch(l.bySize, key)
	l.bySize = slices.Insert(l.bySize, index, key)
}

func (l *freeList) remove(offset int) int {
	size, ok := l.sizes.Get(offset)
	if !ok {
		panic(fmt.Sprintf("attempted to remove free block at offset %d, but it is not in the free list", offset))
	}
	l.sizes.Delete(offset)

	index, found := slices.BinarySearch(l.offsets, offset)
	if !found {
		panic(fmt.Sprintf("free block at offset %d is missing from the offset index", offset))
	}
	l.offsets = slices.Delete(l.offsets, index, index+1)

	index, found = slices.BinarySearch(l.bySize, sizeKey(offset, size))
	if !found {
		panic(fmt.Sprintf("free block at offset %d is missing from the size index", offset))
	}
	l.bySize = slices.Delete(l.bySize, index, index+1)

	return size
}

// smallestFit finds the smallest free block holding at least count descriptors
func (l *freeList) smallestFit(count int) (offset int, size int, ok bool) {
	index, _ := slices.BinarySearch(l.bySize, sizeKey(0, count))
	if index == len(l.bySize) {
		return 0, 0, false
	}

	key := l.bySize[index]
	return int(uint32(key)), int(key >> 32), true
}

// neighbors finds the free blocks immediately before and after offset
func (l *freeList) neighbors(offset int) (prev int, hasPrev bool, next int, hasNext bool) {
	index, found := slices.BinarySearch(l.offsets, offset)
	if found {
		index++
	}

	if index > 0 {
		prev = l.offsets[index-1]
		hasPrev = true
	}

	if index < len(l.offsets) {
		next = l.offsets[index]
		hasNext = true
	}

	return prev, hasPrev, next, hasNext
}

func (l *freeList) size(offset int) int {
	size, _ := l.sizes.Get(offset)
	return size
}

func (l *freeList) visit(visitor func(offset, size int)) {
	for _, offset := range l.offsets {
		visitor(offset, l.size(offset))
	}
}
