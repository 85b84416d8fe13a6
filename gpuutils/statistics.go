package gpuutils

import "math"

// Statistics summarizes descriptor usage across one or more descriptor pages
type Statistics struct {
	// PageCount is the number of CPU-visible descriptor pages that have been created
	PageCount int
	// AllocationCount is the number of outstanding descriptor ranges, including ranges
	// that were freed but have not been released back to their page yet
	AllocationCount int
	// PageDescriptors is the total descriptor capacity of all pages
	PageDescriptors int
	// AllocatedDescriptors is the number of descriptors held by outstanding ranges
	AllocatedDescriptors int
}

func (s *Statistics) Clear() {
	s.PageCount = 0
	s.AllocationCount = 0
	s.PageDescriptors = 0
	s.AllocatedDescriptors = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.PageCount += other.PageCount
	s.AllocationCount += other.AllocationCount
	s.PageDescriptors += other.PageDescriptors
	s.AllocatedDescriptors += other.AllocatedDescriptors
}

type DetailedStatistics struct {
	Statistics
	FreeRangeCount   int
	AllocationMin    int
	AllocationMax    int
	FreeRangeSizeMin int
	FreeRangeSizeMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.FreeRangeCount = 0
	s.AllocationMin = math.MaxInt
	s.AllocationMax = 0
	s.FreeRangeSizeMin = math.MaxInt
	s.FreeRangeSizeMax = 0
}

func (s *DetailedStatistics) AddFreeRange(size int) {
	s.FreeRangeCount++

	if size < s.FreeRangeSizeMin {
		s.FreeRangeSizeMin = size
	}

	if size > s.FreeRangeSizeMax {
		s.FreeRangeSizeMax = size
	}
}

func (s *DetailedStatistics) AddAllocation(size int) {
	s.AllocationCount++
	s.AllocatedDescriptors += size

	if size < s.AllocationMin {
		s.AllocationMin = size
	}

	if size > s.AllocationMax {
		s.AllocationMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.FreeRangeCount += other.FreeRangeCount

	if other.FreeRangeSizeMin < s.FreeRangeSizeMin {
		s.FreeRangeSizeMin = other.FreeRangeSizeMin
	}

	if other.FreeRangeSizeMax > s.FreeRangeSizeMax {
		s.FreeRangeSizeMax = other.FreeRangeSizeMax
	}

	if other.AllocationMin < s.AllocationMin {
		s.AllocationMin = other.AllocationMin
	}

	if other.AllocationMax > s.AllocationMax {
		s.AllocationMax = other.AllocationMax
	}
}
