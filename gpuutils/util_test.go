package gpuutils

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestCheckPow2(t *testing.T) {
	require.NoError(t, CheckPow2(256, "alignment"))
	require.NoError(t, CheckPow2(uint64(1), "alignment"))

	err := CheckPow2(24, "alignment")
	require.Error(t, err)
	require.True(t, errors.Is(err, PowerOfTwoError))

	require.True(t, errors.Is(CheckPow2(0, "alignment"), PowerOfTwoError))
}

func TestAlignUp(t *testing.T) {
	require.Equal(t, 0, AlignUp(0, 256))
	require.Equal(t, 256, AlignUp(1, 256))
	require.Equal(t, 256, AlignUp(256, 256))
	require.Equal(t, 512, AlignUp(257, 256))
}

func TestDetailedStatisticsAccumulate(t *testing.T) {
	var page1, page2, total DetailedStatistics
	page1.Clear()
	page2.Clear()
	total.Clear()

	page1.PageCount = 1
	page1.PageDescriptors = 100
	page1.AddAllocation(10)
	page1.AddAllocation(30)
	page1.AddFreeRange(60)

	page2.PageCount = 1
	page2.PageDescriptors = 100
	page2.AddFreeRange(100)

	total.AddDetailedStatistics(&page1)
	total.AddDetailedStatistics(&page2)

	require.Equal(t, DetailedStatistics{
		Statistics: Statistics{
			PageCount:            2,
			AllocationCount:      2,
			PageDescriptors:      200,
			AllocatedDescriptors: 40,
		},
		FreeRangeCount:   2,
		AllocationMin:    10,
		AllocationMax:    30,
		FreeRangeSizeMin: 60,
		FreeRangeSizeMax: 100,
	}, total)

	total.Clear()
	require.Equal(t, math.MaxInt, total.AllocationMin)
	require.Equal(t, 0, total.PageCount)
}
