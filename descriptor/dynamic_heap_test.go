package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conduit/descriptor"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
	"github.com/vkngwrapper/conduit/hal/mocks"
	"github.com/vkngwrapper/conduit/hal/software"
	"go.uber.org/mock/gomock"
)

type testContext struct {
	recorder hal.CommandRecorder
	heaps    map[hal.HeapKind]hal.DescriptorHeap
	binds    int
}

func newTestContext(recorder hal.CommandRecorder) *testContext {
	return &testContext{
		recorder: recorder,
		heaps:    make(map[hal.HeapKind]hal.DescriptorHeap),
	}
}

func (c *testContext) Recorder() hal.CommandRecorder { return c.recorder }

func (c *testContext) SetDescriptorHeap(kind hal.HeapKind, heap hal.DescriptorHeap) {
	c.heaps[kind] = heap
	c.binds++
}

type dynamicHeapFixture struct {
	device   *software.Device
	recorder *software.Recorder
	ctx      *testContext
	heap     *descriptor.DynamicHeap
	source   descriptor.Allocation
}

// newDynamicHeapFixture prepares a dynamic heap and a CPU-visible range of sourceCount descriptors
// holding the values 100, 101, ...
func newDynamicHeapFixture(t *testing.T, perHeap int, sourceCount int) *dynamicHeapFixture {
	device := software.NewDevice()
	heap, err := descriptor.NewDynamicHeap(testLogger(), device, hal.HeapCBVSRVUAV, perHeap)
	require.NoError(t, err)

	allocator := descriptor.NewAllocator(testLogger(), device, hal.HeapCBVSRVUAV, descriptor.AllocatorOptions{})
	source, err := allocator.Allocate(sourceCount)
	require.NoError(t, err)
	for i := 0; i < sourceCount; i++ {
		require.NoError(t, device.WriteDescriptor(source.Handle(i), software.Descriptor(100+i)))
	}

	recorder, err := device.CreateCommandRecorder(hal.QueueDirect)
	require.NoError(t, err)

	return &dynamicHeapFixture{
		device:   device,
		recorder: recorder.(*software.Recorder),
		ctx:      newTestContext(recorder),
		heap:     heap,
		source:   source,
	}
}

func (f *dynamicHeapFixture) requireGPUDescriptors(t *testing.T, start hal.GPUHandle, values ...int) {
	for i, value := range values {
		stored, ok := f.device.ReadGPUDescriptor(start.Offset(i, software.DescriptorIncrement))
		require.True(t, ok)
		require.Equal(t, software.Descriptor(value), stored)
	}
}

func tableLayout(t *testing.T) *descriptor.RootLayout {
	layout, err := descriptor.NewRootLayout(
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 2}),
		descriptor.RootParameter{Type: descriptor.RootParameterConstants},
		descriptor.DescriptorTable(
			descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 1},
			descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 2},
		),
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapSampler, NumDescriptors: 1}),
	)
	require.NoError(t, err)
	return layout
}

func TestDynamicHeapCommitsStaleTables(t *testing.T) {
	f := newDynamicHeapFixture(t, 16, 8)
	require.NoError(t, f.heap.ParseRootSignature(tableLayout(t)))
	require.Equal(t, uint32(0b101), f.heap.DescriptorTableMask())

	require.NoError(t, f.heap.StageDescriptors(0, 0, 2, f.source.Handle(0)))
	require.NoError(t, f.heap.StageDescriptors(2, 0, 3, f.source.Handle(2)))
	require.Equal(t, 5, f.heap.StaleDescriptorCount())

	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	require.Equal(t, 0, f.heap.StaleDescriptorCount())
	require.Equal(t, 1, f.ctx.binds)
	require.Equal(t, 11, f.heap.NumFreeHandles())

	gpuHeap := f.ctx.heaps[hal.HeapCBVSRVUAV]
	require.NotNil(t, gpuHeap)
	require.Equal(t, gpuHeap, f.heap.CurrentHeap())

	commands := f.recorder.Commands()
	require.Len(t, commands, 2)
	require.Equal(t, software.OpSetGraphicsRootDescriptorTable, commands[0].Op)
	require.Equal(t, 0, commands[0].RootIndex)
	require.Equal(t, gpuHeap.GPUStart(), commands[0].Table)
	require.Equal(t, 2, commands[1].RootIndex)
	require.Equal(t, gpuHeap.GPUStart().Offset(2, software.DescriptorIncrement), commands[1].Table)

	f.requireGPUDescriptors(t, commands[0].Table, 100, 101)
	f.requireGPUDescriptors(t, commands[1].Table, 102, 103, 104)
}

func TestDynamicHeapOnlyCopiesDirtyTables(t *testing.T) {
	f := newDynamicHeapFixture(t, 16, 8)
	require.NoError(t, f.heap.ParseRootSignature(tableLayout(t)))

	require.NoError(t, f.heap.StageDescriptors(0, 0, 2, f.source.Handle(0)))
	require.NoError(t, f.heap.StageDescriptors(2, 0, 3, f.source.Handle(2)))
	require.NoError(t, f.heap.CommitForDraw(f.ctx))

	// Nothing staged, nothing recorded
	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	require.Len(t, f.recorder.Commands(), 2)

	require.NoError(t, f.heap.StageDescriptors(2, 1, 2, f.source.Handle(6)))
	require.Equal(t, 3, f.heap.StaleDescriptorCount())
	require.NoError(t, f.heap.CommitForDraw(f.ctx))

	commands := f.recorder.Commands()
	require.Len(t, commands, 3)
	require.Equal(t, 2, commands[2].RootIndex)
	require.Equal(t, f.heap.CurrentHeap().GPUStart().Offset(5, software.DescriptorIncrement), commands[2].Table)
	f.requireGPUDescriptors(t, commands[2].Table, 102, 106, 107)
	require.Equal(t, 1, f.ctx.binds)
	require.Equal(t, 8, f.heap.NumFreeHandles())
}

func TestDynamicHeapSwitchesHeapsWhenFull(t *testing.T) {
	f := newDynamicHeapFixture(t, 8, 8)

	layout, err := descriptor.NewRootLayout(
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 4}),
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 4}),
	)
	require.NoError(t, err)
	require.NoError(t, f.heap.ParseRootSignature(layout))

	require.NoError(t, f.heap.StageDescriptors(0, 0, 4, f.source.Handle(0)))
	require.NoError(t, f.heap.StageDescriptors(1, 0, 4, f.source.Handle(4)))
	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	require.Equal(t, 0, f.heap.NumFreeHandles())
	first := f.heap.CurrentHeap()

	require.NoError(t, f.heap.StageDescriptors(0, 0, 4, f.source.Handle(4)))
	require.NoError(t, f.heap.CommitForDraw(f.ctx))

	second := f.heap.CurrentHeap()
	require.NotEqual(t, first, second)
	require.Equal(t, 2, f.heap.HeapCount())
	require.Equal(t, 2, f.ctx.binds)

	// Both tables are rewritten into the new heap
	commands := f.recorder.Commands()
	require.Len(t, commands, 4)
	require.Equal(t, 0, commands[2].RootIndex)
	require.Equal(t, second.GPUStart(), commands[2].Table)
	require.Equal(t, 1, commands[3].RootIndex)
	f.requireGPUDescriptors(t, commands[2].Table, 104, 105, 106, 107)
	f.requireGPUDescriptors(t, commands[3].Table, 104, 105, 106, 107)
}

func TestDynamicHeapStagingErrors(t *testing.T) {
	f := newDynamicHeapFixture(t, 16, 8)
	require.NoError(t, f.heap.ParseRootSignature(tableLayout(t)))

	err := f.heap.StageDescriptors(0, 0, 17, f.source.Handle(0))
	require.ErrorIs(t, err, gpuutils.TooManyDescriptorsError)

	err = f.heap.StageDescriptors(32, 0, 1, f.source.Handle(0))
	require.ErrorIs(t, err, gpuutils.RootIndexOutOfRangeError)

	err = f.heap.StageDescriptors(0, 1, 2, f.source.Handle(0))
	require.ErrorIs(t, err, gpuutils.TableOverflowError)

	// Root parameter 1 is not a descriptor table
	err = f.heap.StageDescriptors(1, 0, 1, f.source.Handle(0))
	require.ErrorIs(t, err, gpuutils.TableOverflowError)

	require.Equal(t, 0, f.heap.StaleDescriptorCount())
}

func TestDynamicHeapRejectsOversizedRootSignature(t *testing.T) {
	f := newDynamicHeapFixture(t, 4, 1)

	layout, err := descriptor.NewRootLayout(
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 3}),
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 3}),
	)
	require.NoError(t, err)

	err = f.heap.ParseRootSignature(layout)
	require.ErrorIs(t, err, gpuutils.RootSignatureTooLargeError)
	require.Equal(t, uint32(0), f.heap.DescriptorTableMask())
}

func TestDynamicHeapParseDiscardsStagedDescriptors(t *testing.T) {
	f := newDynamicHeapFixture(t, 16, 8)
	require.NoError(t, f.heap.ParseRootSignature(tableLayout(t)))
	require.NoError(t, f.heap.StageDescriptors(0, 0, 2, f.source.Handle(0)))

	require.NoError(t, f.heap.ParseRootSignature(tableLayout(t)))
	require.Equal(t, 0, f.heap.StaleDescriptorCount())
	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	require.Empty(t, f.recorder.Commands())
}

func TestDynamicHeapCopyDescriptor(t *testing.T) {
	f := newDynamicHeapFixture(t, 16, 8)

	handle, err := f.heap.CopyDescriptor(f.ctx, f.source.Handle(3))
	require.NoError(t, err)
	require.Equal(t, f.heap.CurrentHeap().GPUStart(), handle)
	f.requireGPUDescriptors(t, handle, 103)

	next, err := f.heap.CopyDescriptor(f.ctx, f.source.Handle(4))
	require.NoError(t, err)
	require.Equal(t, handle.Offset(1, software.DescriptorIncrement), next)
	f.requireGPUDescriptors(t, next, 104)

	require.Equal(t, 1, f.ctx.binds)
	require.Equal(t, 14, f.heap.NumFreeHandles())
}

func TestDynamicHeapResetReusesHeaps(t *testing.T) {
	f := newDynamicHeapFixture(t, 16, 8)
	require.NoError(t, f.heap.ParseRootSignature(tableLayout(t)))
	require.NoError(t, f.heap.StageDescriptors(0, 0, 2, f.source.Handle(0)))
	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	first := f.heap.CurrentHeap()

	f.heap.Reset()
	require.Nil(t, f.heap.CurrentHeap())
	require.Equal(t, 0, f.heap.NumFreeHandles())
	require.Equal(t, uint32(0), f.heap.DescriptorTableMask())

	require.NoError(t, f.heap.ParseRootSignature(tableLayout(t)))
	require.NoError(t, f.heap.StageDescriptors(0, 0, 2, f.source.Handle(2)))
	require.NoError(t, f.heap.CommitForDraw(f.ctx))

	require.Equal(t, first, f.heap.CurrentHeap())
	require.Equal(t, 1, f.heap.HeapCount())
	require.Equal(t, 1, f.device.ShaderVisibleHeapCount())
}

func TestDynamicHeapCommitForDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)

	gpuHeap := mocks.NewMockDescriptorHeap(ctrl)
	gpuHeap.EXPECT().CPUStart().Return(hal.CPUHandle(0x8000))
	gpuHeap.EXPECT().GPUStart().Return(hal.GPUHandle(0x900000))

	device := mocks.NewMockDevice(ctrl)
	device.EXPECT().DescriptorIncrement(hal.HeapSampler).Return(8)
	device.EXPECT().CreateDescriptorHeap(hal.HeapSampler, 32, true).Return(gpuHeap, nil)
	device.EXPECT().CopyDescriptors(hal.HeapSampler, hal.CPUHandle(0x8000), []hal.CPUHandle{0x100})

	recorder := mocks.NewMockCommandRecorder(ctrl)
	recorder.EXPECT().SetComputeRootDescriptorTable(3, hal.GPUHandle(0x900000))

	heap, err := descriptor.NewDynamicHeap(testLogger(), device, hal.HeapSampler, 32)
	require.NoError(t, err)
	require.NoError(t, heap.ParseRootSignature(tableLayout(t)))
	require.Equal(t, uint32(0b1000), heap.DescriptorTableMask())

	require.NoError(t, heap.StageDescriptors(3, 0, 1, hal.CPUHandle(0x100)))

	ctx := newTestContext(recorder)
	require.NoError(t, heap.CommitForDispatch(ctx))
	require.Equal(t, gpuHeap, ctx.heaps[hal.HeapSampler])
}

func TestDynamicHeapRequiresShaderVisibleKind(t *testing.T) {
	_, err := descriptor.NewDynamicHeap(testLogger(), software.NewDevice(), hal.HeapRTV, 16)
	require.Error(t, err)
}

func TestRootLayout(t *testing.T) {
	layout := tableLayout(t)

	require.Equal(t, 4, layout.NumParameters())
	require.Equal(t, uint32(0b101), layout.DescriptorTableMask(hal.HeapCBVSRVUAV))
	require.Equal(t, uint32(0b1000), layout.DescriptorTableMask(hal.HeapSampler))
	require.Equal(t, uint32(0), layout.DescriptorTableMask(hal.HeapRTV))
	require.Equal(t, 2, layout.NumDescriptors(0))
	require.Equal(t, 0, layout.NumDescriptors(1))
	require.Equal(t, 3, layout.NumDescriptors(2))
	require.Equal(t, 0, layout.NumDescriptors(7))

	_, err := descriptor.NewRootLayout(descriptor.DescriptorTable(
		descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 1},
		descriptor.DescriptorRange{Kind: hal.HeapSampler, NumDescriptors: 1},
	))
	require.Error(t, err)

	_, err = descriptor.NewRootLayout(descriptor.DescriptorTable(
		descriptor.DescriptorRange{Kind: hal.HeapRTV, NumDescriptors: 1},
	))
	require.Error(t, err)

	parameters := make([]descriptor.RootParameter, 33)
	_, err = descriptor.NewRootLayout(parameters...)
	require.ErrorIs(t, err, gpuutils.RootIndexOutOfRangeError)
}

func TestDynamicHeapBindsEmptyTables(t *testing.T) {
	f := newDynamicHeapFixture(t, 16, 2)

	layout, err := descriptor.NewRootLayout(
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 0}),
		descriptor.DescriptorTable(descriptor.DescriptorRange{Kind: hal.HeapCBVSRVUAV, NumDescriptors: 2}),
	)
	require.NoError(t, err)
	require.NoError(t, f.heap.ParseRootSignature(layout))
	require.Equal(t, uint32(0b11), f.heap.DescriptorTableMask())

	require.NoError(t, f.heap.StageDescriptors(1, 0, 2, f.source.Handle(0)))
	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	require.Len(t, f.recorder.Commands(), 2)
	require.Equal(t, 14, f.heap.NumFreeHandles())

	require.NoError(t, f.heap.StageDescriptors(0, 0, 0, f.source.Handle(0)))
	require.Equal(t, uint32(0b1), f.heap.StaleDescriptorTableMask())
	require.Equal(t, 0, f.heap.StaleDescriptorCount())

	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	require.Equal(t, uint32(0), f.heap.StaleDescriptorTableMask())
	require.Equal(t, 14, f.heap.NumFreeHandles())
	require.Equal(t, 1, f.ctx.binds)

	commands := f.recorder.Commands()
	require.Len(t, commands, 3)
	require.Equal(t, software.OpSetGraphicsRootDescriptorTable, commands[2].Op)
	require.Equal(t, 0, commands[2].RootIndex)
	require.Equal(t, f.heap.CurrentHeap().GPUStart().Offset(2, software.DescriptorIncrement), commands[2].Table)

	// Nothing is stale, so another commit records nothing
	require.NoError(t, f.heap.CommitForDraw(f.ctx))
	require.Len(t, f.recorder.Commands(), 3)
}
