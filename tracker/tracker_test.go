package tracker_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conduit/hal/mocks"
	"github.com/vkngwrapper/conduit/resource"
	"github.com/vkngwrapper/conduit/tracker"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

func newGlobalState() *tracker.GlobalState {
	return tracker.NewGlobalState(slog.New(slog.NewTextHandler(io.Discard)))
}

func captureBarriers(ctrl *gomock.Controller) (*mocks.MockCommandRecorder, *[][]resource.Barrier) {
	recorder := mocks.NewMockCommandRecorder(ctrl)
	var batches [][]resource.Barrier
	recorder.EXPECT().ResourceBarrier(gomock.Any()).Do(func(barriers []resource.Barrier) {
		batches = append(batches, barriers)
	}).AnyTimes()

	return recorder, &batches
}

func transition(res resource.Resource, sub resource.Subresource, before, after resource.State) resource.Barrier {
	return resource.Barrier{
		Type:        resource.BarrierTransition,
		Resource:    res,
		Subresource: sub,
		Before:      before,
		After:       after,
	}
}

func TestFirstUseIsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder, batches := captureBarriers(ctrl)

	global := newGlobalState()
	texture := resource.NewTexture("target", 1, 1)
	global.AddResource(texture, resource.StateCommon)

	track := tracker.New(global)
	track.TransitionResource(texture, resource.StateRenderTarget, resource.AllSubresources)

	require.Equal(t, 1, track.PendingCount())
	require.Equal(t, 0, track.BarrierCount())
	require.Equal(t, 0, track.FlushResourceBarriers(recorder))
	require.Len(t, *batches, 0)

	global.Lock()
	count := track.FlushPendingResourceBarriers(recorder)
	track.CommitFinalResourceStates()
	global.Unlock()

	require.Equal(t, 1, count)
	require.Equal(t, [][]resource.Barrier{
		{transition(texture, resource.AllSubresources, resource.StateCommon, resource.StateRenderTarget)},
	}, *batches)

	state, ok := global.State(texture)
	require.True(t, ok)
	require.Equal(t, resource.StateRenderTarget, state.Get(0))
	require.Equal(t, 0, track.PendingCount())
}

func TestTransitionsChainBeforeStates(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder, batches := captureBarriers(ctrl)

	global := newGlobalState()
	buffer := resource.NewBuffer("buffer", 256)
	global.AddResource(buffer, resource.StateCommon)

	track := tracker.New(global)
	track.TransitionResource(buffer, resource.StateCopyDest, resource.AllSubresources)
	track.TransitionResource(buffer, resource.StateVertexAndConstantBuffer, resource.AllSubresources)
	track.TransitionResource(buffer, resource.StateUnorderedAccess, resource.AllSubresources)

	require.Equal(t, 2, track.FlushResourceBarriers(recorder))
	require.Equal(t, [][]resource.Barrier{
		{
			transition(buffer, resource.AllSubresources, resource.StateCopyDest, resource.StateVertexAndConstantBuffer),
			transition(buffer, resource.AllSubresources, resource.StateVertexAndConstantBuffer, resource.StateUnorderedAccess),
		},
	}, *batches)

	// Barriers are cleared after flushing
	require.Equal(t, 0, track.FlushResourceBarriers(recorder))
	require.Len(t, *batches, 1)
}

func TestRedundantTransitionIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder, batches := captureBarriers(ctrl)

	global := newGlobalState()
	buffer := resource.NewBuffer("buffer", 256)
	global.AddResource(buffer, resource.StateCopyDest)

	track := tracker.New(global)
	track.TransitionResource(buffer, resource.StateCopyDest, resource.AllSubresources)
	track.TransitionResource(buffer, resource.StateCopyDest, resource.AllSubresources)

	require.Equal(t, 0, track.BarrierCount())
	require.Equal(t, 0, track.FlushResourceBarriers(recorder))

	global.Lock()
	// The global state already matches, so the pending transition resolves to nothing
	require.Equal(t, 0, track.FlushPendingResourceBarriers(recorder))
	global.Unlock()

	require.Len(t, *batches, 0)
}

func TestAllSubresourcesSplitsHeterogeneousState(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder, batches := captureBarriers(ctrl)

	global := newGlobalState()
	texture := resource.NewTexture("mips", 4, 1)
	global.AddResource(texture, resource.StateCommon)

	track := tracker.New(global)
	track.TransitionResource(texture, resource.StateCopyDest, 0)
	track.TransitionResource(texture, resource.StatePixelShaderResource, 1)
	track.TransitionResource(texture, resource.StateUnorderedAccess, 2)
	track.TransitionResource(texture, resource.StatePixelShaderResource, 3)
	// Only the first transition was pending; the rest resolved against the recorded default
	require.Equal(t, 3, track.FlushResourceBarriers(recorder))

	track.TransitionResource(texture, resource.StatePixelShaderResource, resource.AllSubresources)
	require.Equal(t, 2, track.FlushResourceBarriers(recorder))

	require.Equal(t, []resource.Barrier{
		transition(texture, 0, resource.StateCopyDest, resource.StatePixelShaderResource),
		transition(texture, 2, resource.StateUnorderedAccess, resource.StatePixelShaderResource),
	}, (*batches)[1])

	final, ok := track.FinalState(texture)
	require.True(t, ok)
	require.True(t, final.IsUniform())
	require.Equal(t, resource.StatePixelShaderResource, final.Default)
}

func TestPendingSplitAgainstGlobalState(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder, batches := captureBarriers(ctrl)

	global := newGlobalState()
	texture := resource.NewTexture("mips", 3, 1)
	global.AddResource(texture, resource.StateCommon)

	first := tracker.New(global)
	first.TransitionResource(texture, resource.StateRenderTarget, 1)

	global.Lock()
	first.FlushPendingResourceBarriers(recorder)
	first.CommitFinalResourceStates()
	global.Unlock()

	second := tracker.New(global)
	second.TransitionResource(texture, resource.StateCopySource, resource.AllSubresources)

	global.Lock()
	require.Equal(t, 1, second.FlushPendingResourceBarriers(recorder))
	second.CommitFinalResourceStates()
	global.Unlock()

	require.Equal(t, []resource.Barrier{
		transition(texture, 1, resource.StateRenderTarget, resource.StateCopySource),
	}, (*batches)[1])

	state, ok := global.State(texture)
	require.True(t, ok)
	require.True(t, state.IsUniform())
	require.Equal(t, resource.StateCopySource, state.Default)
}

func TestUnregisteredResourceIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder, batches := captureBarriers(ctrl)

	global := newGlobalState()
	buffer := resource.NewBuffer("buffer", 64)

	track := tracker.New(global)
	track.TransitionResource(buffer, resource.StateCopyDest, resource.AllSubresources)

	global.Lock()
	require.Equal(t, 0, track.FlushPendingResourceBarriers(recorder))
	track.CommitFinalResourceStates()
	global.Unlock()

	require.Len(t, *batches, 0)

	// Committing still records the final state
	state, ok := global.State(buffer)
	require.True(t, ok)
	require.Equal(t, resource.StateCopyDest, state.Default)

	global.RemoveResource(buffer)
	_, ok = global.State(buffer)
	require.False(t, ok)
	require.Equal(t, 0, global.Count())
}

func TestUAVAndAliasingAreImmediate(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder, batches := captureBarriers(ctrl)

	global := newGlobalState()
	a := resource.NewBuffer("a", 64)
	b := resource.NewBuffer("b", 64)

	track := tracker.New(global)
	track.UAVBarrier(a)
	track.UAVBarrier(a)
	track.UAVBarrier(nil)
	track.AliasBarrier(a, b)

	require.Equal(t, 0, track.PendingCount())
	require.Equal(t, 4, track.FlushResourceBarriers(recorder))
	require.Equal(t, []resource.Barrier{
		resource.UAV(a),
		resource.UAV(a),
		resource.UAV(nil),
		resource.Aliasing(a, b),
	}, (*batches)[0])
}

func TestNilTransitionIsNoop(t *testing.T) {
	global := newGlobalState()
	track := tracker.New(global)

	track.TransitionResource(nil, resource.StateCopyDest, resource.AllSubresources)
	track.ResourceBarrier(resource.Transition(nil, resource.StateCopyDest, resource.AllSubresources))

	var nilHandle *resource.Handle
	track.TransitionResource(nilHandle, resource.StateCopyDest, resource.AllSubresources)

	require.Equal(t, 0, track.PendingCount())
	require.Equal(t, 0, track.BarrierCount())

	global.AddResource(nil, resource.StateCommon)
	require.Equal(t, 0, global.Count())
}

func TestResetClearsEverything(t *testing.T) {
	global := newGlobalState()
	buffer := resource.NewBuffer("buffer", 64)
	global.AddResource(buffer, resource.StateCommon)

	track := tracker.New(global)
	track.TransitionResource(buffer, resource.StateCopyDest, resource.AllSubresources)
	track.TransitionResource(buffer, resource.StateCopySource, resource.AllSubresources)
	track.UAVBarrier(buffer)

	track.Reset()

	require.Equal(t, 0, track.PendingCount())
	require.Equal(t, 0, track.BarrierCount())
	_, ok := track.FinalState(buffer)
	require.False(t, ok)

	// The resource counts as a first use again
	track.TransitionResource(buffer, resource.StateCopySource, resource.AllSubresources)
	require.Equal(t, 1, track.PendingCount())
}

func TestPendingFlushRequiresLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockCommandRecorder(ctrl)

	track := tracker.New(newGlobalState())

	require.Panics(t, func() {
		track.FlushPendingResourceBarriers(recorder)
	})
	require.Panics(t, func() {
		track.CommitFinalResourceStates()
	})
}

func TestGlobalStateValidate(t *testing.T) {
	global := newGlobalState()
	global.AddResource(resource.NewBuffer("a", 16), resource.StateCommon)
	global.AddResource(resource.NewTexture("b", 2, 2), resource.StatePixelShaderResource)

	require.NoError(t, global.Validate())
	require.Equal(t, 2, global.Count())
}

func TestRollbackRestoresCommittedStates(t *testing.T) {
	global := newGlobalState()
	buffer := resource.NewBuffer("buffer", 256)
	texture := resource.NewTexture("texture", 2, 1)
	unregistered := resource.NewBuffer("unregistered", 64)
	global.AddResource(buffer, resource.StateCommon)
	global.AddResource(texture, resource.StateCommon)

	first := tracker.New(global)
	first.TransitionResource(buffer, resource.StateCopyDest, resource.AllSubresources)
	first.TransitionResource(unregistered, resource.StateCopySource, resource.AllSubresources)

	second := tracker.New(global)
	second.TransitionResource(buffer, resource.StateCopySource, resource.AllSubresources)
	second.TransitionResource(texture, resource.StateRenderTarget, 1)

	global.Lock()
	first.CommitFinalResourceStates()
	second.CommitFinalResourceStates()
	global.Rollback()
	global.Unlock()

	state, ok := global.State(buffer)
	require.True(t, ok)
	require.Equal(t, resource.StateCommon, state.Get(0))

	state, ok = global.State(texture)
	require.True(t, ok)
	require.True(t, state.IsUniform())
	require.Equal(t, resource.StateCommon, state.Get(1))

	_, ok = global.State(unregistered)
	require.False(t, ok)
	require.Equal(t, 2, global.Count())
}

func TestUnlockKeepsCommittedStates(t *testing.T) {
	global := newGlobalState()
	buffer := resource.NewBuffer("buffer", 256)
	global.AddResource(buffer, resource.StateCommon)

	track := tracker.New(global)
	track.TransitionResource(buffer, resource.StateCopyDest, resource.AllSubresources)

	global.Lock()
	track.CommitFinalResourceStates()
	global.Unlock()

	global.Lock()
	global.Rollback()
	global.Unlock()

	state, ok := global.State(buffer)
	require.True(t, ok)
	require.Equal(t, resource.StateCopyDest, state.Get(0))

	require.Panics(t, func() {
		global.Rollback()
	})
}
