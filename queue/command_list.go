package queue

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/descriptor"
	"github.com/vkngwrapper/conduit/hal"
	"github.com/vkngwrapper/conduit/resource"
	"github.com/vkngwrapper/conduit/tracker"
	"github.com/vkngwrapper/conduit/upload"
	"golang.org/x/exp/slog"
)

// bufferCopyAlignment is the alignment of upload allocations made for buffer copies
const bufferCopyAlignment uint = 4

// View is implemented by resources that can provide CPU-visible descriptors for their views
type View interface {
	resource.Resource
	// DescriptorHandle returns the descriptor for the requested view, or false if the resource
	// does not support it
	DescriptorHandle(kind resource.ViewKind) (hal.CPUHandle, bool)
}

// CommandList records commands for one queue. It tracks resource states, stages descriptors and
// keeps every object it references alive until the GPU has finished executing it. A CommandList is
// not safe for concurrent use and must not be touched after it has been submitted.
type CommandList struct {
	device *Device
	queue  *CommandQueue

	recorder hal.CommandRecorder
	tracker  *tracker.Tracker
	uploads  *upload.Buffer

	dynamicHeaps  [hal.HeapKindCount]*descriptor.DynamicHeap
	heaps         [hal.HeapKindCount]hal.DescriptorHeap
	rootSignature hal.RootSignature

	trackedObjects []any
	computeList    *CommandList
}

var _ descriptor.CommandContext = &CommandList{}

func newCommandList(device *Device, queue *CommandQueue) (*CommandList, error) {
	recorder, err := device.device.CreateCommandRecorder(queue.kind)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s command recorder", queue.kind)
	}

	uploads, err := upload.New(device.logger, device.device, device.options.UploadPageSize)
	if err != nil {
		return nil, err
	}

	list := &CommandList{
		device:   device,
		queue:    queue,
		recorder: recorder,
		tracker:  tracker.New(device.global),
		uploads:  uploads,
	}

	for kind := hal.HeapKind(0); kind < hal.HeapKindCount; kind++ {
		if !kind.ShaderVisible() {
			continue
		}

		list.dynamicHeaps[kind], err = descriptor.NewDynamicHeap(device.logger, device.device, kind, device.options.DynamicDescriptorsPerHeap)
		if err != nil {
			return nil, err
		}
	}

	device.logger.Debug("Created command list", slog.String("queue", queue.kind.String()))
	return list, nil
}

func (l *CommandList) Kind() hal.QueueKind              { return l.queue.kind }
func (l *CommandList) Queue() *CommandQueue             { return l.queue }
func (l *CommandList) Recorder() hal.CommandRecorder    { return l.recorder }
func (l *CommandList) RootSignature() hal.RootSignature { return l.rootSignature }
func (l *CommandList) TrackedObjectCount() int          { return len(l.trackedObjects) }
func (l *CommandList) UploadBuffer() *upload.Buffer     { return l.uploads }
func (l *CommandList) StateTracker() *tracker.Tracker   { return l.tracker }

func (l *CommandList) DynamicHeap(kind hal.HeapKind) *descriptor.DynamicHeap {
	return l.dynamicHeaps[kind]
}

// TrackObject keeps obj alive until the list has been executed and reset
func (l *CommandList) TrackObject(obj any) {
	l.trackedObjects = append(l.trackedObjects, obj)
}

func (l *CommandList) TrackResource(res resource.Resource) {
	if resource.IsNil(res) {
		return
	}
	l.TrackObject(res)
}

// TransitionBarrier transitions a subresource, or all of them, to after. When flush is true the
// barrier and every barrier before it are recorded immediately.
func (l *CommandList) TransitionBarrier(res resource.Resource, after resource.State, subresource resource.Subresource, flush bool) {
	if resource.IsNil(res) {
		return
	}

	l.tracker.TransitionResource(res, after, subresource)
	if flush {
		l.FlushResourceBarriers()
	}
}

// UAVBarrier orders unordered-access work on res. A nil resource orders all unordered-access work.
func (l *CommandList) UAVBarrier(res resource.Resource, flush bool) {
	l.tracker.UAVBarrier(res)
	if flush {
		l.FlushResourceBarriers()
	}
}

func (l *CommandList) AliasingBarrier(before, after resource.Resource, flush bool) {
	l.tracker.AliasBarrier(before, after)
	if flush {
		l.FlushResourceBarriers()
	}
}

func (l *CommandList) FlushResourceBarriers() {
	l.tracker.FlushResourceBarriers(l.recorder)
}

func (l *CommandList) CopyResource(dst, src resource.Resource) {
	l.TransitionBarrier(dst, resource.StateCopyDest, resource.AllSubresources, false)
	l.TransitionBarrier(src, resource.StateCopySource, resource.AllSubresources, false)
	l.FlushResourceBarriers()

	l.recorder.CopyResource(dst, src)

	l.TrackResource(dst)
	l.TrackResource(src)
}

func (l *CommandList) ResolveSubresource(dst, src resource.Resource, dstSubresource, srcSubresource resource.Subresource) {
	l.TransitionBarrier(dst, resource.StateResolveDest, dstSubresource, false)
	l.TransitionBarrier(src, resource.StateResolveSource, srcSubresource, false)
	l.FlushResourceBarriers()

	l.recorder.ResolveSubresource(dst, dstSubresource, src, srcSubresource)

	l.TrackResource(dst)
	l.TrackResource(src)
}

// CopyBuffer stages data in the list's upload buffer and copies it to the start of dst
func (l *CommandList) CopyBuffer(dst resource.Resource, data []byte) error {
	if resource.IsNil(dst) {
		return errors.New("cannot copy into a nil buffer")
	}
	if len(data) == 0 {
		return nil
	}

	alloc, err := l.uploads.Allocate(len(data), bufferCopyAlignment)
	if err != nil {
		return err
	}
	copy(alloc.Data, data)

	l.TransitionBarrier(dst, resource.StateCopyDest, resource.AllSubresources, true)
	l.recorder.CopyBufferRegion(dst, 0, alloc.Page, alloc.Offset, len(data))

	l.TrackResource(dst)
	return nil
}

func (l *CommandList) parseRootSignature(signature hal.RootSignature) error {
	for _, heap := range l.dynamicHeaps {
		if heap == nil {
			continue
		}

		err := heap.ParseRootSignature(signature)
		if err != nil {
			return err
		}
	}

	return nil
}

// SetGraphicsRootSignature binds signature for draws. Dynamic heaps are only re-laid out when the
// signature changes.
func (l *CommandList) SetGraphicsRootSignature(signature hal.RootSignature) error {
	if signature == nil {
		return errors.New("cannot bind a nil root signature")
	}
	if l.rootSignature == signature {
		return nil
	}

	err := l.parseRootSignature(signature)
	if err != nil {
		return err
	}

	l.rootSignature = signature
	l.recorder.SetGraphicsRootSignature(signature)
	l.TrackObject(signature)
	return nil
}

// SetComputeRootSignature binds signature for dispatches. Dynamic heaps are only re-laid out when
// the signature changes.
func (l *CommandList) SetComputeRootSignature(signature hal.RootSignature) error {
	if signature == nil {
		return errors.New("cannot bind a nil root signature")
	}
	if l.rootSignature == signature {
		return nil
	}

	err := l.parseRootSignature(signature)
	if err != nil {
		return err
	}

	l.rootSignature = signature
	l.recorder.SetComputeRootSignature(signature)
	l.TrackObject(signature)
	return nil
}

// StageDescriptors stages count consecutive descriptors starting at src into the table at rootIndex
func (l *CommandList) StageDescriptors(kind hal.HeapKind, rootIndex, offset, count int, src hal.CPUHandle) error {
	if kind < 0 || kind >= hal.HeapKindCount || l.dynamicHeaps[kind] == nil {
		return errors.Newf("%s descriptors cannot be bound to descriptor tables", kind)
	}

	return l.dynamicHeaps[kind].StageDescriptors(rootIndex, offset, count, src)
}

func (l *CommandList) setView(viewKind resource.ViewKind, rootIndex, descriptorOffset int, res View, after resource.State, firstSubresource resource.Subresource, numSubresources int) error {
	if resource.IsNil(res) {
		return errors.Newf("cannot bind a nil resource as %s", viewKind)
	}

	handle, ok := res.DescriptorHandle(viewKind)
	if !ok {
		return errors.Newf("resource %d has no %s", res.ID(), viewKind)
	}

	if numSubresources > 0 && numSubresources < res.SubresourceCount() {
		for i := 0; i < numSubresources; i++ {
			l.TransitionBarrier(res, after, firstSubresource+resource.Subresource(i), false)
		}
	} else {
		l.TransitionBarrier(res, after, resource.AllSubresources, false)
	}

	err := l.dynamicHeaps[hal.HeapCBVSRVUAV].StageDescriptors(rootIndex, descriptorOffset, 1, handle)
	if err != nil {
		return err
	}

	l.TrackResource(res)
	return nil
}

// SetShaderResourceView transitions the listed subresources of res to after and stages its shader
// resource view at descriptorOffset in the table at rootIndex. A numSubresources of 0 transitions
// every subresource.
func (l *CommandList) SetShaderResourceView(rootIndex, descriptorOffset int, res View, after resource.State, firstSubresource resource.Subresource, numSubresources int) error {
	return l.setView(resource.ViewShaderResource, rootIndex, descriptorOffset, res, after, firstSubresource, numSubresources)
}

// SetUnorderedAccessView transitions the listed subresources of res to after and stages its
// unordered access view at descriptorOffset in the table at rootIndex. A numSubresources of 0
// transitions every subresource.
func (l *CommandList) SetUnorderedAccessView(rootIndex, descriptorOffset int, res View, after resource.State, firstSubresource resource.Subresource, numSubresources int) error {
	return l.setView(resource.ViewUnorderedAccess, rootIndex, descriptorOffset, res, after, firstSubresource, numSubresources)
}

// SetDescriptorHeap makes heap the bound heap for kind. The recorder's heaps are only rebound when
// the heap for kind changes.
func (l *CommandList) SetDescriptorHeap(kind hal.HeapKind, heap hal.DescriptorHeap) {
	if l.heaps[kind] == heap {
		return
	}

	l.heaps[kind] = heap
	l.bindDescriptorHeaps()
}

func (l *CommandList) bindDescriptorHeaps() {
	heaps := make([]hal.DescriptorHeap, 0, hal.HeapKindCount)
	for _, heap := range l.heaps {
		if heap != nil {
			heaps = append(heaps, heap)
		}
	}

	l.recorder.SetDescriptorHeaps(heaps)
}

func (l *CommandList) commitForDraw() error {
	for _, heap := range l.dynamicHeaps {
		if heap == nil {
			continue
		}

		err := heap.CommitForDraw(l)
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *CommandList) commitForDispatch() error {
	for _, heap := range l.dynamicHeaps {
		if heap == nil {
			continue
		}

		err := heap.CommitForDispatch(l)
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *CommandList) Draw(vertexCount, instanceCount, startVertex, startInstance int) error {
	l.FlushResourceBarriers()

	err := l.commitForDraw()
	if err != nil {
		return err
	}

	l.recorder.Draw(vertexCount, instanceCount, startVertex, startInstance)
	return nil
}

func (l *CommandList) DrawIndexed(indexCount, instanceCount, startIndex, baseVertex, startInstance int) error {
	l.FlushResourceBarriers()

	err := l.commitForDraw()
	if err != nil {
		return err
	}

	l.recorder.DrawIndexed(indexCount, instanceCount, startIndex, baseVertex, startInstance)
	return nil
}

func (l *CommandList) Dispatch(groupsX, groupsY, groupsZ int) error {
	l.FlushResourceBarriers()

	err := l.commitForDispatch()
	if err != nil {
		return err
	}

	l.recorder.Dispatch(groupsX, groupsY, groupsZ)
	return nil
}

// ComputeList returns a compute-queue list that is submitted right after this one, once the
// compute queue has waited for this list's queue. Compute lists return themselves.
func (l *CommandList) ComputeList() (*CommandList, error) {
	if l.queue.kind == hal.QueueCompute {
		return l, nil
	}

	if l.computeList != nil {
		return l.computeList, nil
	}

	computeQueue, err := l.device.Queue(hal.QueueCompute)
	if err != nil {
		return nil, err
	}

	l.computeList, err = computeQueue.GetCommandList()
	if err != nil {
		return nil, err
	}

	return l.computeList, nil
}

// close finishes recording and resolves the list's deferred barriers into pending. The global
// resource state must be locked. It reports whether pending received any barriers.
func (l *CommandList) close(pending *CommandList) (bool, error) {
	err := l.Close()
	if err != nil {
		return false, err
	}

	numPending := l.tracker.FlushPendingResourceBarriers(pending.recorder)
	l.tracker.CommitFinalResourceStates()

	return numPending > 0, nil
}

// Close records outstanding barriers and finishes recording
func (l *CommandList) Close() error {
	l.FlushResourceBarriers()

	err := l.recorder.Close()
	if err != nil {
		return errors.Wrapf(err, "failed to close %s command recorder", l.queue.kind)
	}
	return nil
}

// Reset prepares the list for reuse. It must only be called once the GPU has finished executing it.
func (l *CommandList) Reset() error {
	err := l.recorder.Reset()
	if err != nil {
		return errors.Wrapf(err, "failed to reset %s command recorder", l.queue.kind)
	}

	l.tracker.Reset()
	l.uploads.Reset()

	for kind := range l.heaps {
		l.heaps[kind] = nil
		if l.dynamicHeaps[kind] != nil {
			l.dynamicHeaps[kind].Reset()
		}
	}

	l.rootSignature = nil
	l.trackedObjects = nil
	l.computeList = nil

	return nil
}
