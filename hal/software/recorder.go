package software

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/hal"
	"github.com/vkngwrapper/conduit/resource"
	"golang.org/x/exp/slices"
)

type Op int8

const (
	OpResourceBarrier Op = iota
	OpSetDescriptorHeaps
	OpSetGraphicsRootSignature
	OpSetComputeRootSignature
	OpSetGraphicsRootDescriptorTable
	OpSetComputeRootDescriptorTable
	OpCopyResource
	OpCopyBufferRegion
	OpResolveSubresource
	OpDraw
	OpDrawIndexed
	OpDispatch
)

var opMapping = map[Op]string{
	OpResourceBarrier:                "ResourceBarrier",
	OpSetDescriptorHeaps:             "SetDescriptorHeaps",
	OpSetGraphicsRootSignature:       "SetGraphicsRootSignature",
	OpSetComputeRootSignature:        "SetComputeRootSignature",
	OpSetGraphicsRootDescriptorTable: "SetGraphicsRootDescriptorTable",
	OpSetComputeRootDescriptorTable:  "SetComputeRootDescriptorTable",
	OpCopyResource:                   "CopyResource",
	OpCopyBufferRegion:               "CopyBufferRegion",
	OpResolveSubresource:             "ResolveSubresource",
	OpDraw:                           "Draw",
	OpDrawIndexed:                    "DrawIndexed",
	OpDispatch:                       "Dispatch",
}

func (o Op) String() string {
	return opMapping[o]
}

// Command is one recorded command. Only the fields relevant to Op are set.
type Command struct {
	Op Op

	Barriers      []resource.Barrier
	Heaps         []hal.DescriptorHeap
	RootSignature hal.RootSignature
	RootIndex     int
	Table         hal.GPUHandle

	Dst            resource.Resource
	Src            resource.Resource
	DstSubresource resource.Subresource
	SrcSubresource resource.Subresource

	UploadPage hal.UploadPage
	DstOffset  int
	SrcOffset  int
	Size       int

	// Args holds the counts of draws and dispatches in parameter order
	Args []int
}

// Recorder logs every command it is given. Recording into a closed recorder panics.
type Recorder struct {
	kind     hal.QueueKind
	closed   bool
	commands []Command
}

var _ hal.CommandRecorder = &Recorder{}

func (r *Recorder) Kind() hal.QueueKind { return r.kind }
func (r *Recorder) IsClosed() bool      { return r.closed }

// Commands returns a copy of the commands recorded since the last reset
func (r *Recorder) Commands() []Command {
	return slices.Clone(r.commands)
}

// Ops lists the op of every recorded command
func (r *Recorder) Ops() []Op {
	ops := make([]Op, 0, len(r.commands))
	for _, command := range r.commands {
		ops = append(ops, command.Op)
	}
	return ops
}

func (r *Recorder) record(command Command) {
	if r.closed {
		panic(errors.Newf("%s recorded into a closed %s recorder", command.Op, r.kind))
	}
	r.commands = append(r.commands, command)
}

func (r *Recorder) ResourceBarrier(barriers []resource.Barrier) {
	r.record(Command{Op: OpResourceBarrier, Barriers: slices.Clone(barriers)})
}

func (r *Recorder) SetDescriptorHeaps(heaps []hal.DescriptorHeap) {
	r.record(Command{Op: OpSetDescriptorHeaps, Heaps: slices.Clone(heaps)})
}

func (r *Recorder) SetGraphicsRootSignature(signature hal.RootSignature) {
	r.record(Command{Op: OpSetGraphicsRootSignature, RootSignature: signature})
}

func (r *Recorder) SetComputeRootSignature(signature hal.RootSignature) {
	r.record(Command{Op: OpSetComputeRootSignature, RootSignature: signature})
}

func (r *Recorder) SetGraphicsRootDescriptorTable(rootIndex int, handle hal.GPUHandle) {
	r.record(Command{Op: OpSetGraphicsRootDescriptorTable, RootIndex: rootIndex, Table: handle})
}

func (r *Recorder) SetComputeRootDescriptorTable(rootIndex int, handle hal.GPUHandle) {
	r.record(Command{Op: OpSetComputeRootDescriptorTable, RootIndex: rootIndex, Table: handle})
}

func (r *Recorder) CopyResource(dst, src resource.Resource) {
	r.record(Command{Op: OpCopyResource, Dst: dst, Src: src})
}

func (r *Recorder) CopyBufferRegion(dst resource.Resource, dstOffset int, src hal.UploadPage, srcOffset int, size int) {
	r.record(Command{
		Op:         OpCopyBufferRegion,
		Dst:        dst,
		DstOffset:  dstOffset,
		UploadPage: src,
		SrcOffset:  srcOffset,
		Size:       size,
	})
}

func (r *Recorder) ResolveSubresource(dst resource.Resource, dstSubresource resource.Subresource, src resource.Resource, srcSubresource resource.Subresource) {
	r.record(Command{
		Op:             OpResolveSubresource,
		Dst:            dst,
		DstSubresource: dstSubresource,
		Src:            src,
		SrcSubresource: srcSubresource,
	})
}

func (r *Recorder) Draw(vertexCount, instanceCount, startVertex, startInstance int) {
	r.record(Command{Op: OpDraw, Args: []int{vertexCount, instanceCount, startVertex, startInstance}})
}

func (r *Recorder) DrawIndexed(indexCount, instanceCount, startIndex, baseVertex, startInstance int) {
	r.record(Command{Op: OpDrawIndexed, Args: []int{indexCount, instanceCount, startIndex, baseVertex, startInstance}})
}

func (r *Recorder) Dispatch(groupsX, groupsY, groupsZ int) {
	r.record(Command{Op: OpDispatch, Args: []int{groupsX, groupsY, groupsZ}})
}

func (r *Recorder) Close() error {
	if r.closed {
		return errors.Newf("%s recorder is already closed", r.kind)
	}
	r.closed = true
	return nil
}

func (r *Recorder) Reset() error {
	r.closed = false
	r.commands = nil
	return nil
}
