// Package vulkan expresses the barriers a tracker resolves as Vulkan pipeline barriers. Backends that
// record into a core1_0 command buffer call Translate from their hal.CommandRecorder.ResourceBarrier
// and Record the result.
package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/resource"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Image is implemented by resources backed by a Vulkan image
type Image interface {
	resource.Resource
	VulkanImage() core1_0.Image
	AspectMask() core1_0.ImageAspectFlags
	MipLevels() int
	ArraySize() int
}

// Buffer is implemented by resources backed by a Vulkan buffer
type Buffer interface {
	resource.Resource
	VulkanBuffer() core1_0.Buffer
	Size() int
}

// PipelineBarrierCommands is the single command buffer method a PipelineBarrier needs in order to
// be recorded
type PipelineBarrierCommands interface {
	CmdPipelineBarrier(srcStageMask, dstStageMask core1_0.PipelineStageFlags, dependencies core1_0.DependencyFlags, memoryBarriers []core1_0.MemoryBarrier, bufferMemoryBarriers []core1_0.BufferMemoryBarrier, imageMemoryBarriers []core1_0.ImageMemoryBarrier) error
}

// PipelineBarrier is a batch of tracked barriers expressed as a single vkCmdPipelineBarrier call
type PipelineBarrier struct {
	SrcStageMask core1_0.PipelineStageFlags
	DstStageMask core1_0.PipelineStageFlags
	Dependencies core1_0.DependencyFlags

	MemoryBarriers       []core1_0.MemoryBarrier
	BufferMemoryBarriers []core1_0.BufferMemoryBarrier
	ImageMemoryBarriers  []core1_0.ImageMemoryBarrier
}

// Empty reports whether recording the barrier would do nothing
func (b *PipelineBarrier) Empty() bool {
	return len(b.MemoryBarriers) == 0 && len(b.BufferMemoryBarriers) == 0 && len(b.ImageMemoryBarriers) == 0
}

// Record writes the barrier into a command buffer. An empty barrier records nothing.
func (b *PipelineBarrier) Record(commands PipelineBarrierCommands) error {
	if b.Empty() {
		return nil
	}

	return commands.CmdPipelineBarrier(b.SrcStageMask, b.DstStageMask, b.Dependencies,
		b.MemoryBarriers, b.BufferMemoryBarriers, b.ImageMemoryBarriers)
}

func subresourceRange(image Image, subresource resource.Subresource) core1_0.ImageSubresourceRange {
	mipLevels := image.MipLevels()
	if mipLevels < 1 {
		mipLevels = 1
	}

	if subresource == resource.AllSubresources {
		arraySize := image.ArraySize()
		if arraySize < 1 {
			arraySize = 1
		}

		return core1_0.ImageSubresourceRange{
			AspectMask:     image.AspectMask(),
			BaseMipLevel:   0,
			LevelCount:     mipLevels,
			BaseArrayLayer: 0,
			LayerCount:     arraySize,
		}
	}

	mipLevel, arraySlice := subresource.MipAndSlice(mipLevels)
	return core1_0.ImageSubresourceRange{
		AspectMask:     image.AspectMask(),
		BaseMipLevel:   mipLevel,
		LevelCount:     1,
		BaseArrayLayer: arraySlice,
		LayerCount:     1,
	}
}

// Translate converts a batch of resolved barriers into one pipeline barrier. Transitions on images
// become image memory barriers with layout changes, transitions on buffers become buffer memory barriers,
// UAV barriers become memory barriers ordering shader writes before later shader access, and aliasing barriers
// become full memory barriers.
func Translate(barriers []resource.Barrier) (PipelineBarrier, error) {
	var out PipelineBarrier

	for i, barrier := range barriers {
		switch barrier.Type {
		case resource.BarrierTransition:
			srcAccess := AccessMask(barrier.Before)
			dstAccess := AccessMask(barrier.After)
			out.SrcStageMask |= StageMask(barrier.Before)
			out.DstStageMask |= StageMask(barrier.After)

			switch res := barrier.Resource.(type) {
			case Image:
				out.ImageMemoryBarriers = append(out.ImageMemoryBarriers, core1_0.ImageMemoryBarrier{
					SrcAccessMask:       srcAccess,
					DstAccessMask:       dstAccess,
					OldLayout:           ImageLayout(barrier.Before),
					NewLayout:           ImageLayout(barrier.After),
					SrcQueueFamilyIndex: -1,
					DstQueueFamilyIndex: -1,
					Image:               res.VulkanImage(),
					SubresourceRange:    subresourceRange(res, barrier.Subresource),
				})
			case Buffer:
				out.BufferMemoryBarriers = append(out.BufferMemoryBarriers, core1_0.BufferMemoryBarrier{
					SrcAccessMask:       srcAccess,
					DstAccessMask:       dstAccess,
					SrcQueueFamilyIndex: -1,
					DstQueueFamilyIndex: -1,
					Buffer:              res.VulkanBuffer(),
					Offset:              0,
					Size:                res.Size(),
				})
			default:
				return PipelineBarrier{}, errors.Wrapf(gpuutils.UnsupportedBarrierResourceError, "barrier %d (%s)", i, barrier)
			}
		case resource.BarrierUAV:
			out.SrcStageMask |= shaderStages
			out.DstStageMask |= shaderStages
			out.MemoryBarriers = append(out.MemoryBarriers, core1_0.MemoryBarrier{
				SrcAccessMask: core1_0.AccessShaderWrite,
				DstAccessMask: core1_0.AccessShaderRead | core1_0.AccessShaderWrite,
			})
		case resource.BarrierAliasing:
			out.SrcStageMask |= core1_0.PipelineStageAllCommands
			out.DstStageMask |= core1_0.PipelineStageAllCommands
			out.MemoryBarriers = append(out.MemoryBarriers, core1_0.MemoryBarrier{
				SrcAccessMask: core1_0.AccessMemoryWrite,
				DstAccessMask: core1_0.AccessMemoryRead | core1_0.AccessMemoryWrite,
			})
		default:
			return PipelineBarrier{}, errors.Newf("barrier %d has unknown type %d", i, barrier.Type)
		}
	}

	if out.Empty() {
		return out, nil
	}

	if out.SrcStageMask == 0 {
		out.SrcStageMask = core1_0.PipelineStageTopOfPipe
	}
	if out.DstStageMask == 0 {
		out.DstStageMask = core1_0.PipelineStageBottomOfPipe
	}

	return out, nil
}
