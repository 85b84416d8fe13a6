package vulkan

import (
	"github.com/vkngwrapper/conduit/resource"
	"github.com/vkngwrapper/core/v2/core1_0"
)

const shaderStages = core1_0.PipelineStageVertexShader | core1_0.PipelineStageFragmentShader |
	core1_0.PipelineStageComputeShader

// ImageLayout chooses the image layout an image must be in to be used in the given state. When a state
// combines usages with no shared optimal layout, the general layout is used.
func ImageLayout(state resource.State) core1_0.ImageLayout {
	switch state {
	case resource.StateCommon:
		return core1_0.ImageLayoutGeneral
	case resource.StateRenderTarget:
		return core1_0.ImageLayoutColorAttachmentOptimal
	case resource.StateDepthWrite, resource.StateDepthWrite | resource.StateDepthRead:
		return core1_0.ImageLayoutDepthStencilAttachmentOptimal
	case resource.StateDepthRead:
		return core1_0.ImageLayoutDepthStencilReadOnlyOptimal
	case resource.StateCopySource, resource.StateResolveSource:
		return core1_0.ImageLayoutTransferSrcOptimal
	case resource.StateCopyDest, resource.StateResolveDest:
		return core1_0.ImageLayoutTransferDstOptimal
	}

	if state&^(resource.StatePixelShaderResource|resource.StateNonPixelShaderResource) == 0 {
		return core1_0.ImageLayoutShaderReadOnlyOptimal
	}

	if state&^(resource.StatePixelShaderResource|resource.StateNonPixelShaderResource|resource.StateDepthRead) == 0 {
		return core1_0.ImageLayoutDepthStencilReadOnlyOptimal
	}

	return core1_0.ImageLayoutGeneral
}

// AccessMask returns the memory access types the given state permits
func AccessMask(state resource.State) core1_0.AccessFlags {
	var access core1_0.AccessFlags

	if state&resource.StateVertexAndConstantBuffer != 0 {
		access |= core1_0.AccessVertexAttributeRead | core1_0.AccessUniformRead
	}
	if state&resource.StateIndexBuffer != 0 {
		access |= core1_0.AccessIndexRead
	}
	if state&resource.StateRenderTarget != 0 {
		access |= core1_0.AccessColorAttachmentRead | core1_0.AccessColorAttachmentWrite
	}
	if state&resource.StateUnorderedAccess != 0 {
		access |= core1_0.AccessShaderRead | core1_0.AccessShaderWrite
	}
	if state&resource.StateDepthWrite != 0 {
		access |= core1_0.AccessDepthStencilAttachmentRead | core1_0.AccessDepthStencilAttachmentWrite
	}
	if state&resource.StateDepthRead != 0 {
		access |= core1_0.AccessDepthStencilAttachmentRead
	}
	if state&(resource.StateNonPixelShaderResource|resource.StatePixelShaderResource) != 0 {
		access |= core1_0.AccessShaderRead
	}
	if state&resource.StateIndirectArgument != 0 {
		access |= core1_0.AccessIndirectCommandRead
	}
	if state&(resource.StateCopySource|resource.StateResolveSource) != 0 {
		access |= core1_0.AccessTransferRead
	}
	if state&(resource.StateCopyDest|resource.StateResolveDest) != 0 {
		access |= core1_0.AccessTransferWrite
	}
	if state&resource.StateStreamOut != 0 {
		access |= core1_0.AccessShaderWrite
	}

	return access
}

// StageMask returns the pipeline stages that may touch a resource in the given state. StateCommon
// maps to no stages at all; Translate substitutes the top or bottom of the pipe when a barrier side
// ends up empty.
func StageMask(state resource.State) core1_0.PipelineStageFlags {
	var stages core1_0.PipelineStageFlags

	if state&resource.StateVertexAndConstantBuffer != 0 {
		stages |= core1_0.PipelineStageVertexInput | shaderStages
	}
	if state&resource.StateIndexBuffer != 0 {
		stages |= core1_0.PipelineStageVertexInput
	}
	if state&resource.StateRenderTarget != 0 {
		stages |= core1_0.PipelineStageColorAttachmentOutput
	}
	if state&resource.StateUnorderedAccess != 0 {
		stages |= shaderStages
	}
	if state&(resource.StateDepthWrite|resource.StateDepthRead) != 0 {
		stages |= core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests
	}
	if state&resource.StateNonPixelShaderResource != 0 {
		stages |= core1_0.PipelineStageVertexShader | core1_0.PipelineStageComputeShader
	}
	if state&resource.StatePixelShaderResource != 0 {
		stages |= core1_0.PipelineStageFragmentShader
	}
	if state&resource.StateStreamOut != 0 {
		stages |= core1_0.PipelineStageVertexShader
	}
	if state&resource.StateIndirectArgument != 0 {
		stages |= core1_0.PipelineStageDrawIndirect
	}
	if state&(resource.StateCopySource|resource.StateCopyDest|resource.StateResolveSource|resource.StateResolveDest) != 0 {
		stages |= core1_0.PipelineStageTransfer
	}

	return stages
}
