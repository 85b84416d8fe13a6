package resource

import "github.com/vkngwrapper/core/v2/common"

// State is a set of usage bits describing how the GPU may access a resource or subresource.
// The bit values match the native resource-state encoding so backends can pass them through.
type State uint32

var stateMapping = common.NewFlagStringMapping[State]()

func (s State) Register(str string) {
	stateMapping.Register(s, str)
}
func (s State) String() string {
	if s == StateCommon {
		return "StateCommon"
	}
	return stateMapping.FlagsToString(s)
}

const (
	// StateCommon is the state every resource may be accessed in across queue types. It is
	// also the presentation state.
	StateCommon  State = 0
	StatePresent State = 0
)

const (
	StateVertexAndConstantBuffer State = 1 << iota
	StateIndexBuffer
	StateRenderTarget
	StateUnorderedAccess
	StateDepthWrite
	StateDepthRead
	StateNonPixelShaderResource
	StatePixelShaderResource
	StateStreamOut
	StateIndirectArgument
	StateCopyDest
	StateCopySource
	StateResolveDest
	StateResolveSource
)

// StateGenericRead is the union of every read-only state a buffer in an upload heap can be used in
const StateGenericRead = StateVertexAndConstantBuffer | StateIndexBuffer | StateNonPixelShaderResource |
	StatePixelShaderResource | StateIndirectArgument | StateCopySource

// IsWrite reports whether any of the bits in s allow the GPU to write the resource
func (s State) IsWrite() bool {
	return s&(StateRenderTarget|StateUnorderedAccess|StateDepthWrite|StateStreamOut|StateCopyDest|StateResolveDest) != 0
}

func init() {
	StateVertexAndConstantBuffer.Register("StateVertexAndConstantBuffer")
	StateIndexBuffer.Register("StateIndexBuffer")
	StateRenderTarget.Register("StateRenderTarget")
	StateUnorderedAccess.Register("StateUnorderedAccess")
	StateDepthWrite.Register("StateDepthWrite")
	StateDepthRead.Register("StateDepthRead")
	StateNonPixelShaderResource.Register("StateNonPixelShaderResource")
	StatePixelShaderResource.Register("StatePixelShaderResource")
	StateStreamOut.Register("StateStreamOut")
	StateIndirectArgument.Register("StateIndirectArgument")
	StateCopyDest.Register("StateCopyDest")
	StateCopySource.Register("StateCopySource")
	StateResolveDest.Register("StateResolveDest")
	StateResolveSource.Register("StateResolveSource")
}
