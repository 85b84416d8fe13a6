package queue

import (
	"github.com/vkngwrapper/conduit/descriptor"
	"github.com/vkngwrapper/conduit/upload"
	"github.com/vkngwrapper/core/v2/common"
)

// DeviceCreateFlags indicate specific device behaviors to activate or deactivate
type DeviceCreateFlags int32

var deviceCreateFlagsMapping = common.NewFlagStringMapping[DeviceCreateFlags]()

func (f DeviceCreateFlags) Register(str string) {
	deviceCreateFlagsMapping.Register(f, str)
}
func (f DeviceCreateFlags) String() string {
	return deviceCreateFlagsMapping.FlagsToString(f)
}

const (
	// DeviceCreateExternallySynchronized ensures that the descriptor allocators of this device will
	// not be synchronized internally. The consumer must guarantee that descriptors are allocated and
	// released from only one goroutine at a time. Queues and the global resource state are always
	// synchronized.
	DeviceCreateExternallySynchronized DeviceCreateFlags = 1 << iota
)

func init() {
	DeviceCreateExternallySynchronized.Register("DeviceCreateExternallySynchronized")
}

const (
	defaultInFlightCapacity      int = 256
	defaultMaxPooledCommandLists int = 64
)

// DeviceOptions contains optional settings when creating a device. It is valid to leave all the
// fields blank.
type DeviceOptions struct {
	// Flags indicates specific device behaviors to activate or deactivate
	Flags DeviceCreateFlags

	// DescriptorsPerPage is the capacity of each CPU-visible descriptor page. Defaults to 256.
	DescriptorsPerPage int
	// DynamicDescriptorsPerHeap is the capacity of each shader-visible heap a command list commits
	// staged descriptors into. Defaults to 1024.
	DynamicDescriptorsPerHeap int
	// UploadPageSize is the size in bytes of each page of a command list's upload buffer. Defaults
	// to 2MB.
	UploadPageSize int

	// InFlightCapacity is the number of submitted command lists a queue can hold before submission
	// blocks on the reclamation of older lists. Defaults to 256.
	InFlightCapacity int
	// MaxPooledCommandLists is the number of reclaimed command lists a queue keeps for reuse. Lists
	// reclaimed while the pool is full are released. Defaults to 64.
	MaxPooledCommandLists int
}

func (o DeviceOptions) withDefaults() DeviceOptions {
	if o.DescriptorsPerPage == 0 {
		o.DescriptorsPerPage = descriptor.DefaultDescriptorsPerPage
	}
	if o.DynamicDescriptorsPerHeap == 0 {
		o.DynamicDescriptorsPerHeap = descriptor.DefaultDescriptorsPerHeap
	}
	if o.UploadPageSize == 0 {
		o.UploadPageSize = upload.DefaultPageSize
	}
	if o.InFlightCapacity == 0 {
		o.InFlightCapacity = defaultInFlightCapacity
	}
	if o.MaxPooledCommandLists == 0 {
		o.MaxPooledCommandLists = defaultMaxPooledCommandLists
	}

	return o
}
