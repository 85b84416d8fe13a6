package gpuutils

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// TooManyDescriptorsError is returned when a request stages more descriptors than a single
// GPU-visible heap can hold
var TooManyDescriptorsError error = errors.New("descriptor count exceeds the number of descriptors per heap")

// RootIndexOutOfRangeError is returned when a root parameter index is beyond MaxDescriptorTables
var RootIndexOutOfRangeError error = errors.New("root parameter index exceeds the maximum number of descriptor tables")

// TableOverflowError is returned when staged descriptors would run past the end of their descriptor table
var TableOverflowError error = errors.New("number of descriptors exceeds the number of descriptors in the descriptor table")

// RootSignatureTooLargeError is returned when a root signature's descriptor tables need more descriptors
// than a single GPU-visible heap holds
var RootSignatureTooLargeError error = errors.New("root signature requires more than the maximum number of descriptors per heap")

// UploadTooLargeError is returned when an upload allocation is larger than an upload page
var UploadTooLargeError error = errors.New("upload allocation is larger than the upload page size")

// UnknownAllocationError is returned when a descriptor range is freed that the page does not consider outstanding
var UnknownAllocationError error = errors.New("descriptor range is not an outstanding allocation of this page")

// QueueDestroyedError is returned by command queue operations after the queue has been destroyed
var QueueDestroyedError error = errors.New("command queue has been destroyed")

// UnsupportedBarrierResourceError is returned when a transition barrier names a resource that is neither
// a Vulkan image nor a Vulkan buffer
var UnsupportedBarrierResourceError error = errors.New("barrier resource does not expose a vulkan image or buffer")
