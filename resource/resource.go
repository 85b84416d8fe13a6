package resource

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// ID identifies a GPU allocation for the lifetime of the process. IDs are never reused.
type ID uint64

var nextID uint64

// NextID reserves a new, process-unique resource ID
func NextID() ID {
	return ID(atomic.AddUint64(&nextID, 1))
}

// Kind is the closed set of resource variants the core understands
type Kind int8

const (
	KindBuffer Kind = iota
	KindTexture
)

var kindMapping = map[Kind]string{
	KindBuffer:  "KindBuffer",
	KindTexture: "KindTexture",
}

func (k Kind) String() string {
	return kindMapping[k]
}

// ViewKind selects which descriptor view of a resource a binding needs
type ViewKind int8

const (
	ViewShaderResource ViewKind = iota
	ViewUnorderedAccess
	ViewRenderTarget
	ViewDepthStencil
	ViewConstantBuffer
)

var viewKindMapping = map[ViewKind]string{
	ViewShaderResource:  "ViewShaderResource",
	ViewUnorderedAccess: "ViewUnorderedAccess",
	ViewRenderTarget:    "ViewRenderTarget",
	ViewDepthStencil:    "ViewDepthStencil",
	ViewConstantBuffer:  "ViewConstantBuffer",
}

func (k ViewKind) String() string {
	return viewKindMapping[k]
}

// Resource is the capability every GPU allocation exposes to the state tracker. The tracker and
// descriptor allocators only ever reference resources; they never own them.
type Resource interface {
	ID() ID
	Kind() Kind
	// SubresourceCount is the number of independently tracked subresources (mip levels times array slices
	// for textures, always 1 for buffers)
	SubresourceCount() int
}

// Handle is a plain Resource implementation. Backends embed it into their own buffer and texture
// types, which then add whatever view capabilities they support.
type Handle struct {
	id        ID
	kind      Kind
	name      string
	size      int
	mipLevels int
	arraySize int
}

var _ Resource = &Handle{}

// NewBuffer creates a buffer handle with a fresh ID
func NewBuffer(name string, size int) *Handle {
	return &Handle{
		id:        NextID(),
		kind:      KindBuffer,
		name:      name,
		size:      size,
		mipLevels: 1,
		arraySize: 1,
	}
}

// NewTexture creates a texture handle with a fresh ID
func NewTexture(name string, mipLevels, arraySize int) *Handle {
	if mipLevels < 1 {
		mipLevels = 1
	}
	if arraySize < 1 {
		arraySize = 1
	}

	return &Handle{
		id:        NextID(),
		kind:      KindTexture,
		name:      name,
		mipLevels: mipLevels,
		arraySize: arraySize,
	}
}

func (h *Handle) ID() ID                { return h.id }
func (h *Handle) Kind() Kind            { return h.kind }
func (h *Handle) Name() string          { return h.name }
func (h *Handle) Size() int             { return h.size }
func (h *Handle) MipLevels() int        { return h.mipLevels }
func (h *Handle) ArraySize() int        { return h.arraySize }
func (h *Handle) SubresourceCount() int { return h.mipLevels * h.arraySize }

func (h *Handle) String() string {
	return fmt.Sprintf("%s(%d:%s)", h.kind, h.id, h.name)
}

// IsNil reports whether r is nil or a typed nil pointer wrapped in the interface
func IsNil(r Resource) bool {
	if r == nil {
		return true
	}
	if h, ok := r.(*Handle); ok {
		return h == nil
	}

	value := reflect.ValueOf(r)
	return value.Kind() == reflect.Pointer && value.IsNil()
}
