package gpuutils

// Validatable is implemented by structures that can check their own consistency: descriptor pages,
// allocators and the global resource state table. DebugValidate panics on the first failure.
type Validatable interface {
	Validate() error
}
