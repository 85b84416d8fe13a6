//go:build !debug_conduit

package gpuutils

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_conduit build tag is present
func DebugValidate(validatable Validatable) {
}

// DebugEnabled reports whether the debug_conduit build tag is present
const DebugEnabled = false
