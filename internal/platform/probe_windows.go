//go:build windows

package platform

// probe prefers Media Foundation, then a generic GPU path, then software.
func probe() []Backend {
	return []Backend{BackendNative, BackendGPU, BackendSoftware}
}
