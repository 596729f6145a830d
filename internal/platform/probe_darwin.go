//go:build darwin

package platform

// probe prefers VideoToolbox, available on every supported macOS host,
// before software.
func probe() []Backend {
	return []Backend{BackendNative, BackendSoftware}
}
