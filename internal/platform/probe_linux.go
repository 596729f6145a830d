//go:build linux

package platform

import "golang.org/x/sys/unix"

// probe prefers VAAPI/V4L2 native decode when a DRI render node is present,
// then a generic GPU path, then software.
func probe() []Backend {
	if hasDRI() {
		return []Backend{BackendNative, BackendGPU, BackendSoftware}
	}
	return []Backend{BackendGPU, BackendSoftware}
}

func hasDRI() bool {
	var st unix.Stat_t
	return unix.Stat("/dev/dri", &st) == nil
}
