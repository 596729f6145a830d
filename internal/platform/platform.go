/*
DESCRIPTION
  platform.go declares the host decode-capability probe consumed by the
  decoder only to order backend preference (spec.md §4.D "Backend
  selection").

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package platform orders candidate video-decode backends for the host
// GOOS/GOARCH. It makes no claim about which backend will actually
// initialise; the decoder tries candidates in order and falls back.
package platform

// Backend names a class of decode backend. The decoder treats these as
// opaque preference hints, not as api selectors.
type Backend string

const (
	// BackendNative is the platform's own hardware video decoder (e.g.
	// VideoToolbox, Media Foundation, VAAPI/V4L2).
	BackendNative Backend = "native"

	// BackendGPU is a cross-platform GPU-accelerated decode path.
	BackendGPU Backend = "gpu"

	// BackendSoftware is the CPU decode path. It is always the last
	// candidate and always initialises.
	BackendSoftware Backend = "software"
)

// Prober orders candidate backends. It exists so callers depend on an
// interface rather than this package's build-tagged internals.
type Prober interface {
	Probe() []Backend
}

type hostProber struct{}

// New returns the Prober for the running host.
func New() Prober { return hostProber{} }

func (hostProber) Probe() []Backend { return probe() }

// Probe is a convenience wrapper around New().Probe().
func Probe() []Backend { return probe() }
