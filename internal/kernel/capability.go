package kernel

import "sync"

// Capability is a scanning tier the current CPU can execute, ordered by
// throughput.
type Capability uint8

const (
	Scalar Capability = iota
	Vector4x
	Vector8x
)

func (c Capability) String() string {
	switch c {
	case Vector8x:
		return "vector8x"
	case Vector4x:
		return "vector4x"
	}
	return "scalar"
}

// Label returns a human-readable description of the tier.
func (c Capability) Label() string {
	switch c {
	case Vector8x:
		return "8-lane SWAR (64-bit words)"
	case Vector4x:
		return "4-lane SWAR (32-bit words)"
	}
	return "scalar byte loop"
}

// LaneWidth returns the number of bytes the tier processes per step.
func (c Capability) LaneWidth() int {
	switch c {
	case Vector8x:
		return 8
	case Vector4x:
		return 4
	}
	return 1
}

var (
	detectOnce sync.Once
	detected   Capability
)

// Detect returns the widest tier the running CPU supports. The probe runs
// once per process; the cached result is safe for concurrent readers. Being
// compiled for an architecture never implies the running CPU has the
// feature, so the per-arch probes consult runtime feature flags.
func Detect() Capability {
	detectOnce.Do(func() {
		detected = detect()
	})
	return detected
}
