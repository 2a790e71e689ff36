//go:build arm64

package kernel

import "golang.org/x/sys/cpu"

func detect() Capability {
	// ASIMD (NEON) is baseline on arm64 but the flag can be absent in
	// constrained environments, so probe it rather than assume.
	if cpu.ARM64.HasASIMD {
		return Vector8x
	}
	return Vector4x
}
