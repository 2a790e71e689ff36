//go:build amd64

package kernel

import "golang.org/x/sys/cpu"

func detect() Capability {
	if cpu.X86.HasAVX2 || cpu.X86.HasSSE42 {
		return Vector8x
	}
	return Vector4x
}
