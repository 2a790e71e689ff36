package vexjson

import "unsafe"

// cacheLineSize is the alignment used for staged input buffers.
const cacheLineSize = 64

// AlignedBuffer is a contiguous byte buffer whose start is aligned to a
// cache-line boundary. The parser itself needs nothing beyond a readable
// contiguous range, but callers that stage inputs for repeated parsing can
// use this as their memory source.
type AlignedBuffer struct {
	raw     []byte
	aligned []byte
}

// NewAlignedBuffer allocates an aligned buffer of the given size.
func NewAlignedBuffer(size int) *AlignedBuffer {
	if size < 0 {
		size = 0
	}
	raw := make([]byte, size+cacheLineSize-1)
	var off uintptr
	if len(raw) > 0 {
		addr := uintptr(unsafe.Pointer(&raw[0]))
		off = ((addr + cacheLineSize - 1) &^ uintptr(cacheLineSize-1)) - addr
	}
	return &AlignedBuffer{
		raw:     raw,
		aligned: raw[off : off+uintptr(size)],
	}
}

// Bytes returns the aligned slice.
func (b *AlignedBuffer) Bytes() []byte {
	return b.aligned
}

// Load copies data into the buffer, growing it if needed, and returns the
// aligned slice holding the copy.
func (b *AlignedBuffer) Load(data []byte) []byte {
	if len(data) > cap(b.aligned) {
		*b = *NewAlignedBuffer(len(data))
	}
	b.aligned = b.aligned[:len(data)]
	copy(b.aligned, data)
	return b.aligned
}

// Aligned reports whether the buffer start sits on the cache-line boundary.
func (b *AlignedBuffer) Aligned() bool {
	if len(b.aligned) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&b.aligned[0]))&(cacheLineSize-1) == 0
}
