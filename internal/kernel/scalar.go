package kernel

// scalarKernel is the byte-at-a-time baseline. It is fully feature-complete:
// the vector tiers are verified against it and it is the sole fallback when
// no wider tier is usable.
type scalarKernel struct{}

func (scalarKernel) Capability() Capability { return Scalar }

func (scalarKernel) SkipWhitespace(buf []byte, start int) int {
	i := start
	for i < len(buf) && whitespaceTable[buf[i]] {
		i++
	}
	return i
}

func (scalarKernel) FindStringEnd(buf []byte, start int) int {
	escaped := false
	for i := start; i < len(buf); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch buf[i] {
		case '\\':
			escaped = true
		case '"':
			return i
		}
	}
	return len(buf)
}

func (scalarKernel) FindStructuralChars(buf []byte, start int, out []Structural) int {
	n := 0
	for i := start; i < len(buf) && n < len(out); i++ {
		if t, ok := structuralType(buf[i]); ok {
			out[n] = Structural{Pos: uint32(i), Type: t}
			n++
		}
	}
	return n
}

func (scalarKernel) ValidateNumberChars(buf []byte, start, end int) bool {
	if end > len(buf) {
		end = len(buf)
	}
	for i := start; i < end; i++ {
		if !numberCharTable[buf[i]] {
			return false
		}
	}
	return true
}
