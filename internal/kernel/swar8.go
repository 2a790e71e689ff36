package kernel

import (
	"encoding/binary"
	"math/bits"
)

// swar8Kernel processes eight lanes per step using uint64 word arithmetic
// (SIMD within a register). Word loads go through encoding/binary, so no
// alignment requirement is imposed on the input buffer.
type swar8Kernel struct{}

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// eq8 returns a word with 0x80 in the high bit of every byte of w equal to
// c, and zero bits elsewhere. The low-seven-bit addition keeps carries
// confined to their own lane, so the mask is exact per byte.
func eq8(w uint64, c byte) uint64 {
	x := w ^ (lo8 * uint64(c))
	t := (x &^ uint64(hi8)) + (lo8 * 0x7f)
	return ^(t | x) & hi8
}

// le8 returns a word with 0x80 in the high bit of every byte of w that is
// <= m, for m < 0x80. Bytes with the high bit set are never <= m.
func le8(w uint64, m byte) uint64 {
	t := (w &^ uint64(hi8)) + (lo8 * uint64(0x7f-m))
	return ^(t | w) & hi8
}

// digit8 marks bytes in the range '0'..'9'.
func digit8(w uint64) uint64 {
	return ^le8(w, '0'-1) & le8(w, '9')
}

func whitespace8(w uint64) uint64 {
	return eq8(w, ' ') | eq8(w, '\t') | eq8(w, '\n') | eq8(w, '\r')
}

func structural8(w uint64) uint64 {
	return eq8(w, '{') | eq8(w, '}') | eq8(w, '[') | eq8(w, ']') |
		eq8(w, ',') | eq8(w, ':')
}

func (swar8Kernel) Capability() Capability { return Vector8x }

func (swar8Kernel) SkipWhitespace(buf []byte, start int) int {
	i := start
	for i+8 <= len(buf) {
		w := binary.LittleEndian.Uint64(buf[i:])
		ws := whitespace8(w)
		if ws != hi8 {
			// Little-endian load: the lowest set lane is the first
			// non-whitespace byte in buffer order.
			return i + bits.TrailingZeros64(^ws&hi8)/8
		}
		i += 8
	}
	for i < len(buf) && whitespaceTable[buf[i]] {
		i++
	}
	return i
}

func (swar8Kernel) FindStringEnd(buf []byte, start int) int {
	i := start
	escaped := false
	for i+8 <= len(buf) {
		w := binary.LittleEndian.Uint64(buf[i:])
		if !escaped && eq8(w, '\\') == 0 {
			if qt := eq8(w, '"'); qt != 0 {
				return i + bits.TrailingZeros64(qt)/8
			}
			i += 8
			continue
		}
		// A backslash in (or escape parity entering) this word: resolve
		// it byte by byte so the parity carried into the next word is
		// exact.
		for k := 0; k < 8; k++ {
			c := buf[i+k]
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				return i + k
			}
		}
		i += 8
	}
	for ; i < len(buf); i++ {
		c := buf[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			return i
		}
	}
	return len(buf)
}

func (swar8Kernel) FindStructuralChars(buf []byte, start int, out []Structural) int {
	if len(out) == 0 {
		return 0
	}
	n := 0
	i := start
	for i+8 <= len(buf) {
		w := binary.LittleEndian.Uint64(buf[i:])
		m := structural8(w)
		for m != 0 {
			pos := i + bits.TrailingZeros64(m)/8
			t, _ := structuralType(buf[pos])
			out[n] = Structural{Pos: uint32(pos), Type: t}
			n++
			if n == len(out) {
				return n
			}
			m &= m - 1
		}
		i += 8
	}
	for ; i < len(buf) && n < len(out); i++ {
		if t, ok := structuralType(buf[i]); ok {
			out[n] = Structural{Pos: uint32(i), Type: t}
			n++
		}
	}
	return n
}

func (swar8Kernel) ValidateNumberChars(buf []byte, start, end int) bool {
	if end > len(buf) {
		end = len(buf)
	}
	i := start
	for i+8 <= end {
		w := binary.LittleEndian.Uint64(buf[i:])
		ok := digit8(w) | eq8(w, '+') | eq8(w, '-') | eq8(w, '.') |
			eq8(w, 'e') | eq8(w, 'E')
		if ok != hi8 {
			return false
		}
		i += 8
	}
	for ; i < end; i++ {
		if !numberCharTable[buf[i]] {
			return false
		}
	}
	return true
}
