package kernel

import (
	"encoding/binary"
	"math/bits"
)

// swar4Kernel is the 4-lane tier: the same word tricks as swar8Kernel over
// uint32 words, for hardware where 64-bit lane math is not the fast path.
type swar4Kernel struct{}

const (
	lo4 = 0x01010101
	hi4 = 0x80808080
)

func eq4(w uint32, c byte) uint32 {
	x := w ^ (lo4 * uint32(c))
	t := (x &^ uint32(hi4)) + (lo4 * 0x7f)
	return ^(t | x) & hi4
}

func le4(w uint32, m byte) uint32 {
	t := (w &^ uint32(hi4)) + (lo4 * uint32(0x7f-m))
	return ^(t | w) & hi4
}

func digit4(w uint32) uint32 {
	return ^le4(w, '0'-1) & le4(w, '9')
}

func whitespace4(w uint32) uint32 {
	return eq4(w, ' ') | eq4(w, '\t') | eq4(w, '\n') | eq4(w, '\r')
}

func structural4(w uint32) uint32 {
	return eq4(w, '{') | eq4(w, '}') | eq4(w, '[') | eq4(w, ']') |
		eq4(w, ',') | eq4(w, ':')
}

func (swar4Kernel) Capability() Capability { return Vector4x }

func (swar4Kernel) SkipWhitespace(buf []byte, start int) int {
	i := start
	for i+4 <= len(buf) {
		w := binary.LittleEndian.Uint32(buf[i:])
		ws := whitespace4(w)
		if ws != hi4 {
			return i + bits.TrailingZeros32(^ws&hi4)/8
		}
		i += 4
	}
	for i < len(buf) && whitespaceTable[buf[i]] {
		i++
	}
	return i
}

func (swar4Kernel) FindStringEnd(buf []byte, start int) int {
	i := start
	escaped := false
	for i+4 <= len(buf) {
		w := binary.LittleEndian.Uint32(buf[i:])
		if !escaped && eq4(w, '\\') == 0 {
			if qt := eq4(w, '"'); qt != 0 {
				return i + bits.TrailingZeros32(qt)/8
			}
			i += 4
			continue
		}
		for k := 0; k < 4; k++ {
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
		i += 4
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

func (swar4Kernel) FindStructuralChars(buf []byte, start int, out []Structural) int {
	if len(out) == 0 {
		return 0
	}
	n := 0
	i := start
	for i+4 <= len(buf) {
		w := binary.LittleEndian.Uint32(buf[i:])
		m := structural4(w)
		for m != 0 {
			pos := i + bits.TrailingZeros32(m)/8
			t, _ := structuralType(buf[pos])
			out[n] = Structural{Pos: uint32(pos), Type: t}
			n++
			if n == len(out) {
				return n
			}
			m &= m - 1
		}
		i += 4
	}
	for ; i < len(buf) && n < len(out); i++ {
		if t, ok := structuralType(buf[i]); ok {
			out[n] = Structural{Pos: uint32(i), Type: t}
			n++
		}
	}
	return n
}

func (swar4Kernel) ValidateNumberChars(buf []byte, start, end int) bool {
	if end > len(buf) {
		end = len(buf)
	}
	i := start
	for i+4 <= end {
		w := binary.LittleEndian.Uint32(buf[i:])
		ok := digit4(w) | eq4(w, '+') | eq4(w, '-') | eq4(w, '.') |
			eq4(w, 'e') | eq4(w, 'E')
		if ok != hi4 {
			return false
		}
		i += 4
	}
	for ; i < end; i++ {
		if !numberCharTable[buf[i]] {
			return false
		}
	}
	return true
}
