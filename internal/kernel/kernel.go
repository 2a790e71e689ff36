// Package kernel implements the tiered scanning primitives behind the JSON
// parser: whitespace runs, string boundaries, structural characters and
// number character sets. Each primitive exists in three interchangeable
// tiers - a scalar baseline and 4-lane and 8-lane SWAR implementations -
// selected once at runtime from the detected CPU capability. All tiers
// produce byte-identical results; only throughput differs.
package kernel

// StructuralType identifies one of the six JSON structural characters.
type StructuralType uint8

const (
	StructLBrace StructuralType = iota // {
	StructRBrace                       // }
	StructLBracket                     // [
	StructRBracket                     // ]
	StructComma                        // ,
	StructColon                        // :
)

// Structural is one structural character located by FindStructuralChars.
type Structural struct {
	Pos  uint32
	Type StructuralType
}

// StructuralBatch is the canonical batch size for FindStructuralChars.
// Callers re-invoke with an advanced start offset to scan past it.
const StructuralBatch = 64

// Kernel is the fixed call surface shared by all scanning tiers.
//
// Every operation scans forward only and holds no state across calls, so a
// kernel value is safe for concurrent use. The scalar tier is the
// correctness baseline: each vector tier must agree with it byte for byte
// on every input.
type Kernel interface {
	// SkipWhitespace returns the offset of the first byte at or after
	// start that is not space, tab, newline or carriage return, or
	// len(buf) if none remains.
	SkipWhitespace(buf []byte, start int) int

	// FindStringEnd, given start just past an opening quote, returns the
	// offset of the matching unescaped closing quote, or len(buf) when
	// the string is unterminated.
	FindStringEnd(buf []byte, start int) int

	// FindStructuralChars fills out with the positions and types of
	// structural characters at or after start, in buffer order, stopping
	// at len(out) matches. It returns the number of entries written.
	FindStructuralChars(buf []byte, start int, out []Structural) int

	// ValidateNumberChars reports whether buf[start:end] contains only
	// characters legal inside a JSON number token.
	ValidateNumberChars(buf []byte, start, end int) bool

	// Capability identifies the tier this kernel implements.
	Capability() Capability
}

var whitespaceTable = [256]bool{
	' ':  true,
	'\t': true,
	'\n': true,
	'\r': true,
}

var numberCharTable = [256]bool{
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	'+': true, '-': true, '.': true, 'e': true, 'E': true,
}

func structuralType(c byte) (StructuralType, bool) {
	switch c {
	case '{':
		return StructLBrace, true
	case '}':
		return StructRBrace, true
	case '[':
		return StructLBracket, true
	case ']':
		return StructRBracket, true
	case ',':
		return StructComma, true
	case ':':
		return StructColon, true
	}
	return 0, false
}

// Byte returns the character a structural type stands for.
func (t StructuralType) Byte() byte {
	return [...]byte{'{', '}', '[', ']', ',', ':'}[t]
}

func (t StructuralType) String() string {
	return string(t.Byte())
}
