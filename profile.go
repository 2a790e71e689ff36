package vexjson

import (
	"bytes"

	"github.com/vexjson/vexjson/internal/kernel"
)

// StructuralProfile summarizes the structural shape of a document without
// building a value tree: counts of the six structural characters (grouped
// by role), string literals, and the deepest nesting seen.
type StructuralProfile struct {
	Objects  int // number of '{'
	Arrays   int // number of '['
	Strings  int // number of string literals
	Commas   int
	Colons   int
	MaxDepth int
	Balanced bool // braces and brackets close in matching order
}

// Profile scans data with the active kernel tier, consuming structural
// characters in dispatcher batches and skipping string contents via the
// string-end scan. It fails only on an unterminated string; structural
// imbalance is reported through the Balanced field.
func Profile(data []byte) (StructuralProfile, error) {
	d := kernel.NewDispatcher()
	var batch [kernel.StructuralBatch]kernel.Structural

	prof := StructuralProfile{Balanced: true}
	var stack []byte
	pos := 0

	skipString := func(quote int) error {
		end := d.FindStringEnd(data, quote+1)
		if end >= len(data) {
			line, col := lineColAt(data, quote)
			return errAt(UnterminatedString, line, col, "string has no closing quote")
		}
		prof.Strings++
		pos = end + 1
		return nil
	}

	for pos < len(data) {
		n := d.FindStructuralChars(data, pos, batch[:])
		if n == 0 {
			// Only string content and scalars remain.
			q := bytes.IndexByte(data[pos:], '"')
			if q < 0 {
				break
			}
			if err := skipString(pos + q); err != nil {
				return StructuralProfile{}, err
			}
			continue
		}
		for k := 0; k < n; k++ {
			s := batch[k]
			// A quote ahead of this match means the rest of the
			// batch may sit inside a string: skip the string and
			// rescan from past it.
			if q := bytes.IndexByte(data[pos:s.Pos], '"'); q >= 0 {
				if err := skipString(pos + q); err != nil {
					return StructuralProfile{}, err
				}
				break
			}
			switch s.Type {
			case kernel.StructLBrace:
				prof.Objects++
				stack = append(stack, '{')
			case kernel.StructLBracket:
				prof.Arrays++
				stack = append(stack, '[')
			case kernel.StructRBrace:
				if len(stack) == 0 || stack[len(stack)-1] != '{' {
					prof.Balanced = false
				} else {
					stack = stack[:len(stack)-1]
				}
			case kernel.StructRBracket:
				if len(stack) == 0 || stack[len(stack)-1] != '[' {
					prof.Balanced = false
				} else {
					stack = stack[:len(stack)-1]
				}
			case kernel.StructComma:
				prof.Commas++
			case kernel.StructColon:
				prof.Colons++
			}
			if len(stack) > prof.MaxDepth {
				prof.MaxDepth = len(stack)
			}
			pos = int(s.Pos) + 1
		}
	}
	if len(stack) != 0 {
		prof.Balanced = false
	}
	return prof, nil
}

// lineColAt replays newline bookkeeping up to off: 1-based line and column
// of the byte at that offset.
func lineColAt(data []byte, off int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < off && i < len(data); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
