package vexjson

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
)

type encoder struct {
	buf    []byte
	prefix string
	indent string
}

var encoderPool = sync.Pool{
	New: func() any {
		return &encoder{buf: make([]byte, 0, 4096)}
	},
}

func newEncoder() *encoder {
	e := encoderPool.Get().(*encoder)
	e.buf = e.buf[:0]
	e.prefix = ""
	e.indent = ""
	return e
}

func (e *encoder) release() {
	if cap(e.buf) > 64*1024 {
		e.buf = make([]byte, 0, 4096)
	}
	encoderPool.Put(e)
}

// Marshal renders a value tree as compact JSON. Object members are emitted
// in insertion order, so a parse/marshal round trip preserves source order.
func Marshal(v Value) ([]byte, error) {
	e := newEncoder()
	defer e.release()

	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	out := make([]byte, len(e.buf))
	copy(out, e.buf)
	return out, nil
}

// MarshalIndent renders a value tree with the given line prefix and
// per-level indent.
func MarshalIndent(v Value, prefix, indent string) ([]byte, error) {
	e := newEncoder()
	defer e.release()
	e.prefix = prefix
	e.indent = indent

	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	out := make([]byte, len(e.buf))
	copy(out, e.buf)
	return out, nil
}

func (e *encoder) newline(depth int) {
	if e.indent == "" && e.prefix == "" {
		return
	}
	e.buf = append(e.buf, '\n')
	e.buf = append(e.buf, e.prefix...)
	e.buf = append(e.buf, strings.Repeat(e.indent, depth)...)
}

func (e *encoder) encode(v Value, depth int) error {
	switch v.kind {
	case KindNull:
		e.buf = append(e.buf, "null"...)
	case KindBool:
		if v.b {
			e.buf = append(e.buf, "true"...)
		} else {
			e.buf = append(e.buf, "false"...)
		}
	case KindInt64:
		e.buf = strconv.AppendInt(e.buf, v.n, 10)
	case KindDouble:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return errors.New("vexjson: unsupported float value")
		}
		e.buf = strconv.AppendFloat(e.buf, v.f, 'g', -1, 64)
	case KindString:
		e.encodeString(v.s)
	case KindArray:
		e.buf = append(e.buf, '[')
		for i, elem := range v.arr {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			e.newline(depth + 1)
			if err := e.encode(elem, depth+1); err != nil {
				return err
			}
		}
		if len(v.arr) > 0 {
			e.newline(depth)
		}
		e.buf = append(e.buf, ']')
	case KindObject:
		e.buf = append(e.buf, '{')
		members := v.obj.Members()
		for i, m := range members {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			e.newline(depth + 1)
			e.encodeString(m.Key)
			e.buf = append(e.buf, ':')
			if e.indent != "" {
				e.buf = append(e.buf, ' ')
			}
			if err := e.encode(m.Value, depth+1); err != nil {
				return err
			}
		}
		if len(members) > 0 {
			e.newline(depth)
		}
		e.buf = append(e.buf, '}')
	}
	return nil
}

func (e *encoder) encodeString(s string) {
	e.buf = append(e.buf, '"')
	if !needsEscape(s) {
		e.buf = append(e.buf, s...)
		e.buf = append(e.buf, '"')
		return
	}
	e.buf = appendEscapedString(e.buf, s)
	e.buf = append(e.buf, '"')
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == '"' || s[i] == '\\' {
			return true
		}
	}
	return false
}

const hexDigits = "0123456789abcdef"

func appendEscapedString(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if c < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0',
					hexDigits[c>>4], hexDigits[c&0xf])
			} else {
				dst = append(dst, c)
			}
		}
	}
	return dst
}
