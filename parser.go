package vexjson

import (
	"fmt"
	"strconv"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/vexjson/vexjson/internal/kernel"
)

// maxDepth bounds array/object nesting. Exceeding it is a terminal parse
// error, never a crash.
const maxDepth = 1000

// parser is a recursive-descent state machine over a single input buffer.
// It consumes bytes through one dispatcher-selected kernel tier for its
// whole lifetime, tracks line/column in lock-step with every consumed byte,
// and is owned by exactly one parse invocation at a time.
type parser struct {
	disp  *kernel.Dispatcher
	buf   []byte
	pos   int
	line  int
	col   int
	depth int
}

var parserPool = sync.Pool{
	New: func() any {
		return &parser{disp: kernel.NewDispatcher()}
	},
}

func (p *parser) reset(data []byte) {
	p.buf = data
	p.pos = 0
	p.line = 1
	p.col = 1
	p.depth = 0
}

func (p *parser) release() {
	p.buf = nil
	parserPool.Put(p)
}

// advanceTo moves the cursor to off, replaying line/column bookkeeping over
// every byte in between. Ranges skipped by an accelerated kernel scan go
// through here too, so reported positions stay exact.
func (p *parser) advanceTo(off int) {
	for i := p.pos; i < off; i++ {
		if p.buf[i] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
	p.pos = off
}

func (p *parser) skipWhitespace() {
	p.advanceTo(p.disp.SkipWhitespace(p.buf, p.pos))
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.buf)
}

func (p *parser) errf(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:   kind,
		Msg:    fmt.Sprintf(format, args...),
		Line:   p.line,
		Column: p.col,
	}
}

func errAt(kind ErrorKind, line, col int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:   kind,
		Msg:    fmt.Sprintf(format, args...),
		Line:   line,
		Column: col,
	}
}

// enter acquires one level of nesting. Callers must pair it with a deferred
// leave so the depth never leaks across a failed nested call.
func (p *parser) enter() *ParseError {
	if p.depth >= maxDepth {
		return p.errf(RecursionTooDeep, "nesting exceeds %d levels", maxDepth)
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parse() (Value, *ParseError) {
	p.skipWhitespace()
	if p.atEnd() {
		return Value{}, p.errf(EmptyInput, "no JSON value in input")
	}
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	p.skipWhitespace()
	if !p.atEnd() {
		return Value{}, p.errf(ExtraTokens, "unexpected %q after top-level value", p.buf[p.pos])
	}
	return v, nil
}

func (p *parser) parseValue() (Value, *ParseError) {
	if p.atEnd() {
		return Value{}, p.errf(UnexpectedEnd, "expected a value")
	}
	switch c := p.buf[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case c == 't', c == 'f':
		return p.parseBoolean()
	case c == 'n':
		return p.parseNull()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	}
	return Value{}, p.errf(InvalidCharacter, "unexpected %q looking for a value", p.buf[p.pos])
}

// parseLiteral matches lit byte for byte, advancing only over what actually
// matched so a failure reports the first diverging byte.
func (p *parser) parseLiteral(lit string, kind ErrorKind, v Value) (Value, *ParseError) {
	for i := 0; i < len(lit); i++ {
		if p.atEnd() {
			return Value{}, p.errf(kind, "truncated %q literal", lit)
		}
		if p.buf[p.pos] != lit[i] {
			return Value{}, p.errf(kind, "expected %q literal", lit)
		}
		p.advanceTo(p.pos + 1)
	}
	return v, nil
}

func (p *parser) parseNull() (Value, *ParseError) {
	return p.parseLiteral("null", InvalidNull, NullValue())
}

func (p *parser) parseBoolean() (Value, *ParseError) {
	if p.buf[p.pos] == 't' {
		return p.parseLiteral("true", InvalidBoolean, BoolValue(true))
	}
	return p.parseLiteral("false", InvalidBoolean, BoolValue(false))
}

func (p *parser) parseString() (Value, *ParseError) {
	openLine, openCol := p.line, p.col
	start := p.pos + 1 // past the opening quote
	end := p.disp.FindStringEnd(p.buf, start)
	if end >= len(p.buf) {
		return Value{}, errAt(UnterminatedString, openLine, openCol, "string has no closing quote")
	}
	raw := p.buf[start:end]
	s, badOff, msg := decodeString(raw)
	if msg != "" {
		p.advanceTo(start + badOff)
		return Value{}, p.errf(InvalidString, "%s", msg)
	}
	p.advanceTo(end + 1) // past the closing quote
	return StringValue(s), nil
}

// decodeString materializes the raw bytes between quotes with full standard
// escape decoding, including \uXXXX surrogate pairs. On failure it returns
// the offset of the offending byte within raw and a description.
func decodeString(raw []byte) (string, int, string) {
	clean := true
	for _, c := range raw {
		if c == '\\' || c < 0x20 {
			clean = false
			break
		}
	}
	if clean {
		return string(raw), 0, ""
	}

	buf := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c < 0x20 {
			return "", i, "control character must be escaped"
		}
		if c != '\\' {
			buf = append(buf, c)
			i++
			continue
		}
		if i+1 >= len(raw) {
			return "", i, "truncated escape sequence"
		}
		switch raw[i+1] {
		case '"':
			buf = append(buf, '"')
			i += 2
		case '\\':
			buf = append(buf, '\\')
			i += 2
		case '/':
			buf = append(buf, '/')
			i += 2
		case 'b':
			buf = append(buf, '\b')
			i += 2
		case 'f':
			buf = append(buf, '\f')
			i += 2
		case 'n':
			buf = append(buf, '\n')
			i += 2
		case 'r':
			buf = append(buf, '\r')
			i += 2
		case 't':
			buf = append(buf, '\t')
			i += 2
		case 'u':
			r, ok := decodeHex4(raw[i+2:])
			if !ok {
				return "", i, `invalid \u escape`
			}
			i += 6
			if utf16.IsSurrogate(r) {
				// A high surrogate pairs with an immediately
				// following \u low surrogate; anything else
				// decodes to U+FFFD, as encoding/json does.
				if i+6 <= len(raw) && raw[i] == '\\' && raw[i+1] == 'u' {
					if r2, ok := decodeHex4(raw[i+2:]); ok {
						if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
							r = dec
							i += 6
						} else {
							r = utf8.RuneError
						}
					} else {
						return "", i, `invalid \u escape`
					}
				} else {
					r = utf8.RuneError
				}
			}
			buf = utf8.AppendRune(buf, r)
		default:
			return "", i + 1, fmt.Sprintf("invalid escape character %q", raw[i+1])
		}
	}
	return string(buf), 0, ""
}

func decodeHex4(b []byte) (rune, bool) {
	if len(b) < 4 {
		return 0, false
	}
	var r rune
	for _, c := range b[:4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, false
		}
	}
	return r, true
}

func (p *parser) parseNumber() (Value, *ParseError) {
	start := p.pos
	end := start
	for end < len(p.buf) {
		switch p.buf[end] {
		case ' ', '\t', '\n', '\r', ',', ']', '}':
			goto scanned
		}
		end++
	}
scanned:
	// Fast charset pre-check over the whole token before the exact
	// grammar walk.
	if !p.disp.ValidateNumberChars(p.buf, start, end) {
		bad := start
		for numberChar(p.buf[bad]) {
			bad++
		}
		p.advanceTo(bad)
		return Value{}, p.errf(InvalidNumber, "invalid character %q in number", p.buf[bad])
	}
	raw := p.buf[start:end]
	isInt, badOff, msg := walkNumber(raw)
	if msg != "" {
		p.advanceTo(start + badOff)
		return Value{}, p.errf(InvalidNumber, "%s", msg)
	}
	if isInt {
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return Value{}, p.errf(InvalidNumber, "integer out of range: %s", raw)
		}
		p.advanceTo(end)
		return IntValue(n), nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return Value{}, p.errf(InvalidNumber, "number out of range: %s", raw)
	}
	p.advanceTo(end)
	return FloatValue(f), nil
}

func numberChar(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'+', '-', '.', 'e', 'E':
		return true
	}
	return false
}

// walkNumber checks raw against the exact JSON number grammar: optional
// minus, "0" or a nonzero-led digit run, optional fraction and exponent
// each requiring at least one digit. It reports whether the token is
// integer-valued and, on failure, the offset of the offending byte.
func walkNumber(raw []byte) (isInt bool, badOff int, msg string) {
	i := 0
	if i < len(raw) && raw[i] == '-' {
		i++
	}
	switch {
	case i >= len(raw):
		return false, i, "number has no digits"
	case raw[i] == '0':
		i++
		if i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
			return false, i, "leading zero in number"
		}
	case raw[i] >= '1' && raw[i] <= '9':
		for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
			i++
		}
	default:
		return false, i, "expected digit in number"
	}
	isInt = true
	if i < len(raw) && raw[i] == '.' {
		isInt = false
		i++
		if i >= len(raw) || raw[i] < '0' || raw[i] > '9' {
			return false, i, "expected digit after decimal point"
		}
		for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
			i++
		}
	}
	if i < len(raw) && (raw[i] == 'e' || raw[i] == 'E') {
		isInt = false
		i++
		if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
			i++
		}
		if i >= len(raw) || raw[i] < '0' || raw[i] > '9' {
			return false, i, "expected digit in exponent"
		}
		for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
			i++
		}
	}
	if i != len(raw) {
		return false, i, "malformed number"
	}
	return isInt, 0, ""
}

func (p *parser) parseArray() (Value, *ParseError) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer p.leave()

	p.advanceTo(p.pos + 1) // consume '['
	p.skipWhitespace()
	if !p.atEnd() && p.buf[p.pos] == ']' {
		p.advanceTo(p.pos + 1)
		return ArrayValue(), nil
	}

	var elems []Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)

		p.skipWhitespace()
		if p.atEnd() {
			return Value{}, p.errf(UnexpectedEnd, "unterminated array")
		}
		switch p.buf[p.pos] {
		case ']':
			p.advanceTo(p.pos + 1)
			return Value{kind: KindArray, arr: elems}, nil
		case ',':
			p.advanceTo(p.pos + 1)
			p.skipWhitespace()
			if !p.atEnd() && (p.buf[p.pos] == ']' || p.buf[p.pos] == ',') {
				return Value{}, p.errf(InvalidArray, "expected value after ','")
			}
		default:
			return Value{}, p.errf(InvalidArray, "expected ',' or ']' after array element, got %q", p.buf[p.pos])
		}
	}
}

func (p *parser) parseObject() (Value, *ParseError) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer p.leave()

	p.advanceTo(p.pos + 1) // consume '{'
	p.skipWhitespace()
	obj := NewObject()
	if !p.atEnd() && p.buf[p.pos] == '}' {
		p.advanceTo(p.pos + 1)
		return ObjectValue(obj), nil
	}

	for {
		if p.atEnd() {
			return Value{}, p.errf(UnexpectedEnd, "unterminated object")
		}
		if p.buf[p.pos] != '"' {
			return Value{}, p.errf(InvalidObject, "object key must be a string, got %q", p.buf[p.pos])
		}
		key, err := p.parseString()
		if err != nil {
			return Value{}, err
		}

		p.skipWhitespace()
		if p.atEnd() {
			return Value{}, p.errf(UnexpectedEnd, "unterminated object")
		}
		if p.buf[p.pos] != ':' {
			return Value{}, p.errf(InvalidObject, "expected ':' after object key, got %q", p.buf[p.pos])
		}
		p.advanceTo(p.pos + 1)
		p.skipWhitespace()

		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		obj.Set(key.Str(), v) // duplicate keys: last write wins

		p.skipWhitespace()
		if p.atEnd() {
			return Value{}, p.errf(UnexpectedEnd, "unterminated object")
		}
		switch p.buf[p.pos] {
		case '}':
			p.advanceTo(p.pos + 1)
			return ObjectValue(obj), nil
		case ',':
			p.advanceTo(p.pos + 1)
			p.skipWhitespace()
		default:
			return Value{}, p.errf(InvalidObject, "expected ',' or '}' after object member, got %q", p.buf[p.pos])
		}
	}
}

// parseWithDispatcher runs a full parse against a specific kernel tier. The
// cross-tier tests use it to confirm every tier drives the parser to
// identical results.
func parseWithDispatcher(d *kernel.Dispatcher, data []byte) (Value, *ParseError) {
	p := &parser{disp: d}
	p.reset(data)
	return p.parse()
}
