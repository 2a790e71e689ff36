package vexjson

import "fmt"

// ErrorKind is the closed set of parse failure categories.
type ErrorKind uint8

const (
	EmptyInput ErrorKind = iota
	ExtraTokens
	RecursionTooDeep
	UnexpectedEnd
	InvalidCharacter
	InvalidNull
	InvalidBoolean
	InvalidString
	UnterminatedString
	InvalidNumber
	InvalidArray
	InvalidObject
)

var errorKindNames = [...]string{
	EmptyInput:         "empty input",
	ExtraTokens:        "extra tokens",
	RecursionTooDeep:   "recursion too deep",
	UnexpectedEnd:      "unexpected end of input",
	InvalidCharacter:   "invalid character",
	InvalidNull:        "invalid null",
	InvalidBoolean:     "invalid boolean",
	InvalidString:      "invalid string",
	UnterminatedString: "unterminated string",
	InvalidNumber:      "invalid number",
	InvalidArray:       "invalid array",
	InvalidObject:      "invalid object",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "invalid character"
}

// ParseError describes a parse failure at an exact input position. Line and
// Column are 1-based and point at the offending byte, not at the start of
// the enclosing construct. A ParseError is never mutated after being
// returned.
type ParseError struct {
	Kind   ErrorKind
	Msg    string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s: %s", e.Line, e.Column, e.Kind, e.Msg)
}
