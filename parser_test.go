package vexjson

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vexjson/vexjson/internal/kernel"
)

func mustParse(t *testing.T, input string) Value {
	t.Helper()
	v, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return v
}

func parseErr(t *testing.T, input string) *ParseError {
	t.Helper()
	_, err := Parse([]byte(input))
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", input)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q) returned %T, want *ParseError", input, err)
	}
	return perr
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"null", "null", nil},
		{"true", "true", true},
		{"false", "false", false},
		{"int", "42", int64(42)},
		{"negative int", "-7", int64(-7)},
		{"negative zero", "-0", int64(0)},
		{"zero", "0", int64(0)},
		{"float", "3.14", 3.14},
		{"exponent", "1e3", 1000.0},
		{"signed exponent", "-12.5e-2", -0.125},
		{"capital exponent", "2E2", 200.0},
		{"string", `"hello"`, "hello"},
		{"empty string", `""`, ""},
		{"escapes", `"a\"b\\c\/d\b\f\n\r\t"`, "a\"b\\c/d\b\f\n\r\t"},
		{"unicode escape", `"aAé"`, "aAé"},
		{"surrogate pair", `"😀"`, "\U0001f600"},
		{"lone high surrogate", `"\ud800"`, "�"},
		{"lone low surrogate", `"\ude00x"`, "�x"},
		{"multibyte passthrough", `"héllo"`, "héllo"},
		{"empty array", "[]", []any{}},
		{"empty object", "{}", map[string]any{}},
		{"nested empty", "[[]]", []any{[]any{}}},
		{"mixed array", `[1, "two", {"three": 3}]`, []any{int64(1), "two", map[string]any{"three": int64(3)}}},
		{
			"object with whitespace",
			"  {\"a\":1,\"b\":[true,false,null]}  ",
			map[string]any{"a": int64(1), "b": []any{true, false, nil}},
		},
		{"duplicate keys last wins", `{"a":1,"a":2}`, map[string]any{"a": int64(2)}},
		{"newlines between tokens", "[\n1,\n2\n]", []any{int64(1), int64(2)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustParse(t, tc.input).Interface()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse(%q) tree mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"empty", "", EmptyInput},
		{"whitespace only", " \n\t ", EmptyInput},
		{"extra tokens", "null null", ExtraTokens},
		{"extra punctuation", "1,", ExtraTokens},
		{"bad lookahead", "@", InvalidCharacter},
		{"plus sign", "+1", InvalidCharacter},
		{"truncated null", "nul", InvalidNull},
		{"mangled null", "nuLl", InvalidNull},
		{"truncated true", "tru", InvalidBoolean},
		{"mangled false", "falze", InvalidBoolean},
		{"leading zero", "01", InvalidNumber},
		{"bare minus", "-", InvalidNumber},
		{"dot without digits", "1.", InvalidNumber},
		{"exponent without digits", "1e", InvalidNumber},
		{"exponent sign only", "1e+", InvalidNumber},
		{"double dot", "1.2.3", InvalidNumber},
		{"garbage in number", "12x3", InvalidNumber},
		{"int overflow", "9223372036854775808", InvalidNumber},
		{"int underflow", "-9223372036854775809", InvalidNumber},
		{"float overflow", "1e999", InvalidNumber},
		{"unterminated string", `"unterminated`, UnterminatedString},
		{"raw control in string", "\"a\x01b\"", InvalidString},
		{"bad escape", `"a\qb"`, InvalidString},
		{"truncated unicode escape", `"\u12"`, InvalidString},
		{"bad unicode escape", `"\uzzzz"`, InvalidString},
		{"trailing comma array", "[1,]", InvalidArray},
		{"double comma array", "[1,,2]", InvalidArray},
		{"missing comma array", "[1 2]", InvalidArray},
		{"unterminated array", "[1,2", UnexpectedEnd},
		{"comma then end", "[1,2,", UnexpectedEnd},
		{"bare open brace", "{", UnexpectedEnd},
		{"unterminated object", `{"a":1`, UnexpectedEnd},
		{"non-string key", "{1:2}", InvalidObject},
		{"missing colon", `{"a" 1}`, InvalidObject},
		{"trailing comma object", `{"a":1,}`, InvalidObject},
		{"missing comma object", `{"a":1 "b":2}`, InvalidObject},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			perr := parseErr(t, tc.input)
			if perr.Kind != tc.kind {
				t.Errorf("Parse(%q) kind = %v, want %v (err: %v)", tc.input, perr.Kind, tc.kind, perr)
			}
			if perr.Line < 1 || perr.Column < 1 {
				t.Errorf("Parse(%q) position %d:%d is not 1-based", tc.input, perr.Line, perr.Column)
			}
		})
	}
}

// TestErrorPositions pins exact line/column reporting, including positions
// reached through accelerated whitespace and string scans.
func TestErrorPositions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		line  int
		col   int
	}{
		{"comma then end", "[1,2,", UnexpectedEnd, 1, 6},
		{"literal mismatch on line 2", "{\n  \"a\": tru}", InvalidBoolean, 2, 11},
		{"leading zero on line 3", "\n\n  01", InvalidNumber, 3, 4},
		{"missing value", "{\"a\": 1,\n \"b\": }", InvalidCharacter, 2, 7},
		{"unterminated string at open quote", `"abc`, UnterminatedString, 1, 1},
		{"unterminated string on line 2", "[\n\"abc", UnterminatedString, 2, 1},
		{"bad escape position", `["ok", "a\qb"]`, InvalidString, 1, 11},
		{"empty after newlines", "\n\n", EmptyInput, 3, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			perr := parseErr(t, tc.input)
			if perr.Kind != tc.kind || perr.Line != tc.line || perr.Column != tc.col {
				t.Errorf("Parse(%q) = %v at %d:%d, want %v at %d:%d",
					tc.input, perr.Kind, perr.Line, perr.Column, tc.kind, tc.line, tc.col)
			}
		})
	}
}

func TestDepthBound(t *testing.T) {
	nest := func(depth int) string {
		return strings.Repeat("[", depth) + strings.Repeat("]", depth)
	}
	if _, err := Parse([]byte(nest(1000))); err != nil {
		t.Fatalf("depth 1000 should parse: %v", err)
	}
	perr := parseErr(t, nest(1001))
	if perr.Kind != RecursionTooDeep {
		t.Fatalf("depth 1001 kind = %v, want %v", perr.Kind, RecursionTooDeep)
	}
	if perr.Column != 1001 {
		t.Errorf("depth error column = %d, want 1001", perr.Column)
	}

	// Depth must not leak across failed nested parses: the same pooled
	// parser must still accept a deep document afterwards.
	if _, err := Parse([]byte(nest(1000))); err != nil {
		t.Fatalf("depth bookkeeping leaked after failure: %v", err)
	}

	// Mixed nesting counts objects and arrays alike.
	deep := strings.Repeat(`{"a":[`, 501)
	if _, err := Parse([]byte(deep)); err == nil {
		t.Fatal("expected error for 1002-deep mixed nesting")
	} else if perr := err.(*ParseError); perr.Kind != RecursionTooDeep {
		t.Fatalf("mixed nesting kind = %v, want %v", perr.Kind, RecursionTooDeep)
	}
}

func TestObjectOrderAndDuplicates(t *testing.T) {
	v := mustParse(t, `{"b":1,"a":2,"b":3}`)
	obj := v.Object()
	if obj == nil {
		t.Fatal("not an object")
	}
	members := obj.Members()
	if len(members) != 2 {
		t.Fatalf("member count = %d, want 2", len(members))
	}
	if members[0].Key != "b" || members[0].Value.Int64() != 3 {
		t.Errorf("first member = %s:%v, want b:3", members[0].Key, members[0].Value)
	}
	if members[1].Key != "a" || members[1].Value.Int64() != 2 {
		t.Errorf("second member = %s:%v, want a:2", members[1].Key, members[1].Value)
	}
}

func TestNumberClassification(t *testing.T) {
	if v := mustParse(t, "42"); v.Kind() != KindInt64 {
		t.Errorf("42 parsed as %v, want int64", v.Kind())
	}
	for _, in := range []string{"42.0", "42e0", "4.2e1"} {
		if v := mustParse(t, in); v.Kind() != KindDouble {
			t.Errorf("%s parsed as %v, want double", in, v.Kind())
		}
	}
	if v := mustParse(t, "9223372036854775807"); v.Int64() != 9223372036854775807 {
		t.Errorf("max int64 = %d", v.Int64())
	}
	if v := mustParse(t, "-9223372036854775808"); v.Int64() != -9223372036854775808 {
		t.Errorf("min int64 = %d", v.Int64())
	}
}

// TestParseAgreesAcrossTiers drives the full parser with each kernel tier
// and requires identical values and identical error positions.
func TestParseAgreesAcrossTiers(t *testing.T) {
	inputs := []string{
		"null",
		"[]",
		`   {"a": 1, "b": [true, false, null], "c": "d\ne"}   `,
		`"` + strings.Repeat("x", 100) + `\"` + strings.Repeat("y", 100) + `"`,
		strings.Repeat(" ", 67) + "17",
		`[1,2,`,
		`{"key": "unterminated`,
		"{\n\n  \"a\": nope}",
		strings.Repeat("[", 30) + "0" + strings.Repeat("]", 30),
		`{"пример": "значение", "emoji": "😀"}`,
	}
	base := kernel.ForCapability(kernel.Scalar)
	for _, in := range inputs {
		wantVal, wantErr := parseWithDispatcher(base, []byte(in))
		for _, c := range []kernel.Capability{kernel.Vector4x, kernel.Vector8x} {
			gotVal, gotErr := parseWithDispatcher(kernel.ForCapability(c), []byte(in))
			if (gotErr == nil) != (wantErr == nil) {
				t.Fatalf("%v Parse(%q) error = %v, scalar = %v", c, in, gotErr, wantErr)
			}
			if gotErr != nil {
				if *gotErr != *wantErr {
					t.Fatalf("%v Parse(%q) error = %+v, scalar = %+v", c, in, gotErr, wantErr)
				}
				continue
			}
			if !gotVal.Equal(wantVal) {
				t.Fatalf("%v Parse(%q) = %v, scalar = %v", c, in, gotVal, wantVal)
			}
		}
	}
}

func BenchmarkParse(b *testing.B) {
	doc := []byte(`{"users":[{"id":1,"name":"Alice","active":true},{"id":2,"name":"Bob","active":false}],"count":2,"ratio":0.5}`)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(doc); err != nil {
			b.Fatal(err)
		}
	}
}
