package vexjson

import (
	"math"
	"testing"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", NullValue(), "null"},
		{"true", BoolValue(true), "true"},
		{"int", IntValue(-42), "-42"},
		{"float", FloatValue(0.25), "0.25"},
		{"big float", FloatValue(1e21), "1e+21"},
		{"string", StringValue("hi"), `"hi"`},
		{"escaped string", StringValue("a\"b\\c\nd\x01"), `"a\"b\\c\nd\u0001"`},
		{"empty array", ArrayValue(), "[]"},
		{"array", ArrayValue(IntValue(1), StringValue("x"), NullValue()), `[1,"x",null]`},
		{"empty object", ObjectValue(nil), "{}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.value)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Marshal = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMarshalRejectsNonFiniteFloats(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Marshal(FloatValue(f)); err == nil {
			t.Errorf("Marshal(%v) succeeded, want error", f)
		}
	}
}

func TestMarshalPreservesMemberOrder(t *testing.T) {
	v := mustParse(t, `{"z":1,"a":2,"z":3}`)
	got, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"z":3,"a":2}` {
		t.Errorf("Marshal = %s, want {\"z\":3,\"a\":2}", got)
	}
}

func TestMarshalIndent(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":[true,null]}`)
	got, err := MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    true,\n    null\n  ]\n}"
	if string(got) != want {
		t.Errorf("MarshalIndent =\n%s\nwant\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"null",
		"true",
		"-17",
		"3.14",
		"6.02e+23",
		`"plain"`,
		`"esc \" \\ \n \t \u0001"`,
		`"héllo 😀"`,
		"[]",
		"{}",
		`[1,[2,[3,[4]]]]`,
		`{"a":1,"b":[true,false,null],"c":{"d":"e"}}`,
		`{"dup":1,"dup":2}`,
	}
	for _, in := range inputs {
		v1 := mustParse(t, in)
		out, err := Marshal(v1)
		if err != nil {
			t.Fatalf("Marshal(%q): %v", in, err)
		}
		v2, err := Parse(out)
		if err != nil {
			t.Fatalf("re-Parse(%s): %v", out, err)
		}
		if !v1.Equal(v2) {
			t.Errorf("round trip of %q changed value: %s -> %s", in, v1, v2)
		}

		// Indented output must round-trip to the same value too.
		pretty, err := MarshalIndent(v1, "", "\t")
		if err != nil {
			t.Fatalf("MarshalIndent(%q): %v", in, err)
		}
		v3, err := Parse(pretty)
		if err != nil {
			t.Fatalf("re-Parse indented(%q): %v", in, err)
		}
		if !v1.Equal(v3) {
			t.Errorf("indented round trip of %q changed value", in)
		}
	}
}
