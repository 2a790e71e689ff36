package vexjson

import (
	"strings"
	"testing"
)

func TestProfile(t *testing.T) {
	prof, err := Profile([]byte(`{"a":"}{][","b":[1,2]}`))
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	want := StructuralProfile{
		Objects:  1,
		Arrays:   1,
		Strings:  3,
		Commas:   2,
		Colons:   2,
		MaxDepth: 2,
		Balanced: true,
	}
	if prof != want {
		t.Errorf("Profile = %+v, want %+v", prof, want)
	}
}

func TestProfileLargeDocument(t *testing.T) {
	// 200 structural characters exercise re-invocation past the batch
	// bound of the structural scan.
	prof, err := Profile([]byte(strings.Repeat("[]", 100)))
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if prof.Arrays != 100 {
		t.Errorf("Arrays = %d, want 100", prof.Arrays)
	}
	if !prof.Balanced {
		t.Error("alternating brackets must be balanced")
	}
	if prof.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want 1", prof.MaxDepth)
	}
}

func TestProfileUnbalanced(t *testing.T) {
	for _, in := range []string{"[}", "{{", "]"} {
		prof, err := Profile([]byte(in))
		if err != nil {
			t.Fatalf("Profile(%q): %v", in, err)
		}
		if prof.Balanced {
			t.Errorf("Profile(%q) reported balanced", in)
		}
	}
}

func TestProfileUnterminatedString(t *testing.T) {
	_, err := Profile([]byte("{\n\"a"))
	if err == nil {
		t.Fatal("expected error")
	}
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != UnterminatedString {
		t.Fatalf("error = %v, want unterminated string", err)
	}
	if perr.Line != 2 || perr.Column != 1 {
		t.Errorf("position = %d:%d, want 2:1", perr.Line, perr.Column)
	}
}

func TestAlignedBuffer(t *testing.T) {
	buf := NewAlignedBuffer(100)
	if !buf.Aligned() {
		t.Error("fresh buffer is not aligned")
	}
	if len(buf.Bytes()) != 100 {
		t.Errorf("len = %d, want 100", len(buf.Bytes()))
	}

	doc := []byte(`{"staged": true}`)
	staged := buf.Load(doc)
	if string(staged) != string(doc) {
		t.Errorf("Load copied %q, want %q", staged, doc)
	}
	if v, err := Parse(staged); err != nil || !v.Equal(mustParse(t, string(doc))) {
		t.Errorf("parse of staged buffer failed: %v", err)
	}

	// Growing past the original capacity keeps alignment.
	big := []byte("[" + strings.Repeat("1,", 200) + "1]")
	staged = buf.Load(big)
	if !buf.Aligned() {
		t.Error("grown buffer is not aligned")
	}
	if string(staged) != string(big) {
		t.Error("grown buffer holds wrong contents")
	}
}
