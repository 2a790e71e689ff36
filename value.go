package vexjson

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindDouble
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value is a closed sum over the JSON value kinds. A Value returned by a
// successful parse is fully owned by the caller: string contents are copied
// out of the input buffer, never borrowed from it. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

func NullValue() Value           { return Value{kind: KindNull} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }
func IntValue(n int64) Value     { return Value{kind: KindInt64, n: n} }
func FloatValue(f float64) Value { return Value{kind: KindDouble, f: f} }
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

func ArrayValue(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false for any other kind.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Int64 returns the integer payload. Double values are truncated; other
// kinds yield zero.
func (v Value) Int64() int64 {
	switch v.kind {
	case KindInt64:
		return v.n
	case KindDouble:
		return int64(v.f)
	}
	return 0
}

// Float64 returns the numeric payload as a double; zero for non-numbers.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindDouble:
		return v.f
	case KindInt64:
		return float64(v.n)
	}
	return 0
}

// Str returns the string payload; empty for any other kind.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Index returns element i of an array; null when out of range or not an
// array.
func (v Value) Index(i int) Value {
	if v.kind == KindArray && i >= 0 && i < len(v.arr) {
		return v.arr[i]
	}
	return Value{}
}

// Array returns the underlying element slice of an array value.
func (v Value) Array() []Value {
	if v.kind == KindArray {
		return v.arr
	}
	return nil
}

// Get looks up a key in an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind == KindObject {
		return v.obj.Get(key)
	}
	return Value{}, false
}

// Object returns the underlying object; nil for other kinds.
func (v Value) Object() *Object {
	if v.kind == KindObject {
		return v.obj
	}
	return nil
}

// Interface converts the value into the equivalent tree of native Go values:
// nil, bool, int64, float64, string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt64:
		return v.n
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, m := range v.obj.Members() {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}

// Equal reports deep equality. Object member order is not significant;
// Int64 and Double values compare unequal even when numerically close.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindInt64:
		return v.n == w.n
	case KindDouble:
		return v.f == w.f
	case KindString:
		return v.s == w.s
	case KindArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != w.obj.Len() {
			return false
		}
		for _, m := range v.obj.Members() {
			other, ok := w.obj.Get(m.Key)
			if !ok || !m.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value as compact JSON. Values that cannot be encoded
// (NaN or infinite doubles) render as a placeholder.
func (v Value) String() string {
	data, err := Marshal(v)
	if err != nil {
		return "<unencodable value>"
	}
	return string(data)
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is an insertion-ordered string-to-Value mapping. Setting an
// existing key overwrites its value in place, keeping the position of the
// first occurrence (last write wins).
type Object struct {
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	if i, ok := o.index[key]; ok {
		return o.members[i].Value, true
	}
	return Value{}, false
}

// Members returns the key/value pairs in insertion order. The slice is the
// object's backing storage; callers must not modify it.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}
