package vexjson

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Unmarshal parses data and projects the resulting value tree into v, which
// must be a non-nil pointer. Struct fields honor the usual `json` tag names;
// untagged fields match their name case-insensitively.
func Unmarshal(data []byte, v any) error {
	val, err := Parse(data)
	if err != nil {
		return err
	}
	return val.Decode(v)
}

// Decode projects the value into v, which must be a non-nil pointer.
func (val Value) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("vexjson: Decode requires a non-nil pointer")
	}
	return decodeValue(val, rv.Elem())
}

func decodeValue(src Value, dst reflect.Value) error {
	if src.kind == KindNull {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return decodeValue(src, dst.Elem())
	}

	if dst.Kind() == reflect.Interface && dst.Type().NumMethod() == 0 {
		dst.Set(reflect.ValueOf(src.Interface()))
		return nil
	}

	switch src.kind {
	case KindBool:
		if dst.Kind() != reflect.Bool {
			return decodeTypeError("bool", dst)
		}
		dst.SetBool(src.b)
		return nil

	case KindInt64:
		switch dst.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if dst.OverflowInt(src.n) {
				return decodeTypeError("int64", dst)
			}
			dst.SetInt(src.n)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if src.n < 0 || dst.OverflowUint(uint64(src.n)) {
				return decodeTypeError("int64", dst)
			}
			dst.SetUint(uint64(src.n))
			return nil
		case reflect.Float32, reflect.Float64:
			dst.SetFloat(float64(src.n))
			return nil
		}
		return decodeTypeError("int64", dst)

	case KindDouble:
		switch dst.Kind() {
		case reflect.Float32, reflect.Float64:
			dst.SetFloat(src.f)
			return nil
		}
		return decodeTypeError("number", dst)

	case KindString:
		if dst.Kind() != reflect.String {
			return decodeTypeError("string", dst)
		}
		dst.SetString(src.s)
		return nil

	case KindArray:
		return decodeArray(src, dst)

	case KindObject:
		return decodeObject(src, dst)
	}
	return decodeTypeError(src.kind.String(), dst)
}

func decodeArray(src Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(dst.Type(), len(src.arr), len(src.arr))
		for i, elem := range src.arr {
			if err := decodeValue(elem, out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Array:
		if dst.Len() < len(src.arr) {
			return fmt.Errorf("vexjson: array of length %d cannot hold %d elements", dst.Len(), len(src.arr))
		}
		for i, elem := range src.arr {
			if err := decodeValue(elem, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return decodeTypeError("array", dst)
}

func decodeObject(src Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Map:
		t := dst.Type()
		if t.Key().Kind() != reflect.String {
			return decodeTypeError("object", dst)
		}
		out := reflect.MakeMapWithSize(t, src.obj.Len())
		for _, m := range src.obj.Members() {
			ev := reflect.New(t.Elem()).Elem()
			if err := decodeValue(m.Value, ev); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(m.Key).Convert(t.Key()), ev)
		}
		dst.Set(out)
		return nil

	case reflect.Struct:
		for _, m := range src.obj.Members() {
			fv, ok := structField(dst, m.Key)
			if !ok {
				continue
			}
			if err := decodeValue(m.Value, fv); err != nil {
				return err
			}
		}
		return nil
	}
	return decodeTypeError("object", dst)
}

// structField locates the exported field matching a JSON member key: tag
// name first, then field name, case-insensitively as a last resort.
func structField(sv reflect.Value, key string) (reflect.Value, bool) {
	t := sv.Type()
	var fold reflect.Value
	foundFold := false
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name := f.Name
		if tag != "" {
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				tag = tag[:idx]
			}
			if tag != "" {
				name = tag
			}
		}
		if name == key {
			return sv.Field(i), true
		}
		if !foundFold && strings.EqualFold(name, key) {
			fold = sv.Field(i)
			foundFold = true
		}
	}
	return fold, foundFold
}

func decodeTypeError(kind string, dst reflect.Value) error {
	return fmt.Errorf("vexjson: cannot decode %s into %s", kind, dst.Type())
}
