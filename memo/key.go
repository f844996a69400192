package memo

import (
	"encoding/binary"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// namedSection separates positional components from named ones, so that
// f(1, "x", 2) and f(1, x=2) never share a path.
type namedSection struct{}

// stringerKey stands in for a non-comparable argument that implements
// fmt.Stringer. The dynamic type is kept so that a Stringer never collides
// with a plain string or with a Stringer of another type.
type stringerKey struct {
	typ reflect.Type
	s   string
}

// key is the canonical path of one call through the table.
type key struct {
	parts []any
}

func newKey(args Args) (key, error) {
	parts := make([]any, 0, len(args.Positional)+1+2*len(args.Named))
	for i, arg := range args.Positional {
		c, ok := component(arg)
		if !ok {
			return key{}, &KeyConstructionError{Position: i, Type: reflect.TypeOf(arg)}
		}
		parts = append(parts, c)
	}

	if len(args.Named) > 0 {
		parts = append(parts, namedSection{})
		for _, name := range slices.Sorted(maps.Keys(args.Named)) {
			arg := args.Named[name]
			c, ok := component(arg)
			if !ok {
				return key{}, &KeyConstructionError{Position: -1, Name: name, Type: reflect.TypeOf(arg)}
			}
			parts = append(parts, name, c)
		}
	}
	return key{parts: parts}, nil
}

func component(arg any) (any, bool) {
	if arg == nil {
		return nil, true
	}
	v := reflect.ValueOf(arg)
	if v.Comparable() {
		return arg, true
	}
	if s, ok := arg.(fmt.Stringer); ok {
		return stringerKey{typ: v.Type(), s: s.String()}, true
	}
	return nil, false
}

// Hash fingerprints the key for logs. Equal keys always share a hash;
// distinct keys may too. It is never used for lookups.
func (k key) Hash() uint64 {
	d := xxhash.New()
	for _, p := range k.parts {
		writePart(d, p)
	}
	return d.Sum64()
}

// shard picks one of n shards from the first component only, so all calls
// sharing a first argument land in the same shard.
func (k key) shard(n int) int {
	switch {
	case n <= 0:
		panic("number of shards cannot be 0")
	case n == 1, len(k.parts) == 0:
		return 0
	}
	d := xxhash.New()
	writePart(d, k.parts[0])
	return int(d.Sum64() % uint64(n))
}

func writePart(d *xxhash.Digest, p any) {
	switch p := p.(type) {
	case namedSection:
		_, _ = d.WriteString("|")
	case stringerKey:
		_, _ = d.WriteString(p.typ.String())
		writeString(d, p.s)
	default:
		writeValue(d, reflect.ValueOf(p))
	}
}

// writeValue feeds v to d so that values equal under == write the same
// bytes: pointers and channels by address, floats with -0 folded into +0,
// arrays and structs element by element.
func writeValue(d *xxhash.Digest, v reflect.Value) {
	if !v.IsValid() {
		_, _ = d.WriteString("nil;")
		return
	}
	_, _ = d.WriteString(v.Type().String())

	switch v.Kind() {
	case reflect.Bool:
		b := uint64(0)
		if v.Bool() {
			b = 1
		}
		writeUint(d, b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint(d, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint(d, v.Uint())
	case reflect.Float32, reflect.Float64:
		writeFloat(d, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		writeFloat(d, real(c))
		writeFloat(d, imag(c))
	case reflect.String:
		writeString(d, v.String())
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		writeUint(d, uint64(v.Pointer()))
	case reflect.Interface:
		writeValue(d, v.Elem())
	case reflect.Array:
		for i := range v.Len() {
			writeValue(d, v.Index(i))
		}
	case reflect.Struct:
		for i := range v.NumField() {
			// == ignores blank fields.
			if v.Type().Field(i).Name == "_" {
				continue
			}
			writeValue(d, v.Field(i))
		}
	}
}

func writeUint(d *xxhash.Digest, u uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	_, _ = d.Write(buf[:])
}

func writeFloat(d *xxhash.Digest, f float64) {
	if f == 0 {
		f = 0
	}
	writeUint(d, math.Float64bits(f))
}

func writeString(d *xxhash.Digest, s string) {
	writeUint(d, uint64(len(s)))
	_, _ = d.WriteString(s)
}
