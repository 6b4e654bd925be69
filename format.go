package schemata

import "strings"

// Path locates a value inside a format instance. Segments are keys,
// outermost first. The empty Path is the root.
type Path []string

// P builds a Path from keys.
func P(keys ...string) Path { return Path(append([]string(nil), keys...)) }

// Child returns a copy of p extended by keys.
func (p Path) Child(keys ...string) Path {
	out := make(Path, 0, len(p)+len(keys))
	out = append(out, p...)
	return append(out, keys...)
}

func (p Path) IsRoot() bool { return len(p) == 0 }

// Pointer renders p as a JSON Pointer. The root renders as "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, k := range p {
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(k, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

func (p Path) equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Format is a mutable serialization instance whose values have type V.
// A missing value is reported by Get's boolean, never by a panic.
// Instances are not safe for concurrent use.
type Format[V any] interface {
	Get(p Path) (V, bool)
	Set(p Path, v V)
	Delete(p Path)
}

// Driver supplies the format-specific behaviour a Schema needs: creating
// empty instances, nesting instances for related models, and converting
// between format values and primitives.
type Driver[V any] interface {
	Name() string
	// New returns an empty instance.
	New() Format[V]
	// Nested returns the instance stored at p in f, for decoding a related
	// model. A missing value is missing_key; a non-nestable one is
	// type_mismatch.
	Nested(f Format[V], p Path) (Format[V], *ValueError)
	// Attach stores sub at p in f.
	Attach(f Format[V], p Path, sub Format[V])
	// Primitive converts a format value into a primitive, coercing towards
	// want where the format has no native representation of that kind.
	Primitive(v V, want PrimitiveKind) (Primitive, *ValueError)
	// Value converts a primitive into a format value.
	Value(p Primitive) V
	// IsNull reports whether v is the format's explicit null.
	IsNull(v V) bool
}

// DecodeAt reads the value at p in f and decodes it through av.
// A missing value is missing_key at p; codec failures are recorded at p
// (nested failures under p).
func DecodeAt[V any](d Driver[V], f Format[V], p Path, av AnyValue) (any, *DecodeError) {
	v, ok := f.Get(p)
	if !ok {
		return nil, NewDecodeError(p, MissingKey())
	}
	prim, verr := d.Primitive(v, av.Kind)
	if verr != nil {
		return nil, NewDecodeError(p, verr)
	}
	out, err := av.Decode(prim)
	if err != nil {
		return nil, decodeErrorAt(p, err, prim)
	}
	return out, nil
}

// EncodeAt encodes x through av and stores it at p in f.
func EncodeAt[V any](d Driver[V], f Format[V], p Path, av AnyValue, x any) {
	f.Set(p, d.Value(av.Encode(x)))
}
