package schemata

import (
	"reflect"
	"strings"
)

const keySep = "."

// KeyPath identifies a field reachable from a model, possibly through
// related models. It is comparable and may be used as a map key.
// The zero KeyPath is the model itself.
type KeyPath struct {
	key string
}

// NewKeyPath builds a KeyPath from field names, outermost first.
func NewKeyPath(names ...string) KeyPath {
	for _, n := range names {
		if n == "" || strings.Contains(n, keySep) {
			panic("schemata.NewKeyPath: field names must be non-empty and must not contain " + keySep)
		}
	}
	return KeyPath{key: strings.Join(names, keySep)}
}

func (p KeyPath) IsZero() bool   { return p.key == "" }
func (p KeyPath) String() string { return p.key }

// Segments returns the field names, outermost first.
func (p KeyPath) Segments() []string {
	if p.key == "" {
		return nil
	}
	return strings.Split(p.key, keySep)
}

// Len returns the number of field hops in p.
func (p KeyPath) Len() int {
	if p.key == "" {
		return 0
	}
	return strings.Count(p.key, keySep) + 1
}

// Append returns p extended by q.
func (p KeyPath) Append(q KeyPath) KeyPath {
	switch {
	case p.key == "":
		return q
	case q.key == "":
		return p
	default:
		return KeyPath{key: p.key + keySep + q.key}
	}
}

// HasPrefix reports whether q names p itself or one of its ancestors.
func (p KeyPath) HasPrefix(q KeyPath) bool {
	if q.key == "" || p.key == q.key {
		return true
	}
	return strings.HasPrefix(p.key, q.key+keySep)
}

// Field is a typed KeyPath from model M to a value of type T, together with
// the accessor that reads it.
type Field[M, T any] struct {
	path KeyPath
	get  func(M) T
}

// NewField builds a Field from an explicit name and accessor.
func NewField[M, T any](name string, get func(M) T) Field[M, T] {
	if get == nil {
		panic("schemata.NewField: get must not be nil")
	}
	return Field[M, T]{path: NewKeyPath(name), get: get}
}

// FieldOf builds a Field for a top-level struct field of M.
// The selector must return the address of a field, e.g.:
//
//	FieldOf(func(b *Book) *string { return &b.Title })
//
// This guarantees compile-time errors if the field is renamed or removed.
// The field name is the Go name unless overridden with schemata:"name=...".
func FieldOf[M, T any](selector func(*M) *T) Field[M, T] {
	if selector == nil {
		panic("schemata.FieldOf: selector must not be nil")
	}
	var zero M
	fp := reflect.ValueOf(selector(&zero)).Pointer()

	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	if rt.Kind() != reflect.Struct {
		panic("schemata.FieldOf: model must be a struct type")
	}
	for i := 0; i < rt.NumField(); i++ {
		fv := rv.Field(i)
		if !fv.CanAddr() || fv.Addr().Pointer() != fp {
			continue
		}
		// Zero-sized fields share addresses with their neighbours.
		if fv.Type() != reflect.TypeFor[T]() {
			continue
		}
		name := resolveFieldName(rt.Field(i))
		if name == "" || name == "-" {
			panic("schemata.FieldOf: selected field is disabled")
		}
		return Field[M, T]{
			path: NewKeyPath(name),
			get:  func(m M) T { return *selector(&m) },
		}
	}
	panic("schemata.FieldOf: selector must return address of a top-level field of M")
}

// resolveFieldName applies the rule for a struct field's key path name.
// Priority: schemata:"name=..." > field name; "-" disables the field.
func resolveFieldName(sf reflect.StructField) string {
	if tag := sf.Tag.Get("schemata"); tag != "" {
		for _, p := range strings.Split(tag, ",") {
			p = strings.TrimSpace(p)
			if p == "-" {
				return "-"
			}
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	return sf.Name
}

func (f Field[M, T]) KeyPath() KeyPath { return f.path }
func (f Field[M, T]) Get(m M) T        { return f.get(m) }

func (f Field[M, T]) getAny(m M) any { return f.get(m) }

// Compose chains a field of A holding a B with a field of B, giving a field
// of A whose KeyPath is the concatenation of both.
func Compose[A, B, C any](ab Field[A, B], bc Field[B, C]) Field[A, C] {
	return Field[A, C]{
		path: ab.path.Append(bc.path),
		get:  func(a A) C { return bc.get(ab.get(a)) },
	}
}
