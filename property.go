package schemata

import (
	"fmt"
	"reflect"
)

// PropertyKind classifies a property.
type PropertyKind int

const (
	PropValue  PropertyKind = iota // A primitive-backed value.
	PropToOne                      // A single related model.
	PropToMany                     // A collection of related models.
)

func (k PropertyKind) String() string {
	switch k {
	case PropValue:
		return "value"
	case PropToOne:
		return "toOne"
	case PropToMany:
		return "toMany"
	default:
		return fmt.Sprintf("PropertyKind(%d)", int(k))
	}
}

// PropertyType describes what a property holds.
type PropertyType struct {
	Kind     PropertyKind
	Nullable bool
	Value    AnyValue     // PropValue only.
	Related  reflect.Type // Relationships only: the related model type.

	related *Lazy[AnyModel]
}

// Schema resolves the related model's schema. It panics for value
// properties.
func (t PropertyType) Schema() AnySchema {
	if t.related == nil {
		panic("schemata.PropertyType: " + t.Kind.String() + " property has no related schema")
	}
	return t.related.Get().AnySchema()
}

// Equal compares kinds, nullability and the declared Go types.
func (t PropertyType) Equal(o PropertyType) bool {
	return t.Kind == o.Kind &&
		t.Nullable == o.Nullable &&
		t.Value.Kind == o.Value.Kind &&
		t.Value.Type == o.Value.Type &&
		t.Related == o.Related
}

func (t PropertyType) String() string {
	opt := ""
	if t.Nullable {
		opt = "?"
	}
	switch t.Kind {
	case PropToMany:
		return "-->>" + typeName(t.Related)
	case PropToOne:
		return "--->" + typeName(t.Related) + opt
	default:
		return fmt.Sprintf("%s%s (%s)", t.Value.Kind, opt, typeName(t.Value.Type))
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Property binds one field of M, holding a T, to a path in a format whose
// values are V.
type Property[V, M, T any] struct {
	field  Field[M, T]
	path   Path
	typ    PropertyType
	decode func(Driver[V], Format[V]) (T, *DecodeError)
	encode func(Driver[V], Format[V], T)
}

func (p Property[V, M, T]) KeyPath() KeyPath   { return p.field.path }
func (p Property[V, M, T]) Field() Field[M, T] { return p.field }
func (p Property[V, M, T]) Path() Path         { return p.path }
func (p Property[V, M, T]) Type() PropertyType { return p.typ }

// Any returns the type-erased view of p.
func (p Property[V, M, T]) Any() AnyProperty {
	return AnyProperty{Model: reflect.TypeFor[M](), KeyPath: p.field.path, Path: p.path, Type: p.typ}
}

// Descriptor is implemented by every Property of a model M over format
// values V, whatever its field type.
type Descriptor[V, M any] interface {
	partial() partialProperty[V, M]
}

func (p Property[V, M, T]) partial() partialProperty[V, M] {
	return partialProperty[V, M]{
		any: p.Any(),
		decode: func(d Driver[V], f Format[V]) (any, *DecodeError) {
			t, err := p.decode(d, f)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
		encode: func(d Driver[V], f Format[V], m M) { p.encode(d, f, p.field.get(m)) },
	}
}

// partialProperty is a Property with its field type erased, so a schema can
// hold heterogeneous properties.
type partialProperty[V, M any] struct {
	any    AnyProperty
	decode func(Driver[V], Format[V]) (any, *DecodeError)
	encode func(Driver[V], Format[V], M)
}

// AnyProperty is a Property with model, field and format types erased.
type AnyProperty struct {
	Model   reflect.Type
	KeyPath KeyPath
	Path    Path
	Type    PropertyType
}

// Equal compares model, key path, format path and type.
func (p AnyProperty) Equal(o AnyProperty) bool {
	return p.Model == o.Model &&
		p.KeyPath == o.KeyPath &&
		p.Path.equal(o.Path) &&
		p.Type.Equal(o.Type)
}

// String renders p as "path: type", e.g. "/author: --->library.Author".
func (p AnyProperty) String() string {
	return p.Path.Pointer() + ": " + p.Type.String()
}

func mustPath(fn string, path Path) {
	if len(path) == 0 {
		panic("schemata." + fn + ": path must not be empty")
	}
}

// Prop declares a non-nullable value property: field is stored at path via
// codec. A missing value is missing_key; null is type_mismatch.
func Prop[V, M, T any, E PrimitiveType](field Field[M, T], path Path, codec Value[E, T]) Property[V, M, T] {
	mustPath("Prop", path)
	path = P(path...)
	av := Erase(codec)
	return Property[V, M, T]{
		field: field,
		path:  path,
		typ:   PropertyType{Kind: PropValue, Value: av},
		decode: func(d Driver[V], f Format[V]) (T, *DecodeError) {
			out, err := DecodeAt(d, f, path, av)
			if err != nil {
				var zero T
				return zero, err
			}
			return out.(T), nil
		},
		encode: func(d Driver[V], f Format[V], t T) { EncodeAt(d, f, path, av, t) },
	}
}

// NullableProp declares a nullable value property. A missing or null value
// decodes to nil, and nil encodes to absence.
func NullableProp[V, M, T any, E PrimitiveType](field Field[M, *T], path Path, codec Value[E, T]) Property[V, M, *T] {
	mustPath("NullableProp", path)
	path = P(path...)
	av := Erase(codec)
	return Property[V, M, *T]{
		field: field,
		path:  path,
		typ:   PropertyType{Kind: PropValue, Nullable: true, Value: av},
		decode: func(d Driver[V], f Format[V]) (*T, *DecodeError) {
			if v, ok := f.Get(path); !ok || d.IsNull(v) {
				return nil, nil
			}
			out, err := DecodeAt(d, f, path, av)
			if err != nil {
				return nil, err
			}
			t := out.(T)
			return &t, nil
		},
		encode: func(d Driver[V], f Format[V], t *T) {
			if t == nil {
				f.Delete(path)
				return
			}
			EncodeAt(d, f, path, av, *t)
		},
	}
}

func relatedModel[V, R any](l *Lazy[*Schema[V, R]]) *Lazy[AnyModel] {
	return NewLazy(func() AnyModel { return l.Get() })
}

// ToOne declares a property holding a single related model, stored as a
// nested instance at path. schema is not called until the relationship is
// first used, so mutually-referencing models can be declared.
func ToOne[V, M, R any](field Field[M, R], path Path, schema func() *Schema[V, R]) Property[V, M, R] {
	mustPath("ToOne", path)
	path = P(path...)
	related := NewLazy(schema)
	return Property[V, M, R]{
		field: field,
		path:  path,
		typ:   PropertyType{Kind: PropToOne, Related: reflect.TypeFor[R](), related: relatedModel(related)},
		decode: func(d Driver[V], f Format[V]) (R, *DecodeError) {
			return decodeNested(related.Get(), d, f, path)
		},
		encode: func(d Driver[V], f Format[V], r R) {
			d.Attach(f, path, related.Get().Encode(r))
		},
	}
}

// NullableToOne is like ToOne, but a missing or null value decodes to nil
// and nil encodes to absence.
func NullableToOne[V, M, R any](field Field[M, *R], path Path, schema func() *Schema[V, R]) Property[V, M, *R] {
	mustPath("NullableToOne", path)
	path = P(path...)
	related := NewLazy(schema)
	return Property[V, M, *R]{
		field: field,
		path:  path,
		typ:   PropertyType{Kind: PropToOne, Nullable: true, Related: reflect.TypeFor[R](), related: relatedModel(related)},
		decode: func(d Driver[V], f Format[V]) (*R, *DecodeError) {
			if v, ok := f.Get(path); ok && d.IsNull(v) {
				return nil, nil
			}
			sub, verr := d.Nested(f, path)
			if verr != nil {
				if verr.Code == CodeMissingKey {
					return nil, nil
				}
				return nil, NewDecodeError(path, verr)
			}
			r, err := related.Get().decode(sub)
			if err != nil {
				return nil, err.Prefixed(path)
			}
			return &r, nil
		},
		encode: func(d Driver[V], f Format[V], r *R) {
			if r == nil {
				f.Delete(path)
				return
			}
			d.Attach(f, path, related.Get().Encode(*r))
		},
	}
}

func decodeNested[V, R any](s *Schema[V, R], d Driver[V], f Format[V], path Path) (R, *DecodeError) {
	var zero R
	sub, verr := d.Nested(f, path)
	if verr != nil {
		return zero, NewDecodeError(path, verr)
	}
	r, err := s.decode(sub)
	if err != nil {
		return zero, err.Prefixed(path)
	}
	return r, nil
}

// ToMany declares the inverse side of a relationship. The collection is not
// stored in the format: it decodes to nil and is skipped on encode, leaving
// population to the caller. path names the relationship in descriptions and
// errors.
func ToMany[V, M, R any](field Field[M, []R], path Path, schema func() *Schema[V, R]) Property[V, M, []R] {
	mustPath("ToMany", path)
	path = P(path...)
	related := NewLazy(schema)
	return Property[V, M, []R]{
		field:  field,
		path:   path,
		typ:    PropertyType{Kind: PropToMany, Related: reflect.TypeFor[R](), related: relatedModel(related)},
		decode: func(Driver[V], Format[V]) ([]R, *DecodeError) { return nil, nil },
		encode: func(Driver[V], Format[V], []R) {},
	}
}
