package schemata

import (
	"fmt"
	"reflect"
	"strings"
)

// Schema maps model M to and from format instances whose values are V.
// A Schema is immutable after construction and safe for concurrent use.
type Schema[V, M any] struct {
	name      string
	driver    Driver[V]
	props     []partialProperty[V, M]
	index     map[KeyPath]int
	construct func(Values) M
	erased    AnySchema
}

// Values holds the decoded field values handed to a model constructor,
// keyed by field path.
type Values struct {
	m map[KeyPath]any
}

// NewValues builds Values from a field path map. The map is not copied.
func NewValues(m map[KeyPath]any) Values { return Values{m: m} }

// Lookup returns the raw value stored for p.
func (v Values) Lookup(p KeyPath) (any, bool) {
	x, ok := v.m[p]
	return x, ok
}

// Len returns the number of stored values.
func (v Values) Len() int { return len(v.m) }

// Arg returns the decoded value of property p.
func Arg[V, M, T any](vals Values, p Property[V, M, T]) T {
	return valueAt[T]("Arg", vals, p.KeyPath())
}

// FieldValue returns the value stored for field f.
func FieldValue[M, T any](vals Values, f Field[M, T]) T {
	return valueAt[T]("FieldValue", vals, f.KeyPath())
}

func valueAt[T any](fn string, vals Values, p KeyPath) T {
	x, ok := vals.m[p]
	if !ok {
		panic(fmt.Sprintf("schemata.%s: no value for %q", fn, p))
	}
	if x == nil {
		// An untyped nil stands for the zero value of nilable types only.
		var zero T
		if isNilable(reflect.TypeFor[T]()) {
			return zero
		}
		panic(fmt.Sprintf("schemata.%s: nil value for %q, want %v", fn, p, reflect.TypeFor[T]()))
	}
	t, ok := x.(T)
	if !ok {
		panic(fmt.Sprintf("schemata.%s: value for %q is %T, want %v", fn, p, x, reflect.TypeFor[T]()))
	}
	return t
}

func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// NewSchema declares how M maps to a format. construct receives the decoded
// field values once every property decoded successfully; read them with
// Arg. An empty name defaults to M's type name.
//
// NewSchema panics if two properties share a field path or a format path.
func NewSchema[V, M any](name string, driver Driver[V], construct func(Values) M, props ...Descriptor[V, M]) *Schema[V, M] {
	if driver == nil {
		panic("schemata.NewSchema: driver must not be nil")
	}
	if construct == nil {
		panic("schemata.NewSchema: construct must not be nil")
	}
	model := reflect.TypeFor[M]()
	if name == "" {
		name = model.Name()
	}
	s := &Schema[V, M]{
		name:      name,
		driver:    driver,
		props:     make([]partialProperty[V, M], 0, len(props)),
		index:     make(map[KeyPath]int, len(props)),
		construct: construct,
	}
	paths := make(map[string]KeyPath, len(props))
	order := make([]KeyPath, 0, len(props))
	erased := make(map[KeyPath]AnyProperty, len(props))
	for _, d := range props {
		p := d.partial()
		kp := p.any.KeyPath
		if _, dup := s.index[kp]; dup {
			panic(fmt.Sprintf("schemata.NewSchema: %s: duplicate field path %q", name, kp))
		}
		ptr := p.any.Path.Pointer()
		if other, dup := paths[ptr]; dup {
			panic(fmt.Sprintf("schemata.NewSchema: %s: fields %q and %q share format path %s", name, other, kp, ptr))
		}
		paths[ptr] = kp
		s.index[kp] = len(s.props)
		s.props = append(s.props, p)
		order = append(order, kp)
		erased[kp] = p.any
	}
	s.erased = AnySchema{name: name, model: model, order: order, props: erased}
	return s
}

func (s *Schema[V, M]) Name() string      { return s.name }
func (s *Schema[V, M]) Driver() Driver[V] { return s.driver }

// AnySchema returns the type-erased view of s.
func (s *Schema[V, M]) AnySchema() AnySchema { return s.erased }

// Decode reads a model from f. Every property is attempted; when any fails
// the returned error is a *DecodeError holding all failures, keyed by
// format path.
func (s *Schema[V, M]) Decode(f Format[V]) (M, error) {
	m, err := s.decode(f)
	if err != nil {
		return m, err
	}
	return m, nil
}

func (s *Schema[V, M]) decode(f Format[V]) (M, *DecodeError) {
	vals := make(map[KeyPath]any, len(s.props))
	var errs *DecodeError
	for _, p := range s.props {
		v, err := p.decode(s.driver, f)
		if err != nil {
			errs = Merge(errs, err)
			continue
		}
		vals[p.any.KeyPath] = v
	}
	if errs != nil {
		var zero M
		return zero, errs
	}
	return s.construct(Values{m: vals}), nil
}

// Encode writes m into a new format instance.
func (s *Schema[V, M]) Encode(m M) Format[V] {
	f := s.driver.New()
	for _, p := range s.props {
		p.encode(s.driver, f, m)
	}
	return f
}

// Property returns the property declared for p. It panics if p is not a
// top-level field path of s.
func (s *Schema[V, M]) Property(p KeyPath) AnyProperty {
	i, ok := s.index[p]
	if !ok {
		panic(fmt.Sprintf("schemata.Schema.Property: %s has no property %q", s.name, p))
	}
	return s.props[i].any
}

// Properties returns the declared properties in declaration order.
func (s *Schema[V, M]) Properties() []AnyProperty { return s.erased.Properties() }

// PropertiesFor returns the chain of properties that reaches target, which
// may pass through to-one relationships. The result is empty when no chain
// exists.
func (s *Schema[V, M]) PropertiesFor(target KeyPath) []AnyProperty {
	return s.erased.PropertiesFor(target)
}

func (s *Schema[V, M]) String() string { return s.erased.String() }

// describe renders a schema header followed by one line per property.
func describe(name string, props []AnyProperty) string {
	b := &strings.Builder{}
	b.WriteString(name)
	b.WriteString(" {\n")
	for _, p := range props {
		b.WriteString("  ")
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}
