package schemata

import (
	"fmt"
	"sort"
)

// Selector is implemented by every Field of M, whatever its value type.
type Selector[M any] interface {
	KeyPath() KeyPath
	getAny(m M) any
}

// Projection builds a result R from a fixed set of M's field paths, which
// may reach through related models (see Compose). It is a pure value.
type Projection[M, R any] struct {
	fields    []Selector[M]
	construct func(Values) R
}

// NewProjection declares a projection reading fields. construct receives
// exactly those values; read them with FieldValue.
func NewProjection[M, R any](construct func(Values) R, fields ...Selector[M]) Projection[M, R] {
	if construct == nil {
		panic("schemata.NewProjection: construct must not be nil")
	}
	return Projection[M, R]{fields: append([]Selector[M](nil), fields...), construct: construct}
}

func Project1[M, R, A any](ctor func(A) R, fa Field[M, A]) Projection[M, R] {
	return NewProjection[M](func(v Values) R {
		return ctor(FieldValue(v, fa))
	}, fa)
}

func Project2[M, R, A, B any](ctor func(A, B) R, fa Field[M, A], fb Field[M, B]) Projection[M, R] {
	return NewProjection[M](func(v Values) R {
		return ctor(FieldValue(v, fa), FieldValue(v, fb))
	}, fa, fb)
}

func Project3[M, R, A, B, C any](ctor func(A, B, C) R, fa Field[M, A], fb Field[M, B], fc Field[M, C]) Projection[M, R] {
	return NewProjection[M](func(v Values) R {
		return ctor(FieldValue(v, fa), FieldValue(v, fb), FieldValue(v, fc))
	}, fa, fb, fc)
}

func Project4[M, R, A, B, C, D any](ctor func(A, B, C, D) R, fa Field[M, A], fb Field[M, B], fc Field[M, C], fd Field[M, D]) Projection[M, R] {
	return NewProjection[M](func(v Values) R {
		return ctor(FieldValue(v, fa), FieldValue(v, fb), FieldValue(v, fc), FieldValue(v, fd))
	}, fa, fb, fc, fd)
}

// KeyPaths returns the field paths the projection needs, deduplicated and
// sorted.
func (p Projection[M, R]) KeyPaths() []KeyPath {
	seen := make(map[KeyPath]bool, len(p.fields))
	out := make([]KeyPath, 0, len(p.fields))
	for _, f := range p.fields {
		kp := f.KeyPath()
		if seen[kp] {
			continue
		}
		seen[kp] = true
		out = append(out, kp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// MakeValue builds the result from values keyed by field path. It panics
// if a required path is missing or holds a value of the wrong type.
func (p Projection[M, R]) MakeValue(values map[KeyPath]any) R {
	for _, f := range p.fields {
		if _, ok := values[f.KeyPath()]; !ok {
			panic(fmt.Sprintf("schemata.Projection.MakeValue: missing value for %q", f.KeyPath()))
		}
	}
	return p.construct(Values{m: values})
}

// Lookup reads every required field path from m.
func (p Projection[M, R]) Lookup(m M) map[KeyPath]any {
	out := make(map[KeyPath]any, len(p.fields))
	for _, f := range p.fields {
		out[f.KeyPath()] = f.getAny(m)
	}
	return out
}

// From projects m directly.
func (p Projection[M, R]) From(m M) R { return p.MakeValue(p.Lookup(m)) }
