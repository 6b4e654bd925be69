package schemata

import (
	"fmt"
	"strconv"
	"time"
)

// PrimitiveKind tags the wire representation carried by a Primitive.
type PrimitiveKind int

const (
	KindNull   PrimitiveKind = iota // None.
	KindDate                        // time.Time.
	KindDouble                      // float64.
	KindInt                         // int64.
	KindString                      // string.
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindDate:
		return "date"
	case KindDouble:
		return "double"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "PrimitiveKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// None is the unit type. Its only value encodes as a null primitive.
type None struct{}

// PrimitiveType lists the Go types a primitive codec may use as its encoded side.
type PrimitiveType interface {
	time.Time | float64 | int64 | None | string
}

// Primitive is an immutable tagged union over the closed set of primitive
// wire values. The zero Primitive is null.
type Primitive struct {
	kind PrimitiveKind
	s    string
	i    int64
	f    float64
	t    time.Time
}

func DatePrimitive(t time.Time) Primitive { return Primitive{kind: KindDate, t: t} }
func DoublePrimitive(f float64) Primitive { return Primitive{kind: KindDouble, f: f} }
func IntPrimitive(i int64) Primitive      { return Primitive{kind: KindInt, i: i} }
func NullPrimitive() Primitive            { return Primitive{kind: KindNull} }
func StringPrimitive(s string) Primitive  { return Primitive{kind: KindString, s: s} }

func (p Primitive) Kind() PrimitiveKind         { return p.kind }
func (p Primitive) IsNull() bool                { return p.kind == KindNull }
func (p Primitive) Date() (time.Time, bool)     { return p.t, p.kind == KindDate }
func (p Primitive) Double() (float64, bool)     { return p.f, p.kind == KindDouble }
func (p Primitive) Int() (int64, bool)          { return p.i, p.kind == KindInt }
func (p Primitive) StringValue() (string, bool) { return p.s, p.kind == KindString }

// Equal reports whether p and o carry the same tag and value. Dates compare
// by instant.
func (p Primitive) Equal(o Primitive) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case KindDate:
		return p.t.Equal(o.t)
	case KindDouble:
		return p.f == o.f
	case KindInt:
		return p.i == o.i
	case KindString:
		return p.s == o.s
	default:
		return true
	}
}

func (p Primitive) String() string {
	switch p.kind {
	case KindDate:
		return p.t.UTC().Format(time.RFC3339Nano)
	case KindDouble:
		return strconv.FormatFloat(p.f, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(p.i, 10)
	case KindString:
		return strconv.Quote(p.s)
	default:
		return "null"
	}
}

func wrapPrimitive[E PrimitiveType](e E) Primitive {
	switch x := any(e).(type) {
	case time.Time:
		return DatePrimitive(x)
	case float64:
		return DoublePrimitive(x)
	case int64:
		return IntPrimitive(x)
	case string:
		return StringPrimitive(x)
	default:
		return NullPrimitive()
	}
}

// unwrapPrimitive extracts the payload of p as E. The caller has already
// checked that p's tag matches E.
func unwrapPrimitive[E PrimitiveType](p Primitive) E {
	var out any
	switch p.kind {
	case KindDate:
		out = p.t
	case KindDouble:
		out = p.f
	case KindInt:
		out = p.i
	case KindString:
		out = p.s
	default:
		out = None{}
	}
	e, ok := out.(E)
	if !ok {
		var zero E
		panic(fmt.Sprintf("schemata: primitive %s cannot be read as %T", p.kind, zero))
	}
	return e
}

func primitiveKindOf[E PrimitiveType]() PrimitiveKind {
	var zero E
	switch any(zero).(type) {
	case time.Time:
		return KindDate
	case float64:
		return KindDouble
	case int64:
		return KindInt
	case string:
		return KindString
	default:
		return KindNull
	}
}
