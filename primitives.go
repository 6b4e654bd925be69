package schemata

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// AnyValue is a primitive codec with its decoded type erased, so that fields
// of different Go types can live in one collection. Each access costs one
// dynamic type assertion.
//
// Kind must match the primitive tag Encode produces and Decode consumes.
type AnyValue struct {
	Kind   PrimitiveKind
	Type   reflect.Type // Decoded Go type.
	Encode func(any) Primitive
	Decode func(Primitive) (any, error)
}

// Erase wraps v as an AnyValue tagged with E's primitive kind.
//
// Encode panics when handed a value that is not a D. Decode fails with
// type_mismatch, without calling v, when the primitive's tag is not E's.
func Erase[E PrimitiveType, D any](v Value[E, D]) AnyValue {
	kind := primitiveKindOf[E]()
	typ := reflect.TypeFor[D]()
	return AnyValue{
		Kind: kind,
		Type: typ,
		Encode: func(x any) Primitive {
			d, ok := x.(D)
			if !ok {
				panic(fmt.Sprintf("schemata.AnyValue: cannot encode %T as %v", x, typ))
			}
			return wrapPrimitive(v.Encode(d))
		},
		Decode: func(p Primitive) (any, error) {
			if p.Kind() != kind {
				return nil, TypeMismatch(kind.String(), p)
			}
			d, err := v.Decode(unwrapPrimitive[E](p))
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	}
}

func (av AnyValue) String() string {
	if av.Type == nil {
		return av.Kind.String()
	}
	return fmt.Sprintf("%s (%v)", av.Kind, av.Type)
}

// Built-in primitive codecs.
var (
	String = Identity[string]()
	Int64  = Identity[int64]()
	Double = Identity[float64]()
	Date   = Identity[time.Time]()
	Unit   = Identity[None]()
	Int    = MapE(Int64, toInt, func(i int) int64 { return int64(i) })
)

func toInt(i int64) (int, error) { return narrowInt(i, strconv.IntSize) }

// narrowInt converts i to an int of the given bit size.
func narrowInt(i int64, bits int) (int, error) {
	if bits < 64 && (i < -1<<(bits-1) || i > 1<<(bits-1)-1) {
		return 0, InvalidValue(i, "out of int range")
	}
	return int(i), nil
}

