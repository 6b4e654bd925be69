package schemata

// Value is a bidirectional codec between an encoded representation E and a
// decoded domain type D.
//
// For every value x produced by a well-formed model, Decode(Encode(x)) must
// reproduce x. Decode may reject inputs Encode would never produce.
type Value[E, D any] struct {
	decode func(E) (D, error)
	encode func(D) E
}

// NewValue builds a Value from a decode and an encode function.
func NewValue[E, D any](decode func(E) (D, error), encode func(D) E) Value[E, D] {
	if decode == nil || encode == nil {
		panic("schemata.NewValue: decode and encode must not be nil")
	}
	return Value[E, D]{decode: decode, encode: encode}
}

// Decode converts an encoded value into D. Failures are *ValueError or
// *DecodeError values.
func (v Value[E, D]) Decode(e E) (D, error) { return v.decode(e) }

// Encode converts a domain value into its encoded form. It cannot fail.
func (v Value[E, D]) Encode(d D) E { return v.encode(d) }

// Identity returns a Value[T,T] that performs no transformation.
func Identity[T any]() Value[T, T] {
	return Value[T, T]{
		decode: func(t T) (T, error) { return t, nil },
		encode: func(t T) T { return t },
	}
}

// Map adapts v to a new decoded type with a pair of total functions.
func Map[E, D, D2 any](v Value[E, D], decode func(D) D2, encode func(D2) D) Value[E, D2] {
	return Value[E, D2]{
		decode: func(e E) (D2, error) {
			d, err := v.decode(e)
			if err != nil {
				var zero D2
				return zero, err
			}
			return decode(d), nil
		},
		encode: func(d2 D2) E { return v.encode(encode(d2)) },
	}
}

// MapE is like Map but the decode side may reject a value. Errors that are
// not already a *ValueError or *DecodeError become invalid_value failures.
func MapE[E, D, D2 any](v Value[E, D], decode func(D) (D2, error), encode func(D2) D) Value[E, D2] {
	return Value[E, D2]{
		decode: func(e E) (D2, error) {
			var zero D2
			d, err := v.decode(e)
			if err != nil {
				return zero, err
			}
			d2, err := decode(d)
			if err != nil {
				if de, ok := AsDecodeError(err); ok {
					return zero, de
				}
				return zero, asValueError(err, d)
			}
			return d2, nil
		},
		encode: func(d2 D2) E { return v.encode(encode(d2)) },
	}
}
