package codec

import schemata "github.com/persistx/schemata"

// StringAs returns a Value storing a string-kinded domain type T, such as a
// named identifier type, as a string primitive.
func StringAs[T ~string]() schemata.Value[string, T] {
	return schemata.Map(schemata.String,
		func(s string) T { return T(s) },
		func(t T) string { return string(t) })
}

// IntAs returns a Value storing an integer-kinded domain type T as an int
// primitive.
func IntAs[T ~int | ~int8 | ~int16 | ~int32 | ~int64]() schemata.Value[int64, T] {
	return schemata.Map(schemata.Int64,
		func(i int64) T { return T(i) },
		func(t T) int64 { return int64(t) })
}

// DoubleAs returns a Value storing a float-kinded domain type T as a double
// primitive.
func DoubleAs[T ~float32 | ~float64]() schemata.Value[float64, T] {
	return schemata.Map(schemata.Double,
		func(f float64) T { return T(f) },
		func(t T) float64 { return float64(t) })
}
