package codec

import (
	"regexp"
	"slices"
	"strings"

	schemata "github.com/persistx/schemata"
)

// Check narrows v: decoded values for which ok reports false are rejected
// with an invalid_value error carrying description. Encoding is unchanged.
func Check[E, D any](v schemata.Value[E, D], ok func(D) bool, description string) schemata.Value[E, D] {
	return schemata.NewValue(
		func(e E) (D, error) {
			d, err := v.Decode(e)
			if err != nil {
				return d, err
			}
			if !ok(d) {
				var zero D
				return zero, schemata.InvalidValue(e, description)
			}
			return d, nil
		},
		v.Encode,
	)
}

// Pattern rejects string-kinded values that do not match re.
func Pattern[T ~string](v schemata.Value[string, T], re *regexp.Regexp, description string) schemata.Value[string, T] {
	return Check(v, func(t T) bool { return re.MatchString(string(t)) }, description)
}

// NonEmpty rejects empty or all-blank string-kinded values.
func NonEmpty[T ~string](v schemata.Value[string, T]) schemata.Value[string, T] {
	return Check(v, func(t T) bool { return strings.TrimSpace(string(t)) != "" }, "must not be empty")
}

// Enum accepts only the listed string values.
func Enum[T ~string](values ...T) schemata.Value[string, T] {
	allowed := slices.Clone(values)
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return Check(StringAs[T](), func(t T) bool { return slices.Contains(allowed, t) },
		"must be one of "+strings.Join(names, ", "))
}

// Range rejects integers outside [min, max].
func Range[T ~int | ~int8 | ~int16 | ~int32 | ~int64](v schemata.Value[int64, T], lo, hi T) schemata.Value[int64, T] {
	return Check(v, func(t T) bool { return t >= lo && t <= hi }, "out of range")
}
