package codec

import (
	"time"

	schemata "github.com/persistx/schemata"
)

// TimeRFC3339 returns a Value that stores time.Time as an RFC3339 string,
// for formats or fields that keep timestamps as text.
func TimeRFC3339() schemata.Value[string, time.Time] {
	return schemata.NewValue(
		func(s string) (time.Time, error) {
			t, err := parseRFC3339(s)
			if err != nil {
				ve := schemata.InvalidValue(s, "invalid RFC3339 time")
				ve.Cause = err
				return time.Time{}, ve
			}
			return t, nil
		},
		formatRFC3339Canonical,
	)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
