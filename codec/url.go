package codec

import (
	"net/url"

	schemata "github.com/persistx/schemata"
)

// URL returns a Value storing an absolute URL in its string form. Relative
// references are rejected.
func URL() schemata.Value[string, *url.URL] {
	return schemata.NewValue(
		func(s string) (*url.URL, error) {
			u, err := url.Parse(s)
			if err != nil {
				ve := schemata.InvalidValue(s, "invalid URL")
				ve.Cause = err
				return nil, ve
			}
			if !u.IsAbs() {
				return nil, schemata.InvalidValue(s, "URL must be absolute")
			}
			return u, nil
		},
		(*url.URL).String,
	)
}
