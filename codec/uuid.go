package codec

import (
	"github.com/google/uuid"

	schemata "github.com/persistx/schemata"
)

// UUID returns a Value storing a uuid.UUID in its canonical string form.
func UUID() schemata.Value[string, uuid.UUID] {
	return schemata.NewValue(
		func(s string) (uuid.UUID, error) {
			id, err := uuid.Parse(s)
			if err != nil {
				ve := schemata.InvalidValue(s, "invalid UUID")
				ve.Cause = err
				return uuid.Nil, ve
			}
			return id, nil
		},
		uuid.UUID.String,
	)
}
