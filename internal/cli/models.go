package cli

import (
	"fmt"
	"sort"
	"strings"

	schemata "github.com/persistx/schemata"
	"github.com/persistx/schemata/format/document"
	"github.com/persistx/schemata/format/record"
	"github.com/persistx/schemata/internal/library"
)

// model is a library model bound to its document and record schemas.
type model struct {
	name    string
	schema  func() schemata.AnySchema
	records func() schemata.AnySchema
	decode  func(instance) (any, error)
	encode  func(any, bool) instance
}

func bind[M any](name string, docs func() *schemata.Schema[document.Node, M], recs func() *schemata.Schema[string, M]) model {
	return model{
		name:    name,
		schema:  func() schemata.AnySchema { return docs().AnySchema() },
		records: func() schemata.AnySchema { return recs().AnySchema() },
		decode: func(in instance) (any, error) {
			if in.rec != nil {
				return recs().Decode(in.rec)
			}
			return docs().Decode(in.doc)
		},
		encode: func(x any, asRecord bool) instance {
			if asRecord {
				return instance{rec: recs().Encode(x.(M)).(*record.Record)}
			}
			return instance{doc: docs().Encode(x.(M)).(*document.Document)}
		},
	}
}

var models = map[string]model{
	"author": bind("author", library.Documents.Author, library.Records.Author),
	"book":   bind("book", library.Documents.Book, library.Records.Book),
}

func lookupModel(name string) (model, error) {
	m, ok := models[strings.ToLower(name)]
	if !ok {
		return model{}, fmt.Errorf("unknown model %q (want one of %s)", name, strings.Join(modelNames(), ", "))
	}
	return m, nil
}

func modelNames() []string {
	names := make([]string, 0, len(models))
	for n := range models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
