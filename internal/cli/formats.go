package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/persistx/schemata/format/document"
	"github.com/persistx/schemata/format/record"
)

// format is a concrete file format: a document syntax or "record" for
// env-style flat records.
type format string

const (
	formatAuto   format = "auto"
	formatRecord format = "record"
)

func parseFormat(name string) (format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return formatAuto, nil
	case "record", "env":
		return formatRecord, nil
	}
	s, err := document.ParseSyntax(name)
	if err != nil {
		return "", fmt.Errorf("unsupported format %q (want auto, json, yaml, toml or record)", name)
	}
	return format(s), nil
}

// resolveFormat picks the format of path, using its extension when f is
// auto.
func resolveFormat(f format, path string) (format, error) {
	if f != formatAuto {
		return f, nil
	}
	if s, ok := document.SyntaxOf(path); ok {
		return format(s), nil
	}
	if filepath.Ext(path) == ".env" {
		return formatRecord, nil
	}
	return "", fmt.Errorf("cannot tell the format of %s; pass --format", path)
}

// instance is one parsed input in either format family.
type instance struct {
	doc *document.Document
	rec *record.Record
}

func parseInstance(f format, data []byte) (instance, error) {
	if f == formatRecord {
		r, err := record.Parse(data)
		return instance{rec: r}, err
	}
	d, err := document.Syntax(f).Parse(data)
	return instance{doc: d}, err
}

func marshalInstance(f format, in instance) ([]byte, error) {
	if f == formatRecord {
		return record.Marshal(in.rec)
	}
	return document.Syntax(f).Marshal(in.doc)
}
