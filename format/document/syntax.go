package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Syntax names a concrete text syntax for documents.
type Syntax string

const (
	JSON Syntax = "json"
	YAML Syntax = "yaml"
	TOML Syntax = "toml"
)

// ParseSyntax validates a syntax name. "yml" is accepted for YAML.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return "", fmt.Errorf("document: unknown syntax %q", name)
}

// SyntaxOf guesses the syntax of a file from its extension.
func SyntaxOf(path string) (Syntax, bool) {
	s, err := ParseSyntax(strings.TrimPrefix(filepath.Ext(path), "."))
	return s, err == nil
}

func (s Syntax) Parse(data []byte) (*Document, error) {
	switch s {
	case JSON:
		return ParseJSON(data)
	case YAML:
		return ParseYAML(data)
	case TOML:
		return ParseTOML(data)
	}
	return nil, fmt.Errorf("document: unknown syntax %q", string(s))
}

func (s Syntax) Marshal(d *Document) ([]byte, error) {
	switch s {
	case JSON:
		return MarshalJSON(d)
	case YAML:
		return MarshalYAML(d)
	case TOML:
		return MarshalTOML(d)
	}
	return nil, fmt.Errorf("document: unknown syntax %q", string(s))
}
