package jsonschema

// Draft is the dialect emitted by the exporter.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Schema string `json:"$schema,omitempty"`
	Ref    string `json:"$ref,omitempty"`
	Title  string `json:"title,omitempty"`
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Definitions, referenced as "#/$defs/<name>".
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// RefTo returns a schema referencing the definition called name.
func RefTo(name string) *Schema { return &Schema{Ref: "#/$defs/" + name} }

// Nullable returns a schema accepting s or null.
func Nullable(s *Schema) *Schema {
	return &Schema{OneOf: []*Schema{s, {Type: "null"}}}
}
