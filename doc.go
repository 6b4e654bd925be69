// Package schemata maps Go models to and from serialized formats through
// declarative, bidirectional schemas.
//
// It provides:
//
// - Value codecs between primitive wire values and domain types (Value, Map, MapE)
// - Properties that bind a model field to a format path (Prop, NullableProp, ToOne, NullableToOne, ToMany)
// - Schemas that decode every property and report all failures at once (DecodeError keyed by JSON Pointer)
// - Type-erased schemas for graph queries (AnySchema.PropertiesFor) and structural checks (Check)
// - Projections that build read-only views from key paths reaching through related models
// - JSON Schema export of a model's document format
//
// Design policy:
// - The core is format-agnostic. A format supplies a Driver; format/document and format/record are shipped.
// - Related schemas are resolved lazily, so cyclic model graphs can be declared.
// - Contract violations at declaration time panic; data problems are returned as errors.
//
// Typical usage:
//
//	var d schemata.Driver[document.Node] = document.Driver{}
//	books := schemata.New2("Book", d, newBook,
//		schemata.Prop[document.Node](titleField, schemata.P("title"), schemata.String),
//		schemata.ToOne(authorField, schemata.P("author"), authors),
//	)
//	doc, err := document.ParseJSON(data)
//	b, err := books.Decode(doc)
//	out := books.Encode(b)
package schemata
