package schemata_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	schemata "github.com/persistx/schemata"
	"github.com/persistx/schemata/format/document"
	"github.com/persistx/schemata/internal/library"
	js "github.com/persistx/schemata/jsonschema"
)

func TestJSONSchema_Library(t *testing.T) {
	root, err := schemata.JSONSchema(library.Documents.Book())
	if err != nil {
		t.Fatal(err)
	}
	if root.Schema != js.Draft || root.Ref != "#/$defs/Book" {
		t.Fatalf("unexpected root %+v", root)
	}
	if len(root.Defs) != 2 {
		t.Fatalf("defs = %v", root.Defs)
	}

	book := root.Defs["Book"]
	if want := []string{"author", "id", "pages", "published", "title"}; !reflect.DeepEqual(book.Required, want) {
		t.Fatalf("book required = %v", book.Required)
	}
	checks := map[string]*js.Schema{
		"id":        {Type: "string"},
		"pages":     {Type: "integer"},
		"published": {Type: "string", Format: "date-time"},
		"author":    {Ref: "#/$defs/Author"},
		"subtitle":  {OneOf: []*js.Schema{{Type: "string"}, {Type: "null"}}},
	}
	for k, want := range checks {
		if got := book.Properties[k]; !reflect.DeepEqual(got, want) {
			t.Fatalf("book.%s = %+v", k, got)
		}
	}

	author := root.Defs["Author"]
	if _, ok := author.Properties["books"]; ok {
		t.Fatalf("to-many relationships are not part of the format")
	}
	if want := []string{"id", "name"}; !reflect.DeepEqual(author.Required, want) {
		t.Fatalf("author required = %v", author.Required)
	}
}

func TestJSONSchema_Marshal(t *testing.T) {
	root, err := schemata.JSONSchema(library.Records.Author())
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back["$ref"] != "#/$defs/Author" {
		t.Fatalf("marshalled = %s", b)
	}
	defs, _ := back["$defs"].(map[string]any)
	if _, ok := defs["Book"]; ok {
		t.Fatalf("Book is only reachable through a to-many edge: %s", b)
	}
}

type labelled struct {
	Label string
	Note  *string
}

func TestJSONSchema_NestedPaths(t *testing.T) {
	s := schemata.New2("Labelled", schemata.Driver[document.Node](document.Driver{}),
		func(l string, n *string) labelled { return labelled{Label: l, Note: n} },
		schemata.Prop[document.Node](schemata.FieldOf(func(x *labelled) *string { return &x.Label }), schemata.P("meta", "label"), schemata.String),
		schemata.NullableProp[document.Node](schemata.FieldOf(func(x *labelled) **string { return &x.Note }), schemata.P("meta", "note"), schemata.String),
	)
	root, err := schemata.JSONSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	def := root.Defs["Labelled"]
	if !reflect.DeepEqual(def.Required, []string{"meta"}) {
		t.Fatalf("required = %v", def.Required)
	}
	meta := def.Properties["meta"]
	if meta.Type != "object" || !reflect.DeepEqual(meta.Required, []string{"label"}) {
		t.Fatalf("meta = %+v", meta)
	}
	if meta.Properties["label"].Type != "string" || meta.Properties["note"].OneOf == nil {
		t.Fatalf("meta properties = %v", meta.Properties)
	}
}

type (
	badge struct{ Label string }
	stamp struct{ Label string }
	pair  struct {
		Badge badge
		Stamp stamp
	}
)

func TestJSONSchema_NameClash(t *testing.T) {
	d := schemata.Driver[document.Node](document.Driver{})
	label := schemata.Prop[document.Node](schemata.FieldOf(func(x *badge) *string { return &x.Label }), schemata.P("label"), schemata.String)
	badges := schemata.New1("Label", d, func(l string) badge { return badge{Label: l} }, label)
	stamps := schemata.New1("Label", d, func(l string) stamp { return stamp{Label: l} },
		schemata.Prop[document.Node](schemata.FieldOf(func(x *stamp) *string { return &x.Label }), schemata.P("label"), schemata.String),
	)
	pairs := schemata.New2("Pair", d, func(b badge, s stamp) pair { return pair{Badge: b, Stamp: s} },
		schemata.ToOne(schemata.FieldOf(func(x *pair) *badge { return &x.Badge }), schemata.P("badge"), func() *schemata.Schema[document.Node, badge] { return badges }),
		schemata.ToOne(schemata.FieldOf(func(x *pair) *stamp { return &x.Stamp }), schemata.P("stamp"), func() *schemata.Schema[document.Node, stamp] { return stamps }),
	)
	if _, err := schemata.JSONSchema(pairs); err == nil || !strings.Contains(err.Error(), `share the name "Label"`) {
		t.Fatalf("expected a name clash error, got %v", err)
	}

	if _, err := schemata.JSONSchema(badges); err != nil {
		t.Fatalf("a single model must not clash with itself: %v", err)
	}
}
