package schemata_test

import (
	"reflect"
	"testing"

	schemata "github.com/persistx/schemata"
	"github.com/persistx/schemata/internal/library"
)

func keyPaths(props []schemata.AnyProperty) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.KeyPath.String())
	}
	return out
}

// TestPropertiesFor_CyclicGraph searches the Book -> Author -> []Book graph.
func TestPropertiesFor_CyclicGraph(t *testing.T) {
	book := library.Documents.Book()
	authorName := schemata.Compose(library.BookFields.Author, library.AuthorFields.Name)

	chain := book.PropertiesFor(authorName.KeyPath())
	if got := keyPaths(chain); !reflect.DeepEqual(got, []string{"author", "name"}) {
		t.Fatalf("author.name chain = %v", got)
	}
	if !chain[0].Equal(book.Property(library.BookFields.Author.KeyPath())) {
		t.Fatalf("first hop is not the author property: %v", chain[0])
	}
	if want := library.Documents.Author().Property(library.AuthorFields.Name.KeyPath()); !chain[1].Equal(want) {
		t.Fatalf("second hop is not the author's name property: %v", chain[1])
	}

	if got := keyPaths(book.PropertiesFor(library.BookFields.Title.KeyPath())); !reflect.DeepEqual(got, []string{"title"}) {
		t.Fatalf("title chain = %v", got)
	}
}

func TestPropertiesFor_NotFound(t *testing.T) {
	book := library.Documents.Book()
	for _, kp := range []schemata.KeyPath{
		schemata.NewKeyPath("isbn"),
		schemata.NewKeyPath("author", "isbn"),
		// to-many edges are leaves
		schemata.NewKeyPath("author", "books", "title"),
		// past a value property
		schemata.NewKeyPath("title", "length"),
		{},
	} {
		if got := book.PropertiesFor(kp); got == nil || len(got) != 0 {
			t.Fatalf("%q: expected empty non-nil chain, got %v", kp, got)
		}
	}
}

func TestPropertiesFor_ThroughToMany(t *testing.T) {
	author := library.Documents.Author()
	if got := keyPaths(author.PropertiesFor(library.AuthorFields.Books.KeyPath())); !reflect.DeepEqual(got, []string{"books"}) {
		t.Fatalf("books chain = %v", got)
	}
	if got := author.PropertiesFor(schemata.NewKeyPath("books", "title")); len(got) != 0 {
		t.Fatalf("expected no chain through a to-many edge, got %v", keyPaths(got))
	}
}

func TestAnySchema_Erasure(t *testing.T) {
	var m schemata.AnyModel = library.Records.Book()
	s := m.AnySchema()
	if s.Name() != "Book" || s.Model() != reflect.TypeFor[library.Book]() {
		t.Fatalf("unexpected erased schema %s %v", s.Name(), s.Model())
	}
	if got := keyPaths(s.Properties()); !reflect.DeepEqual(got, []string{"id", "title", "subtitle", "published", "pages", "author"}) {
		t.Fatalf("declaration order lost: %v", got)
	}
	p, ok := s.Property(schemata.NewKeyPath("pages"))
	if !ok || p.Type.Kind != schemata.PropValue || p.Type.Value.Kind != schemata.KindInt {
		t.Fatalf("unexpected pages property: %v", p)
	}
	if _, ok := s.Property(schemata.NewKeyPath("isbn")); ok {
		t.Fatalf("isbn must not exist")
	}
	// erased schemas are themselves models
	if s.AnySchema().Name() != "Book" {
		t.Fatalf("AnySchema of AnySchema changed")
	}
}

func TestAnyProperty_EqualAcrossFormats(t *testing.T) {
	docTitle := library.Documents.Book().Property(library.BookFields.Title.KeyPath())
	recTitle := library.Records.Book().Property(library.BookFields.Title.KeyPath())
	if !docTitle.Equal(recTitle) {
		t.Fatalf("title properties differ: %v vs %v", docTitle, recTitle)
	}
	if docTitle.Equal(library.Documents.Book().Property(library.BookFields.ID.KeyPath())) {
		t.Fatalf("title must differ from id")
	}
}
