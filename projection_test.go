package schemata_test

import (
	"reflect"
	"testing"

	schemata "github.com/persistx/schemata"
	"github.com/persistx/schemata/internal/library"
)

var authorName = schemata.Compose(library.BookFields.Author, library.AuthorFields.Name)

func TestProjection_KeyPaths(t *testing.T) {
	got := library.BookView.KeyPaths()
	want := []schemata.KeyPath{authorName.KeyPath(), library.BookFields.Title.KeyPath()}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("key paths = %v", got)
	}

	dup := schemata.Project2(func(a, b string) string { return a + b }, library.BookFields.Title, library.BookFields.Title)
	if n := len(dup.KeyPaths()); n != 1 {
		t.Fatalf("duplicates must collapse, got %d", n)
	}
	if dup.From(chronicles()) != "The Martian ChroniclesThe Martian Chronicles" {
		t.Fatalf("duplicate selectors must both read the value")
	}
}

func TestProjection_MakeValue(t *testing.T) {
	got := library.BookView.MakeValue(map[schemata.KeyPath]any{
		library.BookFields.Title.KeyPath(): "The Martian Chronicles",
		authorName.KeyPath():               "Ray Bradbury",
	})
	want := library.BookSummary{Title: "The Martian Chronicles", AuthorName: "Ray Bradbury"}
	if got != want {
		t.Fatalf("summary = %+v", got)
	}
	if from := library.BookView.From(chronicles()); from != want {
		t.Fatalf("From = %+v", from)
	}
}

func TestProjection_Lookup(t *testing.T) {
	vals := library.BookView.Lookup(chronicles())
	if len(vals) != 2 || vals[authorName.KeyPath()] != "Ray Bradbury" {
		t.Fatalf("lookup = %v", vals)
	}
}

func TestProjection_MakeValuePanics(t *testing.T) {
	expectPanic(t, "missing value", func() {
		library.BookView.MakeValue(map[schemata.KeyPath]any{
			library.BookFields.Title.KeyPath(): "The Martian Chronicles",
		})
	})
	expectPanic(t, "author.name", func() {
		library.BookView.MakeValue(map[schemata.KeyPath]any{
			library.BookFields.Title.KeyPath(): "The Martian Chronicles",
			authorName.KeyPath():               42,
		})
	})
}
