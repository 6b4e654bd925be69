// Package library declares the Book and Author models used by the examples,
// the command line tool and the tests. A book refers to its author and an
// author to their books, so the schemas reference each other lazily.
package library

import (
	"regexp"
	"sync"
	"time"

	schemata "github.com/persistx/schemata"
	"github.com/persistx/schemata/codec"
	"github.com/persistx/schemata/format/document"
	"github.com/persistx/schemata/format/record"
)

type (
	BookID   string
	AuthorID string
)

type Author struct {
	ID    AuthorID `schemata:"name=id"`
	Name  string   `schemata:"name=name"`
	Books []Book   `schemata:"name=books"`
}

type Book struct {
	ID        BookID    `schemata:"name=id"`
	Title     string    `schemata:"name=title"`
	Subtitle  *string   `schemata:"name=subtitle"`
	Published time.Time `schemata:"name=published"`
	Pages     int       `schemata:"name=pages"`
	Author    Author    `schemata:"name=author"`
}

func NewAuthor(id AuthorID, name string, books []Book) Author {
	return Author{ID: id, Name: name, Books: books}
}

func NewBook(id BookID, title string, subtitle *string, published time.Time, pages int, author Author) Book {
	return Book{ID: id, Title: title, Subtitle: subtitle, Published: published, Pages: pages, Author: author}
}

var AuthorFields = struct {
	ID    schemata.Field[Author, AuthorID]
	Name  schemata.Field[Author, string]
	Books schemata.Field[Author, []Book]
}{
	ID:    schemata.FieldOf(func(a *Author) *AuthorID { return &a.ID }),
	Name:  schemata.FieldOf(func(a *Author) *string { return &a.Name }),
	Books: schemata.FieldOf(func(a *Author) *[]Book { return &a.Books }),
}

var BookFields = struct {
	ID        schemata.Field[Book, BookID]
	Title     schemata.Field[Book, string]
	Subtitle  schemata.Field[Book, *string]
	Published schemata.Field[Book, time.Time]
	Pages     schemata.Field[Book, int]
	Author    schemata.Field[Book, Author]
}{
	ID:        schemata.FieldOf(func(b *Book) *BookID { return &b.ID }),
	Title:     schemata.FieldOf(func(b *Book) *string { return &b.Title }),
	Subtitle:  schemata.FieldOf(func(b *Book) **string { return &b.Subtitle }),
	Published: schemata.FieldOf(func(b *Book) *time.Time { return &b.Published }),
	Pages:     schemata.FieldOf(func(b *Book) *int { return &b.Pages }),
	Author:    schemata.FieldOf(func(b *Book) *Author { return &b.Author }),
}

var noHash = regexp.MustCompile(`^[^#]*$`)

var (
	bookIDs   = codec.Pattern(codec.StringAs[BookID](), noHash, "no #s allowed")
	authorIDs = codec.Pattern(codec.StringAs[AuthorID](), noHash, "no #s allowed")
)

// Schemas holds the Book and Author schemas for one format.
type Schemas[V any] struct {
	Author func() *schemata.Schema[V, Author]
	Book   func() *schemata.Schema[V, Book]
}

// NewSchemas declares the Book and Author schemas over driver d. Each is
// built on first use.
func NewSchemas[V any](d schemata.Driver[V]) *Schemas[V] {
	s := &Schemas[V]{}
	s.Author = sync.OnceValue(func() *schemata.Schema[V, Author] {
		return schemata.New3("Author", d, NewAuthor,
			schemata.Prop[V](AuthorFields.ID, schemata.P("id"), authorIDs),
			schemata.Prop[V](AuthorFields.Name, schemata.P("name"), schemata.String),
			schemata.ToMany(AuthorFields.Books, schemata.P("books"), s.Book),
		)
	})
	s.Book = sync.OnceValue(func() *schemata.Schema[V, Book] {
		return schemata.New6("Book", d, NewBook,
			schemata.Prop[V](BookFields.ID, schemata.P("id"), bookIDs),
			schemata.Prop[V](BookFields.Title, schemata.P("title"), schemata.String),
			schemata.NullableProp[V](BookFields.Subtitle, schemata.P("subtitle"), schemata.String),
			schemata.Prop[V](BookFields.Published, schemata.P("published"), schemata.Date),
			schemata.Prop[V](BookFields.Pages, schemata.P("pages"), schemata.Int),
			schemata.ToOne(BookFields.Author, schemata.P("author"), s.Author),
		)
	})
	return s
}

var (
	// Documents maps the models to JSON, YAML and TOML documents.
	Documents = NewSchemas[document.Node](document.Driver{})
	// Records maps the models to flat records.
	Records = NewSchemas[string](record.Driver{})
)

// BookSummary is a flattened, read-only view of a book.
type BookSummary struct {
	Title      string
	AuthorName string
}

// BookView projects a book onto its title and author's name.
var BookView = schemata.Project2(
	func(title, authorName string) BookSummary { return BookSummary{Title: title, AuthorName: authorName} },
	BookFields.Title,
	schemata.Compose(BookFields.Author, AuthorFields.Name),
)
