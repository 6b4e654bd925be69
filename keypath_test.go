package schemata_test

import (
	"reflect"
	"testing"

	schemata "github.com/persistx/schemata"
	"github.com/persistx/schemata/internal/library"
)

func TestKeyPath_Compose(t *testing.T) {
	f := schemata.Compose(library.BookFields.Author, library.AuthorFields.Name)

	kp := f.KeyPath()
	if kp.String() != "author.name" || kp.Len() != 2 {
		t.Fatalf("key path = %q (%d)", kp, kp.Len())
	}
	if !reflect.DeepEqual(kp.Segments(), []string{"author", "name"}) {
		t.Fatalf("segments = %v", kp.Segments())
	}
	if kp != schemata.NewKeyPath("author", "name") {
		t.Fatalf("composed key path must equal the built one")
	}
	if !kp.HasPrefix(library.BookFields.Author.KeyPath()) || kp.HasPrefix(schemata.NewKeyPath("auth")) {
		t.Fatalf("prefix check is segment based")
	}
	if got := f.Get(chronicles()); got != "Ray Bradbury" {
		t.Fatalf("get = %q", got)
	}
}

func TestKeyPath_Zero(t *testing.T) {
	var zero schemata.KeyPath
	kp := schemata.NewKeyPath("a")
	if !zero.IsZero() || zero.Len() != 0 || zero.Segments() != nil {
		t.Fatalf("zero key path")
	}
	if zero.Append(kp) != kp || kp.Append(zero) != kp {
		t.Fatalf("zero must be the identity for Append")
	}
}

func TestNewKeyPath_RejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "a.b"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%q: expected panic", name)
				}
			}()
			schemata.NewKeyPath(name)
		}()
	}
}

type tagged struct {
	Plain   string
	Renamed int    `schemata:"name=count"`
	Hidden  string `schemata:"-"`
}

func TestFieldOf_Names(t *testing.T) {
	plain := schemata.FieldOf(func(x *tagged) *string { return &x.Plain })
	renamed := schemata.FieldOf(func(x *tagged) *int { return &x.Renamed })
	if plain.KeyPath().String() != "Plain" || renamed.KeyPath().String() != "count" {
		t.Fatalf("names = %q, %q", plain.KeyPath(), renamed.KeyPath())
	}
	if renamed.Get(tagged{Renamed: 3}) != 3 {
		t.Fatalf("getter mismatch")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("disabled field must panic")
		}
	}()
	schemata.FieldOf(func(x *tagged) *string { return &x.Hidden })
}

func TestNewField(t *testing.T) {
	f := schemata.NewField("upper", func(x tagged) string { return x.Plain + "!" })
	if f.KeyPath().String() != "upper" || f.Get(tagged{Plain: "a"}) != "a!" {
		t.Fatalf("unexpected field %v", f.KeyPath())
	}
}
