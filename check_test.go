package schemata_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/multierr"

	schemata "github.com/persistx/schemata"
	"github.com/persistx/schemata/format/document"
	"github.com/persistx/schemata/internal/library"
)

type ping struct {
	Name string
	Pong pong
}

type pong struct {
	Name string
	Ping *ping
}

var pingPong = struct {
	Ping func() *schemata.Schema[document.Node, ping]
	Pong func() *schemata.Schema[document.Node, pong]
}{}

func init() {
	var d schemata.Driver[document.Node] = document.Driver{}
	pingPong.Ping = sync.OnceValue(func() *schemata.Schema[document.Node, ping] {
		return schemata.New2("Ping", d,
			func(name string, p pong) ping { return ping{Name: name, Pong: p} },
			schemata.Prop[document.Node](schemata.FieldOf(func(p *ping) *string { return &p.Name }), schemata.P("name"), schemata.String),
			schemata.ToOne(schemata.NewField("pong", func(p ping) pong { return p.Pong }), schemata.P("pong"), pingPong.Pong),
		)
	})
	pingPong.Pong = sync.OnceValue(func() *schemata.Schema[document.Node, pong] {
		return schemata.New2("Pong", d,
			func(name string, p ping) pong { return pong{Name: name, Ping: &p} },
			schemata.Prop[document.Node](schemata.FieldOf(func(p *pong) *string { return &p.Name }), schemata.P("name"), schemata.String),
			schemata.ToOne(schemata.NewField("ping", func(p pong) ping { return *p.Ping }), schemata.P("ping"), pingPong.Ping),
		)
	})
}

func TestCheck_LibraryIsSound(t *testing.T) {
	if err := schemata.Check(library.Documents.Book(), library.Records.Author()); err != nil {
		t.Fatalf("unexpected check failure: %v", err)
	}
}

func TestCheck_RequiredCycle(t *testing.T) {
	// reached from either side, the cycle is reported once
	err := schemata.Check(pingPong.Pong(), pingPong.Ping())
	errs := multierr.Errors(err)
	if len(errs) != 1 {
		t.Fatalf("expected one problem, got %v", errs)
	}
	var ce *schemata.CheckError
	if !errors.As(errs[0], &ce) || ce.Code != schemata.CodeRequiredCycle {
		t.Fatalf("unexpected error %#v", errs[0])
	}
	if ce.Model != "Ping" || strings.Join(ce.Path, ",") != "Ping.pong,Pong.ping" {
		t.Fatalf("cycle = %s %v", ce.Model, ce.Path)
	}
	if !strings.HasPrefix(ce.Error(), "Ping: Ping.pong -> Pong.ping: ") {
		t.Fatalf("message = %q", ce.Error())
	}
}

type orphan struct {
	Name   string
	Parent ping
}

func TestCheck_UnresolvedSchema(t *testing.T) {
	var d schemata.Driver[document.Node] = document.Driver{}
	s := schemata.New2("Orphan", d,
		func(name string, p ping) orphan { return orphan{Name: name, Parent: p} },
		schemata.Prop[document.Node](schemata.FieldOf(func(o *orphan) *string { return &o.Name }), schemata.P("name"), schemata.String),
		schemata.ToOne(schemata.FieldOf(func(o *orphan) *ping { return &o.Parent }), schemata.P("parent"),
			func() *schemata.Schema[document.Node, ping] { panic("parent schema not declared") }),
	)

	errs := multierr.Errors(schemata.Check(s))
	if len(errs) != 1 {
		t.Fatalf("expected one problem, got %v", errs)
	}
	var ce *schemata.CheckError
	if !errors.As(errs[0], &ce) || ce.Code != schemata.CodeUnresolvedSchema || ce.Model != "Orphan" {
		t.Fatalf("unexpected error %#v", errs[0])
	}
	if ce.Cause == nil || !strings.Contains(ce.Cause.Error(), "parent schema not declared") {
		t.Fatalf("cause = %v", ce.Cause)
	}
	if _, err := schemata.JSONSchema(s); err == nil {
		t.Fatalf("JSONSchema must fail on an unresolved relationship")
	}
}
