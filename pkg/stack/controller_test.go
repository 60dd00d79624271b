package stack

import (
	"testing"

	"github.com/marcus/modals/pkg/host"
)

type greeting struct {
	Name string
}

type greeter struct {
	got *greeting
}

func (g *greeter) Render(boundary *host.Element, props greeting) {
	g.got = &props
	boundary.Append(host.NewElement(host.KindText, "").SetAttr("data-name", props.Name))
}

func TestControllerOpenClose(t *testing.T) {
	c := NewController(New(nil, counterIDs()))

	var closed []string
	a := c.Open(nop(), nil, WithOnClose(func() { closed = append(closed, "a") }))
	b := c.Open(nop(), "props", WithOnClose(func() { closed = append(closed, "b") }))

	cur, ok := c.Current()
	if !ok || cur.ID != b || cur.Props != "props" {
		t.Fatalf("Current() = %+v, %v", cur, ok)
	}

	c.Close("") // pops b
	if len(closed) != 1 || closed[0] != "b" {
		t.Fatalf("closed = %v, want [b]", closed)
	}

	c.Close(a)
	if c.IsOpen() {
		t.Error("expected no open dialogs")
	}
	if len(closed) != 2 {
		t.Errorf("closed = %v", closed)
	}

	c.Close("")
	c.CloseAll()
	if len(closed) != 2 {
		t.Errorf("closing an empty stack fired callbacks: %v", closed)
	}
}

func TestControllerCloseAll(t *testing.T) {
	c := NewController(New(nil, counterIDs()))
	var n int
	for range 3 {
		c.Open(nop(), nil, WithOnClose(func() { n++ }))
	}
	c.CloseAll()
	if n != 3 || c.IsOpen() {
		t.Errorf("CloseAll: fired %d, open=%v", n, c.IsOpen())
	}
}

func TestTypedOpenPassesPropsThrough(t *testing.T) {
	c := NewController(New(nil, counterIDs()))
	g := &greeter{}

	id := Open(c, g, greeting{Name: "Ann"})

	cur, _ := c.Current()
	if cur.ID != id {
		t.Fatalf("Current().ID = %q, want %q", cur.ID, id)
	}
	boundary := host.NewElement(host.KindGeneric, "boundary")
	cur.Renderable.Render(boundary, cur.Props)

	if g.got == nil || g.got.Name != "Ann" {
		t.Fatalf("component received %+v", g.got)
	}
	if kids := boundary.Children(); len(kids) != 1 || kids[0].Attr("data-name") != "Ann" {
		t.Errorf("boundary children = %v", kids)
	}
}

func TestNewControllerDefaultsToProcessStore(t *testing.T) {
	c := NewController(nil)
	if c.Store() != Default() {
		t.Error("NewController(nil) should wrap Default()")
	}
}
