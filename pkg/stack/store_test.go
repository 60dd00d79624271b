package stack

import (
	"fmt"
	"testing"

	"github.com/marcus/modals/pkg/host"
)

// fakeHost counts checkpoint captures and restores.
type fakeHost struct {
	active   *host.Element
	captures int
	restores []*host.Element
}

func (f *fakeHost) ActiveElement() *host.Element {
	f.captures++
	return f.active
}

func (f *fakeHost) Focus(el *host.Element) bool {
	f.restores = append(f.restores, el)
	f.active = el
	return true
}

func counterIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("m%d", n)
	})
}

func nop() Renderable { return RenderFunc(func(*host.Element, any) {}) }

func TestPushCapturesCheckpointOnce(t *testing.T) {
	trigger := host.NewElement(host.KindButton, "trigger")
	h := &fakeHost{active: trigger}
	s := New(h, counterIDs())

	s.Push(Entry{Renderable: nop()})
	h.active = host.NewElement(host.KindButton, "inside")
	s.Push(Entry{Renderable: nop()})
	s.Push(Entry{Renderable: nop()})
	s.Pop()
	s.Pop()

	if h.captures != 1 {
		t.Errorf("captures = %d, want 1", h.captures)
	}
	if len(h.restores) != 0 {
		t.Errorf("restored before stack emptied: %d", len(h.restores))
	}

	s.Pop()
	if len(h.restores) != 1 || h.restores[0] != trigger {
		t.Fatalf("restores = %v, want [trigger]", h.restores)
	}

	// A second cycle captures and restores again.
	h.active = trigger
	id := s.Push(Entry{Renderable: nop()})
	s.Close(id)
	if h.captures != 2 || len(h.restores) != 2 {
		t.Errorf("second cycle: captures=%d restores=%d, want 2/2", h.captures, len(h.restores))
	}
}

func TestOnCloseFiresOncePerPath(t *testing.T) {
	s := New(&fakeHost{}, counterIDs())
	calls := map[string]int{}
	push := func(name string) string {
		return s.Push(Entry{Renderable: nop(), OnClose: func() { calls[name]++ }})
	}

	push("a")
	b := push("b")
	push("c")
	push("d")

	s.Close(b)
	s.Pop()
	s.Close(b) // already gone
	s.ClearAll()
	s.Pop()
	s.ClearAll()

	for _, name := range []string{"a", "b", "c", "d"} {
		if calls[name] != 1 {
			t.Errorf("onClose(%s) fired %d times, want 1", name, calls[name])
		}
	}
	if s.IsOpen() {
		t.Error("stack should be empty")
	}
}

func TestClearAllFiresInStackOrder(t *testing.T) {
	s := New(&fakeHost{}, counterIDs())
	var order []string
	var lenDuring []int
	for _, name := range []string{"a", "b", "c"} {
		s.Push(Entry{Renderable: nop(), OnClose: func() {
			order = append(order, name)
			lenDuring = append(lenDuring, s.Len())
		}})
	}

	s.ClearAll()

	want := []string{"a", "b", "c"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	for i, n := range lenDuring {
		if n != 0 {
			t.Errorf("onClose %d saw %d entries, want 0", i, n)
		}
	}
}

func TestCloseByIDPreservesOrder(t *testing.T) {
	s := New(nil, counterIDs())
	a := s.Push(Entry{Renderable: nop()})
	b := s.Push(Entry{Renderable: nop()})
	c := s.Push(Entry{Renderable: nop()})

	s.Close(b)

	got := s.Entries()
	if len(got) != 2 || got[0].ID != a || got[1].ID != c {
		t.Fatalf("entries after Close(b) = %v", got)
	}
	if cur, ok := s.Current(); !ok || cur.ID != c {
		t.Errorf("Current() = %v, %v; want %s", cur.ID, ok, c)
	}

	if s.Contains(b) || !s.Contains(a) {
		t.Error("Contains disagrees with the stack")
	}

	s.Close("no-such-id")
	if s.Len() != 2 {
		t.Errorf("closing an unknown id changed the stack: len=%d", s.Len())
	}
}

func TestIDsAreUniqueWhileLive(t *testing.T) {
	ids := []string{"dup", "dup", "dup", "fresh"}
	i := 0
	s := New(nil, WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))

	first := s.Push(Entry{Renderable: nop()})
	second := s.Push(Entry{Renderable: nop()})
	if first != "dup" || second != "fresh" {
		t.Errorf("ids = %q, %q; want dup, fresh", first, second)
	}
}

func TestDefaultIDFormat(t *testing.T) {
	s := New(nil)
	seen := map[string]bool{}
	for range 50 {
		id := s.Push(Entry{Renderable: nop()})
		if len(id) <= len("modal-") || id[:6] != "modal-" {
			t.Fatalf("unexpected id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestPanickingOnCloseIsRecovered(t *testing.T) {
	trigger := host.NewElement(host.KindButton, "trigger")
	h := &fakeHost{active: trigger}
	s := New(h, counterIDs())

	var after int
	s.Push(Entry{Renderable: nop(), OnClose: func() { panic("boom") }})
	s.Push(Entry{Renderable: nop(), OnClose: func() { after++ }})

	s.ClearAll()

	if after != 1 {
		t.Errorf("onClose after a panicking one fired %d times, want 1", after)
	}
	if s.IsOpen() {
		t.Error("stack should be empty after ClearAll")
	}
	if len(h.restores) != 1 {
		t.Errorf("focus restore count = %d, want 1", len(h.restores))
	}
}

func TestOnCloseMayReenterStore(t *testing.T) {
	s := New(nil, counterIDs())
	var inner string
	s.Push(Entry{Renderable: nop(), OnClose: func() {
		inner = s.Push(Entry{Renderable: nop()})
	}})

	s.Pop()
	if inner == "" || s.Len() != 1 {
		t.Errorf("push from onClose: id=%q len=%d", inner, s.Len())
	}
}

func TestSubscribeNotifiesInOrder(t *testing.T) {
	s := New(nil, counterIDs())
	var seen []string
	s.Subscribe(func() { seen = append(seen, "first") })
	unsub := s.Subscribe(func() { seen = append(seen, "second") })

	s.Push(Entry{Renderable: nop()})
	if len(seen) != 2 || seen[0] != "first" || seen[1] != "second" {
		t.Fatalf("seen = %v", seen)
	}

	unsub()
	s.Pop()
	if len(seen) != 3 {
		t.Errorf("unsubscribed listener still notified: %v", seen)
	}

	s.Pop() // empty: no notification
	if len(seen) != 3 {
		t.Errorf("no-op pop notified subscribers: %v", seen)
	}
}

func TestNilHostDegrades(t *testing.T) {
	s := New(nil, counterIDs())
	id := s.Push(Entry{Renderable: nop()})
	s.Close(id)
	if s.IsOpen() {
		t.Error("stack should be empty")
	}

	// Attaching a host later starts bookkeeping from the next cycle.
	h := &fakeHost{active: host.NewElement(host.KindButton, "b")}
	s.SetHost(h)
	s.Push(Entry{Renderable: nop()})
	s.Pop()
	if h.captures != 1 || len(h.restores) != 1 {
		t.Errorf("captures=%d restores=%d, want 1/1", h.captures, len(h.restores))
	}
}

func TestNestedEscapeScenarioFocus(t *testing.T) {
	doc := host.NewDocument()
	trigger := host.NewElement(host.KindButton, "trigger")
	doc.Body().Append(trigger)
	doc.Focus(trigger)

	s := New(doc, counterIDs())
	var closed []string
	s.Push(Entry{Renderable: nop(), OnClose: func() { closed = append(closed, "A") }})
	s.Push(Entry{Renderable: nop(), OnClose: func() { closed = append(closed, "B") }})

	doc.Focus(nil)
	s.Pop()
	if len(closed) != 1 || closed[0] != "B" {
		t.Fatalf("closed = %v, want [B]", closed)
	}
	if doc.ActiveElement() == trigger {
		t.Error("checkpoint restored while A is still open")
	}

	s.Pop()
	if len(closed) != 2 || closed[1] != "A" {
		t.Fatalf("closed = %v, want [B A]", closed)
	}
	if doc.ActiveElement() != trigger {
		t.Errorf("focus = %v, want trigger", doc.ActiveElement())
	}
}
