package trap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/modals/pkg/host"
)

var (
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
)

type fixture struct {
	doc      *host.Document
	trigger  *host.Element
	backdrop *host.Element
	dialog   *host.Element
	title    *host.Element
	controls []*host.Element
}

// newFixture builds a page with a trigger button and one layer holding a
// backdrop and a dialog with n buttons.
func newFixture(t *testing.T, id string, n int) *fixture {
	t.Helper()
	doc := host.NewDocument()
	f := &fixture{doc: doc}
	f.trigger = host.NewElement(host.KindButton, "trigger")
	doc.Body().Append(f.trigger)
	f.addLayer(id, n)
	return f
}

func (f *fixture) addLayer(id string, n int) {
	layer := host.NewElement(host.KindGeneric, id+"-layer")
	f.backdrop = host.NewElement(host.KindGeneric, id+"-backdrop").
		SetAttr("role", "button").
		SetTabIndex(0)
	f.dialog = host.NewElement(host.KindGeneric, id).
		SetAttr("role", "dialog").
		SetAttr("aria-labelledby", id+"-title")
	f.title = host.NewElement(host.KindHeading, id+"-title").SetTabIndex(-1)
	f.dialog.Append(f.title)
	f.controls = nil
	for i := range n {
		btn := host.NewElement(host.KindButton, id+"-btn"+string(rune('0'+i)))
		f.controls = append(f.controls, btn)
		f.dialog.Append(btn)
	}
	layer.Append(f.backdrop, f.dialog)
	f.doc.Body().Append(layer)
}

func (f *fixture) mount(onClose func()) *Trap {
	return Mount(f.doc, Options{Boundary: f.dialog, Backdrop: f.backdrop, OnClose: onClose})
}

func TestMountFocusesTitle(t *testing.T) {
	f := newFixture(t, "d", 2)
	f.doc.Focus(f.trigger)

	tr := f.mount(nil)
	defer tr.Unmount()

	if f.doc.ActiveElement() != f.title {
		t.Errorf("active = %v, want title", f.doc.ActiveElement())
	}
}

func TestMountFallsBackToFirstControl(t *testing.T) {
	f := newFixture(t, "d", 2)
	f.dialog.RemoveAttr("aria-labelledby")

	tr := f.mount(nil)
	defer tr.Unmount()

	if f.doc.ActiveElement() != f.controls[0] {
		t.Errorf("active = %v, want first control", f.doc.ActiveElement())
	}
}

func TestTabCyclesWithinBoundary(t *testing.T) {
	f := newFixture(t, "d", 3)
	tr := f.mount(nil)
	defer tr.Unmount()

	first, last := f.controls[0], f.controls[2]

	// From the title (outside the focusable set) Tab goes to the first.
	f.doc.DispatchKey(tab)
	if f.doc.ActiveElement() != first {
		t.Fatalf("Tab from title: active = %v, want first", f.doc.ActiveElement())
	}

	f.doc.DispatchKey(tab)
	f.doc.DispatchKey(tab)
	if f.doc.ActiveElement() != last {
		t.Fatalf("native Tab: active = %v, want last", f.doc.ActiveElement())
	}

	ev := f.doc.DispatchKey(tab)
	if f.doc.ActiveElement() != first {
		t.Errorf("Tab from last: active = %v, want first", f.doc.ActiveElement())
	}
	if !ev.DefaultPrevented() {
		t.Error("wrapping Tab should prevent the default")
	}

	f.doc.DispatchKey(shiftTab)
	if f.doc.ActiveElement() != last {
		t.Errorf("Shift+Tab from first: active = %v, want last", f.doc.ActiveElement())
	}

	ev = f.doc.DispatchKey(shiftTab)
	if f.doc.ActiveElement() != f.controls[1] {
		t.Errorf("Shift+Tab from last: active = %v, want middle", f.doc.ActiveElement())
	}
	if ev.DefaultPrevented() {
		t.Error("inner Shift+Tab should be left to native traversal")
	}
}

func TestTabFromOutsideBoundary(t *testing.T) {
	f := newFixture(t, "d", 2)
	tr := f.mount(nil)
	defer tr.Unmount()

	f.doc.Focus(f.trigger)
	f.doc.DispatchKey(shiftTab)
	if f.doc.ActiveElement() != f.controls[1] {
		t.Errorf("Shift+Tab from outside: active = %v, want last", f.doc.ActiveElement())
	}

	f.doc.Focus(f.trigger)
	f.doc.DispatchKey(tab)
	if f.doc.ActiveElement() != f.controls[0] {
		t.Errorf("Tab from outside: active = %v, want first", f.doc.ActiveElement())
	}
}

func TestTabNeverLeavesBoundary(t *testing.T) {
	f := newFixture(t, "d", 3)
	tr := f.mount(nil)
	defer tr.Unmount()

	for i := range 20 {
		if i%3 == 0 {
			f.doc.DispatchKey(shiftTab)
		} else {
			f.doc.DispatchKey(tab)
		}
		if !f.dialog.Contains(f.doc.ActiveElement()) {
			t.Fatalf("step %d: focus escaped to %v", i, f.doc.ActiveElement())
		}
	}
}

func TestTabWithNoFocusables(t *testing.T) {
	f := newFixture(t, "d", 0)
	tr := f.mount(nil)
	defer tr.Unmount()

	before := f.doc.ActiveElement()
	ev := f.doc.DispatchKey(tab)
	if f.doc.ActiveElement() != before {
		t.Errorf("Tab with no focusables moved focus to %v", f.doc.ActiveElement())
	}
	if !ev.DefaultPrevented() {
		t.Error("expected Tab to be swallowed")
	}
}

func TestFocusablesRecomputedOnTab(t *testing.T) {
	f := newFixture(t, "d", 1)
	tr := f.mount(nil)
	defer tr.Unmount()

	late := host.NewElement(host.KindButton, "late")
	f.dialog.Append(late)

	f.doc.Focus(f.controls[0])
	f.doc.DispatchKey(tab)
	if f.doc.ActiveElement() != late {
		t.Errorf("Tab should reach an element added after mount, active = %v", f.doc.ActiveElement())
	}
}

func TestEscapeRequestsCloseOnce(t *testing.T) {
	f := newFixture(t, "d", 1)
	var closes, later int
	tr := f.mount(func() { closes++ })
	defer tr.Unmount()
	f.doc.AddEventListener(host.EventKeyDown, func(*host.Event) { later++ })

	ev := f.doc.DispatchKey(esc)
	if closes != 1 {
		t.Errorf("closes = %d, want 1", closes)
	}
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("Escape should be prevented and stopped")
	}
	if later != 0 {
		t.Errorf("Escape reached a later listener %d times", later)
	}
}

func TestBackdropActivation(t *testing.T) {
	f := newFixture(t, "d", 2)
	var closes int
	tr := f.mount(func() { closes++ })
	defer tr.Unmount()

	f.doc.Click(f.controls[0])
	f.doc.Click(f.title)
	f.doc.Click(f.dialog)
	if closes != 0 {
		t.Fatalf("clicks inside the dialog closed it %d times", closes)
	}

	f.doc.Click(f.backdrop)
	if closes != 1 {
		t.Fatalf("backdrop click: closes = %d, want 1", closes)
	}

	f.doc.Focus(f.backdrop)
	f.doc.DispatchKey(enter)
	if closes != 2 {
		t.Errorf("Enter on backdrop: closes = %d, want 2", closes)
	}
}

func TestBackdropIgnoresBubbledClicks(t *testing.T) {
	f := newFixture(t, "d", 1)
	child := host.NewElement(host.KindButton, "on-backdrop")
	f.backdrop.Append(child)

	var closes int
	tr := f.mount(func() { closes++ })
	defer tr.Unmount()

	f.doc.Click(child)
	if closes != 0 {
		t.Errorf("click bubbling through the backdrop closed the dialog")
	}
}

func TestUnmountDetachesEverything(t *testing.T) {
	f := newFixture(t, "d", 2)
	var closes int
	tr := f.mount(func() { closes++ })

	tr.Unmount()
	tr.Unmount()

	if tr.Mounted() {
		t.Error("Mounted() should be false after Unmount")
	}
	f.doc.DispatchKey(esc)
	f.doc.Click(f.backdrop)
	if closes != 0 {
		t.Errorf("listeners survived unmount: closes = %d", closes)
	}
	if f.doc.ScrollSuppressed() || LockCount(f.doc) != 0 {
		t.Error("scroll lock survived unmount")
	}

	f.doc.Focus(f.controls[1])
	f.doc.DispatchKey(tab)
	if f.doc.ActiveElement() != f.trigger {
		t.Errorf("native Tab after unmount should wrap to the page, active = %v", f.doc.ActiveElement())
	}
}

func TestScrollLockComposes(t *testing.T) {
	f := newFixture(t, "a", 1)
	f.doc.SetScrollSuppressed(false)

	a := f.mount(nil)
	f.addLayer("b", 1)
	b := f.mount(nil)

	if !f.doc.ScrollSuppressed() || LockCount(f.doc) != 2 {
		t.Fatalf("two traps: suppressed=%v count=%d", f.doc.ScrollSuppressed(), LockCount(f.doc))
	}

	b.Unmount()
	if !f.doc.ScrollSuppressed() {
		t.Error("scroll unlocked while a trap is still mounted")
	}

	a.Unmount()
	if f.doc.ScrollSuppressed() {
		t.Error("scroll still locked after the last trap unmounted")
	}
}

func TestScrollLockRestoresPriorState(t *testing.T) {
	f := newFixture(t, "d", 1)
	f.doc.SetScrollSuppressed(true)

	tr := f.mount(nil)
	tr.Unmount()

	if !f.doc.ScrollSuppressed() {
		t.Error("prior suppressed state should be restored")
	}
}

func TestPanickingCloseIsRecovered(t *testing.T) {
	f := newFixture(t, "d", 1)
	tr := f.mount(func() { panic("boom") })
	defer tr.Unmount()

	f.doc.DispatchKey(esc)
	if !tr.Mounted() {
		t.Error("trap should stay mounted after a panicking close callback")
	}
}

func TestMountWithoutBoundaryIsInert(t *testing.T) {
	doc := host.NewDocument()
	tr := Mount(doc, Options{})
	if tr.Mounted() {
		t.Error("trap without a boundary should not mount")
	}
	if doc.ScrollSuppressed() {
		t.Error("inert trap locked scroll")
	}
	tr.Unmount()

	if Mount(nil, Options{Boundary: host.NewElement(host.KindGeneric, "x")}).Mounted() {
		t.Error("trap without a document should not mount")
	}
}

func TestMountFromClickListener(t *testing.T) {
	doc := host.NewDocument()
	f := &fixture{doc: doc}
	f.trigger = host.NewElement(host.KindButton, "open")
	doc.Body().Append(f.trigger)

	var tr *Trap
	f.trigger.AddEventListener(host.EventClick, func(*host.Event) {
		f.addLayer("dlg", 2)
		tr = f.mount(nil)
	})
	t.Cleanup(func() {
		if tr != nil {
			tr.Unmount()
		}
	})

	doc.Click(f.trigger)

	if tr == nil {
		t.Fatal("click listener did not run")
	}
	if doc.ActiveElement() != f.title {
		t.Fatalf("focus = %v, want %s", doc.ActiveElement(), f.title.ID)
	}
	for range 3 {
		doc.DispatchKey(tab)
		if !f.dialog.Contains(doc.ActiveElement()) {
			t.Fatalf("focus %v left the boundary", doc.ActiveElement())
		}
	}
}
