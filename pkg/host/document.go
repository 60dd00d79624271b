package host

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Document owns the element tree, the focused element, document-level
// listeners and the scroll-suppression flag. It is not safe for concurrent
// use; drive it from the Bubble Tea update loop.
type Document struct {
	body      *Element
	active    *Element
	listeners []*listener

	scrollSuppressed bool
	log              *slog.Logger
}

// NewDocument returns an empty document with a body element.
func NewDocument() *Document {
	body := NewElement(KindGeneric, "body")
	d := &Document{body: body, log: slog.Default()}
	body.doc = d
	return d
}

// SetLogger replaces the logger used for recovered listener panics.
func (d *Document) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

// Body returns the root element.
func (d *Document) Body() *Element { return d.body }

// ActiveElement returns the focused element, or nil when focus rests on the
// body.
func (d *Document) ActiveElement() *Element { return d.active }

// Focus moves focus to el. Elements that are detached, not rendered, or
// neither focusable nor carrying an explicit tab index are refused.
func (d *Document) Focus(el *Element) bool {
	if el == nil {
		d.Blur()
		return true
	}
	if el.Document() != d || !isRendered(el) {
		return false
	}
	if _, ok := el.TabIndex(); !ok && !IsFocusable(el) {
		return false
	}
	if d.active == el {
		return true
	}
	if d.active != nil && d.active.editor != nil {
		d.active.editor.Blur()
	}
	d.active = el
	if el.editor != nil {
		el.editor.Focus()
	}
	return true
}

// Blur returns focus to the body.
func (d *Document) Blur() {
	if d.active != nil && d.active.editor != nil {
		d.active.editor.Blur()
	}
	d.active = nil
}

// GetElementByID finds a connected element by id.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.body.Find(func(n *Element) bool { return n.ID == id })
}

// AddEventListener registers a document-level listener. Document listeners
// run after the event has bubbled through the target's ancestors. The
// returned func detaches the listener.
func (d *Document) AddEventListener(t EventType, fn Listener) func() {
	return addListener(&d.listeners, t, fn)
}

// ScrollSuppressed reports the global scroll-suppression flag.
func (d *Document) ScrollSuppressed() bool { return d.scrollSuppressed }

// SetScrollSuppressed sets the global scroll-suppression flag.
func (d *Document) SetScrollSuppressed(v bool) { d.scrollSuppressed = v }

// Dispatch delivers ev from its target up to the document, then runs the
// default action unless it was prevented. A nil target means the focused
// element, or the body.
func (d *Document) Dispatch(ev *Event) {
	if ev.Target == nil {
		ev.Target = d.active
		if ev.Target == nil {
			ev.Target = d.body
		}
	}
	for n := ev.Target; n != nil && !ev.stopped; n = n.parent {
		ev.CurrentTarget = n
		d.fire(n.listeners, ev)
	}
	if !ev.stopped {
		ev.CurrentTarget = nil
		d.fire(d.listeners, ev)
	}
	if !ev.defaultPrevented {
		d.defaultAction(ev)
	}
}

// DispatchKey dispatches a keydown for msg at the focused element.
func (d *Document) DispatchKey(msg tea.KeyMsg) *Event {
	ev := NewKeyEvent(msg)
	d.Dispatch(ev)
	return ev
}

// Click dispatches a click at el. Disabled elements ignore clicks. A
// focusable el takes focus before listeners run, so a listener that moves
// focus (opening a dialog, say) has the last word.
func (d *Document) Click(el *Element) *Event {
	return d.click(el, 1)
}

// DoubleClick dispatches a click with a count of two. Listeners that only
// care about activation treat it like Click.
func (d *Document) DoubleClick(el *Element) *Event {
	return d.click(el, 2)
}

func (d *Document) click(el *Element, count int) *Event {
	if el == nil || el.Disabled {
		return nil
	}
	if IsFocusable(el) {
		d.Focus(el)
	}
	ev := &Event{Type: EventClick, Target: el, Detail: count}
	d.Dispatch(ev)
	return ev
}

// Submit dispatches a submit event at form.
func (d *Document) Submit(form *Element) *Event {
	if form == nil {
		return nil
	}
	ev := &Event{Type: EventSubmit, Target: form}
	d.Dispatch(ev)
	return ev
}

func (d *Document) fire(list []*listener, ev *Event) {
	snapshot := make([]*listener, len(list))
	copy(snapshot, list)
	for _, l := range snapshot {
		if l.removed || l.typ != ev.Type {
			continue
		}
		d.call(l.fn, ev)
		// Stopping at document level also skips the remaining document
		// listeners.
		if ev.stopped && ev.CurrentTarget == nil {
			return
		}
	}
}

// call runs a listener, recovering a panic so one faulty handler cannot
// break dispatch.
func (d *Document) call(fn Listener, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("event listener panicked", "event", ev.Type, "key", ev.Key, "panic", r)
		}
	}()
	fn(ev)
}

func (d *Document) defaultAction(ev *Event) {
	switch ev.Type {
	case EventKeyDown:
		d.keyDefault(ev)
	case EventClick:
		t := ev.Target
		if t.Kind == KindButton && t.Type == "submit" {
			d.Submit(t.Closest(KindForm))
		}
		if t.Kind == KindInput && t.Type == "checkbox" {
			toggleChecked(t)
		}
	}
}

func (d *Document) keyDefault(ev *Event) {
	t := ev.Target
	switch ev.Key {
	case KeyTab:
		d.moveFocus(ev.Shift)
		return
	case KeyEscape:
		return
	case KeyEnter:
		switch {
		case t.Kind == KindButton || t.Kind == KindLink:
			d.Click(t)
			return
		case t.Kind == KindInput:
			d.Submit(t.Closest(KindForm))
			return
		}
	case KeySpace:
		if t.Kind == KindButton || (t.Kind == KindInput && t.Type == "checkbox") {
			d.Click(t)
			return
		}
	}
	if t.editor != nil && !t.Disabled && ev.Msg != nil {
		before := t.editor.Value()
		t.editor.Update(ev.Msg)
		if t.editor.Value() != before {
			d.Dispatch(&Event{Type: EventInput, Target: t})
		}
	}
}

// moveFocus performs sequential navigation over the whole document,
// wrapping at either end.
func (d *Document) moveFocus(backward bool) {
	list := Focusables(d.body)
	if len(list) == 0 {
		return
	}
	idx := -1
	for i, el := range list {
		if el == d.active {
			idx = i
			break
		}
	}
	var next int
	switch {
	case idx < 0 && backward:
		next = len(list) - 1
	case idx < 0:
		next = 0
	case backward:
		next = (idx - 1 + len(list)) % len(list)
	default:
		next = (idx + 1) % len(list)
	}
	d.Focus(list[next])
}

func toggleChecked(el *Element) {
	if el.HasAttr("checked") {
		el.RemoveAttr("checked")
		return
	}
	el.SetAttr("checked", "")
}
