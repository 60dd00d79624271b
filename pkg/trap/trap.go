// Package trap confines keyboard focus to an open dialog.
//
// A Trap is mounted on the topmost dialog only. While mounted it owns one
// document-level keydown listener, the backdrop's activation listeners and a
// share of the per-document scroll lock. Unmount releases all of them.
package trap

import (
	"log/slog"
	"slices"

	"github.com/marcus/modals/pkg/host"
)

// Options describe the dialog a trap guards.
type Options struct {
	// Boundary is the dialog element. Focus cycles within it.
	Boundary *host.Element
	// Backdrop is the layer behind the dialog. Activating it closes.
	Backdrop *host.Element
	// Title receives focus on mount. When nil it is resolved from the
	// boundary's aria-labelledby.
	Title *host.Element
	// OnClose is invoked for Escape and backdrop activation.
	OnClose func()
	Logger  *slog.Logger
}

// Trap is a mounted focus trap.
type Trap struct {
	doc     *host.Document
	opts    Options
	log     *slog.Logger
	release []func()
	mounted bool
}

// Mount attaches the trap to doc and focuses the dialog title. If anything
// panics mid-mount, what was already acquired is released before the panic
// continues.
func Mount(doc *host.Document, opts Options) *Trap {
	t := &Trap{doc: doc, opts: opts, log: opts.Logger}
	if t.log == nil {
		t.log = slog.Default()
	}
	if doc == nil || opts.Boundary == nil {
		t.log.Debug("trap: no document or boundary, not mounting")
		return t
	}

	t.mounted = true
	ok := false
	defer func() {
		if !ok {
			t.Unmount()
		}
	}()

	t.release = append(t.release, doc.AddEventListener(host.EventKeyDown, t.onKeyDown))
	if b := opts.Backdrop; b != nil {
		t.release = append(t.release,
			b.AddEventListener(host.EventClick, t.onBackdrop),
			b.AddEventListener(host.EventKeyDown, t.onBackdropKey),
		)
	}
	t.release = append(t.release, lockScroll(doc))

	t.focusTitle()
	ok = true
	return t
}

// Unmount detaches every listener and releases the scroll lock. Calling it
// more than once is harmless.
func (t *Trap) Unmount() {
	if !t.mounted {
		return
	}
	t.mounted = false
	for i := len(t.release) - 1; i >= 0; i-- {
		t.release[i]()
	}
	t.release = nil
}

// Mounted reports whether the trap is active.
func (t *Trap) Mounted() bool { return t.mounted }

// Boundary returns the guarded dialog element.
func (t *Trap) Boundary() *host.Element { return t.opts.Boundary }

// Focusables returns the focusable elements inside the boundary, computed
// fresh on each call.
func (t *Trap) Focusables() []*host.Element {
	return host.Focusables(t.opts.Boundary)
}

func (t *Trap) focusTitle() {
	title := t.opts.Title
	if title == nil {
		if id := t.opts.Boundary.Attr("aria-labelledby"); id != "" {
			title = t.opts.Boundary.Find(func(n *host.Element) bool { return n.ID == id })
		}
	}
	if title != nil && t.doc.Focus(title) {
		return
	}
	// No usable title: fall back to the first control so focus still
	// starts inside the dialog.
	if list := t.Focusables(); len(list) > 0 {
		t.doc.Focus(list[0])
		return
	}
	t.log.Debug("trap: nothing to focus on mount", "boundary", t.opts.Boundary.ID)
}

func (t *Trap) onKeyDown(ev *host.Event) {
	switch ev.Key {
	case host.KeyEscape:
		ev.PreventDefault()
		ev.StopPropagation()
		t.requestClose()
	case host.KeyTab:
		t.cycle(ev)
	}
}

// cycle wraps Tab at either end of the boundary. Moves between two inner
// elements are left to native traversal.
func (t *Trap) cycle(ev *host.Event) {
	list := t.Focusables()
	if len(list) == 0 {
		// Focus stays where it is.
		ev.PreventDefault()
		return
	}
	idx := slices.Index(list, t.doc.ActiveElement())
	last := len(list) - 1
	switch {
	case ev.Shift && idx <= 0:
		ev.PreventDefault()
		t.doc.Focus(list[last])
	case !ev.Shift && (idx < 0 || idx == last):
		ev.PreventDefault()
		t.doc.Focus(list[0])
	}
}

func (t *Trap) onBackdrop(ev *host.Event) {
	if ev.Target != t.opts.Backdrop {
		return
	}
	t.requestClose()
}

func (t *Trap) onBackdropKey(ev *host.Event) {
	if ev.Target != t.opts.Backdrop {
		return
	}
	if ev.Key == host.KeyEnter || ev.Key == host.KeySpace {
		ev.PreventDefault()
		t.requestClose()
	}
}

func (t *Trap) requestClose() {
	if t.opts.OnClose == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("trap: close callback panicked", "boundary", t.opts.Boundary.ID, "panic", r)
		}
	}()
	t.opts.OnClose()
}
