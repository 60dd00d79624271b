package stack

import "github.com/marcus/modals/pkg/host"

// Component is a typed dialog content. Open erases P so heterogeneous
// components can share one stack.
type Component[P any] interface {
	Render(boundary *host.Element, props P)
}

// OpenOption configures a single Open call.
type OpenOption func(*Entry)

// WithOnClose attaches a callback that fires once when the entry leaves the
// stack, by any path.
func WithOnClose(fn func()) OpenOption {
	return func(e *Entry) { e.OnClose = fn }
}

// Controller is the imperative facade over a Store. It holds no state of
// its own.
type Controller struct {
	store *Store
}

// NewController wraps s. A nil store means Default().
func NewController(s *Store) *Controller {
	if s == nil {
		s = Default()
	}
	return &Controller{store: s}
}

// Store returns the wrapped store.
func (c *Controller) Store() *Store { return c.store }

// Open pushes r with props and returns the new entry id.
func (c *Controller) Open(r Renderable, props any, opts ...OpenOption) string {
	e := Entry{Renderable: r, Props: props}
	for _, opt := range opts {
		opt(&e)
	}
	return c.store.Push(e)
}

// Open pushes a typed component. props reach comp unchanged.
func Open[P any](c *Controller, comp Component[P], props P, opts ...OpenOption) string {
	return c.Open(typed[P]{comp: comp}, props, opts...)
}

// Close closes the entry with id, or the topmost entry when id is empty.
func (c *Controller) Close(id string) {
	if id == "" {
		c.store.Pop()
		return
	}
	c.store.Close(id)
}

// CloseAll closes every entry.
func (c *Controller) CloseAll() { c.store.ClearAll() }

// Current returns the topmost entry.
func (c *Controller) Current() (Entry, bool) { return c.store.Current() }

// IsOpen reports whether any dialog is open.
func (c *Controller) IsOpen() bool { return c.store.IsOpen() }

// typed binds a Component[P] to the erased Renderable interface. The props
// stored next to it were supplied as a P by Open, so the assertion holds.
type typed[P any] struct {
	comp Component[P]
}

func (t typed[P]) Render(boundary *host.Element, props any) {
	p, _ := props.(P)
	t.comp.Render(boundary, p)
}
