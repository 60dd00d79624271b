package modal

import (
	"strconv"

	"github.com/marcus/modals/pkg/host"
	"github.com/marcus/modals/pkg/stack"
)

const defaultWidth = 50

// Props are passed to a Modal when it is opened.
type Props struct {
	// OnAction receives the action id of an activated button or list item.
	OnAction func(action string)
}

// Modal describes a dialog's content. It is safe to open the same Modal more
// than once; each open builds fresh elements.
type Modal struct {
	title         string
	description   string
	width         int
	variant       Variant
	primaryAction string
	sections      []Section
}

// Option is a functional option for New.
type Option func(*Modal)

// WithWidth sets the dialog width in columns.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the accent color.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithDescription adds a description below the title. The dialog is
// described by it.
func WithDescription(s string) Option {
	return func(m *Modal) { m.description = s }
}

// WithPrimaryAction sets the action fired by Enter while the title has
// focus.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// New creates a dialog with the given title.
func New(title string, opts ...Option) *Modal {
	m := &Modal{title: title, width: defaultWidth}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section and returns m for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	if s != nil {
		m.sections = append(m.sections, s)
	}
	return m
}

// Title returns the dialog title.
func (m *Modal) Title() string { return m.title }

// Render implements stack.Component.
func (m *Modal) Render(boundary *host.Element, props Props) {
	boundary.SetAttr("data-width", strconv.Itoa(m.width))
	if m.variant != VariantDefault {
		boundary.SetAttr("data-variant", m.variant.String())
	}

	title := host.NewElement(host.KindHeading, stack.TitleID(boundary.ID)).SetTabIndex(-1)
	title.Text = m.title
	boundary.Append(title)

	if m.description != "" {
		desc := host.NewElement(host.KindText, stack.DescriptionID(boundary.ID))
		desc.Text = m.description
		desc.SetAttr("data-tone", "muted")
		boundary.Append(desc)
	}
	boundary.Append(spacer())

	c := &Context{
		Boundary: boundary,
		// Horizontal padding takes four columns.
		Width: max(m.width-4, 8),
	}
	c.emit = func(action string) {
		if props.OnAction != nil && action != "" {
			props.OnAction(action)
		}
		c.refresh()
	}
	for _, s := range m.sections {
		s.Mount(c, boundary)
	}

	if m.primaryAction != "" {
		title.AddEventListener(host.EventKeyDown, func(ev *host.Event) {
			if ev.Key == host.KeyEnter && ev.Target == title {
				ev.PreventDefault()
				c.Emit(m.primaryAction)
			}
		})
	}
}

// Context is handed to sections while a dialog is being built.
type Context struct {
	Boundary *host.Element
	// Width is the content width in columns.
	Width int

	emit     func(string)
	watchers []func()
}

// ID derives a stable element id inside the dialog.
func (c *Context) ID(suffix string) string {
	return c.Boundary.ID + "-" + suffix
}

// Emit reports an action to the dialog's owner.
func (c *Context) Emit(action string) {
	if c.emit != nil {
		c.emit(action)
	}
}

// Watch registers fn to run after every emitted action.
func (c *Context) Watch(fn func()) {
	c.watchers = append(c.watchers, fn)
}

func (c *Context) refresh() {
	for _, fn := range c.watchers {
		fn()
	}
}
