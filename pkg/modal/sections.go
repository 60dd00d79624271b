package modal

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/marcus/modals/pkg/host"
)

// Section contributes elements to a dialog.
type Section interface {
	Mount(c *Context, parent *host.Element)
}

// SectionFunc adapts a function to Section.
type SectionFunc func(c *Context, parent *host.Element)

// Mount implements Section.
func (f SectionFunc) Mount(c *Context, parent *host.Element) { f(c, parent) }

// Text renders static text, wrapped to the dialog width.
func Text(s string) Section {
	return SectionFunc(func(c *Context, parent *host.Element) {
		el := host.NewElement(host.KindText, "")
		el.Text = s
		parent.Append(el)
	})
}

// Spacer renders a blank line.
func Spacer() Section {
	return SectionFunc(func(c *Context, parent *host.Element) {
		parent.Append(spacer())
	})
}

func spacer() *host.Element {
	return host.NewElement(host.KindText, "").SetAttr("data-spacer", "")
}

// Markdown renders md with glamour at the dialog width. If rendering fails
// the source is shown as plain text.
func Markdown(md string) Section {
	return SectionFunc(func(c *Context, parent *host.Element) {
		el := host.NewElement(host.KindText, "")
		out, err := renderMarkdown(md, c.Width)
		if err != nil {
			el.Text = md
		} else {
			el.Text = strings.Trim(out, "\n")
			el.SetAttr("data-raw", "")
		}
		parent.Append(el)
	})
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// ButtonDef describes one button in a Buttons row.
type ButtonDef struct {
	Label  string
	Action string
	Danger bool
}

// BtnOption is a functional option for Btn.
type BtnOption func(*ButtonDef)

// BtnDanger styles the button as destructive.
func BtnDanger() BtnOption {
	return func(b *ButtonDef) { b.Danger = true }
}

// Btn defines a button that emits action when activated.
func Btn(label, action string, opts ...BtnOption) ButtonDef {
	b := ButtonDef{Label: label, Action: action}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Buttons renders a row of buttons.
func Buttons(btns ...ButtonDef) Section {
	return SectionFunc(func(c *Context, parent *host.Element) {
		row := host.NewElement(host.KindGeneric, "").SetAttr("data-layout", "row")
		for _, b := range btns {
			el := host.NewElement(host.KindButton, c.ID("btn-"+b.Action))
			el.Text = b.Label
			el.Type = "button"
			if b.Danger {
				el.SetAttr("data-variant", "danger")
			}
			action := b.Action
			el.AddEventListener(host.EventClick, func(*host.Event) { c.Emit(action) })
			row.Append(el)
		}
		parent.Append(row)
	})
}

// Checkbox renders a toggle bound to checked.
func Checkbox(id, label string, checked *bool) Section {
	return SectionFunc(func(c *Context, parent *host.Element) {
		el := host.NewElement(host.KindInput, c.ID(id))
		el.Type = "checkbox"
		el.Text = label
		if checked != nil && *checked {
			el.SetAttr("checked", "")
		}
		el.AddEventListener(host.EventClick, func(ev *host.Event) {
			// The default action toggles the attribute after listeners run.
			if checked != nil {
				*checked = !el.HasAttr("checked")
			}
		})
		parent.Append(el)
	})
}

// When mounts s only while condition holds. The condition is checked at
// mount and again after every action the dialog emits.
func When(condition func() bool, s Section) Section {
	return SectionFunc(func(c *Context, parent *host.Element) {
		box := host.NewElement(host.KindGeneric, "")
		s.Mount(c, box)
		box.Collapsed = !condition()
		c.Watch(func() { box.Collapsed = !condition() })
		parent.Append(box)
	})
}
