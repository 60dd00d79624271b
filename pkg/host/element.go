package host

import "strconv"

// Kind is the interactive category of an element.
type Kind int

const (
	KindGeneric Kind = iota
	KindHeading
	KindText
	KindLabel
	KindLink
	KindButton
	KindInput
	KindTextarea
	KindSelect
	KindForm
	KindList
	KindOption
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindText:
		return "text"
	case KindLabel:
		return "label"
	case KindLink:
		return "link"
	case KindButton:
		return "button"
	case KindInput:
		return "input"
	case KindTextarea:
		return "textarea"
	case KindSelect:
		return "select"
	case KindForm:
		return "form"
	case KindList:
		return "list"
	case KindOption:
		return "option"
	default:
		return "generic"
	}
}

// Element is a node in the host tree.
type Element struct {
	ID       string
	Kind     Kind
	Text     string
	Href     string // links only
	Type     string // input or button type ("submit", "email", ...)
	Disabled bool

	// Collapsed removes the element and its subtree from layout, the
	// equivalent of display:none.
	Collapsed bool

	attrs       map[string]string
	tabIndex    int
	hasTabIndex bool

	parent    *Element
	children  []*Element
	doc       *Document // set on the body only
	listeners []*listener
	editor    editor
}

// NewElement creates a detached element. Inputs and textareas get an editor.
func NewElement(kind Kind, id string) *Element {
	el := &Element{ID: id, Kind: kind}
	switch kind {
	case KindInput:
		el.editor = newLineEditor()
	case KindTextarea:
		el.editor = newAreaEditor()
	}
	return el
}

// SetAttr sets an attribute and returns the element for chaining.
func (e *Element) SetAttr(name, value string) *Element {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	return e
}

// Attr returns the attribute value, or "" when unset.
func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// HasAttr reports whether the attribute is set.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) *Element {
	delete(e.attrs, name)
	return e
}

// Attrs returns a copy of the attribute map.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// SetHidden toggles the hidden attribute.
func (e *Element) SetHidden(hidden bool) *Element {
	if hidden {
		return e.SetAttr("hidden", "")
	}
	return e.RemoveAttr("hidden")
}

// SetTabIndex sets an explicit tab index. -1 allows programmatic focus only.
func (e *Element) SetTabIndex(n int) *Element {
	e.tabIndex = n
	e.hasTabIndex = true
	e.SetAttr("tabindex", strconv.Itoa(n))
	return e
}

// TabIndex returns the explicit tab index, if any.
func (e *Element) TabIndex() (int, bool) {
	return e.tabIndex, e.hasTabIndex
}

// Append adds children at the end, detaching them from any previous parent.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil || c == e {
			continue
		}
		if c.parent != nil {
			c.Remove()
		}
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// Remove detaches the element from its parent. If focus was inside the
// removed subtree, the document loses focus.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	if doc := e.Document(); doc != nil && doc.active != nil && e.Contains(doc.active) {
		doc.Blur()
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Clear removes all children.
func (e *Element) Clear() {
	for _, c := range e.Children() {
		c.Remove()
	}
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Document returns the document the element is connected to, or nil.
func (e *Element) Document() *Document {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root.doc
}

// Connected reports whether the element is attached to a document.
func (e *Element) Connected() bool {
	return e.Document() != nil
}

// Contains reports whether o is e or one of its descendants.
func (e *Element) Contains(o *Element) bool {
	for n := o; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Closest returns the nearest inclusive ancestor of the given kind.
func (e *Element) Closest(kind Kind) *Element {
	for n := e; n != nil; n = n.parent {
		if n.Kind == kind {
			return n
		}
	}
	return nil
}

// Walk visits the subtree in document order. Returning false from fn skips
// that element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		c.Walk(fn)
	}
}

// Find returns the first descendant (or e itself) matching pred.
func (e *Element) Find(pred func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// AddEventListener registers fn for events of type t reaching this element.
// The returned func detaches it.
func (e *Element) AddEventListener(t EventType, fn Listener) func() {
	return addListener(&e.listeners, t, fn)
}

// Value returns the editor contents for inputs and textareas, else Text.
func (e *Element) Value() string {
	if e.editor != nil {
		return e.editor.Value()
	}
	return e.Text
}

// SetValue replaces the editor contents (or Text for other kinds).
func (e *Element) SetValue(v string) {
	if e.editor != nil {
		e.editor.SetValue(v)
		return
	}
	e.Text = v
}

// EditorView renders the editor, or "" for elements without one.
func (e *Element) EditorView() string {
	if e.editor == nil {
		return ""
	}
	return e.editor.View()
}

// SetEditorSize sizes the editor to the given width and height.
func (e *Element) SetEditorSize(width, height int) {
	if e.editor != nil {
		e.editor.SetSize(width, height)
	}
}
