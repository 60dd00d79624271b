package host

// focusableInputTypes lists the input types that take keyboard focus.
// An empty type behaves as "text".
var focusableInputTypes = map[string]bool{
	"":         true,
	"text":     true,
	"email":    true,
	"password": true,
	"radio":    true,
	"checkbox": true,
	"submit":   true,
	"reset":    true,
}

// IsFocusable reports whether el takes part in sequential keyboard
// navigation: it must be interactive and rendered.
func IsFocusable(el *Element) bool {
	return el != nil && isInteractive(el) && isRendered(el)
}

func isInteractive(el *Element) bool {
	switch el.Kind {
	case KindLink:
		if el.Href != "" {
			return true
		}
	case KindButton, KindSelect, KindTextarea:
		if !el.Disabled {
			return true
		}
	case KindInput:
		if !el.Disabled && focusableInputTypes[el.Type] {
			return true
		}
	}
	n, ok := el.TabIndex()
	return ok && n >= 0
}

// isRendered is false when el or an ancestor is collapsed or carries the
// hidden attribute, or when el itself is aria-hidden.
func isRendered(el *Element) bool {
	if el.Attr("aria-hidden") == "true" {
		return false
	}
	for n := el; n != nil; n = n.parent {
		if n.Collapsed || n.HasAttr("hidden") {
			return false
		}
	}
	return true
}

// Focusables returns the focusable descendants of root in document order.
// root itself is not included.
func Focusables(root *Element) []*Element {
	if root == nil {
		return nil
	}
	var out []*Element
	for _, c := range root.Children() {
		c.Walk(func(n *Element) bool {
			if n.Collapsed || n.HasAttr("hidden") {
				return false
			}
			if IsFocusable(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}
