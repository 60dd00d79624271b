package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/modals/pkg/host"
	"github.com/marcus/modals/pkg/modal"
)

// Placed is an element's painted rectangle, relative to the block origin.
type Placed struct {
	El         *host.Element
	X, Y, W, H int
}

// Block is painted output plus the rectangles of the interactive elements
// inside it. Regions are measured from the rendered strings, so they always
// match what is on screen.
type Block struct {
	Lines   []string
	Regions []Placed
}

// Width returns the widest line.
func (b Block) Width() int {
	w := 0
	for _, l := range b.Lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

// Height returns the number of lines.
func (b Block) Height() int { return len(b.Lines) }

// String joins the lines.
func (b Block) String() string { return strings.Join(b.Lines, "\n") }

// PaintState carries the interaction state that changes styling.
type PaintState struct {
	Active *host.Element
	Hover  string
}

// Paint renders el and its descendants into at most width columns.
func Paint(el *host.Element, width int, st PaintState) Block {
	var b Block
	paintInto(&b, el, max(width, 1), st)
	for i, l := range b.Lines {
		if ansi.StringWidth(l) > width {
			b.Lines[i] = ansi.Truncate(l, width, "")
		}
	}
	return b
}

func paintInto(b *Block, el *host.Element, width int, st PaintState) {
	if el == nil || el.Collapsed || el.HasAttr("hidden") {
		return
	}
	switch el.Kind {
	case host.KindHeading:
		b.appendText(modal.ModalTitle.Width(width).Render(el.Text))
	case host.KindText:
		paintText(b, el, width)
	case host.KindLabel:
		b.appendText(modal.MutedText.Width(width).Render(el.Text))
	case host.KindLink:
		b.appendInteractive(el, modal.LinkText.Render(el.Text))
	case host.KindButton, host.KindSelect:
		b.appendInteractive(el, buttonStyle(el, st).Render(el.Text))
	case host.KindInput:
		if el.Type == "checkbox" {
			mark := "[ ] "
			if el.HasAttr("checked") {
				mark = "[x] "
			}
			style := modal.Body
			if st.Active == el {
				style = modal.ListItemFocused
			}
			b.appendInteractive(el, style.Render(mark+el.Text))
			return
		}
		el.SetEditorSize(max(width-2, 1), 1)
		b.appendInteractive(el, fieldStyle(el, st).Width(max(width-2, 1)).Render(el.EditorView()))
	case host.KindTextarea:
		el.SetEditorSize(max(width-2, 1), 4)
		b.appendInteractive(el, fieldStyle(el, st).Width(max(width-2, 1)).Render(el.EditorView()))
	case host.KindList:
		paintList(b, el, width, st)
	default:
		if el.Attr("data-layout") == "row" {
			paintRow(b, el, width, st)
			return
		}
		for _, c := range el.Children() {
			paintInto(b, c, width, st)
		}
	}
}

func paintText(b *Block, el *host.Element, width int) {
	switch {
	case el.HasAttr("data-spacer"):
		b.Lines = append(b.Lines, "")
	case el.Text == "":
	case el.HasAttr("data-raw"):
		b.appendText(strings.TrimRight(el.Text, "\n"))
	case el.Attr("role") == "alert":
		b.appendText(modal.AlertText.Width(width).Render(el.Text))
	case el.Attr("data-tone") == "muted":
		b.appendText(modal.MutedText.Width(width).Render(el.Text))
	default:
		b.appendText(modal.Body.Width(width).Render(el.Text))
	}
}

// paintRow lays children out side by side, one column apart.
func paintRow(b *Block, el *host.Element, width int, st PaintState) {
	var cells []Block
	for _, c := range el.Children() {
		var cb Block
		paintInto(&cb, c, width, st)
		if len(cb.Lines) > 0 {
			cells = append(cells, cb)
		}
	}
	if len(cells) == 0 {
		return
	}
	y := len(b.Lines)
	x := 0
	parts := make([]string, 0, len(cells)*2)
	for i, cb := range cells {
		if i > 0 {
			parts = append(parts, " ")
			x++
		}
		for _, r := range cb.Regions {
			r.X += x
			r.Y += y
			b.Regions = append(b.Regions, r)
		}
		parts = append(parts, cb.String())
		x += cb.Width()
	}
	b.appendText(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func paintList(b *Block, el *host.Element, width int, st PaintState) {
	focused := st.Active == el
	for _, opt := range el.Children() {
		if opt.Collapsed || opt.HasAttr("hidden") {
			continue
		}
		if opt.Kind != host.KindOption {
			paintInto(b, opt, width, st)
			continue
		}
		selected := opt.Attr("aria-selected") == "true"
		style := modal.ListItemNormal
		switch {
		case selected && focused:
			style = modal.ListItemFocused
		case selected, opt.ID != "" && opt.ID == st.Hover:
			style = modal.ListItemSelected
		}
		cursor := "  "
		if selected {
			cursor = modal.ListCursor.Render("> ")
		}
		b.appendInteractive(opt, cursor+style.Render(opt.Text))
	}
}

func buttonStyle(el *host.Element, st PaintState) lipgloss.Style {
	danger := el.Attr("data-variant") == "danger"
	switch {
	case el.Disabled:
		return modal.ButtonDisabled
	case st.Active == el && danger:
		return modal.ButtonDangerFocused
	case st.Active == el:
		return modal.ButtonFocused
	case st.Hover != "" && st.Hover == el.ID && danger:
		return modal.ButtonDangerHover
	case st.Hover != "" && st.Hover == el.ID:
		return modal.ButtonHover
	case danger:
		return modal.ButtonDanger
	default:
		return modal.Button
	}
}

func fieldStyle(el *host.Element, st PaintState) lipgloss.Style {
	switch {
	case el.Attr("aria-invalid") == "true":
		return modal.FieldInvalid
	case st.Active == el:
		return modal.FieldFocused
	default:
		return modal.Field
	}
}

func (b *Block) appendText(s string) {
	b.Lines = append(b.Lines, strings.Split(s, "\n")...)
}

// appendInteractive adds s and records its rectangle for el.
func (b *Block) appendInteractive(el *host.Element, s string) {
	lines := strings.Split(s, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	b.Regions = append(b.Regions, Placed{El: el, X: 0, Y: len(b.Lines), W: w, H: len(lines)})
	b.Lines = append(b.Lines, lines...)
}
