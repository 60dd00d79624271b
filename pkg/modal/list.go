package modal

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/marcus/modals/pkg/host"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID    string // Unique identifier, emitted as the action
	Label string // Display text
	Data  any    // Optional associated data
}

// ListOption is a functional option for List sections.
type ListOption func(*listSection)

// listSection renders a scrollable list of items.
type listSection struct {
	id          string
	items       []ListItem
	selectedIdx *int // index into items, written back on every move
	maxVisible  int
	filter      bool
}

// List creates a list section with selectable items. Up/Down (or k/j),
// Home and End move the selection; Enter or a double click emits the
// selected item's ID. selectedIdx may be nil.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithFilter adds a text input above the list that fuzzy-filters labels.
func WithFilter() ListOption {
	return func(s *listSection) { s.filter = true }
}

// listState is the per-mount state of a list. A Modal may be opened many
// times, so nothing mutable lives on listSection itself.
type listState struct {
	*listSection
	c            *Context
	el           *host.Element
	view         []int // indexes into items, in display order
	sel          int   // index into view
	scrollOffset int
}

func (s *listSection) Mount(c *Context, parent *host.Element) {
	st := &listState{listSection: s, c: c}
	st.resetView("")
	if s.selectedIdx != nil {
		for i, idx := range st.view {
			if idx == *s.selectedIdx {
				st.sel = i
			}
		}
	}

	st.el = host.NewElement(host.KindList, c.ID(s.id)).
		SetAttr("role", "listbox").
		SetTabIndex(0)

	if s.filter {
		input := host.NewElement(host.KindInput, c.ID(s.id+"-filter"))
		input.SetAttr("placeholder", "Filter").SetAttr("aria-controls", st.el.ID)
		input.AddEventListener(host.EventInput, func(*host.Event) {
			st.resetView(input.Value())
			st.sel = 0
			st.scrollOffset = 0
			st.rebuild()
		})
		input.AddEventListener(host.EventKeyDown, func(ev *host.Event) {
			if ev.Key == "down" && len(st.view) > 0 {
				ev.PreventDefault()
				if doc := input.Document(); doc != nil {
					doc.Focus(st.el)
				}
			}
		})
		parent.Append(input)
	}

	st.el.AddEventListener(host.EventKeyDown, st.onKey)
	st.el.AddEventListener(host.EventClick, st.onClick)
	parent.Append(st.el)
	st.rebuild()
}

// resetView filters items by pattern. An empty pattern keeps every item in
// its original order.
func (st *listState) resetView(pattern string) {
	st.view = st.view[:0]
	if pattern == "" {
		for i := range st.items {
			st.view = append(st.view, i)
		}
		return
	}
	labels := make([]string, len(st.items))
	for i, it := range st.items {
		labels[i] = it.Label
	}
	matches := fuzzy.Find(pattern, labels)
	sort.Sort(matches)
	for _, m := range matches {
		st.view = append(st.view, m.Index)
	}
}

func (st *listState) onKey(ev *host.Event) {
	if ev.Target != st.el || len(st.view) == 0 {
		return
	}
	switch ev.Key {
	case "up", "k":
		if st.sel > 0 {
			st.sel--
		}
	case "down", "j":
		if st.sel < len(st.view)-1 {
			st.sel++
		}
	case "home":
		st.sel = 0
	case "end":
		st.sel = len(st.view) - 1
	case host.KeyEnter, host.KeySpace:
		ev.PreventDefault()
		st.c.Emit(st.items[st.view[st.sel]].ID)
		return
	default:
		return
	}
	ev.PreventDefault()
	st.rebuild()
}

func (st *listState) onClick(ev *host.Event) {
	opt := ev.Target
	if opt == nil || opt.Kind != host.KindOption {
		return
	}
	pos := st.scrollOffset + indexOf(st.el.Children(), opt) - st.indicatorRows()
	if pos < st.scrollOffset || pos >= len(st.view) {
		return
	}
	if doc := st.el.Document(); doc != nil {
		doc.Focus(st.el)
	}
	if pos != st.sel {
		st.sel = pos
		st.rebuild()
	}
	if ev.Detail >= 2 {
		st.c.Emit(st.items[st.view[st.sel]].ID)
	}
}

// indicatorRows is 1 when a "more above" row precedes the options.
func (st *listState) indicatorRows() int {
	if st.scrollOffset > 0 {
		return 1
	}
	return 0
}

// rebuild replaces the option elements to show the window around the
// selection.
func (st *listState) rebuild() {
	st.el.Clear()
	if len(st.view) == 0 {
		empty := host.NewElement(host.KindText, "")
		empty.Text = "(no items)"
		empty.SetAttr("data-tone", "muted")
		st.el.Append(empty)
		return
	}

	st.sel = clamp(st.sel, 0, len(st.view)-1)
	if st.selectedIdx != nil {
		*st.selectedIdx = st.view[st.sel]
	}

	visibleCount := min(st.maxVisible, len(st.view))
	if st.sel < st.scrollOffset {
		st.scrollOffset = st.sel
	} else if st.sel >= st.scrollOffset+visibleCount {
		st.scrollOffset = st.sel - visibleCount + 1
	}
	st.scrollOffset = clamp(st.scrollOffset, 0, max(0, len(st.view)-visibleCount))

	if st.scrollOffset > 0 {
		st.el.Append(indicator("↑ more above"))
	}
	for i := 0; i < visibleCount; i++ {
		pos := st.scrollOffset + i
		item := st.items[st.view[pos]]
		opt := host.NewElement(host.KindOption, st.c.ID(st.id+"-"+item.ID))
		opt.Text = item.Label
		opt.SetAttr("role", "option")
		if pos == st.sel {
			opt.SetAttr("aria-selected", "true")
			st.el.SetAttr("aria-activedescendant", opt.ID)
		}
		st.el.Append(opt)
	}
	if st.scrollOffset+visibleCount < len(st.view) {
		st.el.Append(indicator("↓ more below"))
	}
}

func indicator(s string) *host.Element {
	el := host.NewElement(host.KindText, "")
	el.Text = s
	el.SetAttr("data-tone", "muted")
	return el
}

func indexOf(list []*host.Element, el *host.Element) int {
	for i, e := range list {
		if e == el {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
