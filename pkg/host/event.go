package host

import tea "github.com/charmbracelet/bubbletea"

// EventType names an event dispatched through the element tree.
type EventType string

const (
	EventKeyDown EventType = "keydown"
	EventClick   EventType = "click"
	EventSubmit  EventType = "submit"
	EventInput   EventType = "input"
)

// Key names carried by keydown events. Keys without a name here use
// tea.KeyMsg.String().
const (
	KeyTab    = "tab"
	KeyEscape = "esc"
	KeyEnter  = "enter"
	KeySpace  = "space"
)

// Event is a single dispatch through the tree. It travels from Target up
// through its ancestors to the document listeners, then runs the default
// action unless PreventDefault was called.
type Event struct {
	Type  EventType
	Key   string
	Shift bool
	Msg   tea.Msg // original Bubble Tea message, if any
	// Detail is the click count for click events.
	Detail int

	Target        *Element
	CurrentTarget *Element // nil while document listeners run

	defaultPrevented bool
	stopped          bool
}

// Listener handles a dispatched event.
type Listener func(*Event)

type listener struct {
	typ     EventType
	fn      Listener
	removed bool
}

// PreventDefault suppresses the event's default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops delivery to listeners further up the path.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// NewKeyEvent translates a Bubble Tea key message into a keydown event.
func NewKeyEvent(msg tea.KeyMsg) *Event {
	ev := &Event{Type: EventKeyDown, Msg: msg}
	switch msg.Type {
	case tea.KeyTab:
		ev.Key = KeyTab
	case tea.KeyShiftTab:
		ev.Key = KeyTab
		ev.Shift = true
	case tea.KeyEsc:
		ev.Key = KeyEscape
	case tea.KeyEnter:
		ev.Key = KeyEnter
	case tea.KeySpace:
		ev.Key = KeySpace
	default:
		ev.Key = msg.String()
	}
	return ev
}

// addListener appends fn to list and returns a func that detaches it.
// Detaching is idempotent and safe during dispatch.
func addListener(list *[]*listener, typ EventType, fn Listener) func() {
	l := &listener{typ: typ, fn: fn}
	*list = append(*list, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		for i, cur := range *list {
			if cur == l {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}
