package modal

import (
	"github.com/marcus/modals/pkg/deferred"
	"github.com/marcus/modals/pkg/stack"
)

// CancelAction is the action id that cancels an awaited dialog instead of
// settling it with a choice.
const CancelAction = "cancel"

// Await opens m and settles with the first action it emits. CancelAction,
// Escape, a backdrop click or any other close settles as cancelled.
func Await(a *deferred.Adapter[string], m *Modal, opts ...stack.OpenOption) *deferred.Pending[string] {
	return deferred.Open(a, m, func(cb deferred.Callbacks[string]) Props {
		return Props{OnAction: func(action string) {
			if action == CancelAction {
				cb.Cancel()
				return
			}
			cb.Submit(action)
		}}
	}, opts...)
}

// Confirm opens a two-button confirmation. The result's Data is "confirm"
// when accepted.
func Confirm(a *deferred.Adapter[string], title, message string, opts ...Option) *deferred.Pending[string] {
	m := New(title, append([]Option{WithPrimaryAction("confirm")}, opts...)...).
		AddSection(Text(message)).
		AddSection(Spacer()).
		AddSection(Buttons(
			Btn(" Confirm ", "confirm"),
			Btn(" Cancel ", CancelAction),
		))
	return Await(a, m)
}
