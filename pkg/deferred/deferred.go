// Package deferred opens a dialog and hands back a single-shot result that
// settles when the dialog submits, cancels or is closed by any other path.
package deferred

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/modals/pkg/stack"
)

// Result is the outcome of one deferred dialog. Data is nil when the dialog
// was cancelled.
type Result[T any] struct {
	Data      *T
	Cancelled bool
}

// ResultMsg delivers a settled Result into a Bubble Tea update loop.
type ResultMsg[T any] struct {
	ID     string
	Result Result[T]
}

// Callbacks are handed to the dialog content. Either may be called any
// number of times; only the first call across both settles.
type Callbacks[T any] struct {
	Submit func(T)
	Cancel func()
}

// Pending is an unsettled or settled deferred dialog. Once settled, every
// reader sees the same Result.
type Pending[T any] struct {
	id string
	s  *slot[T]
}

// ID returns the stack entry id of the dialog.
func (p *Pending[T]) ID() string { return p.id }

// Done returns a channel that is closed once the dialog settles.
func (p *Pending[T]) Done() <-chan struct{} { return p.s.done }

// Result returns the settled result. ok is false while the dialog is still
// pending.
func (p *Pending[T]) Result() (r Result[T], ok bool) {
	select {
	case <-p.s.done:
		return p.s.res, true
	default:
		return Result[T]{}, false
	}
}

// Wait blocks until the dialog settles or ctx is done. A cancelled context
// stops the wait only; the dialog stays open and will still settle.
func (p *Pending[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-p.s.done:
		return p.s.res, nil
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}

// Cmd waits for the result in a Bubble Tea command.
func (p *Pending[T]) Cmd() tea.Cmd {
	return func() tea.Msg {
		<-p.s.done
		return ResultMsg[T]{ID: p.id, Result: p.s.res}
	}
}

// Adapter opens deferred dialogs of one result type over a controller.
type Adapter[T any] struct {
	ctl *stack.Controller

	mu sync.Mutex
	// pending is keyed by slot rather than entry id: the slot exists before
	// the push assigns an id, so content settling during render resolves too.
	pending map[*slot[T]]struct{}
}

// slot is the resolver for one Open call. It is registered before the entry
// is pushed, so content that settles while rendering still resolves.
type slot[T any] struct {
	done chan struct{}
	res  Result[T]

	mu          sync.Mutex
	id          string
	closeWanted bool
}

// NewAdapter returns an adapter over ctl. A nil ctl uses the process-wide
// store.
func NewAdapter[T any](ctl *stack.Controller) *Adapter[T] {
	if ctl == nil {
		ctl = stack.NewController(nil)
	}
	return &Adapter[T]{ctl: ctl, pending: make(map[*slot[T]]struct{})}
}

// Controller returns the wrapped controller.
func (a *Adapter[T]) Controller() *stack.Controller { return a.ctl }

// Open pushes comp with the props produced by bind and returns the pending
// result. bind receives the callbacks the content must wire up.
func Open[T, P any](a *Adapter[T], comp stack.Component[P], bind func(Callbacks[T]) P, opts ...stack.OpenOption) *Pending[T] {
	s := &slot[T]{done: make(chan struct{})}
	a.mu.Lock()
	a.pending[s] = struct{}{}
	a.mu.Unlock()

	finish := func(r Result[T]) {
		if !a.settle(s, r) {
			return
		}
		s.mu.Lock()
		id := s.id
		if id == "" {
			s.closeWanted = true
		}
		s.mu.Unlock()
		if id != "" {
			a.ctl.Close(id)
		}
	}
	cb := Callbacks[T]{
		Submit: func(v T) { finish(Result[T]{Data: &v}) },
		Cancel: func() { finish(Result[T]{Cancelled: true}) },
	}

	// Removal by any other path (Escape, backdrop, CloseAll) settles as
	// cancelled. After Submit or Cancel this finds nothing to settle.
	opts = append(opts, chainOnClose(opts, func() {
		a.settle(s, Result[T]{Cancelled: true})
	}))

	id := stack.Open(a.ctl, comp, bind(cb), opts...)

	s.mu.Lock()
	s.id = id
	wanted := s.closeWanted
	s.mu.Unlock()
	if wanted {
		a.ctl.Close(id)
	}
	return &Pending[T]{id: id, s: s}
}

// Pending reports how many dialogs are still unsettled.
func (a *Adapter[T]) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// settle stores r on s if it is still pending. The resolver is removed
// before the result is published, so a second settle finds nothing.
func (a *Adapter[T]) settle(s *slot[T], r Result[T]) bool {
	a.mu.Lock()
	_, ok := a.pending[s]
	delete(a.pending, s)
	a.mu.Unlock()
	if !ok {
		return false
	}
	s.res = r
	close(s.done)
	return true
}

// chainOnClose returns an option that runs any OnClose already set by opts,
// then fn.
func chainOnClose(opts []stack.OpenOption, fn func()) stack.OpenOption {
	var base stack.Entry
	for _, opt := range opts {
		opt(&base)
	}
	prev := base.OnClose
	return stack.WithOnClose(func() {
		if prev != nil {
			prev()
		}
		fn()
	})
}
