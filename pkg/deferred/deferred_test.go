package deferred

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/marcus/modals/pkg/host"
	"github.com/marcus/modals/pkg/stack"
)

type answer struct {
	Email   string
	Name    string
	Message *string
}

type answerProps struct {
	Title string
	Callbacks[answer]
}

// capture records the props it was rendered with so tests can drive the
// callbacks the way dialog content would.
type capture struct {
	props *answerProps
	onRender func(answerProps)
}

func (c *capture) Render(_ *host.Element, p answerProps) {
	c.props = &p
	if c.onRender != nil {
		c.onRender(p)
	}
}

func setup() (*Adapter[answer], *stack.Store) {
	store := stack.New(nil)
	return NewAdapter[answer](stack.NewController(store)), store
}

// openCaptured opens comp and returns the props handed to it. The store has
// no renderer, so the test plays renderer by calling Render.
func openCaptured(t *testing.T, a *Adapter[answer], store *stack.Store, opts ...stack.OpenOption) (*Pending[answer], answerProps) {
	t.Helper()
	comp := &capture{}
	p := Open(a, comp, func(cb Callbacks[answer]) answerProps {
		return answerProps{Title: "Contact", Callbacks: cb}
	}, opts...)
	cur, ok := store.Current()
	if !ok || cur.ID != p.ID() {
		t.Fatalf("pending id %q not on top of the stack", p.ID())
	}
	cur.Renderable.Render(host.NewElement(host.KindGeneric, cur.ID), cur.Props)
	return p, *comp.props
}

func receive(t *testing.T, p *Pending[answer]) Result[answer] {
	t.Helper()
	select {
	case <-p.Done():
		r, ok := p.Result()
		if !ok {
			t.Fatal("Done closed without a result")
		}
		return r
	case <-time.After(time.Second):
		t.Fatal("deferred never settled")
	}
	return Result[answer]{}
}

func TestSubmitSettlesOnce(t *testing.T) {
	a, store := setup()
	p, props := openCaptured(t, a, store)

	props.Submit(answer{Email: "a@b.com", Name: "Ann"})
	props.Submit(answer{Email: "x@y.com", Name: "Second"})
	props.Cancel()

	r := receive(t, p)
	if r.Cancelled || r.Data == nil {
		t.Fatalf("result = %+v, want data", r)
	}
	if r.Data.Email != "a@b.com" || r.Data.Name != "Ann" || r.Data.Message != nil {
		t.Errorf("data = %+v", *r.Data)
	}
	if again := receive(t, p); again.Cancelled || again.Data != r.Data {
		t.Errorf("second read = %+v, want the submitted data", again)
	}
	if store.IsOpen() {
		t.Error("submit should close the dialog")
	}
	if a.Pending() != 0 {
		t.Errorf("pending = %d, want 0", a.Pending())
	}
}

func TestCancelSettlesCancelled(t *testing.T) {
	a, store := setup()
	p, props := openCaptured(t, a, store)

	props.Cancel()
	props.Submit(answer{Name: "late"})

	r := receive(t, p)
	if !r.Cancelled || r.Data != nil {
		t.Errorf("result = %+v, want cancelled", r)
	}
	if store.IsOpen() {
		t.Error("cancel should close the dialog")
	}
}

func TestOtherClosePathsCancel(t *testing.T) {
	tests := []struct {
		name  string
		close func(s *stack.Store, id string)
	}{
		{"pop", func(s *stack.Store, _ string) { s.Pop() }},
		{"close by id", func(s *stack.Store, id string) { s.Close(id) }},
		{"clear all", func(s *stack.Store, _ string) { s.ClearAll() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, store := setup()
			p, props := openCaptured(t, a, store)

			tt.close(store, p.ID())
			props.Submit(answer{Name: "too late"})

			if r := receive(t, p); !r.Cancelled {
				t.Errorf("result = %+v, want cancelled", r)
			}
		})
	}
}

func TestClearAllSettlesEveryPending(t *testing.T) {
	a, store := setup()
	p1, _ := openCaptured(t, a, store)
	p2, _ := openCaptured(t, a, store)

	store.ClearAll()

	for _, p := range []*Pending[answer]{p1, p2} {
		if r := receive(t, p); !r.Cancelled {
			t.Errorf("%s: result = %+v, want cancelled", p.ID(), r)
		}
	}
}

func TestCallerOnCloseStillRuns(t *testing.T) {
	a, store := setup()
	var calls int
	_, props := openCaptured(t, a, store, stack.WithOnClose(func() { calls++ }))

	props.Submit(answer{Name: "Ann"})
	if calls != 1 {
		t.Errorf("caller onClose ran %d times, want 1", calls)
	}
}

func TestWaitHonoursContextWithoutSettling(t *testing.T) {
	a, store := setup()
	p, props := openCaptured(t, a, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Wait(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if !store.IsOpen() || a.Pending() != 1 {
		t.Fatal("a cancelled wait must not close or settle the dialog")
	}

	props.Submit(answer{Name: "Ann"})
	r, err := p.Wait(context.Background())
	if err != nil || r.Data == nil || r.Data.Name != "Ann" {
		t.Errorf("Wait = %+v, %v", r, err)
	}
}

func TestCmdDeliversResultMsg(t *testing.T) {
	a, store := setup()
	p, props := openCaptured(t, a, store)
	props.Cancel()

	msg, ok := p.Cmd()().(ResultMsg[answer])
	if !ok {
		t.Fatal("Cmd did not return a ResultMsg")
	}
	if msg.ID != p.ID() || !msg.Result.Cancelled {
		t.Errorf("msg = %+v", msg)
	}
}

func TestEveryReaderSeesTheSameResult(t *testing.T) {
	a, store := setup()
	p, props := openCaptured(t, a, store)

	if _, ok := p.Result(); ok {
		t.Fatal("Result reported settled before any callback")
	}
	props.Submit(answer{Email: "a@b.com", Name: "hello"})

	for i := range 2 {
		r, err := p.Wait(context.Background())
		if err != nil || r.Cancelled || r.Data == nil || r.Data.Name != "hello" {
			t.Fatalf("Wait #%d = %+v, %v", i+1, r, err)
		}
	}
	msg, ok := p.Cmd()().(ResultMsg[answer])
	if !ok || msg.Result.Cancelled || msg.Result.Data == nil || msg.Result.Data.Name != "hello" {
		t.Errorf("Cmd after Wait = %+v", msg)
	}
	if r, ok := p.Result(); !ok || r.Data == nil || r.Data.Name != "hello" {
		t.Errorf("Result = %+v, %v", r, ok)
	}
}

func TestContentClosingDuringRender(t *testing.T) {
	a, store := setup()
	// A subscriber plays renderer: it renders content as soon as the entry
	// lands, and the content cancels immediately.
	store.Subscribe(func() {
		if cur, ok := store.Current(); ok {
			cur.Renderable.Render(host.NewElement(host.KindGeneric, cur.ID), cur.Props)
		}
	})
	comp := &capture{onRender: func(p answerProps) { p.Cancel() }}
	p := Open(a, comp, func(cb Callbacks[answer]) answerProps {
		return answerProps{Callbacks: cb}
	})

	if r := receive(t, p); !r.Cancelled {
		t.Errorf("result = %+v, want cancelled", r)
	}
	if a.Pending() != 0 {
		t.Errorf("pending = %d, want 0", a.Pending())
	}
}

func TestConcurrentSubmitsSettleOnce(t *testing.T) {
	a, store := setup()
	p, props := openCaptured(t, a, store)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				props.Submit(answer{Name: "Ann"})
			} else {
				props.Cancel()
			}
		}()
	}
	wg.Wait()

	first := receive(t, p)
	if again := receive(t, p); again.Cancelled != first.Cancelled || again.Data != first.Data {
		t.Errorf("result changed between reads: %+v then %+v", first, again)
	}
	if store.IsOpen() {
		t.Error("dialog left open")
	}
}
