// Package stack holds the process-wide ordered collection of open dialogs.
//
// Entries are pushed and removed through the Store (or the thin Controller
// facade). Every entry's OnClose fires exactly once, whichever path removes
// it, and input focus is saved when the first dialog opens and restored when
// the last one closes.
package stack

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/marcus/modals/pkg/host"
)

// Renderable is the opaque content of a dialog. The store never interprets
// it; the renderer calls Render once when the entry is first projected.
type Renderable interface {
	Render(boundary *host.Element, props any)
}

// RenderFunc adapts a function to Renderable.
type RenderFunc func(boundary *host.Element, props any)

// Render implements Renderable.
func (f RenderFunc) Render(boundary *host.Element, props any) { f(boundary, props) }

// TitleID returns the id a dialog's heading must carry to label the dialog.
// The boundary passed to Render has the entry id as its ID.
func TitleID(boundaryID string) string { return boundaryID + "-title" }

// DescriptionID returns the id of a dialog's optional description.
func DescriptionID(boundaryID string) string { return boundaryID + "-description" }

// Entry is one open dialog.
type Entry struct {
	ID         string
	Renderable Renderable
	Props      any
	OnClose    func()
}

// FocusHost is the part of the host the store needs for focus bookkeeping.
type FocusHost interface {
	ActiveElement() *host.Element
	Focus(*host.Element) bool
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the id generator. Generated ids must not repeat
// while in use.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the logger for recovered callback panics and degraded
// host operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is the ordered dialog stack. The zero value is not usable; call New.
type Store struct {
	mu         sync.Mutex
	host       FocusHost
	entries    []Entry
	checkpoint *host.Element
	hasCheck   bool

	subs    map[int]func()
	nextSub int

	newID func() string
	log   *slog.Logger
}

// New returns an empty store. h may be nil until the host is ready.
func New(h FocusHost, opts ...Option) *Store {
	s := &Store{
		host:  h,
		subs:  make(map[int]func()),
		newID: func() string { return "modal-" + uuid.NewString() },
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store. It starts empty with no host;
// attach one with SetHost.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = New(nil)
	})
	return defaultStore
}

// SetHost attaches (or replaces) the focus host.
func (s *Store) SetHost(h FocusHost) {
	s.mu.Lock()
	s.host = h
	s.mu.Unlock()
}

// Subscribe registers fn to run after every mutation. The returned func
// unregisters it.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Push appends an entry and returns its fresh id. Any ID on e is ignored.
// The focus checkpoint is captured when the stack was empty.
func (s *Store) Push(e Entry) string {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.capture()
	}
	e.ID = s.uniqueID()
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	s.notify()
	return e.ID
}

// Pop removes the topmost entry. It is a no-op on an empty stack.
func (s *Store) Pop() {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}
	last := len(s.entries) - 1
	removed := s.entries[last]
	s.entries = s.entries[:last:last]
	h, cp, restore := s.takeCheckpoint()
	s.mu.Unlock()

	s.finish([]Entry{removed}, h, cp, restore)
}

// Close removes the entry with the given id wherever it sits. Unknown ids
// are ignored.
func (s *Store) Close(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.entries[idx]
	s.entries = append(s.entries[:idx:idx], s.entries[idx+1:]...)
	h, cp, restore := s.takeCheckpoint()
	s.mu.Unlock()

	s.finish([]Entry{removed}, h, cp, restore)
}

// ClearAll removes every entry. OnClose callbacks fire in stack order, then
// focus is restored.
func (s *Store) ClearAll() {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}
	removed := s.entries
	s.entries = nil
	h, cp, restore := s.takeCheckpoint()
	s.mu.Unlock()

	s.finish(removed, h, cp, restore)
}

// Current returns the topmost entry.
func (s *Store) Current() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// IsOpen reports whether any entry is on the stack.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) > 0
}

// Contains reports whether an entry with id is on the stack.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Len returns the stack depth.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a snapshot of the stack, bottom first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// capture saves the focused element. Caller holds s.mu.
func (s *Store) capture() {
	if s.host == nil {
		s.log.Debug("stack: no host, focus checkpoint skipped")
		return
	}
	s.checkpoint = s.host.ActiveElement()
	s.hasCheck = true
}

// takeCheckpoint clears the checkpoint if the stack just became empty and
// returns what must be restored. Caller holds s.mu.
func (s *Store) takeCheckpoint() (FocusHost, *host.Element, bool) {
	if len(s.entries) > 0 || !s.hasCheck {
		return nil, nil, false
	}
	cp := s.checkpoint
	s.checkpoint = nil
	s.hasCheck = false
	return s.host, cp, true
}

// finish runs the callbacks for removed entries outside the lock, restores
// focus on the empty transition, then notifies subscribers.
func (s *Store) finish(removed []Entry, h FocusHost, cp *host.Element, restore bool) {
	for _, e := range removed {
		s.fireOnClose(e)
	}
	if restore && h != nil && cp != nil {
		if !h.Focus(cp) {
			s.log.Debug("stack: focus checkpoint no longer focusable", "element", cp.ID)
		}
	}
	s.notify()
}

func (s *Store) fireOnClose(e Entry) {
	if e.OnClose == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("stack: onClose panicked", "id", e.ID, "panic", r)
		}
	}()
	e.OnClose()
}

func (s *Store) notify() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	// Subscribers run in registration order.
	slices.Sort(ids)
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.subs[id]
		s.mu.Unlock()
		if ok {
			fn()
		}
	}
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID draws ids until one is not live. Caller holds s.mu.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}
