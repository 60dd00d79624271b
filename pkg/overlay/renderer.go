// Package overlay projects the dialog stack into the host document and
// paints it over the rest of the screen.
//
// The Renderer keeps one layer per stack entry under a single modal-root
// container. Only the topmost layer carries a focus trap and mouse hit
// regions; layers beneath stay mounted and are painted dimmed.
package overlay

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/modals/pkg/host"
	"github.com/marcus/modals/pkg/modal"
	"github.com/marcus/modals/pkg/overlay/mouse"
	"github.com/marcus/modals/pkg/stack"
	"github.com/marcus/modals/pkg/trap"
)

const (
	// RootID is the id of the container holding every layer.
	RootID = "modal-root"
	// BaseZ is the paint precedence of the bottom layer.
	BaseZ = 1000

	defaultWidth  = 50
	openOffset    = 3
	frameInterval = 16 * time.Millisecond
)

// Options configure a Renderer.
type Options struct {
	// ReducedMotion places dialogs at their final position immediately.
	ReducedMotion bool
	// Width is the default dialog width in columns.
	Width  int
	Logger *slog.Logger
}

type layer struct {
	id       string
	el       *host.Element
	backdrop *host.Element
	dialog   *host.Element
	offset   int
}

// frameMsg advances open animations by one step.
type frameMsg struct{}

// Renderer projects a stack.Store into a host.Document.
type Renderer struct {
	store *stack.Store
	doc   *host.Document
	opts  Options
	log   *slog.Logger

	root   *host.Element
	layers []*layer
	top    *trap.Trap
	topID  string

	unsub   func()
	syncing bool
	dirty   bool

	mouse         *mouse.Handler
	hover         string
	width, height int
	ticking       bool
	wantTick      bool
}

// NewRenderer returns a renderer for store over doc. It does nothing until
// Start.
func NewRenderer(store *stack.Store, doc *host.Document, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	r := &Renderer{
		store: store,
		doc:   doc,
		opts:  opts,
		log:   opts.Logger,
		mouse: mouse.NewHandler(),
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Start subscribes to the store and projects its current contents.
func (r *Renderer) Start() {
	if r.unsub != nil {
		return
	}
	r.unsub = r.store.Subscribe(r.Sync)
	r.Sync()
}

// Stop unsubscribes and removes everything the renderer mounted.
func (r *Renderer) Stop() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
	r.teardown()
}

// Root returns the modal-root container, or nil while the stack is empty.
func (r *Renderer) Root() *host.Element { return r.root }

// Trap returns the trap mounted on the topmost layer, or nil.
func (r *Renderer) Trap() *trap.Trap { return r.top }

// Layers returns the number of mounted layers.
func (r *Renderer) Layers() int { return len(r.layers) }

// Dialog returns the boundary element for entry id, or nil.
func (r *Renderer) Dialog(id string) *host.Element {
	for _, l := range r.layers {
		if l.id == id {
			return l.dialog
		}
	}
	return nil
}

// Sync reconciles the mounted layers with the store. Calls made while a
// sync is running (a renderable opening another dialog, say) are folded
// into the running one.
func (r *Renderer) Sync() {
	if r.syncing {
		r.dirty = true
		return
	}
	r.syncing = true
	defer func() { r.syncing = false }()
	for {
		r.dirty = false
		r.sync()
		if !r.dirty {
			return
		}
	}
}

func (r *Renderer) sync() {
	if r.doc == nil || r.doc.Body() == nil {
		r.log.Debug("overlay: no host document, skipping sync")
		return
	}
	entries := r.store.Entries()
	if len(entries) == 0 {
		r.teardown()
		return
	}

	if r.root == nil {
		r.root = host.NewElement(host.KindGeneric, RootID).
			SetAttr("aria-live", "polite").
			SetAttr("aria-label", "Modals")
		r.doc.Body().Append(r.root)
	}

	live := make(map[string]bool, len(entries))
	for _, e := range entries {
		live[e.ID] = true
	}
	kept := r.layers[:0]
	for _, l := range r.layers {
		if live[l.id] {
			kept = append(kept, l)
			continue
		}
		l.el.Remove()
	}
	r.layers = kept

	have := make(map[string]bool, len(r.layers))
	for _, l := range r.layers {
		have[l.id] = true
	}
	for _, e := range entries {
		if !have[e.ID] {
			r.layers = append(r.layers, r.mountLayer(e))
		}
	}
	for i, l := range r.layers {
		l.el.SetAttr("data-z", strconv.Itoa(BaseZ+i))
	}

	top := r.layers[len(r.layers)-1]
	if top.id != r.topID {
		id := top.id
		next := trap.Mount(r.doc, trap.Options{
			Boundary: top.dialog,
			Backdrop: top.backdrop,
			OnClose:  func() { r.store.Close(id) },
			Logger:   r.log,
		})
		prev := r.top
		r.top, r.topID = next, id
		if prev != nil {
			prev.Unmount()
		}
	}
}

func (r *Renderer) teardown() {
	if r.top != nil {
		r.top.Unmount()
		r.top, r.topID = nil, ""
	}
	if r.root != nil {
		r.root.Remove()
		r.root = nil
	}
	r.layers = nil
	r.hover = ""
}

func (r *Renderer) mountLayer(e stack.Entry) *layer {
	motion := "enter"
	offset := openOffset
	if r.opts.ReducedMotion {
		motion, offset = "reduce", 0
	}
	l := &layer{id: e.ID, offset: offset}
	l.el = host.NewElement(host.KindGeneric, e.ID+"-layer").
		SetAttr("data-modal-id", e.ID).
		SetAttr("data-motion", motion)
	l.backdrop = host.NewElement(host.KindGeneric, e.ID+"-backdrop").
		SetAttr("role", "button").
		SetAttr("aria-label", "Close dialog").
		SetTabIndex(0)
	l.dialog = host.NewElement(host.KindGeneric, e.ID).
		SetAttr("role", "dialog").
		SetAttr("aria-modal", "true")
	l.el.Append(l.backdrop, l.dialog)
	r.root.Append(l.el)

	r.renderContent(e, l.dialog)

	// Bind ARIA references to what the content actually produced.
	titleID, descID := stack.TitleID(e.ID), stack.DescriptionID(e.ID)
	if l.dialog.Find(func(n *host.Element) bool { return n.ID == titleID }) != nil {
		l.dialog.SetAttr("aria-labelledby", titleID)
	}
	if l.dialog.Find(func(n *host.Element) bool { return n.ID == descID }) != nil {
		l.dialog.SetAttr("aria-describedby", descID)
	}

	if offset > 0 {
		r.wantTick = true
	}
	return l
}

func (r *Renderer) renderContent(e stack.Entry, boundary *host.Element) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("overlay: dialog content panicked", "id", e.ID, "panic", rec)
			boundary.Clear()
			msg := host.NewElement(host.KindText, "").SetAttr("role", "alert")
			msg.Text = "This dialog failed to render. Press Esc to close."
			boundary.Append(msg)
		}
	}()
	if e.Renderable == nil {
		r.log.Debug("overlay: entry has no content", "id", e.ID)
		return
	}
	e.Renderable.Render(boundary, e.Props)
}

// Update routes key, mouse, resize and animation messages. Keys always go
// to the document; mouse events resolve against the last painted frame.
func (r *Renderer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if r.doc != nil {
			r.doc.DispatchKey(msg)
		}
	case tea.MouseMsg:
		r.handleMouse(msg)
	case frameMsg:
		r.ticking = false
		for _, l := range r.layers {
			if l.offset > 0 {
				l.offset--
				if l.offset > 0 {
					r.wantTick = true
				}
			}
		}
	}
	return r.TickCmd()
}

// TickCmd returns the next animation frame command if a layer is still
// moving into place. It returns nil under reduced motion.
func (r *Renderer) TickCmd() tea.Cmd {
	if !r.wantTick || r.ticking || r.opts.ReducedMotion {
		r.wantTick = false
		return nil
	}
	r.wantTick = false
	r.ticking = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (r *Renderer) handleMouse(msg tea.MouseMsg) {
	if r.doc == nil {
		return
	}
	action := r.mouse.HandleMouse(msg)
	el := regionElement(action.Region)
	switch action.Type {
	case mouse.ActionClick:
		r.doc.Click(el)
	case mouse.ActionDoubleClick:
		r.doc.DoubleClick(el)
	case mouse.ActionHover:
		r.hover = ""
		if el != nil && (host.IsFocusable(el) || el.Kind == host.KindOption) {
			r.hover = el.ID
		}
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if el == nil {
			return
		}
		list := el.Closest(host.KindList)
		if list == nil {
			return
		}
		key := "down"
		if action.Type == mouse.ActionScrollUp {
			key = "up"
		}
		r.doc.Dispatch(&host.Event{Type: host.EventKeyDown, Key: key, Target: list})
	}
}

func regionElement(reg *mouse.Region) *host.Element {
	if reg == nil {
		return nil
	}
	el, _ := reg.Data.(*host.Element)
	return el
}

// View paints the open dialogs over background. When nothing is open the
// background is returned unchanged and its regions become clickable.
func (r *Renderer) View(background Block) string {
	w, h := r.width, r.height
	if w <= 0 {
		w = max(background.Width(), 80)
	}
	if h <= 0 {
		h = max(background.Height(), 24)
	}

	r.mouse.Clear()
	if len(r.layers) == 0 {
		for _, p := range background.Regions {
			r.mouse.HitMap.AddRect(p.El.ID, p.X, p.Y, p.W, p.H, p.El)
		}
		return background.String()
	}

	canvas := make([]string, h)
	for i := range canvas {
		if i < len(background.Lines) {
			canvas[i] = dim(background.Lines[i])
		}
	}

	st := PaintState{Active: r.doc.ActiveElement(), Hover: r.hover}
	last := len(r.layers) - 1
	for i, l := range r.layers {
		box, ox, oy, content := r.paintLayer(l, w, st)
		bw, bh := box.Width(), box.Height()
		x := clamp((w-bw)/2+i*2, 0, max(w-bw, 0))
		y := clamp((h-bh)/2+i+l.offset, 0, max(h-bh, 0))

		lines := box.Lines
		if i != last {
			lines = make([]string, len(box.Lines))
			for j, s := range box.Lines {
				lines[j] = dim(s)
			}
		}
		composite(canvas, lines, x, y)

		if i == last {
			r.mouse.HitMap.AddRect(l.backdrop.ID, 0, 0, w, h, l.backdrop)
			r.mouse.HitMap.AddRect(l.dialog.ID, x, y, bw, bh, l.dialog)
			for _, p := range content.Regions {
				r.mouse.HitMap.AddRect(p.El.ID, x+ox+p.X, y+oy+p.Y, p.W, p.H, p.El)
			}
		}
	}
	return strings.Join(canvas, "\n")
}

// paintLayer draws a dialog box and returns it with the offset of its
// content origin and the content block itself.
func (r *Renderer) paintLayer(l *layer, screenW int, st PaintState) (Block, int, int, Block) {
	width := r.opts.Width
	if v, err := strconv.Atoi(l.dialog.Attr("data-width")); err == nil && v > 0 {
		width = v
	}
	width = clamp(width, 12, max(screenW-4, 12))

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.ParseVariant(l.dialog.Attr("data-variant")).BorderColor()).
		Padding(1, 2).
		Width(width)

	content := Paint(l.dialog, width-style.GetHorizontalPadding(), st)
	box := Block{Lines: strings.Split(style.Render(content.String()), "\n")}
	ox := style.GetBorderLeftSize() + style.GetPaddingLeft()
	oy := style.GetBorderTopSize() + style.GetPaddingTop()
	return box, ox, oy, content
}

// composite writes box onto canvas with its top-left corner at (x, y).
func composite(canvas, box []string, x, y int) {
	for j, line := range box {
		row := y + j
		if row < 0 || row >= len(canvas) {
			continue
		}
		bg := canvas[row]
		left := ansi.Truncate(bg, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bg, x+ansi.StringWidth(line), "")
		canvas[row] = left + line + right
	}
}

func dim(s string) string {
	plain := ansi.Strip(s)
	if plain == "" {
		return ""
	}
	return modal.MutedText.Render(plain)
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
