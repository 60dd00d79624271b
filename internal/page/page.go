// Package page is the demo application: a small page whose buttons open
// the contact form and nested dialogs on top of it.
package page

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/modals/internal/output"
	"github.com/marcus/modals/pkg/contact"
	"github.com/marcus/modals/pkg/deferred"
	"github.com/marcus/modals/pkg/host"
	"github.com/marcus/modals/pkg/modal"
	"github.com/marcus/modals/pkg/overlay"
	"github.com/marcus/modals/pkg/stack"
)

// Element ids on the page.
const (
	ContactID = "open-contact"
	AboutID   = "open-about"
	ClearID   = "clear-result"
	StatusID  = "modal-status"
	ResultID  = "last-result"
)

// Options configure the demo.
type Options struct {
	ReducedMotion bool
	DialogWidth   int
	Logger        *slog.Logger
	// Store defaults to a fresh store bound to the page's document.
	Store *stack.Store
}

// Model is the Bubble Tea model for the demo page.
type Model struct {
	doc      *host.Document
	store    *stack.Store
	ctl      *stack.Controller
	renderer *overlay.Renderer
	forms    *deferred.Adapter[contact.FormData]
	choices  *deferred.Adapter[string]
	log      *slog.Logger

	root    *host.Element
	status  *host.Element
	result  *host.Element
	aboutID string

	width, height int
	scroll        int

	queued []tea.Cmd
	unsub  func()
}

// New builds the page and starts projecting the dialog stack onto it.
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	doc := host.NewDocument()
	doc.SetLogger(log)

	store := opts.Store
	if store == nil {
		store = stack.New(doc, stack.WithLogger(log))
	} else {
		store.SetHost(doc)
	}
	ctl := stack.NewController(store)

	m := &Model{
		doc:   doc,
		store: store,
		ctl:   ctl,
		renderer: overlay.NewRenderer(store, doc, overlay.Options{
			ReducedMotion: opts.ReducedMotion,
			Width:         opts.DialogWidth,
			Logger:        log,
		}),
		forms:   deferred.NewAdapter[contact.FormData](ctl),
		choices: deferred.NewAdapter[string](ctl),
		log:     log,
	}
	m.build()
	m.unsub = store.Subscribe(m.refreshStatus)
	m.renderer.Start()
	doc.Focus(doc.GetElementByID(ContactID))
	return m
}

func (m *Model) build() {
	m.root = host.NewElement(host.KindGeneric, "page")

	heading := host.NewElement(host.KindHeading, "page-title")
	heading.Text = "Accessible modal form"
	intro := text("Escape, backdrop clicks and keyboard navigation are all supported.")

	demo := host.NewElement(host.KindHeading, "")
	demo.Text = "Form dialog demo"

	contactBtn := button(ContactID, " Contact us ", m.OpenContact)
	aboutBtn := button(AboutID, " About ", m.OpenAbout)
	clearBtn := button(ClearID, " Clear result ", m.confirmClear)
	row := host.NewElement(host.KindGeneric, "").SetAttr("data-layout", "row")
	row.Append(contactBtn, aboutBtn, clearBtn)

	m.status = host.NewElement(host.KindText, StatusID).SetAttr("aria-live", "polite")
	m.status.Text = "A dialog is open."
	m.status.Collapsed = true

	m.result = host.NewElement(host.KindText, ResultID).SetAttr("aria-live", "polite")
	m.result.SetAttr("data-tone", "muted")
	m.result.Text = "No submissions yet."

	features := host.NewElement(host.KindHeading, "")
	features.Text = "Implemented"
	m.root.Append(heading, intro, spacer(), demo, row, m.status, m.result, spacer(), features)
	for _, f := range featureList {
		m.root.Append(text("✓ " + f.Label))
	}
	m.root.Append(spacer())
	help := text("tab/shift+tab: move • enter: activate • esc: close dialog • q: quit")
	help.SetAttr("data-tone", "muted")
	m.root.Append(help)

	m.doc.Body().Append(m.root)
}

// Document returns the page's host document.
func (m *Model) Document() *host.Document { return m.doc }

// Store returns the dialog stack behind the page.
func (m *Model) Store() *stack.Store { return m.store }

// Tree renders the host tree for inspection.
func (m *Model) Tree(opts output.TreeRenderOptions) string {
	return output.RenderTree(output.FromDocument(m.doc), opts)
}

// Close stops the renderer and detaches from the store.
func (m *Model) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	m.renderer.Stop()
}

// OpenContact opens the contact form and reports its outcome on the page.
func (m *Model) OpenContact() {
	p := contact.OpenForm(m.forms, contact.Options{
		Title:       "Contact us",
		Description: "Ask us anything.",
		Form:        &contact.Form{Logger: m.log},
	})
	m.log.Debug("page: contact form opened", "id", p.ID())
	m.queue(p.Cmd())
}

// OpenAbout opens the about dialog. Its Contact button stacks the contact
// form on top of it.
func (m *Model) OpenAbout() {
	if m.aboutID != "" && m.store.Contains(m.aboutID) {
		return
	}
	m.aboutID = stack.Open(m.ctl, aboutModal(), modal.Props{OnAction: m.onAboutAction},
		stack.WithOnClose(func() { m.aboutID = "" }))
}

func (m *Model) onAboutAction(action string) {
	switch action {
	case "contact":
		m.OpenContact()
	case "close":
		m.ctl.Close(m.aboutID)
	default:
		for _, it := range featureList {
			if it.ID == action {
				m.setResult("Selected: " + it.Label)
			}
		}
	}
}

func (m *Model) confirmClear() {
	p := modal.Confirm(m.choices, "Clear result?", "The last result line will be reset.",
		modal.WithVariant(modal.VariantWarning))
	m.queue(p.Cmd())
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *Model) refreshStatus() {
	m.status.Collapsed = !m.store.IsOpen()
}

func (m *Model) setResult(s string) {
	m.result.Text = s
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.store.IsOpen() {
				return m, tea.Quit
			}
		case "pgdown":
			if !m.doc.ScrollSuppressed() {
				m.scroll++
			}
		case "pgup":
			if !m.doc.ScrollSuppressed() && m.scroll > 0 {
				m.scroll--
			}
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && !m.doc.ScrollSuppressed() {
			switch msg.Button {
			case tea.MouseButtonWheelDown:
				m.scroll++
			case tea.MouseButtonWheelUp:
				if m.scroll > 0 {
					m.scroll--
				}
			}
		}

	case deferred.ResultMsg[contact.FormData]:
		if msg.Result.Cancelled || msg.Result.Data == nil {
			m.setResult("Contact form cancelled.")
			break
		}
		d := msg.Result.Data
		m.log.Info("page: contact form submitted", "id", msg.ID, "email", d.Email)
		m.setResult(fmt.Sprintf("Thanks, %s! We'll reply to %s.", d.Name, d.Email))
		return m, m.drain(nil)

	case deferred.ResultMsg[string]:
		if !msg.Result.Cancelled {
			m.setResult("No submissions yet.")
		}
		return m, m.drain(nil)
	}

	return m, m.drain(m.renderer.Update(msg))
}

// drain batches cmd with commands queued by listeners during this update.
func (m *Model) drain(cmd tea.Cmd) tea.Cmd {
	cmds := append(m.queued, cmd)
	m.queued = nil
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	bg := overlay.Paint(m.root, w, overlay.PaintState{Active: m.doc.ActiveElement()})
	return m.renderer.View(m.scrolled(bg))
}

// scrolled drops the first m.scroll lines of bg, clamped so the last line
// stays visible.
func (m *Model) scrolled(bg overlay.Block) overlay.Block {
	m.scroll = min(m.scroll, max(len(bg.Lines)-1, 0))
	if m.scroll == 0 {
		return bg
	}
	out := overlay.Block{Lines: bg.Lines[m.scroll:]}
	for _, p := range bg.Regions {
		if p.Y >= m.scroll {
			p.Y -= m.scroll
			out.Regions = append(out.Regions, p)
		}
	}
	return out
}

func text(s string) *host.Element {
	el := host.NewElement(host.KindText, "")
	el.Text = s
	return el
}

func spacer() *host.Element {
	return host.NewElement(host.KindText, "").SetAttr("data-spacer", "")
}

func button(id, label string, fn func()) *host.Element {
	el := host.NewElement(host.KindButton, id)
	el.Text = label
	el.Type = "button"
	el.AddEventListener(host.EventClick, func(*host.Event) { fn() })
	return el
}
