package host

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editor backs the value of text-entry elements.
type editor interface {
	Value() string
	SetValue(string)
	Focus()
	Blur()
	Update(tea.Msg)
	View() string
	SetSize(width, height int)
}

type lineEditor struct {
	m textinput.Model
}

func newLineEditor() *lineEditor {
	m := textinput.New()
	m.Prompt = ""
	return &lineEditor{m: m}
}

func (l *lineEditor) Value() string      { return l.m.Value() }
func (l *lineEditor) SetValue(v string)  { l.m.SetValue(v) }
func (l *lineEditor) Focus()             { _ = l.m.Focus() }
func (l *lineEditor) Blur()              { l.m.Blur() }
func (l *lineEditor) View() string       { return l.m.View() }
func (l *lineEditor) SetSize(w, _ int)   { l.m.Width = w }
func (l *lineEditor) Update(msg tea.Msg) { l.m, _ = l.m.Update(msg) }

type areaEditor struct {
	m textarea.Model
}

func newAreaEditor() *areaEditor {
	m := textarea.New()
	m.ShowLineNumbers = false
	m.Prompt = ""
	m.CharLimit = 0 // length rules belong to validation
	m.SetHeight(4)
	return &areaEditor{m: m}
}

func (a *areaEditor) Value() string     { return a.m.Value() }
func (a *areaEditor) SetValue(v string) { a.m.SetValue(v) }
func (a *areaEditor) Focus()            { _ = a.m.Focus() }
func (a *areaEditor) Blur()             { a.m.Blur() }
func (a *areaEditor) View() string      { return a.m.View() }
func (a *areaEditor) SetSize(w, h int) {
	a.m.SetWidth(w)
	if h > 0 {
		a.m.SetHeight(h)
	}
}
func (a *areaEditor) Update(msg tea.Msg) { a.m, _ = a.m.Update(msg) }
