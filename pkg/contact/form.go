package contact

import (
	"fmt"
	"log/slog"

	"github.com/marcus/modals/pkg/host"
	"github.com/marcus/modals/pkg/stack"
)

// Props configure one opened contact form.
type Props struct {
	Title       string
	Description string
	InitialData *FormData

	// OnSubmit receives valid data. A non-nil error keeps the dialog open
	// and is shown as a form-level alert.
	OnSubmit func(FormData) error
	// OnClose runs when the cancel button is activated.
	OnClose func()
}

// Form is the contact form component.
type Form struct {
	// Validator defaults to Schema.
	Validator Validator
	Logger    *slog.Logger
}

var _ stack.Component[Props] = (*Form)(nil)

type field struct {
	name  Field
	input *host.Element
	group *host.Element
	help  *host.Element // message only
	err   *host.Element
}

// formView is the per-open state of a Form.
type formView struct {
	f          *Form
	props      Props
	boundary   *host.Element
	form       *host.Element
	fields     []*field
	submit     *host.Element
	cancel     *host.Element
	alert      *host.Element
	submitting bool
}

// Render implements stack.Component.
func (f *Form) Render(boundary *host.Element, p Props) {
	v := &formView{f: f, props: p, boundary: boundary}

	title := host.NewElement(host.KindHeading, stack.TitleID(boundary.ID)).SetTabIndex(-1)
	title.Text = p.Title
	boundary.Append(title)

	v.form = host.NewElement(host.KindForm, v.id("form")).
		SetAttr("aria-labelledby", title.ID).
		SetAttr("novalidate", "")
	if p.Description != "" {
		desc := host.NewElement(host.KindText, stack.DescriptionID(boundary.ID))
		desc.Text = p.Description
		desc.SetAttr("data-tone", "muted")
		boundary.Append(desc)
		v.form.SetAttr("aria-describedby", desc.ID)
	}
	boundary.Append(host.NewElement(host.KindText, "").SetAttr("data-spacer", ""))

	var initial FormData
	if p.InitialData != nil {
		initial = *p.InitialData
	}
	msg := ""
	if initial.Message != nil {
		msg = *initial.Message
	}
	v.addField(FieldEmail, "Email *", host.KindInput, "email", initial.Email)
	v.addField(FieldName, "Name *", host.KindInput, "text", initial.Name)
	v.addField(FieldMessage, "Message", host.KindTextarea, "", msg)

	v.alert = host.NewElement(host.KindText, v.id("form-error")).
		SetAttr("role", "alert").
		SetAttr("aria-live", "polite")
	v.alert.Collapsed = true
	v.form.Append(v.alert)

	v.cancel = host.NewElement(host.KindButton, v.id("cancel"))
	v.cancel.Text = " Cancel "
	v.cancel.Type = "button"
	v.cancel.AddEventListener(host.EventClick, func(*host.Event) {
		if p.OnClose != nil {
			p.OnClose()
		}
	})
	v.submit = host.NewElement(host.KindButton, v.id("submit"))
	v.submit.Text = " Submit "
	v.submit.Type = "submit"
	actions := host.NewElement(host.KindGeneric, "").SetAttr("data-layout", "row")
	actions.Append(v.cancel)
	actions.Append(v.submit)
	v.form.Append(actions)

	v.form.AddEventListener(host.EventSubmit, v.onSubmit)
	boundary.Append(v.form)
}

func (v *formView) id(suffix string) string { return v.boundary.ID + "-" + suffix }

func (v *formView) addField(name Field, label string, kind host.Kind, typ, value string) {
	fd := &field{name: name}
	fd.group = host.NewElement(host.KindGeneric, "")

	fd.input = host.NewElement(kind, v.id(string(name)))
	fd.input.Type = typ
	fd.input.SetAttr("name", string(name)).SetAttr("aria-invalid", "false")
	if value != "" {
		fd.input.SetValue(value)
	}

	lbl := host.NewElement(host.KindLabel, "").SetAttr("for", fd.input.ID)
	lbl.Text = label
	fd.group.Append(lbl)
	fd.group.Append(fd.input)

	if name == FieldMessage {
		fd.help = host.NewElement(host.KindText, v.id("message-help")).SetAttr("data-tone", "muted")
		fd.help.Text = "Optional."
		fd.input.SetAttr("aria-describedby", fd.help.ID)
		fd.group.Append(fd.help)
	}
	v.fields = append(v.fields, fd)
	v.form.Append(fd.group)
}

// data reads the current field values.
func (v *formView) data() FormData {
	var d FormData
	for _, fd := range v.fields {
		val := fd.input.Value()
		switch fd.name {
		case FieldEmail:
			d.Email = val
		case FieldName:
			d.Name = val
		case FieldMessage:
			if val != "" {
				d.Message = &val
			}
		}
	}
	return d
}

func (v *formView) onSubmit(ev *host.Event) {
	ev.PreventDefault()
	if v.submitting {
		return
	}
	d := v.data()

	validator := v.f.Validator
	if validator == nil {
		validator = Schema{}
	}
	errs := validator.Validate(d)
	v.showErrors(errs)
	v.showAlert("")
	if first, ok := errs.First(); ok {
		if doc := v.form.Document(); doc != nil {
			doc.Focus(v.field(first).input)
		}
		return
	}
	if v.props.OnSubmit == nil {
		return
	}

	v.setSubmitting(true)
	err := v.call(d)
	v.setSubmitting(false)
	if err != nil {
		v.logger().Error("contact: submit failed", "dialog", v.boundary.ID, "err", err)
		v.showAlert("Submission failed: " + err.Error())
	}
}

// call runs OnSubmit, turning a panic into an error.
func (v *formView) call(d FormData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submit panicked: %v", r)
		}
	}()
	return v.props.OnSubmit(d)
}

func (v *formView) setSubmitting(on bool) {
	v.submitting = on
	v.submit.Disabled = on
	v.cancel.Disabled = on
	if on {
		v.submit.Text = " Submitting... "
		v.form.SetAttr("aria-busy", "true")
	} else {
		v.submit.Text = " Submit "
		v.form.RemoveAttr("aria-busy")
	}
}

func (v *formView) showErrors(errs FieldErrors) {
	for _, fd := range v.fields {
		msg, bad := errs[fd.name]
		if fd.err != nil {
			fd.err.Remove()
			fd.err = nil
		}
		if !bad {
			fd.input.SetAttr("aria-invalid", "false")
			if fd.help != nil {
				fd.help.Collapsed = false
				fd.input.SetAttr("aria-describedby", fd.help.ID)
			} else {
				fd.input.RemoveAttr("aria-describedby")
			}
			continue
		}
		fd.err = host.NewElement(host.KindText, v.id(string(fd.name)+"-error")).
			SetAttr("role", "alert").
			SetAttr("aria-live", "polite")
		fd.err.Text = msg
		fd.group.Append(fd.err)
		fd.input.SetAttr("aria-invalid", "true").SetAttr("aria-describedby", fd.err.ID)
		if fd.help != nil {
			fd.help.Collapsed = true
		}
	}
}

func (v *formView) showAlert(msg string) {
	v.alert.Text = msg
	v.alert.Collapsed = msg == ""
}

func (v *formView) field(name Field) *field {
	for _, fd := range v.fields {
		if fd.name == name {
			return fd
		}
	}
	return nil
}

func (v *formView) logger() *slog.Logger {
	if v.f.Logger != nil {
		return v.f.Logger
	}
	return slog.Default()
}
