package contact

import (
	"github.com/marcus/modals/pkg/deferred"
	"github.com/marcus/modals/pkg/stack"
)

// Options configure OpenForm.
type Options struct {
	Title       string
	Description string
	InitialData *FormData

	// Send delivers valid data before the dialog settles. An error keeps
	// the dialog open with the error shown and the result unsettled.
	Send func(FormData) error
	// Form overrides the component, e.g. to supply a Validator.
	Form *Form
}

// OpenForm opens the contact form and returns its pending result. The
// result settles with the submitted data, or as cancelled when the form is
// cancelled or the dialog closes any other way.
func OpenForm(a *deferred.Adapter[FormData], o Options, opts ...stack.OpenOption) *deferred.Pending[FormData] {
	form := o.Form
	if form == nil {
		form = &Form{}
	}
	return deferred.Open(a, form, func(cb deferred.Callbacks[FormData]) Props {
		return Props{
			Title:       o.Title,
			Description: o.Description,
			InitialData: o.InitialData,
			OnSubmit: func(d FormData) error {
				if o.Send != nil {
					if err := o.Send(d); err != nil {
						return err
					}
				}
				cb.Submit(d)
				return nil
			},
			OnClose: cb.Cancel,
		}
	}, opts...)
}
