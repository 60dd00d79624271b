// Package contact implements the contact form dialog: its data model,
// validation rules and the component opened on the dialog stack.
package contact

import (
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"
)

// Field names a form field.
type Field string

const (
	FieldEmail   Field = "email"
	FieldName    Field = "name"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldEmail, FieldName, FieldMessage}

// Length limits, counted in runes.
const (
	MaxNameLength    = 50
	MaxMessageLength = 1000
)

// FormData is a submitted contact request. Message is nil when left empty.
type FormData struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Message *string `json:"message,omitempty"`
}

// FieldErrors maps an invalid field to its message.
type FieldErrors map[Field]string

// First returns the first invalid field in display order.
func (fe FieldErrors) First() (Field, bool) {
	for _, f := range Fields {
		if _, ok := fe[f]; ok {
			return f, true
		}
	}
	return "", false
}

// Validator checks a submission. An empty result means it is valid.
type Validator interface {
	Validate(FormData) FieldErrors
}

// Schema is the default Validator.
type Schema struct{}

var (
	notEmpty      = huh.ValidateNotEmpty()
	nameLength    = huh.ValidateMaxLength(MaxNameLength)
	messageLength = huh.ValidateMaxLength(MaxMessageLength)
)

// Validate implements Validator.
func (Schema) Validate(d FormData) FieldErrors {
	errs := FieldErrors{}

	switch {
	case notEmpty(strings.TrimSpace(d.Email)) != nil:
		errs[FieldEmail] = "Email is required."
	case !validEmail(d.Email):
		errs[FieldEmail] = "Enter a valid email address."
	}

	switch {
	case notEmpty(strings.TrimSpace(d.Name)) != nil:
		errs[FieldName] = "Name is required."
	case nameLength(d.Name) != nil:
		errs[FieldName] = "Name must be 50 characters or fewer."
	}

	if d.Message != nil && messageLength(*d.Message) != nil {
		errs[FieldMessage] = "Message must be 1000 characters or fewer."
	}
	return errs
}

// validEmail accepts a bare addr-spec with a dotted domain. Display-name
// forms such as "Ann <a@b.com>" are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}
