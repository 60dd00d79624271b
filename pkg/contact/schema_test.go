package contact

import (
	"strings"
	"testing"
)

func ptr(s string) *string { return &s }

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name string
		data FormData
		want FieldErrors
	}{
		{
			name: "valid without message",
			data: FormData{Email: "a@b.com", Name: "Ann"},
			want: FieldErrors{},
		},
		{
			name: "valid with message",
			data: FormData{Email: "ann.lee+x@mail.example.org", Name: "Ann", Message: ptr("hi")},
			want: FieldErrors{},
		},
		{
			name: "all empty",
			data: FormData{},
			want: FieldErrors{FieldEmail: "Email is required.", FieldName: "Name is required."},
		},
		{
			name: "whitespace name",
			data: FormData{Email: "a@b.com", Name: "   "},
			want: FieldErrors{FieldName: "Name is required."},
		},
		{
			name: "malformed email",
			data: FormData{Email: "not-an-email", Name: "Ann"},
			want: FieldErrors{FieldEmail: "Enter a valid email address."},
		},
		{
			name: "display name form rejected",
			data: FormData{Email: "Ann <a@b.com>", Name: "Ann"},
			want: FieldErrors{FieldEmail: "Enter a valid email address."},
		},
		{
			name: "undotted domain",
			data: FormData{Email: "a@localhost", Name: "Ann"},
			want: FieldErrors{FieldEmail: "Enter a valid email address."},
		},
		{
			name: "name at limit",
			data: FormData{Email: "a@b.com", Name: strings.Repeat("가", MaxNameLength)},
			want: FieldErrors{},
		},
		{
			name: "name over limit",
			data: FormData{Email: "a@b.com", Name: strings.Repeat("n", MaxNameLength+1)},
			want: FieldErrors{FieldName: "Name must be 50 characters or fewer."},
		},
		{
			name: "message over limit",
			data: FormData{Email: "a@b.com", Name: "Ann", Message: ptr(strings.Repeat("m", MaxMessageLength+1))},
			want: FieldErrors{FieldMessage: "Message must be 1000 characters or fewer."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Schema{}.Validate(tt.data)
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for f, msg := range tt.want {
				if got[f] != msg {
					t.Errorf("%s: got %q, want %q", f, got[f], msg)
				}
			}
		})
	}
}

func TestFieldErrorsFirstFollowsDisplayOrder(t *testing.T) {
	errs := FieldErrors{FieldMessage: "m", FieldName: "n"}
	if f, ok := errs.First(); !ok || f != FieldName {
		t.Errorf("First() = %q, %v; want name", f, ok)
	}
	if _, ok := (FieldErrors{}).First(); ok {
		t.Error("empty errors have no first field")
	}
}
