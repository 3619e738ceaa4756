package contact

import (
	"fmt"
	"net/url"
)

// Field names one input of the contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldCompany Field = "company"
	FieldMessage Field = "message"
)

// Fields lists every form field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldCompany, FieldMessage}

// RequiredFields are the fields the form refuses to submit while empty.
var RequiredFields = []Field{FieldName, FieldEmail, FieldMessage}

// Required reports whether the form blocks submission while f is empty.
func (f Field) Required() bool {
	for _, r := range RequiredFields {
		if f == r {
			return true
		}
	}
	return false
}

// FormData is the value of the four contact inputs. It is a plain value:
// every With* method returns an updated copy and leaves the receiver alone.
type FormData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
}

func (f FormData) WithName(v string) FormData    { f.Name = v; return f }
func (f FormData) WithEmail(v string) FormData   { f.Email = v; return f }
func (f FormData) WithCompany(v string) FormData { f.Company = v; return f }
func (f FormData) WithMessage(v string) FormData { f.Message = v; return f }

// With returns a copy of f with one field replaced.
func (f FormData) With(field Field, value string) (FormData, error) {
	switch field {
	case FieldName:
		return f.WithName(value), nil
	case FieldEmail:
		return f.WithEmail(value), nil
	case FieldCompany:
		return f.WithCompany(value), nil
	case FieldMessage:
		return f.WithMessage(value), nil
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// Get returns the value of field, or "" for unknown fields.
func (f FormData) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldCompany:
		return f.Company
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// Missing returns the required fields that are empty, in display order. It
// mirrors the browser's required-attribute check: presence only, no format
// validation.
func (f FormData) Missing() []Field {
	var missing []Field
	for _, field := range RequiredFields {
		if f.Get(field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// IsEmpty reports whether every field is blank.
func (f FormData) IsEmpty() bool {
	return f == FormData{}
}

// FormDataFromValues reads the contact inputs from a parsed HTML form.
func FormDataFromValues(values url.Values) FormData {
	return FormData{
		Name:    values.Get(string(FieldName)),
		Email:   values.Get(string(FieldEmail)),
		Company: values.Get(string(FieldCompany)),
		Message: values.Get(string(FieldMessage)),
	}
}
