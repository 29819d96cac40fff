package identity

import (
	"fmt"
	"net/mail"
	"strings"
)

const maxFieldLen = 255

// ValidationError reports per-field validation failures so the HTTP layer
// can render them next to the offending form fields.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reasons := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(reasons, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], reason)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validateRegisterInput(in RegisterInput) error {
	var verr ValidationError

	if strings.TrimSpace(in.Name) == "" {
		verr.add("name", "The name field is required.")
	} else if len(in.Name) > maxFieldLen {
		verr.add("name", "The name must not be greater than 255 characters.")
	}

	switch {
	case strings.TrimSpace(in.Email) == "":
		verr.add("email", "The email field is required.")
	case len(in.Email) > maxFieldLen:
		verr.add("email", "The email must not be greater than 255 characters.")
	case !validEmail(in.Email):
		verr.add("email", "The email must be a valid email address.")
	}

	switch {
	case in.Password == "":
		verr.add("password", "The password field is required.")
	case len(in.Password) < 8:
		verr.add("password", "The password must be at least 8 characters.")
	}
	if in.Password != "" && in.Password != in.PasswordConfirmation {
		verr.add("password", "The password confirmation does not match.")
	}

	return verr.orNil()
}

func validateLoginInput(email, password string) error {
	var verr ValidationError

	switch {
	case strings.TrimSpace(email) == "":
		verr.add("email", "The email field is required.")
	case !validEmail(email):
		verr.add("email", "The email must be a valid email address.")
	}
	if password == "" {
		verr.add("password", "The password field is required.")
	}

	return verr.orNil()
}
