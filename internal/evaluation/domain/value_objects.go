package domain

import (
	"html"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minNameRunes = 2
	maxNameRunes = 50
	maxEmailLen  = 254
)

var markupStripper = strings.NewReplacer("<", "", ">", "")

// Name is a trimmed, markup-free display name.
type Name string

// NewName strips markup characters, trims the rest and checks its length on
// what will be stored, then escapes it for HTML.
func NewName(value string) (Name, error) {
	if strings.TrimSpace(value) == "" {
		return "", &FieldError{Field: "name", Message: "name is required"}
	}
	cleaned := strings.TrimSpace(markupStripper.Replace(value))
	if n := utf8.RuneCountInString(cleaned); n < minNameRunes || n > maxNameRunes {
		return "", &FieldError{Field: "name", Message: "name must be between 2 and 50 characters", Value: cleaned}
	}
	return Name(html.EscapeString(cleaned)), nil
}

// String returns the stored form.
func (n Name) String() string {
	return string(n)
}

// Email is a syntactically valid, lower-cased mail address.
type Email string

// NewEmail validates and normalises an address. Display-name forms such as
// "Ana <ana@example.com>" are rejected.
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &FieldError{Field: "email", Message: "email is required"}
	}
	if len(trimmed) > maxEmailLen {
		return "", &FieldError{Field: "email", Message: "email must be at most 254 characters", Value: trimmed}
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Name != "" || addr.Address != trimmed {
		return "", &FieldError{Field: "email", Message: "invalid email", Value: trimmed}
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || !strings.Contains(addr.Address[at+1:], ".") {
		return "", &FieldError{Field: "email", Message: "invalid email", Value: trimmed}
	}
	return Email(markupStripper.Replace(strings.ToLower(addr.Address))), nil
}

// String returns the normalised address.
func (e Email) String() string {
	return string(e)
}
