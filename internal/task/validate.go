package task

import (
	"errors"
	"unicode/utf8"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

var (
	ErrMissingTitle       = errors.New("Titulo obligatorio")
	ErrTitleTooLong       = errors.New("Titulo máximo 100 caracteres")
	ErrDescriptionTooLong = errors.New("Descripcion máximo 500 caracteres")
	ErrMissingStatus      = errors.New("Status es obligatorio")
)

// ValidateCreate checks the creation constraints. Pure function, no
// trimming: the raw strings are what get stored. Lengths are counted in
// characters, not bytes. An absent description arrives as "" and is valid.
func ValidateCreate(title, description string) error {
	if title == "" {
		return ErrMissingTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}
