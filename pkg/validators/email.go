package validators

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

// EmailValidator accepts a bare address only, "Alice <a@b.c>" is rejected
func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}

// NormalizeEmail is applied before storing or looking up an address
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
