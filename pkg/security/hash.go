// Package security contains everything related to the security of user data
package security

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownHash is returned when a stored hash was produced by an
// algorithm this package doesn't know
var ErrUnknownHash = errors.New("unknown password hash format")

// PasswordHasher turns passwords into salted one way hashes
type PasswordHasher interface {
	GenerateFromPassword(p string) (string, error)
	VerifyPasswd(p, encoded string) (bool, error)
}

// Passwords hashes new passwords with the configured algorithm and
// verifies stored hashes with whichever algorithm produced them, so
// switching algorithms doesn't lock existing users out
type Passwords struct {
	primary PasswordHasher
	bcrypt  *BcryptHash
	argon   *ArgonHash
}

// NewPasswords returns a Passwords hashing with algo ("bcrypt" or
// "argon2id"). bcryptCost is ignored for argon2id.
func NewPasswords(algo string, bcryptCost int) (*Passwords, error) {
	p := &Passwords{
		bcrypt: NewBcrypt(bcryptCost),
		argon:  NewArgon(),
	}

	switch algo {
	case "bcrypt":
		p.primary = p.bcrypt
	case "argon2id":
		p.primary = p.argon
	default:
		return nil, fmt.Errorf("unsupported password hash algorithm %q", algo)
	}

	return p, nil
}

func (p *Passwords) GenerateFromPassword(pw string) (string, error) {
	return p.primary.GenerateFromPassword(pw)
}

func (p *Passwords) VerifyPasswd(pw, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return p.argon.VerifyPasswd(pw, encoded)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return p.bcrypt.VerifyPasswd(pw, encoded)
	default:
		return false, ErrUnknownHash
	}
}
