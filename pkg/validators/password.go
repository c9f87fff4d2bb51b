package validators

import "errors"

// bcrypt ignores everything past 72 bytes
const maxPasswordBytes = 72

var (
	ErrPasswordTooLong = errors.New("password is too long")
	ErrPasswordEmpty   = errors.New("no password provided")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	return nil
}
