// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import "errors"

var (
	ErrUserNameEmpty    = errors.New("no username provided")
	ErrUserNameTooShort = errors.New("username must be at least 3 characters long")
	ErrUserNameTooLong  = errors.New("username is too long")

	ErrDisplayNameEmpty = errors.New("no display name provided")
)

func UserNameValidator(u string) error {
	if u == "" {
		return ErrUserNameEmpty
	}

	if len(u) < 3 {
		return ErrUserNameTooShort
	}

	if len(u) > 64 {
		return ErrUserNameTooLong
	}

	return nil
}

func DisplayNameValidator(d string) error {
	if d == "" {
		return ErrDisplayNameEmpty
	}

	return nil
}
