package crypto

import "errors"

var (
	// ErrHashFormat is returned when a stored password digest cannot be
	// parsed. This is corrupt data, not a wrong password, and must never be
	// presented to a user as "password incorrect".
	ErrHashFormat = errors.New("malformed password digest")

	// ErrEmptyPassword is returned when an empty plaintext is submitted for
	// hashing.
	ErrEmptyPassword = errors.New("empty password")

	// ErrInvalidTotpSecret is returned when a stored TOTP secret is not
	// valid base32.
	ErrInvalidTotpSecret = errors.New("invalid totp secret")
)
