// Package crypto bundles the cryptographic primitives of the security core:
// adaptive password hashing, RFC 6238 time-based one-time passwords,
// single-use recovery codes, and unguessable URL-safe identifiers.
//
// Everything in this package is pure computation over its inputs: no
// storage, no clocks other than the instants passed in, and no locks, so
// hashing one login never serializes another.
package crypto

import "time"

// PasswordHasher provides one-way password hashing and verification with an
// adaptive work factor.
type PasswordHasher interface {
	// Hash produces a self-describing, randomly salted digest of plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A malformed digest
	// surfaces as ErrHashFormat, never as a plain mismatch.
	Verify(plaintext, digest string) (bool, error)
}

// TotpEngine generates TOTP secrets and verifies submitted codes.
type TotpEngine interface {
	// GenerateSecret returns a fresh base32 secret (>= 160 bits before
	// encoding) and the otpauth:// provisioning URI for the given account
	// label.
	GenerateSecret(account string) (secret string, uri string, err error)

	// VerifyCode checks a submitted 6-digit code against the secret at the
	// given instant, accepting the current time step and its immediate
	// neighbours (±1 step). The window is deliberately bounded.
	VerifyCode(secret, code string, at time.Time) (bool, error)

	// GenerateRecoveryCodes returns n random single-use recovery codes in
	// plaintext. Callers store only their hashes.
	GenerateRecoveryCodes(n int) ([]string, error)
}
