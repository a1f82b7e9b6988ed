package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is the concrete implementation of [PasswordHasher] backed by
// bcrypt. The digest is self-describing: it embeds the algorithm version,
// the cost factor, and the random salt, so verification needs no external
// parameters and old digests keep verifying after a cost change.
type bcryptHasher struct {
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt cost
// factor. Costs outside bcrypt's supported range fall back to cost 12, a
// work factor safe for interactive login.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &bcryptHasher{cost: cost}
}

// Hash implements [PasswordHasher]. Empty plaintext is rejected before any
// hashing happens so an empty submission can never collide with a real
// digest.
func (b *bcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Verify implements [PasswordHasher]. bcrypt re-derives the digest from the
// submitted plaintext and the stored salt and compares the results in
// constant time, so verification time does not depend on where a mismatch
// occurs.
func (b *bcryptHasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	// anything else means the stored digest itself is unusable
	return false, errors.Join(ErrHashFormat, err)
}
