package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// recoveryAlphabet avoids characters that read ambiguously when a user
// types a code from paper (no 0/O, 1/I/L).
const recoveryAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// recoveryCodeLength is the number of alphabet characters per code:
// 10 characters over a 31-symbol alphabet is ~49 bits, ample for a
// single-use token gated behind the lockout counter.
const recoveryCodeLength = 10

// generateRecoveryCodes produces n random codes formatted as
// "XXXXX-XXXXX" for readability.
func generateRecoveryCodes(n int) ([]string, error) {
	codes := make([]string, 0, n)

	for i := 0; i < n; i++ {
		raw := make([]byte, recoveryCodeLength)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("error generating recovery code: %w", err)
		}

		buf := make([]byte, 0, recoveryCodeLength+1)
		for j, b := range raw {
			if j == recoveryCodeLength/2 {
				buf = append(buf, '-')
			}
			buf = append(buf, recoveryAlphabet[int(b)%len(recoveryAlphabet)])
		}
		codes = append(codes, string(buf))
	}

	return codes, nil
}

// HashRecoveryCode returns the hex-encoded SHA-256 digest of a recovery
// code. Only digests are persisted; the plaintext codes are shown to the
// user exactly once.
func HashRecoveryCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// VerifyRecoveryCode compares a submitted code against a stored digest in
// constant time.
func VerifyRecoveryCode(code, storedHash string) bool {
	submitted := HashRecoveryCode(code)
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(storedHash)) == 1
}
