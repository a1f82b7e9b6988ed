package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// secureIDBytes is the raw entropy of a generated identifier: 32 bytes =
// 256 bits, comfortably above the 128-bit floor required for ids that act
// as bearer capabilities (share links, session rows).
const secureIDBytes = 32

// NewSecureID returns a URL-safe, unguessable identifier read from the OS
// CSPRNG and encoded with the unpadded base64url alphabet.
func NewSecureID() (string, error) {
	raw := make([]byte, secureIDBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("error generating secure id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
