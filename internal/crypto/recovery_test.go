package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecoveryCodes_CountAndShape(t *testing.T) {
	codes, err := generateRecoveryCodes(10)
	require.NoError(t, err)
	require.Len(t, codes, 10)

	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		assert.Len(t, c, recoveryCodeLength+1) // separator included
		assert.Equal(t, byte('-'), c[recoveryCodeLength/2])
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 10, "codes must be unique")
}

func TestVerifyRecoveryCode(t *testing.T) {
	codes, err := generateRecoveryCodes(1)
	require.NoError(t, err)

	hash := HashRecoveryCode(codes[0])

	assert.True(t, VerifyRecoveryCode(codes[0], hash))
	assert.False(t, VerifyRecoveryCode("AAAAA-AAAAA", hash))
}

func TestNewSecureID(t *testing.T) {
	id1, err := NewSecureID()
	require.NoError(t, err)
	id2, err := NewSecureID()
	require.NoError(t, err)

	// 32 raw bytes -> 43 base64url characters, no padding
	assert.Len(t, id1, 43)
	assert.NotContains(t, id1, "=")
	assert.NotContains(t, id1, "+")
	assert.NotContains(t, id1, "/")
	assert.NotEqual(t, id1, id2)
}
