package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(10) // low cost keeps the test fast

	passwords := []string{
		"correct horse battery staple",
		"p@ssw0rd!#$%",
		"пароль🔐",
		strings.Repeat("a", 70),
	}

	for _, p := range passwords {
		digest, err := hasher.Hash(p)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(digest, "$2"), "digest should be self-describing: %s", digest)

		ok, err := hasher.Verify(p, digest)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify against its own digest", p)
	}
}

func TestPasswordHasher_Mismatch(t *testing.T) {
	hasher := NewPasswordHasher(10)

	digest, err := hasher.Hash("right password")
	require.NoError(t, err)

	ok, err := hasher.Verify("wrong password", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltedDigestsDiffer(t *testing.T) {
	hasher := NewPasswordHasher(10)

	d1, err := hasher.Hash("same password")
	require.NoError(t, err)
	d2, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "each digest must carry a fresh random salt")
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	hasher := NewPasswordHasher(10)

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher(10)

	ok, err := hasher.Verify("whatever", "not-a-bcrypt-digest")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrHashFormat)
}

func TestPasswordHasher_CostOutOfRangeFallsBack(t *testing.T) {
	hasher := NewPasswordHasher(99)

	// must still produce a verifiable digest instead of failing
	digest, err := hasher.Hash("pw")
	require.NoError(t, err)

	ok, err := hasher.Verify("pw", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}
