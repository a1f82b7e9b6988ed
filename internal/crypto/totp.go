package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// totpSecretBytes is the raw secret length: 20 bytes = 160 bits, the
	// minimum recommended by RFC 4226 §4.
	totpSecretBytes = 20

	// totpPeriod is the standard TOTP time step.
	totpPeriod = 30 * time.Second

	// totpDigits is the length of a generated code.
	totpDigits = 6

	// totpSkew is how many adjacent time steps are accepted around the
	// current one. Exactly one step either way absorbs clock drift without
	// widening the guessing window.
	totpSkew = 1
)

// totpEngine is the concrete implementation of [TotpEngine] per RFC 6238 /
// RFC 4226: HMAC-SHA1 over the big-endian time-step counter with dynamic
// truncation to a 6-digit decimal code.
type totpEngine struct {
	issuer string
}

// NewTotpEngine constructs a [TotpEngine]. The issuer label appears in
// provisioning URIs rendered as QR codes by authenticator apps.
func NewTotpEngine(issuer string) TotpEngine {
	return &totpEngine{issuer: issuer}
}

// GenerateSecret implements [TotpEngine]. The secret comes from the OS
// CSPRNG and is returned base32-encoded without padding, the alphabet
// authenticator apps expect.
func (t *totpEngine) GenerateSecret(account string) (string, string, error) {
	raw := make([]byte, totpSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("error generating totp secret: %w", err)
	}

	secret := strings.TrimRight(base32.StdEncoding.EncodeToString(raw), "=")

	return secret, t.provisioningURI(account, secret), nil
}

// VerifyCode implements [TotpEngine]. The submitted code is compared in
// constant time against the codes of the current step and its ±1
// neighbours.
func (t *totpEngine) VerifyCode(secret, code string, at time.Time) (bool, error) {
	if len(code) != totpDigits {
		return false, nil
	}

	secretBytes, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	counter := at.Unix() / int64(totpPeriod.Seconds())
	for step := -totpSkew; step <= totpSkew; step++ {
		expected := deriveCode(secretBytes, uint64(counter+int64(step)))
		if subtle.ConstantTimeCompare([]byte(code), []byte(expected)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// GenerateRecoveryCodes implements [TotpEngine]. See recovery.go.
func (t *totpEngine) GenerateRecoveryCodes(n int) ([]string, error) {
	return generateRecoveryCodes(n)
}

// CodeAt derives the TOTP code for the given secret and instant. Exposed so
// tests and enrollment previews can compute the expected code without going
// through verification.
func CodeAt(secret string, at time.Time) (string, error) {
	secretBytes, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	counter := at.Unix() / int64(totpPeriod.Seconds())
	return deriveCode(secretBytes, uint64(counter)), nil
}

// decodeSecret decodes a base32 secret, tolerating missing padding.
func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(secret, "="))
	secretBytes, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
	if err != nil {
		return nil, ErrInvalidTotpSecret
	}
	return secretBytes, nil
}

// deriveCode computes one HOTP value: HMAC-SHA1 over the 8-byte big-endian
// counter, dynamic truncation (RFC 4226 §5.3), modulo 10^digits.
func deriveCode(secret []byte, counter uint64) string {
	counterBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(counterBytes, counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(counterBytes)
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	truncated := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < totpDigits; i++ {
		mod *= 10
	}

	return fmt.Sprintf("%0*d", totpDigits, truncated%mod)
}

// provisioningURI builds the otpauth:// URI consumed by authenticator apps.
func (t *totpEngine) provisioningURI(account, secret string) string {
	label := url.PathEscape(account)
	if t.issuer != "" {
		label = url.PathEscape(t.issuer) + ":" + label
	}

	q := url.Values{}
	q.Set("secret", secret)
	if t.issuer != "" {
		q.Set("issuer", t.issuer)
	}
	q.Set("period", fmt.Sprintf("%d", int(totpPeriod.Seconds())))
	q.Set("digits", fmt.Sprintf("%d", totpDigits))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, q.Encode())
}
