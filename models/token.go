package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the claim set carried by every token issued by the service.
//
// Two structurally distinct token kinds share this type:
//
//   - an authenticated session token carries Role and SessionID and has
//     Pending == false;
//   - a pending-2FA challenge token carries Pending == true and no
//     SessionID, and can only be exchanged for a session via the 2FA
//     completion step — it is rejected by request validation.
//
// The Pending flag is what keeps the two kinds from being confused: a
// challenge token replayed against a protected endpoint fails before any
// session lookup happens.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Role is the account role at issuance time. Empty on challenge tokens.
	Role string `json:"role,omitempty"`

	// SessionID is the server-side session row the token is bound to.
	// Empty on challenge tokens.
	SessionID string `json:"sid,omitempty"`

	// Pending marks a password-verified, 2FA-incomplete challenge token.
	Pending bool `json:"pnd,omitempty"`
}

// Token wraps a JWT with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level operations and [AuthClaims] for claim
// access. SignedString holds the compact serialized form
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization; only the compact string form is
	// meaningful outside the server process.
	*jwt.Token `json:"-"`

	// AuthClaims provides access to the registered claim set plus the
	// service-specific role/session/pending claims.
	AuthClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// AccountID returns the account identifier carried in the "sub" claim.
func (t *Token) AccountID() string {
	return t.Subject
}

// IsPending reports whether the token is a pending-2FA challenge token
// rather than a fully authenticated session token.
func (t *Token) IsPending() bool {
	return t.Pending
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
