package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/pass-guard/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for an authenticated
// session. The token carries the standard iss/sub/iat/exp claims plus the
// role and the session id ("sid"); the Pending flag is left unset.
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateSessionToken(issuer, accountID, role, sessionID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || accountID == "" || sessionID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	claims := models.AuthClaims{
		RegisteredClaims: registeredClaims(issuer, accountID, tokenDuration),
		Role:             role,
		SessionID:        sessionID,
	}

	return signToken(claims, signKey)
}

// GenerateChallengeToken creates the short-lived pending-2FA token returned
// by a password-correct login on a two-factor account. The Pending flag is
// what makes it useless against protected endpoints: request validation
// rejects pending tokens before any session lookup.
func GenerateChallengeToken(issuer, accountID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || accountID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating challenge token")
	}

	claims := models.AuthClaims{
		RegisteredClaims: registeredClaims(issuer, accountID, tokenDuration),
		Pending:          true,
	}

	return signToken(claims, signKey)
}

// ValidateAndParseToken verifies the signature, the issuer, and the expiry of
// a compact JWT and returns the parsed token. Callers must additionally check
// IsPending and the server-side session state; a valid signature alone does
// not grant access.
func ValidateAndParseToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, AuthClaims: *claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the compact token from an Authorization header of
// the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func registeredClaims(issuer, accountID string, tokenDuration time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   accountID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func signToken(claims models.AuthClaims, signKey string) (models.Token, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, AuthClaims: claims, SignedString: tokenString}, nil
}
