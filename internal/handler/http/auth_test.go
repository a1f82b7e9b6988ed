// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/mock"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler backed by gomock service mocks and returns
// the initialized router so that requests travel through the full middleware
// chain.
func newTestHandler(t *testing.T) (*chi.Mux, *mock.MockAuthService, *mock.MockShareService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	shareSvc := mock.NewMockShareService(ctrl)

	h := NewHandler(&service.Services{
		AuthService:  authSvc,
		ShareService: shareSvc,
	}, logger.Nop())

	return h.Init(), authSvc, shareSvc
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// authedIdentity returns the token/session pair the auth middleware resolves
// for requests carrying testBearerHeader.
func authedIdentity() (models.Token, models.Session) {
	claims := models.AuthClaims{Role: string(models.RoleUser), SessionID: "sess-1"}
	claims.Subject = "acc-1"

	return models.Token{AuthClaims: claims},
		models.Session{SessionID: "sess-1", AccountID: "acc-1"}
}

const testBearerHeader = "Bearer test-token"

// expectValidRequest wires the auth middleware to accept testBearerHeader.
func expectValidRequest(authSvc *mock.MockAuthService) {
	token, session := authedIdentity()
	authSvc.EXPECT().
		ValidateRequest(gomock.Any(), "test-token").
		Return(token, session, nil)
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{
			Email: "alice@example.com", Name: "Alice", Password: "correct horse",
		}, gomock.Any()).
		Return(models.Account{Email: "alice@example.com", Name: "Alice", Role: models.RoleAdmin}, nil)

	body := jsonBody(t, models.RegisterRequest{
		Email: "alice@example.com", Name: "Alice", Password: "correct horse",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var account models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Equal(t, models.RoleAdmin, account.Role)
}

func TestRegister_InvalidJSON(t *testing.T) {
	router, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Account{}, service.ErrDuplicateAccount)

	body := jsonBody(t, models.RegisterRequest{
		Email: "alice@example.com", Name: "Alice", Password: "correct horse",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Email: "alice@example.com", Password: "correct horse"}, gomock.Any()).
		Return(models.LoginResponse{Token: "signed.jwt.token"}, nil)

	body := jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "correct horse"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "signed.jwt.token", response.Token)
	assert.False(t, response.Requires2FA)
}

// TestLogin_TwoFactorRequired verifies that a 2FA account receives only the
// short-lived challenge token: no session token, no Authorization header.
func TestLogin_TwoFactorRequired(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{Requires2FA: true, ChallengeToken: "challenge.jwt"}, nil)

	body := jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "correct horse"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Authorization"))

	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Requires2FA)
	assert.Equal(t, "challenge.jwt", response.ChallengeToken)
	assert.Empty(t, response.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{}, service.ErrInvalidCredentials)

	body := jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_AccountLocked(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{}, service.ErrAccountLocked)

	body := jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "correct horse"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusLocked, rec.Code)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout_RevokesOwnSession(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	expectValidRequest(authSvc)
	authSvc.EXPECT().
		Logout(gomock.Any(), "acc-1", "sess-1", gomock.Any()).
		Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", testBearerHeader)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLogout_WithoutToken(t *testing.T) {
	router, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
