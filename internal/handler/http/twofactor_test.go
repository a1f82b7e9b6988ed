package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// 2FA completion
// ─────────────────────────────────────────────

func TestCompleteTwoFactor_Success(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		CompleteTwoFactorLogin(gomock.Any(), models.TwoFactorCompleteRequest{
			ChallengeToken: "challenge.jwt", Code: "123456",
		}, gomock.Any()).
		Return(models.LoginResponse{Token: "signed.jwt.token"}, nil)

	body := jsonBody(t, models.TwoFactorCompleteRequest{ChallengeToken: "challenge.jwt", Code: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/2fa/complete", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))
}

func TestCompleteTwoFactor_WrongCode(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		CompleteTwoFactorLogin(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{}, service.ErrInvalid2FACode)

	body := jsonBody(t, models.TwoFactorCompleteRequest{ChallengeToken: "challenge.jwt", Code: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/2fa/complete", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCompleteTwoFactor_ExpiredChallenge(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	authSvc.EXPECT().
		CompleteTwoFactorLogin(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.LoginResponse{}, service.ErrChallengeExpiredOrInvalid)

	body := jsonBody(t, models.TwoFactorCompleteRequest{ChallengeToken: "stale.jwt", Code: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/2fa/complete", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// 2FA enrollment
// ─────────────────────────────────────────────

func TestSetupTwoFactor_Success(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	expectValidRequest(authSvc)
	authSvc.EXPECT().
		SetupTwoFactor(gomock.Any(), "acc-1", gomock.Any()).
		Return(models.TwoFactorSetupResponse{
			Secret:          "JBSWY3DPEHPK3PXP",
			ProvisioningURI: "otpauth://totp/PassGuard:alice@example.com?secret=JBSWY3DPEHPK3PXP",
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/2fa/setup", nil)
	req.Header.Set("Authorization", testBearerHeader)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var setup models.TwoFactorSetupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &setup))
	assert.Equal(t, "JBSWY3DPEHPK3PXP", setup.Secret)
	assert.Contains(t, setup.ProvisioningURI, "otpauth://totp/")
}

func TestSetupTwoFactor_AlreadyEnabled(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	expectValidRequest(authSvc)
	authSvc.EXPECT().
		SetupTwoFactor(gomock.Any(), "acc-1", gomock.Any()).
		Return(models.TwoFactorSetupResponse{}, service.ErrTwoFactorStateConflict)

	req := httptest.NewRequest(http.MethodPost, "/api/2fa/setup", nil)
	req.Header.Set("Authorization", testBearerHeader)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEnableTwoFactor_ReturnsRecoveryCodes(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	expectValidRequest(authSvc)
	authSvc.EXPECT().
		EnableTwoFactor(gomock.Any(), "acc-1", models.TwoFactorEnableRequest{Code: "123456"}, gomock.Any()).
		Return(models.RecoveryCodesResponse{RecoveryCodes: []string{"aaaa-bbbb", "cccc-dddd"}}, nil)

	body := jsonBody(t, models.TwoFactorEnableRequest{Code: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/2fa/enable", strings.NewReader(body))
	req.Header.Set("Authorization", testBearerHeader)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var codes models.RecoveryCodesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &codes))
	assert.Len(t, codes.RecoveryCodes, 2)
}

func TestDisableTwoFactor_Success(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	expectValidRequest(authSvc)
	authSvc.EXPECT().
		DisableTwoFactor(gomock.Any(), "acc-1", models.TwoFactorDisableRequest{
			Password: "correct horse", Code: "123456",
		}, gomock.Any()).
		Return(nil)

	body := jsonBody(t, models.TwoFactorDisableRequest{Password: "correct horse", Code: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/2fa/disable", strings.NewReader(body))
	req.Header.Set("Authorization", testBearerHeader)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDisableTwoFactor_WrongPassword(t *testing.T) {
	router, authSvc, _ := newTestHandler(t)

	expectValidRequest(authSvc)
	authSvc.EXPECT().
		DisableTwoFactor(gomock.Any(), "acc-1", gomock.Any(), gomock.Any()).
		Return(service.ErrInvalidCredentials)

	body := jsonBody(t, models.TwoFactorDisableRequest{Password: "wrong", Code: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/2fa/disable", strings.NewReader(body))
	req.Header.Set("Authorization", testBearerHeader)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
