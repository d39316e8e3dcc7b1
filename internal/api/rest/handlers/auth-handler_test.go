package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/courseforge/courseforge/internal/domain"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/courseforge/courseforge/internal/helper"
	"github.com/courseforge/courseforge/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService returns canned results per call.
type stubAuthService struct {
	loginResp  *dto.LoginResponse
	loginErr   error
	signupErr  error
	verifyResp *dto.LoginResponse
	verifyErr  error
}

func (s *stubAuthService) Signup(dto.SignupRequest) error { return s.signupErr }
func (s *stubAuthService) Login(dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}
func (s *stubAuthService) VerifyOtp(string, string) (*dto.LoginResponse, error) {
	return s.verifyResp, s.verifyErr
}
func (s *stubAuthService) ResendOtp(string) error                { return nil }
func (s *stubAuthService) ResetPassword(string) error            { return nil }
func (s *stubAuthService) CheckResetOtp(string, string) error    { return nil }
func (s *stubAuthService) SetNewPassword(string, string) error   { return nil }
func (s *stubAuthService) UpdateProfile(dto.UpdateProfileRequest) error { return nil }
func (s *stubAuthService) GetUser(uint) (*domain.User, error) {
	return &domain.User{ID: 1, Email: "somchai@example.com", Name: "Somchai"}, nil
}
func (s *stubAuthService) Refresh(string) (*dto.TokenPairResponse, error) {
	return &dto.TokenPairResponse{Message: "Fetched token successfully"}, nil
}

type stubGoogleService struct{}

func (s *stubGoogleService) Signup(context.Context, string) (*domain.User, bool, error) {
	return &domain.User{ID: 1, Name: "Somchai"}, true, nil
}
func (s *stubGoogleService) Login(context.Context, string) (*dto.LoginResponse, error) {
	return &dto.LoginResponse{Message: "User logged in!"}, nil
}

func newTestApp(svc services.AuthService) (*fiber.App, helper.Auth) {
	app := fiber.New()
	auth := helper.SetupAuth("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	NewAuthHandler(svc, &stubGoogleService{}, auth).SetupRoutes(app)
	return app, auth
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestSignupValidation(t *testing.T) {
	app, _ := newTestApp(&stubAuthService{})

	resp, _ := postJSON(t, app, "/signup", `{"email":"not-an-email","password":"s3cret","name":"X"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = postJSON(t, app, "/signup", `{"email":"a@b.com","password":"ok","name":"X"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, "password below minimum length")
}

func TestSignupSuccess(t *testing.T) {
	app, _ := newTestApp(&stubAuthService{})

	resp, body := postJSON(t, app, "/signup", `{"email":"a@b.com","password":"s3cret","name":"Somchai"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "OTP sent to your Email", body["message"])
}

func TestLoginUnverifiedRedirects(t *testing.T) {
	app, _ := newTestApp(&stubAuthService{loginErr: services.ErrMustVerify})

	resp, body := postJSON(t, app, "/login", `{"email":"a@b.com","password":"s3cret"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, true, body["redirect"])
	assert.NotEmpty(t, body["message"])
}

func TestLoginSuccess(t *testing.T) {
	app, _ := newTestApp(&stubAuthService{loginResp: &dto.LoginResponse{
		Message:     "User logged in!",
		AccessToken: "token",
		Username:    "Somchai",
		UserID:      1,
	}})

	resp, body := postJSON(t, app, "/login", `{"email":"a@b.com","password":"s3cret"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "User logged in!", body["message"])
	assert.Equal(t, float64(1), body["userId"])
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app, auth := newTestApp(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := auth.IssueAccessToken(1, "somchai@example.com")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/user/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefreshTokenMissingBody(t *testing.T) {
	app, _ := newTestApp(&stubAuthService{})

	resp, _ := postJSON(t, app, "/auth/token", `{}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
