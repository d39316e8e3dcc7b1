package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	profiles map[string]*GoogleProfile
}

func (v *fakeVerifier) Verify(_ context.Context, tokenID string) (*GoogleProfile, error) {
	profile, ok := v.profiles[tokenID]
	if !ok {
		return nil, errors.New("idtoken: invalid token")
	}
	return profile, nil
}

func newGoogleFixture() (GoogleAuthService, *fakeUserRepo, *fakeVerifier) {
	users := newFakeUserRepo()
	verifier := &fakeVerifier{profiles: map[string]*GoogleProfile{
		"good-token": {Email: "somchai@example.com", EmailVerified: true, Name: "Somchai"},
		"unverified": {Email: "shady@example.com", EmailVerified: false, Name: "Shady"},
	}}
	auth := helper.SetupAuth("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewGoogleAuthService(users, verifier, auth), users, verifier
}

func TestGoogleSignupCreatesVerifiedUser(t *testing.T) {
	svc, users, _ := newGoogleFixture()

	user, created, err := svc.Signup(context.Background(), "good-token")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, user.IsVerified)
	assert.Equal(t, "Somchai", user.Name)
	assert.NotEmpty(t, user.PasswordHash)

	// second signup with the same identity reports the existing account
	again, created, err := svc.Signup(context.Background(), "good-token")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, users.users, 1)
}

func TestGoogleSignupRejectsUnverifiedEmail(t *testing.T) {
	svc, _, _ := newGoogleFixture()

	_, _, err := svc.Signup(context.Background(), "unverified")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestGoogleSignupRejectsBadToken(t *testing.T) {
	svc, _, _ := newGoogleFixture()

	_, _, err := svc.Signup(context.Background(), "forged")
	assert.ErrorIs(t, err, apperr.ErrAuthentication)

	_, _, err = svc.Signup(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGoogleLogin(t *testing.T) {
	svc, _, _ := newGoogleFixture()

	// no account yet
	_, err := svc.Login(context.Background(), "good-token")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, _, err = svc.Signup(context.Background(), "good-token")
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "User logged in!", resp.Message)
	assert.Equal(t, "Somchai", resp.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}
