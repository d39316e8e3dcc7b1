package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/courseforge/courseforge/internal/helper"
	"github.com/courseforge/courseforge/internal/repository"
)

// GoogleProfile is the subset of an ID-token payload this service needs.
type GoogleProfile struct {
	Email         string
	EmailVerified bool
	Name          string
}

// GoogleVerifier validates a Google ID token and extracts its profile.
type GoogleVerifier interface {
	Verify(ctx context.Context, tokenID string) (*GoogleProfile, error)
}

type GoogleAuthService interface {
	// Signup creates an account for a verified Google identity. The bool
	// reports whether a new account was created.
	Signup(ctx context.Context, tokenID string) (*domain.User, bool, error)
	Login(ctx context.Context, tokenID string) (*dto.LoginResponse, error)
}

type googleAuthService struct {
	repo     repository.UserRepository
	verifier GoogleVerifier
	auth     helper.Auth
}

func NewGoogleAuthService(repo repository.UserRepository, verifier GoogleVerifier, auth helper.Auth) GoogleAuthService {
	return &googleAuthService{repo: repo, verifier: verifier, auth: auth}
}

func (s *googleAuthService) Signup(ctx context.Context, tokenID string) (*domain.User, bool, error) {
	profile, err := s.verifyProfile(ctx, tokenID)
	if err != nil {
		return nil, false, err
	}

	user, err := s.repo.FindUserByEmail(profile.Email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, false, err
	}

	// Google vouched for the address; no OTP round trip. The password is a
	// random placeholder so password login stays possible after a reset.
	hashed, err := helper.HashPassword(randomPassword())
	if err != nil {
		return nil, false, fmt.Errorf("%w: hash password", apperr.ErrStorage)
	}

	user = &domain.User{
		Email:        profile.Email,
		PasswordHash: hashed,
		Name:         profile.Name,
		IsVerified:   true,
	}
	if _, err := s.repo.CreateUser(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *googleAuthService) Login(ctx context.Context, tokenID string) (*dto.LoginResponse, error) {
	profile, err := s.verifyProfile(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByEmail(profile.Email)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.auth.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token", apperr.ErrStorage)
	}
	refreshToken, err := s.auth.IssueRefreshToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token", apperr.ErrStorage)
	}

	return &dto.LoginResponse{
		Message:      "User logged in!",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Name,
		UserID:       user.ID,
	}, nil
}

func (s *googleAuthService) verifyProfile(ctx context.Context, tokenID string) (*GoogleProfile, error) {
	if tokenID == "" {
		return nil, fmt.Errorf("%w: tokenId is required", apperr.ErrValidation)
	}

	profile, err := s.verifier.Verify(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("%w: google token rejected", apperr.ErrAuthentication)
	}
	if !profile.EmailVerified {
		return nil, fmt.Errorf("%w: login failed, user not verified", apperr.ErrForbidden)
	}
	return profile, nil
}

func randomPassword() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
