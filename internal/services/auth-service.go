package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/courseforge/courseforge/internal/helper"
	"github.com/courseforge/courseforge/internal/interfaces"
	"github.com/courseforge/courseforge/internal/repository"
	"github.com/courseforge/courseforge/pkg/utils"
)

// ErrMustVerify is returned by Login for unverified accounts after a fresh
// OTP has been issued. Handlers add redirect:true to the response body.
var ErrMustVerify = fmt.Errorf("%w: you have not verified your OTP, a new OTP has been sent", apperr.ErrValidation)

type AuthService interface {
	Signup(input dto.SignupRequest) error
	Login(input dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyOtp(email, code string) (*dto.LoginResponse, error)
	ResendOtp(email string) error

	ResetPassword(email string) error
	CheckResetOtp(email, code string) error
	SetNewPassword(email, newPassword string) error

	Refresh(refreshToken string) (*dto.TokenPairResponse, error)

	UpdateProfile(input dto.UpdateProfileRequest) error
	GetUser(userID uint) (*domain.User, error)
}

type authService struct {
	repo     repository.UserRepository
	otpRepo  repository.OTPRepository
	producer interfaces.ProducerHandler
	auth     helper.Auth
	otpTTL   time.Duration
}

func NewAuthService(
	repo repository.UserRepository,
	otpRepo repository.OTPRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
	otpTTL time.Duration,
) AuthService {
	return &authService{
		repo:     repo,
		otpRepo:  otpRepo,
		producer: producer,
		auth:     auth,
		otpTTL:   otpTTL,
	}
}

func (s *authService) Signup(input dto.SignupRequest) error {
	email := strings.TrimSpace(input.Email)

	if existing, err := s.repo.FindUserByEmail(email); err == nil && existing != nil {
		return fmt.Errorf("%w: email already exists", apperr.ErrValidation)
	}

	hashed, err := helper.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("%w: hash password", apperr.ErrStorage)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(input.Name),
		Skills:       input.Skills,
		Interests:    input.Interests,
		Goals:        input.Goals,
		IsVerified:   false,
	}
	if _, err := s.repo.CreateUser(user); err != nil {
		return err
	}

	// The user row and the OTP row are two separate writes. If this one
	// fails the account stays unverified until a resend succeeds.
	return s.issueOtp(email, dto.OtpPurposeVerify)
}

func (s *authService) Login(input dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(input.Email)

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}

	if !user.IsVerified {
		if err := s.issueOtp(email, dto.OtpPurposeVerify); err != nil {
			return nil, err
		}
		return nil, ErrMustVerify
	}

	if err := s.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, fmt.Errorf("%w: password doesn't match", apperr.ErrAuthentication)
	}

	return s.loginResponse("User logged in!", user)
}

func (s *authService) VerifyOtp(email, code string) (*dto.LoginResponse, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}

	// Verification happens exactly once. A repeat call is answered without
	// tokens: the original code was consumed, so the submitted one proves
	// nothing about mailbox ownership.
	if user.IsVerified {
		return &dto.LoginResponse{
			Message:  "Account already verified",
			Username: user.Name,
			UserID:   user.ID,
		}, nil
	}

	rec, err := s.otpRepo.FindByEmail(email)
	if err != nil || rec.Code != code {
		return nil, fmt.Errorf("%w: invalid OTP", apperr.ErrAuthentication)
	}

	user.IsVerified = true
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}

	// Consume the code so a matched OTP cannot be replayed.
	if err := s.otpRepo.Delete(email); err != nil {
		log.Printf("consume otp for %s: %v", email, err)
	}

	return s.loginResponse("OTP verified successfully", user)
}

func (s *authService) ResendOtp(email string) error {
	if _, err := s.otpRepo.FindByEmail(email); err != nil {
		return fmt.Errorf("%w: email doesn't exist", apperr.ErrNotFound)
	}
	return s.issueOtp(email, dto.OtpPurposeVerify)
}

func (s *authService) ResetPassword(email string) error {
	if _, err := s.repo.FindUserByEmail(email); err != nil {
		return err
	}
	return s.issueOtp(email, dto.OtpPurposeReset)
}

func (s *authService) CheckResetOtp(email, code string) error {
	rec, err := s.otpRepo.FindByEmail(email)
	if err != nil || rec.Code != code {
		return fmt.Errorf("%w: OTP is incorrect or expired", apperr.ErrValidation)
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return err
	}

	user.ResetVerified = true
	if err := s.repo.SaveUser(user); err != nil {
		return err
	}

	if err := s.otpRepo.Delete(email); err != nil {
		log.Printf("consume otp for %s: %v", email, err)
	}
	return nil
}

func (s *authService) SetNewPassword(email, newPassword string) error {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return err
	}

	if !user.ResetVerified {
		return fmt.Errorf("%w: please verify your email first", apperr.ErrAuthentication)
	}

	hashed, err := helper.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%w: hash password", apperr.ErrStorage)
	}

	user.PasswordHash = hashed
	user.ResetVerified = false
	return s.repo.SaveUser(user)
}

func (s *authService) Refresh(refreshToken string) (*dto.TokenPairResponse, error) {
	email, err := s.auth.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperr.ErrAuthentication)
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperr.ErrAuthentication)
	}

	accessToken, err := s.auth.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token", apperr.ErrStorage)
	}
	newRefresh, err := s.auth.IssueRefreshToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token", apperr.ErrStorage)
	}

	return &dto.TokenPairResponse{
		Message:      "Fetched token successfully",
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

func (s *authService) UpdateProfile(input dto.UpdateProfileRequest) error {
	user, err := s.repo.FindUserByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		return err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Skills = input.Skills
	user.Interests = input.Interests
	user.Goals = input.Goals
	return s.repo.SaveUser(user)
}

func (s *authService) GetUser(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", apperr.ErrValidation)
	}
	return s.repo.FindUserByID(userID)
}

// issueOtp overwrites any live code for the email and hands delivery to the
// mailer. Publishing is fire and forget: a queue failure is logged, never
// surfaced, so signup and login flows do not depend on mail transport.
func (s *authService) issueOtp(email, purpose string) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("%w: generate otp", apperr.ErrStorage)
	}

	if err := s.otpRepo.Upsert(email, code, s.otpTTL); err != nil {
		return err
	}

	if s.producer != nil {
		payload, _ := json.Marshal(dto.OtpEmailEvent{
			Email:   email,
			Code:    code,
			Purpose: purpose,
		})
		if err := s.producer.PublishMessage([]byte("user.otp_email"), payload); err != nil {
			log.Printf("publish otp email for %s: %v", email, err)
		}
	}
	return nil
}

func (s *authService) loginResponse(message string, user *domain.User) (*dto.LoginResponse, error) {
	accessToken, err := s.auth.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token", apperr.ErrStorage)
	}
	refreshToken, err := s.auth.IssueRefreshToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token", apperr.ErrStorage)
	}

	return &dto.LoginResponse{
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Name,
		UserID:       user.ID,
	}, nil
}
