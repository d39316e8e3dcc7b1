package handlers

import (
	"errors"
	"strconv"

	"github.com/courseforge/courseforge/internal/api/rest/middleware"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/courseforge/courseforge/internal/helper"
	"github.com/courseforge/courseforge/internal/helper/utils"
	"github.com/courseforge/courseforge/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc       services.AuthService
	googleSvc services.GoogleAuthService
	auth      helper.Auth
	validate  *validator.Validate
}

func NewAuthHandler(svc services.AuthService, googleSvc services.GoogleAuthService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{
		svc:       svc,
		googleSvc: googleSvc,
		auth:      auth,
		validate:  validator.New(),
	}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	app.Post("/signup/otp", h.VerifyOtp)
	app.Post("/signup/otp-resend", h.ResendOtp)
	app.Post("/signup/resetOtp", h.ResetPassword)
	app.Post("/signup/checkOtp", h.CheckResetOtp)
	app.Post("/signup/reset-password", h.SetNewPassword)
	app.Post("/auth/token", h.RefreshToken)
	app.Post("/google_login", h.GoogleLogin)
	app.Post("/google_signup", h.GoogleSignup)

	// middleware is attached per route so it never shadows routes other
	// handlers register later
	protect := middleware.AuthMiddleware(h.auth)
	app.Post("/update", protect, h.UpdateProfile)
	app.Get("/user/:userId", protect, h.GetUser)
}

func (h *AuthHandler) Signup(ctx *fiber.Ctx) error {
	var body dto.SignupRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Please provide valid inputs")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.Signup(body); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusCreated, "OTP sent to your Email")
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "email and password are required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	resp, err := h.svc.Login(body)
	if err != nil {
		if errors.Is(err, services.ErrMustVerify) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message":  "You have not verified your OTP, a new OTP has been sent",
				"redirect": true,
			})
		}
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) VerifyOtp(ctx *fiber.Ctx) error {
	var body dto.OtpRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "email and otp are required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	resp, err := h.svc.VerifyOtp(body.Email, body.Otp)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) ResendOtp(ctx *fiber.Ctx) error {
	var body dto.ResendOtpRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "email is required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.ResendOtp(body.Email); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusCreated, "OTP resent successfully")
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var body dto.ResendOtpRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "email is required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.ResetPassword(body.Email); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "OTP sent to reset password")
}

func (h *AuthHandler) CheckResetOtp(ctx *fiber.Ctx) error {
	var body dto.OtpRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "email and otp are required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.CheckResetOtp(body.Email, body.Otp); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Email verified successfully")
}

func (h *AuthHandler) SetNewPassword(ctx *fiber.Ctx) error {
	var body dto.NewPasswordRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "email and newPassword are required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.SetNewPassword(body.Email, body.NewPassword); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Password changed successfully")
}

func (h *AuthHandler) RefreshToken(ctx *fiber.Ctx) error {
	var body dto.RefreshRequest
	if err := ctx.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}

	resp, err := h.svc.Refresh(body.RefreshToken)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) GoogleSignup(ctx *fiber.Ctx) error {
	var body dto.GoogleTokenRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "tokenId is required")
	}

	user, created, err := h.googleSvc.Signup(ctx.Context(), body.TokenID)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}

	if created {
		return utils.ResponseMessage(ctx, fiber.StatusCreated, "User Account has been created!")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message":  "User already has an account",
		"username": user.Name,
		"userId":   user.ID,
	})
}

func (h *AuthHandler) GoogleLogin(ctx *fiber.Ctx) error {
	var body dto.GoogleTokenRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "tokenId is required")
	}

	resp, err := h.googleSvc.Login(ctx.Context(), body.TokenID)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) UpdateProfile(ctx *fiber.Ctx) error {
	var body dto.UpdateProfileRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Please provide valid inputs")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.UpdateProfile(body); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "User updated successfully")
}

func (h *AuthHandler) GetUser(ctx *fiber.Ctx) error {
	userID, err := strconv.ParseUint(ctx.Params("userId"), 10, 64)
	if err != nil || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "User ID is required")
	}

	user, err := h.svc.GetUser(uint(userID))
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"user": user})
}
