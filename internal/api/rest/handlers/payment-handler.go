package handlers

import (
	"strconv"

	"github.com/courseforge/courseforge/internal/api/rest/middleware"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/courseforge/courseforge/internal/helper"
	"github.com/courseforge/courseforge/internal/helper/utils"
	"github.com/courseforge/courseforge/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	svc      services.PaymentService
	auth     helper.Auth
	validate *validator.Validate
}

func NewPaymentHandler(svc services.PaymentService, auth helper.Auth) *PaymentHandler {
	return &PaymentHandler{
		svc:      svc,
		auth:     auth,
		validate: validator.New(),
	}
}

func (h *PaymentHandler) SetupRoutes(app *fiber.App) {
	protect := middleware.AuthMiddleware(h.auth)
	app.Post("/stripe/payment", protect, h.Pay)
	app.Get("/stripe/:courseId", protect, h.Checkout)
}

func (h *PaymentHandler) Pay(ctx *fiber.Ctx) error {
	var body dto.PaymentRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "amount and payment method are required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.Pay(body); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.PaymentResponse{
		Message: "Payment successful",
		Success: true,
	})
}

func (h *PaymentHandler) Checkout(ctx *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(ctx.Params("courseId"), 10, 64)
	if err != nil || courseID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Course ID is required")
	}

	course, svcErr := h.svc.CourseForCheckout(uint(courseID))
	if svcErr != nil {
		return utils.ResponseTaxonomyError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"course": course})
}
