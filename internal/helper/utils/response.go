package utils

import (
	"errors"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

// ResponseError writes {"message": ...} with the given status.
func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{"message": msg})
}

// ResponseTaxonomyError maps a service error to its HTTP status via the
// apperr table and writes the JSON body.
func ResponseTaxonomyError(ctx *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError || errors.Is(err, apperr.ErrStorage) {
		msg = "internal server error"
	}
	return ResponseError(ctx, status, msg)
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(data)
}

func ResponseMessage(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{"message": msg})
}
