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

type CourseHandler struct {
	svc      services.CourseService
	auth     helper.Auth
	validate *validator.Validate
}

func NewCourseHandler(svc services.CourseService, auth helper.Auth) *CourseHandler {
	return &CourseHandler{
		svc:      svc,
		auth:     auth,
		validate: validator.New(),
	}
}

func (h *CourseHandler) SetupRoutes(app *fiber.App) {
	// public catalog; allCourses before the :course wildcard
	app.Get("/home/allCourses", h.AllCourses)
	app.Get("/home/:course", h.CoursesByCategory)

	protect := middleware.AuthMiddleware(h.auth)
	app.Get("/course/:courseName/:courseId", protect, h.CoursePage)
	app.Post("/home/interests", protect, h.PreferenceCourses)
	app.Post("/home/preferences", protect, h.SavePreferences)
	app.Post("/home/:courseId/:courseName", protect, h.ToggleBookmark)
	app.Get("/users/:userName/:userId", protect, h.ShowBookmarks)
	app.Post("/unbookmark", protect, h.Unbookmark)
	app.Put("/rating", protect, h.Rate)
}

func (h *CourseHandler) AllCourses(ctx *fiber.Ctx) error {
	courses, err := h.svc.AllCourses()
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"courses": courses})
}

func (h *CourseHandler) CoursesByCategory(ctx *fiber.Ctx) error {
	category := ctx.Params("course")
	courses, err := h.svc.CoursesByCategory(category)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"courses": courses})
}

func (h *CourseHandler) PreferenceCourses(ctx *fiber.Ctx) error {
	user, authErr := h.auth.GetCurrentUser(ctx)
	if authErr != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}
	courses, err := h.svc.PreferenceCourses(user.UserID)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"courses": courses})
}

func (h *CourseHandler) SavePreferences(ctx *fiber.Ctx) error {
	var body dto.PreferencesRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "interest is required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	user, authErr := h.auth.GetCurrentUser(ctx)
	if authErr != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}
	if err := h.svc.SavePreferences(user.UserID, body.Interest); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Preferences saved")
}

func (h *CourseHandler) CoursePage(ctx *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(ctx.Params("courseId"), 10, 64)
	if err != nil || courseID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Course ID is required")
	}

	course, svcErr := h.svc.CoursePage(uint(courseID))
	if svcErr != nil {
		return utils.ResponseTaxonomyError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"course": course})
}

func (h *CourseHandler) ToggleBookmark(ctx *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(ctx.Params("courseId"), 10, 64)
	if err != nil || courseID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Course ID is required")
	}

	user, authErr := h.auth.GetCurrentUser(ctx)
	if authErr != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}
	added, svcErr := h.svc.ToggleBookmark(user.UserID, uint(courseID))
	if svcErr != nil {
		return utils.ResponseTaxonomyError(ctx, svcErr)
	}

	message := "Course removed from bookmarks"
	if added {
		message = "Course bookmarked"
	}
	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    message,
		"bookmarked": added,
	})
}

func (h *CourseHandler) ShowBookmarks(ctx *fiber.Ctx) error {
	userID, err := strconv.ParseUint(ctx.Params("userId"), 10, 64)
	if err != nil || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "User ID is required")
	}

	courses, svcErr := h.svc.ShowBookmarks(uint(userID))
	if svcErr != nil {
		return utils.ResponseTaxonomyError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"bookmarks": courses})
}

func (h *CourseHandler) Unbookmark(ctx *fiber.Ctx) error {
	var body dto.UnbookmarkRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "id is required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	user, authErr := h.auth.GetCurrentUser(ctx)
	if authErr != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}
	if err := h.svc.Unbookmark(user.UserID, body.CourseID); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Course removed from bookmarks")
}

func (h *CourseHandler) Rate(ctx *fiber.Ctx) error {
	var body dto.RatingRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "courseId and rating are required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.svc.Rate(body.CourseID, body.Rating)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Rating saved",
		"rating":  course.RatingFinal,
	})
}
