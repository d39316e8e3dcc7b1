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

type TeacherHandler struct {
	svc      services.CourseService
	auth     helper.Auth
	validate *validator.Validate
}

func NewTeacherHandler(svc services.CourseService, auth helper.Auth) *TeacherHandler {
	return &TeacherHandler{
		svc:      svc,
		auth:     auth,
		validate: validator.New(),
	}
}

func (h *TeacherHandler) SetupRoutes(app *fiber.App) {
	protect := middleware.AuthMiddleware(h.auth)
	app.Post("/creator/create-course", protect, h.CreateCourse)
	app.Post("/creator/videoUpload/:courseID", protect, h.UploadVideos)
	app.Post("/creater/homepage", protect, h.TeacherHome)
	app.Post("/course/delete", protect, h.DeleteCourse)
	app.Post("/course/edit", protect, h.EditCourse)
	app.Put("/course/Update", protect, h.UpdateCourse)
	app.Post("/watchedByuser", protect, h.MarkWatched)
}

func (h *TeacherHandler) CreateCourse(ctx *fiber.Ctx) error {
	var body dto.CreateCourseRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Please provide valid inputs")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "course image is required")
	}
	src, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "could not read course image")
	}
	defer src.Close()

	user, authErr := h.auth.GetCurrentUser(ctx)
	if authErr != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}
	course, svcErr := h.svc.CreateCourse(ctx.Context(), user.UserID, body, file.Filename, src)
	if svcErr != nil {
		return utils.ResponseTaxonomyError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (h *TeacherHandler) UploadVideos(ctx *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(ctx.Params("courseID"), 10, 64)
	if err != nil || courseID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Course ID is required")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "video files are required")
	}
	files := form.File["videos"]
	if len(files) == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "video files are required")
	}

	videos := make([]services.VideoFile, 0, len(files))
	closers := make([]func() error, 0, len(files))
	defer func() {
		for _, c := range closers {
			c()
		}
	}()
	for _, f := range files {
		src, openErr := f.Open()
		if openErr != nil {
			return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "could not read video file")
		}
		closers = append(closers, src.Close)
		videos = append(videos, services.VideoFile{Name: f.Filename, Reader: src})
	}

	if svcErr := h.svc.UploadVideos(ctx.Context(), uint(courseID), videos); svcErr != nil {
		return utils.ResponseTaxonomyError(ctx, svcErr)
	}
	return utils.ResponseMessage(ctx, fiber.StatusCreated, "Videos uploaded")
}

func (h *TeacherHandler) TeacherHome(ctx *fiber.Ctx) error {
	user, authErr := h.auth.GetCurrentUser(ctx)
	if authErr != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}
	courses, err := h.svc.TeacherHome(user.UserID)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"courses": courses})
}

func (h *TeacherHandler) DeleteCourse(ctx *fiber.Ctx) error {
	var body dto.CourseIDRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "courseId is required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.DeleteCourse(body.CourseID); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Course deleted")
}

// EditCourse returns the current course state so the editor can prefill the form.
func (h *TeacherHandler) EditCourse(ctx *fiber.Ctx) error {
	var body dto.CourseIDRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "courseId is required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.svc.CoursePage(body.CourseID)
	if err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"course": course})
}

func (h *TeacherHandler) UpdateCourse(ctx *fiber.Ctx) error {
	var body dto.UpdateCourseRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "Please provide valid inputs")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	// image is optional on update
	if file, fileErr := ctx.FormFile("image"); fileErr == nil {
		src, openErr := file.Open()
		if openErr != nil {
			return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "could not read course image")
		}
		defer src.Close()
		course, svcErr := h.svc.UpdateCourse(ctx.Context(), body, file.Filename, src)
		if svcErr != nil {
			return utils.ResponseTaxonomyError(ctx, svcErr)
		}
		return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Course updated",
			"course":  course,
		})
	}

	course, svcErr := h.svc.UpdateCourse(ctx.Context(), body, "", nil)
	if svcErr != nil {
		return utils.ResponseTaxonomyError(ctx, svcErr)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (h *TeacherHandler) MarkWatched(ctx *fiber.Ctx) error {
	var body dto.WatchedRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, "courseId and videoId are required")
	}
	if err := h.validate.Struct(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}

	user, authErr := h.auth.GetCurrentUser(ctx)
	if authErr != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authenticated")
	}
	if err := h.svc.MarkWatched(user.UserID, body.CourseID, body.VideoID); err != nil {
		return utils.ResponseTaxonomyError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Video marked as watched")
}
