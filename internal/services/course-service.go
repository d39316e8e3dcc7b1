package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/courseforge/courseforge/internal/interfaces"
	"github.com/courseforge/courseforge/internal/repository"
)

const (
	courseImageFolder = "courses/images"
	courseVideoFolder = "courses/videos"
)

// VideoFile is one uploaded video stream.
type VideoFile struct {
	Name   string
	Reader io.Reader
}

type CourseService interface {
	AllCourses() ([]domain.Course, error)
	CoursesByCategory(category string) ([]domain.Course, error)
	PreferenceCourses(userID uint) ([]domain.Course, error)
	SavePreferences(userID uint, interests []string) error

	CoursePage(courseID uint) (*domain.Course, error)
	ToggleBookmark(userID, courseID uint) (bool, error)
	Unbookmark(userID, courseID uint) error
	ShowBookmarks(userID uint) ([]domain.Course, error)
	Rate(courseID uint, rating float64) (*domain.Course, error)

	TeacherHome(creatorID uint) ([]domain.Course, error)
	CreateCourse(ctx context.Context, creatorID uint, input dto.CreateCourseRequest, imageName string, image io.Reader) (*domain.Course, error)
	UpdateCourse(ctx context.Context, input dto.UpdateCourseRequest, imageName string, image io.Reader) (*domain.Course, error)
	DeleteCourse(courseID uint) error
	UploadVideos(ctx context.Context, courseID uint, videos []VideoFile) error
	MarkWatched(userID, courseID, videoID uint) error
}

type courseService struct {
	repo     repository.CourseRepository
	userRepo repository.UserRepository
	uploader interfaces.Uploader
}

func NewCourseService(
	repo repository.CourseRepository,
	userRepo repository.UserRepository,
	uploader interfaces.Uploader,
) CourseService {
	return &courseService{
		repo:     repo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *courseService) AllCourses() ([]domain.Course, error) {
	return s.repo.FindAllCourses()
}

func (s *courseService) CoursesByCategory(category string) ([]domain.Course, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return s.repo.FindAllCourses()
	}
	return s.repo.FindCoursesByCategory(category)
}

func (s *courseService) PreferenceCourses(userID uint) ([]domain.Course, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	var out []domain.Course
	for _, preference := range user.Preferences {
		courses, err := s.repo.FindCoursesByCategory(preference)
		if err != nil {
			return nil, err
		}
		out = append(out, courses...)
	}
	return out, nil
}

func (s *courseService) SavePreferences(userID uint, interests []string) error {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return err
	}

	user.Preferences = interests
	return s.userRepo.SaveUser(user)
}

func (s *courseService) CoursePage(courseID uint) (*domain.Course, error) {
	return s.repo.FindCourseByID(courseID)
}

// ToggleBookmark adds the course to the user's bookmarks, or removes it when
// already present. Returns whether the course is bookmarked afterwards.
func (s *courseService) ToggleBookmark(userID, courseID uint) (bool, error) {
	if _, err := s.userRepo.FindUserByID(userID); err != nil {
		return false, err
	}
	if _, err := s.repo.FindCourseByID(courseID); err != nil {
		return false, err
	}

	bookmarks, err := s.userRepo.ListBookmarks(userID)
	if err != nil {
		return false, err
	}

	for _, c := range bookmarks {
		if c.ID == courseID {
			return false, s.userRepo.RemoveBookmark(userID, courseID)
		}
	}
	return true, s.userRepo.AddBookmark(userID, courseID)
}

func (s *courseService) Unbookmark(userID, courseID uint) error {
	if _, err := s.userRepo.FindUserByID(userID); err != nil {
		return err
	}
	if _, err := s.repo.FindCourseByID(courseID); err != nil {
		return err
	}
	return s.userRepo.RemoveBookmark(userID, courseID)
}

func (s *courseService) ShowBookmarks(userID uint) ([]domain.Course, error) {
	if _, err := s.userRepo.FindUserByID(userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListBookmarks(userID)
}

func (s *courseService) Rate(courseID uint, rating float64) (*domain.Course, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrValidation)
	}

	course, err := s.repo.FindCourseByID(courseID)
	if err != nil {
		return nil, err
	}

	course.RatingSum += rating
	course.RatingCount++
	course.RatingFinal = course.RatingSum / float64(course.RatingCount)

	if err := s.repo.SaveCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) TeacherHome(creatorID uint) ([]domain.Course, error) {
	if creatorID == 0 {
		return nil, fmt.Errorf("%w: user id is required", apperr.ErrValidation)
	}
	return s.repo.FindCoursesByCreator(creatorID)
}

func (s *courseService) CreateCourse(
	ctx context.Context,
	creatorID uint,
	input dto.CreateCourseRequest,
	imageName string,
	image io.Reader,
) (*domain.Course, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image is required", apperr.ErrValidation)
	}

	imageURL, err := s.uploader.Upload(ctx, courseImageFolder, imageName, image)
	if err != nil {
		return nil, fmt.Errorf("%w: upload image", apperr.ErrStorage)
	}

	course := &domain.Course{
		Title:           strings.TrimSpace(input.Title),
		Category:        strings.TrimSpace(input.Category),
		ImageURL:        imageURL,
		AuthorName:      strings.TrimSpace(input.Name),
		WillLearn:       input.WillLearn,
		Description:     input.Description,
		DescriptionLong: input.DescriptionLong,
		Requirement:     input.Requirement,
		Price:           input.Price,
		CreatorID:       creatorID,
	}
	return s.repo.CreateCourse(course)
}

func (s *courseService) UpdateCourse(
	ctx context.Context,
	input dto.UpdateCourseRequest,
	imageName string,
	image io.Reader,
) (*domain.Course, error) {
	course, err := s.repo.FindCourseByID(input.CourseID)
	if err != nil {
		return nil, err
	}

	if image != nil {
		imageURL, err := s.uploader.Upload(ctx, courseImageFolder, imageName, image)
		if err != nil {
			return nil, fmt.Errorf("%w: upload image", apperr.ErrStorage)
		}
		course.ImageURL = imageURL
	}

	if v := strings.TrimSpace(input.Title); v != "" {
		course.Title = v
	}
	if v := strings.TrimSpace(input.Category); v != "" {
		course.Category = v
	}
	if v := strings.TrimSpace(input.Name); v != "" {
		course.AuthorName = v
	}
	if input.WillLearn != "" {
		course.WillLearn = input.WillLearn
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.DescriptionLong != "" {
		course.DescriptionLong = input.DescriptionLong
	}
	if input.Requirement != "" {
		course.Requirement = input.Requirement
	}
	if input.Price != "" {
		course.Price = input.Price
	}

	if err := s.repo.SaveCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) DeleteCourse(courseID uint) error {
	return s.repo.DeleteCourse(courseID)
}

func (s *courseService) UploadVideos(ctx context.Context, courseID uint, videos []VideoFile) error {
	if len(videos) == 0 {
		return fmt.Errorf("%w: no videos uploaded", apperr.ErrValidation)
	}

	if _, err := s.repo.FindCourseByID(courseID); err != nil {
		return err
	}

	content := make([]domain.CourseVideo, 0, len(videos))
	for i, v := range videos {
		url, err := s.uploader.Upload(ctx, courseVideoFolder, v.Name, v.Reader)
		if err != nil {
			return fmt.Errorf("%w: upload video #%d", apperr.ErrStorage, i+1)
		}
		content = append(content, domain.CourseVideo{VideoURL: url})
	}

	return s.repo.ReplaceVideos(courseID, content)
}

func (s *courseService) MarkWatched(userID, courseID, videoID uint) error {
	if _, err := s.repo.FindVideo(courseID, videoID); err != nil {
		return err
	}
	return s.repo.MarkWatched(videoID, userID)
}
