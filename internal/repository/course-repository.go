package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"gorm.io/gorm"
)

type CourseRepository interface {
	CreateCourse(course *domain.Course) (*domain.Course, error)
	FindCourseByID(courseID uint) (*domain.Course, error)
	FindAllCourses() ([]domain.Course, error)
	FindCoursesByCategory(category string) ([]domain.Course, error)
	FindCoursesByCreator(creatorID uint) ([]domain.Course, error)
	SaveCourse(course *domain.Course) error
	DeleteCourse(courseID uint) error

	ReplaceVideos(courseID uint, videos []domain.CourseVideo) error
	FindVideo(courseID, videoID uint) (*domain.CourseVideo, error)
	MarkWatched(videoID, userID uint) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) CreateCourse(course *domain.Course) (*domain.Course, error) {
	if course == nil {
		return nil, fmt.Errorf("%w: nil course", apperr.ErrValidation)
	}

	if err := r.db.Create(course).Error; err != nil {
		log.Printf("create course error: %v", err)
		return nil, fmt.Errorf("%w: create course", apperr.ErrStorage)
	}
	return course, nil
}

func (r *courseRepository) FindCourseByID(courseID uint) (*domain.Course, error) {
	course := &domain.Course{}

	if err := r.db.Preload("Videos").First(course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course", apperr.ErrNotFound)
		}
		log.Printf("find course error: %v", err)
		return nil, fmt.Errorf("%w: find course", apperr.ErrStorage)
	}
	return course, nil
}

func (r *courseRepository) FindAllCourses() ([]domain.Course, error) {
	var courses []domain.Course

	if err := r.db.Find(&courses).Error; err != nil {
		log.Printf("find all courses error: %v", err)
		return nil, fmt.Errorf("%w: find all courses", apperr.ErrStorage)
	}
	return courses, nil
}

func (r *courseRepository) FindCoursesByCategory(category string) ([]domain.Course, error) {
	var courses []domain.Course

	if err := r.db.Where("category = ?", category).Find(&courses).Error; err != nil {
		log.Printf("find courses by category error: %v", err)
		return nil, fmt.Errorf("%w: find courses by category", apperr.ErrStorage)
	}
	return courses, nil
}

func (r *courseRepository) FindCoursesByCreator(creatorID uint) ([]domain.Course, error) {
	var courses []domain.Course

	if err := r.db.Where("creator_id = ?", creatorID).Find(&courses).Error; err != nil {
		log.Printf("find courses by creator error: %v", err)
		return nil, fmt.Errorf("%w: find courses by creator", apperr.ErrStorage)
	}
	return courses, nil
}

func (r *courseRepository) SaveCourse(course *domain.Course) error {
	if course == nil {
		return fmt.Errorf("%w: nil course", apperr.ErrValidation)
	}

	if err := r.db.Save(course).Error; err != nil {
		log.Printf("save course error: %v", err)
		return fmt.Errorf("%w: save course", apperr.ErrStorage)
	}
	return nil
}

func (r *courseRepository) DeleteCourse(courseID uint) error {
	res := r.db.Delete(&domain.Course{}, courseID)
	if res.Error != nil {
		log.Printf("delete course error: %v", res.Error)
		return fmt.Errorf("%w: delete course", apperr.ErrStorage)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: course", apperr.ErrNotFound)
	}
	return nil
}

func (r *courseRepository) ReplaceVideos(courseID uint, videos []domain.CourseVideo) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&domain.CourseVideo{}).Error; err != nil {
			return err
		}
		for i := range videos {
			videos[i].CourseID = courseID
		}
		if len(videos) == 0 {
			return nil
		}
		return tx.Create(&videos).Error
	})
	if err != nil {
		log.Printf("replace videos error: %v", err)
		return fmt.Errorf("%w: replace videos", apperr.ErrStorage)
	}
	return nil
}

func (r *courseRepository) FindVideo(courseID, videoID uint) (*domain.CourseVideo, error) {
	video := &domain.CourseVideo{}

	err := r.db.Where("course_id = ?", courseID).First(video, videoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: video", apperr.ErrNotFound)
		}
		log.Printf("find video error: %v", err)
		return nil, fmt.Errorf("%w: find video", apperr.ErrStorage)
	}
	return video, nil
}

func (r *courseRepository) MarkWatched(videoID, userID uint) error {
	video := domain.CourseVideo{ID: videoID}
	user := domain.User{ID: userID}

	if err := r.db.Model(&video).Association("WatchedBy").Append(&user); err != nil {
		log.Printf("mark watched error: %v", err)
		return fmt.Errorf("%w: mark watched", apperr.ErrStorage)
	}
	return nil
}
