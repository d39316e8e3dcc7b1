package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByID(userID uint) (*domain.User, error)
	SaveUser(user *domain.User) error

	AddBookmark(userID, courseID uint) error
	RemoveBookmark(userID, courseID uint) error
	ListBookmarks(userID uint) ([]domain.Course, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: nil user", apperr.ErrValidation)
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, fmt.Errorf("%w: create user", apperr.ErrStorage)
	}
	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		log.Printf("find user by email error: %v", err)
		return nil, fmt.Errorf("%w: find user by email", apperr.ErrStorage)
	}
	return user, nil
}

func (r *userRepository) FindUserByID(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		log.Printf("find user by id error: %v", err)
		return nil, fmt.Errorf("%w: find user by id", apperr.ErrStorage)
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", apperr.ErrValidation)
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return fmt.Errorf("%w: save user", apperr.ErrStorage)
	}
	return nil
}

func (r *userRepository) AddBookmark(userID, courseID uint) error {
	user := domain.User{ID: userID}
	course := domain.Course{ID: courseID}

	if err := r.db.Model(&user).Association("Bookmarks").Append(&course); err != nil {
		log.Printf("add bookmark error: %v", err)
		return fmt.Errorf("%w: add bookmark", apperr.ErrStorage)
	}
	return nil
}

func (r *userRepository) RemoveBookmark(userID, courseID uint) error {
	user := domain.User{ID: userID}
	course := domain.Course{ID: courseID}

	if err := r.db.Model(&user).Association("Bookmarks").Delete(&course); err != nil {
		log.Printf("remove bookmark error: %v", err)
		return fmt.Errorf("%w: remove bookmark", apperr.ErrStorage)
	}
	return nil
}

func (r *userRepository) ListBookmarks(userID uint) ([]domain.Course, error) {
	user := domain.User{ID: userID}
	var courses []domain.Course

	if err := r.db.Model(&user).Association("Bookmarks").Find(&courses); err != nil {
		log.Printf("list bookmarks error: %v", err)
		return nil, fmt.Errorf("%w: list bookmarks", apperr.ErrStorage)
	}
	return courses, nil
}
