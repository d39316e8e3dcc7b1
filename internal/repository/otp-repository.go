package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OTPRepository interface {
	// Upsert creates or overwrites the single live record for an email.
	Upsert(email, code string, ttl time.Duration) error
	// FindByEmail treats expired records as missing.
	FindByEmail(email string) (*domain.OTP, error)
	Delete(email string) error
	DeleteExpired() error
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Upsert(email, code string, ttl time.Duration) error {
	rec := domain.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(&rec).Error
	if err != nil {
		log.Printf("upsert otp error: %v", err)
		return fmt.Errorf("%w: upsert otp", apperr.ErrStorage)
	}
	return nil
}

func (r *otpRepository) FindByEmail(email string) (*domain.OTP, error) {
	rec := &domain.OTP{}

	if err := r.db.First(rec, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: otp", apperr.ErrNotFound)
		}
		log.Printf("find otp error: %v", err)
		return nil, fmt.Errorf("%w: find otp", apperr.ErrStorage)
	}

	if rec.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: otp expired", apperr.ErrNotFound)
	}
	return rec, nil
}

func (r *otpRepository) Delete(email string) error {
	if err := r.db.Where("email = ?", email).Delete(&domain.OTP{}).Error; err != nil {
		log.Printf("delete otp error: %v", err)
		return fmt.Errorf("%w: delete otp", apperr.ErrStorage)
	}
	return nil
}

func (r *otpRepository) DeleteExpired() error {
	if err := r.db.Where("expires_at < ?", time.Now()).Delete(&domain.OTP{}).Error; err != nil {
		log.Printf("sweep otp error: %v", err)
		return fmt.Errorf("%w: sweep otp", apperr.ErrStorage)
	}
	return nil
}

// StartOTPSweeper deletes expired records on a ticker until stop is closed.
func StartOTPSweeper(repo OTPRepository, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = repo.DeleteExpired()
			case <-stop:
				return
			}
		}
	}()
}
