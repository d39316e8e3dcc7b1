package services

import (
	"fmt"
	"log"

	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/courseforge/courseforge/internal/domain"
	"github.com/courseforge/courseforge/internal/dto"
	"github.com/courseforge/courseforge/internal/repository"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

type PaymentService interface {
	// Pay creates and confirms a payment intent in one call.
	Pay(input dto.PaymentRequest) error
	// CourseForCheckout fetches the course shown on the checkout page.
	CourseForCheckout(courseID uint) (*domain.Course, error)
}

type paymentService struct {
	stripe   *client.API
	repo     repository.CourseRepository
	currency string
}

// NewPaymentService takes the Stripe client constructed once at process
// start; the service never builds its own.
func NewPaymentService(sc *client.API, repo repository.CourseRepository, currency string) PaymentService {
	return &paymentService{stripe: sc, repo: repo, currency: currency}
}

func (s *paymentService) Pay(input dto.PaymentRequest) error {
	if input.Amount <= 0 || input.MethodID == "" {
		return fmt.Errorf("%w: invalid payment details", apperr.ErrValidation)
	}
	if s.stripe == nil {
		return fmt.Errorf("%w: payment client is not configured", apperr.ErrStorage)
	}

	_, err := s.stripe.PaymentIntents.New(&stripe.PaymentIntentParams{
		Amount:        stripe.Int64(input.Amount),
		Currency:      stripe.String(s.currency),
		Description:   stripe.String("Course purchase"),
		PaymentMethod: stripe.String(input.MethodID),
		Confirm:       stripe.Bool(true),
	})
	if err != nil {
		log.Printf("payment failed: %v", err)
		return fmt.Errorf("%w: payment failed", apperr.ErrStorage)
	}
	return nil
}

func (s *paymentService) CourseForCheckout(courseID uint) (*domain.Course, error) {
	return s.repo.FindCourseByID(courseID)
}
