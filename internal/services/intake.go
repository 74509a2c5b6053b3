package services

import (
	"context"
	"errors"
	"plantastic/internal/models"
	"strings"

	"gorm.io/gorm"
)

// IntakeService stores complaint forms and newsletter subscriptions.
type IntakeService struct {
	db   *gorm.DB
	mail *MailService
}

func NewIntakeService(db *gorm.DB, mail *MailService) *IntakeService {
	return &IntakeService{db: db, mail: mail}
}

type ComplaintInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func (s *IntakeService) SubmitComplaint(ctx context.Context, in ComplaintInput) (*models.Complaint, error) {
	name := strings.TrimSpace(in.Name)
	message := strings.TrimSpace(in.Message)
	if name == "" || message == "" || strings.TrimSpace(in.Email) == "" {
		return nil, validationError("Name, email and message are required")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	complaint := models.Complaint{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(in.Phone),
		Message: message,
	}
	if err := s.db.WithContext(ctx).Create(&complaint).Error; err != nil {
		return nil, internalError("complaint", err)
	}
	return &complaint, nil
}

func (s *IntakeService) Subscribe(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	tx := s.db.WithContext(ctx)
	var count int64
	if err := tx.Model(&models.NewsletterSubscriber{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return internalError("subscribe", err)
	}
	if count > 0 {
		return validationError("Email already subscribed!")
	}
	if err := insertSubscriber(tx, email); err != nil {
		return err
	}

	if s.mail != nil {
		s.mail.SendNewsletterWelcome(email)
	}
	return nil
}

func insertSubscriber(tx *gorm.DB, email string) error {
	if err := tx.Create(&models.NewsletterSubscriber{Email: email}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return validationError("Email already subscribed!")
		}
		return internalError("subscribe", err)
	}
	return nil
}

func (s *IntakeService) Unsubscribe(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.NewsletterSubscriber{})
	if res.Error != nil {
		return internalError("unsubscribe", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("Email is not subscribed")
	}
	return nil
}
