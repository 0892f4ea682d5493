package usecase

import (
	"context"
	"net/http"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"
	"github.com/AbdulBasithMohammed/CVPro/pkg/email"
	"github.com/AbdulBasithMohammed/CVPro/pkg/logger"
)

type contactUsecase struct {
	emailService *email.EmailService
}

func NewContactUsecase(emailService *email.EmailService) domain.ContactUsecase {
	return &contactUsecase{emailService: emailService}
}

func (u *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if !u.emailService.IsConfigured() {
		logger.Log.Error("contact email requested but SMTP is not configured")
		return apperror.New(http.StatusServiceUnavailable, "Contact service is temporarily unavailable", nil)
	}

	data := email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	}
	if err := u.emailService.SendContactEmail(data); err != nil {
		logger.Log.Error("failed to send contact email", "error", err)
		return apperror.New(http.StatusInternalServerError, "Failed to send your message. Please try again later.", err)
	}

	logger.Log.Info("contact email sent", "from", req.Email, "subject", req.Subject)
	return nil
}
