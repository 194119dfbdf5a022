package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/email"
)

// ContactStore persists contact messages
type ContactStore interface {
	CreateMessage(ctx context.Context, m *models.ContactMessage) (int64, error)
	ListMessages(ctx context.Context, unread *bool, page, size int) ([]*models.ContactMessage, dto.PaginationInfo, error)
	MarkRead(ctx context.Context, id int64) error
	DeleteMessage(ctx context.Context, id int64) error
}

// ContactService handles the public contact form
type ContactService struct {
	contactRepo ContactStore
	mailer      email.EmailService
	logger      zerolog.Logger
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo ContactStore, mailer email.EmailService, logger zerolog.Logger) *ContactService {
	return &ContactService{contactRepo: contactRepo, mailer: mailer, logger: logger}
}

// Submit stores a message and acknowledges it by email. Mail failures are
// logged only.
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactMessage, error) {
	m := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if _, err := s.contactRepo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	if err := s.mailer.SendContactAcknowledgement(m.Email, m.Name, m.Subject); err != nil {
		s.logger.Error().Err(err).Int64("messageID", m.ID).Msg("Failed to send contact acknowledgement")
	}
	return m, nil
}

// ListMessages returns a page of messages
func (s *ContactService) ListMessages(ctx context.Context, unread *bool, page, size int) ([]*models.ContactMessage, dto.PaginationInfo, error) {
	return s.contactRepo.ListMessages(ctx, unread, page, size)
}

// MarkRead flags a message as read
func (s *ContactService) MarkRead(ctx context.Context, id int64) error {
	return s.contactRepo.MarkRead(ctx, id)
}

// DeleteMessage removes a message
func (s *ContactService) DeleteMessage(ctx context.Context, id int64) error {
	return s.contactRepo.DeleteMessage(ctx, id)
}
