package services

import (
	"context"
	"strings"

	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/validation"
)

// JournalStore persists partner journals
type JournalStore interface {
	CreateJournal(ctx context.Context, j *models.Journal) (int64, error)
	GetJournalByID(ctx context.Context, id int64) (*models.Journal, error)
	ListJournals(ctx context.Context) ([]*models.Journal, error)
	UpdateJournal(ctx context.Context, j *models.Journal) error
	DeleteJournal(ctx context.Context, id int64) error
}

// JournalService handles partner journals
type JournalService struct {
	journalRepo JournalStore
}

// NewJournalService creates a new JournalService
func NewJournalService(journalRepo JournalStore) *JournalService {
	return &JournalService{journalRepo: journalRepo}
}

// journalFromRequest validates the ISSN and fills j
func journalFromRequest(j *models.Journal, req dto.JournalRequest) error {
	issn := strings.ToUpper(strings.TrimSpace(req.ISSN))
	if issn != "" && !validation.IsValidISSN(issn) {
		return apperrors.NewValidationError("issn", "ISSN must look like 1234-567X")
	}
	j.Name = strings.TrimSpace(req.Name)
	j.ISSN = issn
	j.Publisher = strings.TrimSpace(req.Publisher)
	j.URL = strings.TrimSpace(req.URL)
	j.Description = req.Description
	return nil
}

// ListJournals returns every journal
func (s *JournalService) ListJournals(ctx context.Context) ([]*models.Journal, error) {
	return s.journalRepo.ListJournals(ctx)
}

// GetJournal returns one journal
func (s *JournalService) GetJournal(ctx context.Context, id int64) (*models.Journal, error) {
	return s.journalRepo.GetJournalByID(ctx, id)
}

// CreateJournal adds a journal
func (s *JournalService) CreateJournal(ctx context.Context, req dto.JournalRequest) (*models.Journal, error) {
	j := &models.Journal{}
	if err := journalFromRequest(j, req); err != nil {
		return nil, err
	}
	if _, err := s.journalRepo.CreateJournal(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// UpdateJournal edits a journal
func (s *JournalService) UpdateJournal(ctx context.Context, id int64, req dto.JournalRequest) (*models.Journal, error) {
	j, err := s.journalRepo.GetJournalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := journalFromRequest(j, req); err != nil {
		return nil, err
	}
	if err := s.journalRepo.UpdateJournal(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// DeleteJournal removes a journal
func (s *JournalService) DeleteJournal(ctx context.Context, id int64) error {
	return s.journalRepo.DeleteJournal(ctx, id)
}
