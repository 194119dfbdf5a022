package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/filestorage"
	"github.com/yigit/sempozyum/internal/pkg/helpers"
)

// SymposiumService handles symposium editions and their topics
type SymposiumService struct {
	symposiumRepo SymposiumStore
	topicRepo     TopicStore
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewSymposiumService creates a new SymposiumService
func NewSymposiumService(symposiumRepo SymposiumStore, topicRepo TopicStore, storage filestorage.FileStorage, logger zerolog.Logger) *SymposiumService {
	return &SymposiumService{symposiumRepo: symposiumRepo, topicRepo: topicRepo, storage: storage, logger: logger}
}

// parseDeadline accepts RFC 3339 or a bare date meaning the end of that day in UTC
func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	d, err := helpers.ParseDate(s)
	if err != nil {
		return nil, apperrors.NewValidationError("submissionDeadline", "deadline must be RFC 3339 or YYYY-MM-DD")
	}
	end := d.Add(24*time.Hour - time.Second)
	return &end, nil
}

// symposiumFromRequest validates the request and fills s
func symposiumFromRequest(req dto.SymposiumRequest, s *models.Symposium) error {
	start, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return apperrors.NewValidationError("startDate", err.Error())
	}
	end, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return apperrors.NewValidationError("endDate", err.Error())
	}
	if end.Before(start) {
		return apperrors.NewValidationError("endDate", "end date must not be before start date")
	}
	deadline, err := parseDeadline(req.SubmissionDeadline)
	if err != nil {
		return err
	}
	if deadline != nil && deadline.After(end.Add(24*time.Hour-time.Second)) {
		return apperrors.NewValidationError("submissionDeadline", "submission deadline must not be after the end date")
	}

	s.Title = strings.TrimSpace(req.Title)
	s.Year = req.Year
	s.StartDate = start
	s.EndDate = end
	s.Location = strings.TrimSpace(req.Location)
	s.Description = req.Description
	s.SubmissionDeadline = deadline
	return nil
}

// ListSymposia returns all editions
func (s *SymposiumService) ListSymposia(ctx context.Context) ([]*models.Symposium, error) {
	return s.symposiumRepo.ListSymposia(ctx)
}

// GetSymposium returns one edition
func (s *SymposiumService) GetSymposium(ctx context.Context, id int64) (*models.Symposium, error) {
	return s.symposiumRepo.GetSymposiumByID(ctx, id)
}

// GetActiveSymposium returns the current edition
func (s *SymposiumService) GetActiveSymposium(ctx context.Context) (*models.Symposium, error) {
	return s.symposiumRepo.GetActiveSymposium(ctx)
}

// CreateSymposium creates an inactive edition
func (s *SymposiumService) CreateSymposium(ctx context.Context, req dto.SymposiumRequest) (*models.Symposium, error) {
	sym := &models.Symposium{}
	if err := symposiumFromRequest(req, sym); err != nil {
		return nil, err
	}
	if _, err := s.symposiumRepo.CreateSymposium(ctx, sym); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("symposiumID", sym.ID).Str("title", sym.Title).Msg("Symposium created")
	return sym, nil
}

// UpdateSymposium updates an edition
func (s *SymposiumService) UpdateSymposium(ctx context.Context, id int64, req dto.SymposiumRequest) (*models.Symposium, error) {
	sym, err := s.symposiumRepo.GetSymposiumByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := symposiumFromRequest(req, sym); err != nil {
		return nil, err
	}
	if err := s.symposiumRepo.UpdateSymposium(ctx, sym); err != nil {
		return nil, err
	}
	return s.symposiumRepo.GetSymposiumByID(ctx, id)
}

// DeleteSymposium deletes an edition without papers along with its sponsor logos
func (s *SymposiumService) DeleteSymposium(ctx context.Context, id int64) error {
	logos, err := s.symposiumRepo.DeleteSymposium(ctx, id)
	if err != nil {
		return err
	}
	for _, url := range logos {
		if err := s.storage.DeleteFile(url); err != nil {
			s.logger.Warn().Err(err).Str("logoURL", url).Msg("Failed to remove sponsor logo")
		}
	}
	return nil
}

// ActivateSymposium makes id the only active edition
func (s *SymposiumService) ActivateSymposium(ctx context.Context, id int64) (*models.Symposium, error) {
	if err := s.symposiumRepo.ActivateSymposium(ctx, id); err != nil {
		return nil, err
	}
	return s.symposiumRepo.GetSymposiumByID(ctx, id)
}

// ListTopics returns the topics of an existing symposium
func (s *SymposiumService) ListTopics(ctx context.Context, symposiumID int64) ([]*models.Topic, error) {
	if _, err := s.symposiumRepo.GetSymposiumByID(ctx, symposiumID); err != nil {
		return nil, err
	}
	return s.topicRepo.ListTopics(ctx, symposiumID)
}

// CreateTopic adds a topic to a symposium
func (s *SymposiumService) CreateTopic(ctx context.Context, symposiumID int64, req dto.TopicRequest) (*models.Topic, error) {
	if _, err := s.symposiumRepo.GetSymposiumByID(ctx, symposiumID); err != nil {
		return nil, err
	}
	t := &models.Topic{SymposiumID: symposiumID, Name: strings.TrimSpace(req.Name), Description: req.Description}
	if t.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if _, err := s.topicRepo.CreateTopic(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTopic updates a topic
func (s *SymposiumService) UpdateTopic(ctx context.Context, id int64, req dto.TopicRequest) (*models.Topic, error) {
	t, err := s.topicRepo.GetTopicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = strings.TrimSpace(req.Name)
	t.Description = req.Description
	if t.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := s.topicRepo.UpdateTopic(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTopic deletes a topic
func (s *SymposiumService) DeleteTopic(ctx context.Context, id int64) error {
	return s.topicRepo.DeleteTopic(ctx, id)
}
