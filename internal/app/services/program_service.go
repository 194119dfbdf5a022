package services

import (
	"context"
	"strings"

	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/domain"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/helpers"
	"github.com/yigit/sempozyum/internal/pkg/pdfdoc"
	"github.com/yigit/sempozyum/internal/pkg/validation"
)

// ProgramStore persists program items
type ProgramStore interface {
	CreateItem(ctx context.Context, it *models.ProgramItem) (int64, error)
	GetItemByID(ctx context.Context, id int64) (*models.ProgramItem, error)
	ListItems(ctx context.Context, symposiumID int64) ([]*models.ProgramItem, error)
	UpdateItem(ctx context.Context, it *models.ProgramItem) error
	DeleteItem(ctx context.Context, id int64) error
}

// ProgramService handles the symposium schedule
type ProgramService struct {
	programRepo   ProgramStore
	symposiumRepo SymposiumStore
	paperRepo     PaperStore
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo ProgramStore, symposiumRepo SymposiumStore, paperRepo PaperStore) *ProgramService {
	return &ProgramService{programRepo: programRepo, symposiumRepo: symposiumRepo, paperRepo: paperRepo}
}

// ListProgram returns the schedule of a symposium grouped by day
func (s *ProgramService) ListProgram(ctx context.Context, symposiumID int64) (*models.Symposium, []dto.ProgramDay, error) {
	sym, items, err := s.items(ctx, symposiumID)
	if err != nil {
		return nil, nil, err
	}
	return sym, dto.GroupProgramByDay(items), nil
}

// Booklet renders the schedule of a symposium as a PDF
func (s *ProgramService) Booklet(ctx context.Context, symposiumID int64) ([]byte, *models.Symposium, error) {
	sym, items, err := s.items(ctx, symposiumID)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := pdfdoc.ProgramBooklet(sym, items)
	if err != nil {
		return nil, nil, err
	}
	return pdf, sym, nil
}

func (s *ProgramService) items(ctx context.Context, symposiumID int64) (*models.Symposium, []*models.ProgramItem, error) {
	sym, err := resolveSymposium(ctx, s.symposiumRepo, symposiumID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.programRepo.ListItems(ctx, sym.ID)
	if err != nil {
		return nil, nil, err
	}
	return sym, items, nil
}

// applyProgramRequest validates req against the symposium and fills it
func (s *ProgramService) applyProgramRequest(ctx context.Context, sym *models.Symposium, it *models.ProgramItem, req dto.ProgramItemRequest) error {
	day, err := helpers.ParseDate(req.Day)
	if err != nil {
		return apperrors.NewValidationError("day", err.Error())
	}
	if !helpers.DayWithin(day, sym.StartDate, sym.EndDate) {
		return apperrors.NewValidationError("day", "day must fall within the symposium dates")
	}

	if !validation.IsValidClock(req.StartTime) {
		return apperrors.NewValidationError("startTime", "time must be in HH:MM format")
	}
	if !validation.IsValidClock(req.EndTime) {
		return apperrors.NewValidationError("endTime", "time must be in HH:MM format")
	}
	start, _ := helpers.ParseClock(req.StartTime)
	end, _ := helpers.ParseClock(req.EndTime)
	if start >= end {
		return apperrors.NewValidationError("endTime", "end time must be after start time")
	}

	if req.PaperID != nil {
		paper, err := s.paperRepo.GetPaperByID(ctx, *req.PaperID)
		if err != nil {
			return err
		}
		if paper.Status != domain.StatusAccepted || paper.SymposiumID != sym.ID {
			return apperrors.ErrPaperNotAccepted
		}
	}

	it.Day = day
	it.StartTime = req.StartTime
	it.EndTime = req.EndTime
	it.Title = strings.TrimSpace(req.Title)
	it.SessionChair = strings.TrimSpace(req.SessionChair)
	it.Location = strings.TrimSpace(req.Location)
	it.PaperID = req.PaperID
	it.Description = req.Description
	return nil
}

// CreateItem adds a slot to the schedule
func (s *ProgramService) CreateItem(ctx context.Context, req dto.ProgramItemRequest) (*models.ProgramItem, error) {
	sym, err := resolveSymposium(ctx, s.symposiumRepo, req.SymposiumID)
	if err != nil {
		return nil, err
	}
	it := &models.ProgramItem{SymposiumID: sym.ID}
	if err := s.applyProgramRequest(ctx, sym, it, req); err != nil {
		return nil, err
	}
	if _, err := s.programRepo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// UpdateItem edits a slot within its symposium
func (s *ProgramService) UpdateItem(ctx context.Context, id int64, req dto.ProgramItemRequest) (*models.ProgramItem, error) {
	it, err := s.programRepo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sym, err := s.symposiumRepo.GetSymposiumByID(ctx, it.SymposiumID)
	if err != nil {
		return nil, err
	}
	if err := s.applyProgramRequest(ctx, sym, it, req); err != nil {
		return nil, err
	}
	if err := s.programRepo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteItem removes a slot
func (s *ProgramService) DeleteItem(ctx context.Context, id int64) error {
	return s.programRepo.DeleteItem(ctx, id)
}
