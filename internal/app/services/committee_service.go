package services

import (
	"context"
	"strings"

	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

// CommitteeStore persists committee members
type CommitteeStore interface {
	CreateMember(ctx context.Context, m *models.CommitteeMember) (int64, error)
	GetMemberByID(ctx context.Context, id int64) (*models.CommitteeMember, error)
	ListMembers(ctx context.Context, symposiumID int64, committeeType models.CommitteeType) ([]*models.CommitteeMember, error)
	UpdateMember(ctx context.Context, m *models.CommitteeMember) error
	DeleteMember(ctx context.Context, id int64) error
}

// CommitteeService handles committee members
type CommitteeService struct {
	committeeRepo CommitteeStore
	symposiumRepo SymposiumStore
}

// NewCommitteeService creates a new CommitteeService
func NewCommitteeService(committeeRepo CommitteeStore, symposiumRepo SymposiumStore) *CommitteeService {
	return &CommitteeService{committeeRepo: committeeRepo, symposiumRepo: symposiumRepo}
}

// ListMembers returns the committee of a symposium (active one when zero)
func (s *CommitteeService) ListMembers(ctx context.Context, symposiumID int64, committeeType models.CommitteeType) ([]*models.CommitteeMember, error) {
	if committeeType != "" && !committeeType.Valid() {
		return nil, apperrors.NewValidationError("type", "unknown committee type")
	}
	sym, err := resolveSymposium(ctx, s.symposiumRepo, symposiumID)
	if err != nil {
		return nil, err
	}
	return s.committeeRepo.ListMembers(ctx, sym.ID, committeeType)
}

// CreateMember adds a member to a symposium committee
func (s *CommitteeService) CreateMember(ctx context.Context, req dto.CommitteeMemberRequest) (*models.CommitteeMember, error) {
	sym, err := resolveSymposium(ctx, s.symposiumRepo, req.SymposiumID)
	if err != nil {
		return nil, err
	}
	m := &models.CommitteeMember{SymposiumID: sym.ID}
	applyCommitteeRequest(m, req)
	if _, err := s.committeeRepo.CreateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMember edits a member; the symposium does not change
func (s *CommitteeService) UpdateMember(ctx context.Context, id int64, req dto.CommitteeMemberRequest) (*models.CommitteeMember, error) {
	m, err := s.committeeRepo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCommitteeRequest(m, req)
	if err := s.committeeRepo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMember removes a member
func (s *CommitteeService) DeleteMember(ctx context.Context, id int64) error {
	return s.committeeRepo.DeleteMember(ctx, id)
}

func applyCommitteeRequest(m *models.CommitteeMember, req dto.CommitteeMemberRequest) {
	m.FullName = strings.TrimSpace(req.FullName)
	m.Title = strings.TrimSpace(req.Title)
	m.Institution = strings.TrimSpace(req.Institution)
	m.CommitteeType = req.CommitteeType
	m.SortOrder = req.SortOrder
}
