package auth

import (
	"context"

	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/logger"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID int64
	Role   models.RoleType
}

// IsAdmin reports whether the actor has the ADMIN role
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// PaperAccess describes how an actor relates to a paper
type PaperAccess int

const (
	AccessNone PaperAccess = iota
	AccessOwner
	AccessReviewer
	AccessAdmin
)

// SeesAuthor reports whether author identity may be shown (blind review)
func (a PaperAccess) SeesAuthor() bool {
	return a == AccessOwner || a == AccessAdmin
}

// AssignmentChecker answers whether a reviewer is assigned to a paper
type AssignmentChecker interface {
	IsReviewerAssigned(ctx context.Context, paperID, reviewerID int64) (bool, error)
}

// AuthorizationService decides paper level access
type AuthorizationService struct {
	assignments AssignmentChecker
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(assignments AssignmentChecker) *AuthorizationService {
	return &AuthorizationService{assignments: assignments}
}

// PaperAccess returns the strongest relation of actor to the paper.
// Admin wins over ownership, ownership over an assignment.
func (s *AuthorizationService) PaperAccess(ctx context.Context, actor Actor, paper *models.Paper) (PaperAccess, error) {
	switch {
	case actor.IsAdmin():
		return AccessAdmin, nil
	case paper.AuthorID == actor.UserID:
		return AccessOwner, nil
	case actor.Role != models.RoleReviewer:
		return AccessNone, nil
	}

	assigned, err := s.assignments.IsReviewerAssigned(ctx, paper.ID, actor.UserID)
	if err != nil {
		logger.Error().Err(err).Int64("paperID", paper.ID).Int64("userID", actor.UserID).Msg("Error checking reviewer assignment")
		return AccessNone, err
	}
	if assigned {
		return AccessReviewer, nil
	}
	return AccessNone, nil
}

// RequirePaperAccess is PaperAccess that fails with ErrPermissionDenied unless
// the relation is one of allowed
func (s *AuthorizationService) RequirePaperAccess(ctx context.Context, actor Actor, paper *models.Paper, allowed ...PaperAccess) (PaperAccess, error) {
	access, err := s.PaperAccess(ctx, actor, paper)
	if err != nil {
		return AccessNone, err
	}
	for _, a := range allowed {
		if a == access {
			return access, nil
		}
	}
	return AccessNone, apperrors.ErrPermissionDenied
}
