package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/filestorage"
	"github.com/yigit/sempozyum/internal/pkg/metrics"
	"github.com/yigit/sempozyum/internal/pkg/pdfdoc"
	"github.com/yigit/sempozyum/internal/pkg/websocket"
)

// ReviewService handles reviewer decisions (revize)
type ReviewService struct {
	paperRepo    PaperStore
	revisionRepo RevisionStore
	access       *auth.AuthorizationService
	storage      filestorage.FileStorage
	publisher    *StatusPublisher
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	paperRepo PaperStore,
	revisionRepo RevisionStore,
	access *auth.AuthorizationService,
	storage filestorage.FileStorage,
	publisher *StatusPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		paperRepo:    paperRepo,
		revisionRepo: revisionRepo,
		access:       access,
		storage:      storage,
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
	}
}

// RevisionOutcome is a recorded revision with the resulting paper status
type RevisionOutcome struct {
	Revision *models.Revision
	Status   models.PaperStatus
	Changed  bool
}

// ListAssigned returns the reviewer's queue
func (s *ReviewService) ListAssigned(ctx context.Context, actor auth.Actor) ([]*models.AssignedPaper, error) {
	return s.paperRepo.ListAssignedPapers(ctx, actor.UserID)
}

// CreateRevision records a decision of an assigned reviewer and re-evaluates
// the paper. attachment is an optional annotated PDF.
func (s *ReviewService) CreateRevision(ctx context.Context, actor auth.Actor, paperID int64, decision models.Decision, comments string, attachment []byte) (*RevisionOutcome, error) {
	if !decision.Valid() {
		return nil, apperrors.NewValidationError("decision", "decision must be ACCEPT, REVISE or REJECT")
	}

	paper, err := s.paperRepo.GetPaperByID(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleReviewer {
		return nil, apperrors.ErrNotAssigned
	}

	rev := &models.Revision{
		PaperID:    paperID,
		ReviewerID: actor.UserID,
		Decision:   decision,
		Comments:   strings.TrimSpace(comments),
	}
	if len(attachment) > 0 {
		if _, err := pdfdoc.PageCount(attachment); err != nil {
			return nil, apperrors.ErrInvalidManuscript
		}
		if rev.FileURL, err = s.storage.Save(attachment, ".pdf", filestorage.RevisionDir); err != nil {
			return nil, fmt.Errorf("error storing revision file: %w", err)
		}
	}

	change, err := s.revisionRepo.RecordDecision(ctx, rev)
	if err != nil {
		if rev.FileURL != "" {
			_ = s.storage.DeleteFile(rev.FileURL)
		}
		return nil, err
	}

	s.metrics.RevisionsRecorded.WithLabelValues(string(decision)).Inc()
	s.logger.Info().Int64("paperID", paperID).Int64("revisionID", rev.ID).Str("decision", string(decision)).Msg("Revision recorded")

	// Reviewer identity stays hidden from the author
	s.publisher.notify(paper.AuthorID, websocket.NewNotification(websocket.RevisionAdded, paperID, "",
		"Bildiriniz için yeni bir hakem değerlendirmesi eklendi: "+paper.Title))
	s.publisher.Publish(ctx, change)

	return outcome(rev, paper.Status, change), nil
}

// UpdateRevision edits the reviewer's latest revision for a paper
func (s *ReviewService) UpdateRevision(ctx context.Context, actor auth.Actor, revisionID int64, decision models.Decision, comments string) (*RevisionOutcome, error) {
	if !decision.Valid() {
		return nil, apperrors.NewValidationError("decision", "decision must be ACCEPT, REVISE or REJECT")
	}

	rev, change, err := s.revisionRepo.UpdateLatestRevision(ctx, revisionID, actor.UserID, decision, strings.TrimSpace(comments))
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, change)

	paper, err := s.paperRepo.GetPaperByID(ctx, rev.PaperID)
	if err != nil {
		return nil, err
	}
	return outcome(rev, paper.Status, change), nil
}

func outcome(rev *models.Revision, current models.PaperStatus, change *models.StatusChange) *RevisionOutcome {
	if change != nil {
		return &RevisionOutcome{Revision: rev, Status: change.To, Changed: true}
	}
	return &RevisionOutcome{Revision: rev, Status: current}
}

// ListRevisions returns the revision history visible to the caller.
// Reviewers only see their own rows; for the author rows are anonymous.
func (s *ReviewService) ListRevisions(ctx context.Context, actor auth.Actor, paperID int64) ([]*models.Revision, bool, error) {
	paper, err := s.paperRepo.GetPaperByID(ctx, paperID)
	if err != nil {
		return nil, false, err
	}
	access, err := s.access.RequirePaperAccess(ctx, actor, paper, auth.AccessOwner, auth.AccessAdmin, auth.AccessReviewer)
	if err != nil {
		return nil, false, err
	}

	switch access {
	case auth.AccessReviewer:
		list, err := s.revisionRepo.ListRevisions(ctx, paperID, actor.UserID)
		return list, false, err
	case auth.AccessOwner:
		list, err := s.revisionRepo.ListRevisions(ctx, paperID, 0)
		return list, true, err
	default:
		list, err := s.revisionRepo.ListRevisions(ctx, paperID, 0)
		return list, false, err
	}
}

// RevisionFilePath returns the attachment of a revision the caller may read:
// its reviewer, the paper's author or an administrator
func (s *ReviewService) RevisionFilePath(ctx context.Context, actor auth.Actor, revisionID int64) (string, error) {
	rev, err := s.revisionRepo.GetRevisionByID(ctx, revisionID)
	if err != nil {
		return "", err
	}
	if rev.ReviewerID != actor.UserID {
		paper, err := s.paperRepo.GetPaperByID(ctx, rev.PaperID)
		if err != nil {
			return "", err
		}
		if _, err := s.access.RequirePaperAccess(ctx, actor, paper, auth.AccessOwner, auth.AccessAdmin); err != nil {
			return "", err
		}
	}

	path := s.storage.GetFullPath(rev.FileURL)
	if rev.FileURL == "" || path == "" {
		return "", apperrors.NewResourceNotFoundError("revision file not found")
	}
	return path, nil
}
