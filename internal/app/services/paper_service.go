package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/domain"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/filestorage"
	"github.com/yigit/sempozyum/internal/pkg/metrics"
	"github.com/yigit/sempozyum/internal/pkg/pdfdoc"
	"github.com/yigit/sempozyum/internal/pkg/textnorm"
	"github.com/yigit/sempozyum/internal/pkg/websocket"
)

// PaperService handles paper (bildiri) submission and management
type PaperService struct {
	paperRepo     PaperStore
	symposiumRepo SymposiumStore
	topicRepo     TopicStore
	userRepo      UserStore
	access        *auth.AuthorizationService
	storage       filestorage.FileStorage
	publisher     *StatusPublisher
	metrics       *metrics.Metrics
	maxPages      int
	logger        zerolog.Logger
	now           func() time.Time
}

// PaperServiceDeps groups the collaborators of PaperService
type PaperServiceDeps struct {
	Papers    PaperStore
	Symposia  SymposiumStore
	Topics    TopicStore
	Users     UserStore
	Access    *auth.AuthorizationService
	Storage   filestorage.FileStorage
	Publisher *StatusPublisher
	Metrics   *metrics.Metrics
	MaxPages  int
	Logger    zerolog.Logger
}

// NewPaperService creates a new PaperService
func NewPaperService(d PaperServiceDeps) *PaperService {
	return &PaperService{
		paperRepo:     d.Papers,
		symposiumRepo: d.Symposia,
		topicRepo:     d.Topics,
		userRepo:      d.Users,
		access:        d.Access,
		storage:       d.Storage,
		publisher:     d.Publisher,
		metrics:       d.Metrics,
		maxPages:      d.MaxPages,
		logger:        d.Logger,
		now:           time.Now,
	}
}

// checkManuscript verifies the upload is a readable PDF within the page limit
func (s *PaperService) checkManuscript(data []byte) (int, error) {
	pages, err := pdfdoc.PageCount(data)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Rejected manuscript")
		return 0, apperrors.ErrInvalidManuscript
	}
	if s.maxPages > 0 && pages > s.maxPages {
		return 0, fmt.Errorf("%w: %d pages, limit is %d", apperrors.ErrTooManyPages, pages, s.maxPages)
	}
	return pages, nil
}

// checkTopic verifies that topicID belongs to the symposium; zero means no topic
func (s *PaperService) checkTopic(ctx context.Context, topicID, symposiumID int64) (*int64, error) {
	if topicID <= 0 {
		return nil, nil
	}
	topic, err := s.topicRepo.GetTopicByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic.SymposiumID != symposiumID {
		return nil, apperrors.NewValidationError("topicId", "topic does not belong to the symposium")
	}
	return &topic.ID, nil
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "tr"
	}
	return lang
}

// Submit creates a PENDING paper with its manuscript
func (s *PaperService) Submit(ctx context.Context, actor auth.Actor, req dto.SubmitPaperRequest, manuscript []byte) (*models.Paper, error) {
	sym, err := resolveSymposium(ctx, s.symposiumRepo, req.SymposiumID)
	if err != nil {
		return nil, err
	}
	if !sym.AcceptsSubmissions(s.now()) {
		return nil, apperrors.ErrSubmissionDeadlinePast
	}

	topicID, err := s.checkTopic(ctx, req.TopicID, sym.ID)
	if err != nil {
		return nil, err
	}

	pages, err := s.checkManuscript(manuscript)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.storage.Save(manuscript, ".pdf", filestorage.ManuscriptDir)
	if err != nil {
		return nil, fmt.Errorf("error storing manuscript: %w", err)
	}

	paper := &models.Paper{
		SymposiumID: sym.ID,
		TopicID:     topicID,
		AuthorID:    actor.UserID,
		Title:       strings.TrimSpace(req.Title),
		Abstract:    strings.TrimSpace(req.Abstract),
		Keywords:    textnorm.Keywords(req.Keywords),
		CoAuthors:   strings.TrimSpace(req.CoAuthors),
		Language:    normalizeLanguage(req.Language),
		FileURL:     fileURL,
		PageCount:   pages,
		Status:      domain.StatusPending,
	}
	if _, err := s.paperRepo.CreatePaper(ctx, paper); err != nil {
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned manuscript")
		}
		return nil, err
	}

	s.metrics.PapersSubmitted.Inc()
	s.logger.Info().Int64("paperID", paper.ID).Int64("authorID", actor.UserID).Int("pages", pages).Msg("Paper submitted")
	return s.paperRepo.GetPaperByID(ctx, paper.ID)
}

// ListMine returns the caller's papers
func (s *PaperService) ListMine(ctx context.Context, actor auth.Actor) ([]*models.Paper, error) {
	return s.paperRepo.ListPapersByAuthor(ctx, actor.UserID)
}

// ListPapers returns a filtered page of papers for administrators
func (s *PaperService) ListPapers(ctx context.Context, f models.PaperFilter, page, size int) ([]*models.Paper, dto.PaginationInfo, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, dto.PaginationInfo{}, apperrors.NewValidationError("status", "unknown paper status")
	}
	f.Query = strings.TrimSpace(f.Query)
	return s.paperRepo.ListPapers(ctx, f, page, size)
}

// GetPaper returns a paper and the caller's relation to it
func (s *PaperService) GetPaper(ctx context.Context, actor auth.Actor, id int64) (*models.Paper, auth.PaperAccess, error) {
	paper, err := s.paperRepo.GetPaperByID(ctx, id)
	if err != nil {
		return nil, auth.AccessNone, err
	}
	access, err := s.access.RequirePaperAccess(ctx, actor, paper, auth.AccessOwner, auth.AccessAdmin, auth.AccessReviewer)
	if err != nil {
		return nil, auth.AccessNone, err
	}
	return paper, access, nil
}

// ownedPaper loads a paper and requires the caller to be its author
func (s *PaperService) ownedPaper(ctx context.Context, actor auth.Actor, id int64) (*models.Paper, error) {
	paper, err := s.paperRepo.GetPaperByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if paper.AuthorID != actor.UserID {
		return nil, apperrors.ErrPermissionDenied
	}
	return paper, nil
}

// UpdatePaper edits metadata while the author may still change the paper
func (s *PaperService) UpdatePaper(ctx context.Context, actor auth.Actor, id int64, req dto.UpdatePaperRequest) (*models.Paper, error) {
	paper, err := s.ownedPaper(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !paper.Status.AuthorCanEdit() {
		return nil, apperrors.ErrPaperLocked
	}

	var topicID int64
	if req.TopicID != nil {
		topicID = *req.TopicID
	}
	if paper.TopicID, err = s.checkTopic(ctx, topicID, paper.SymposiumID); err != nil {
		return nil, err
	}

	paper.Title = strings.TrimSpace(req.Title)
	paper.Abstract = strings.TrimSpace(req.Abstract)
	paper.Keywords = textnorm.NormalizeKeywords(req.Keywords)
	paper.CoAuthors = strings.TrimSpace(req.CoAuthors)
	paper.Language = normalizeLanguage(req.Language)
	if err := s.paperRepo.UpdatePaper(ctx, paper); err != nil {
		return nil, err
	}
	return s.paperRepo.GetPaperByID(ctx, id)
}

// ReplaceManuscript uploads a new version of the manuscript. A paper waiting
// for revision goes back under review and its reviewers are notified.
func (s *PaperService) ReplaceManuscript(ctx context.Context, actor auth.Actor, id int64, manuscript []byte) (*models.Paper, error) {
	paper, err := s.ownedPaper(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !paper.Status.AuthorCanEdit() {
		return nil, apperrors.ErrPaperLocked
	}

	pages, err := s.checkManuscript(manuscript)
	if err != nil {
		return nil, err
	}
	fileURL, err := s.storage.Save(manuscript, ".pdf", filestorage.ManuscriptDir)
	if err != nil {
		return nil, fmt.Errorf("error storing manuscript: %w", err)
	}

	change, oldURL, err := s.paperRepo.ReplaceManuscript(ctx, id, fileURL, pages)
	if err != nil {
		_ = s.storage.DeleteFile(fileURL)
		return nil, err
	}
	if oldURL != "" && oldURL != fileURL {
		if err := s.storage.DeleteFile(oldURL); err != nil {
			s.logger.Warn().Err(err).Str("fileURL", oldURL).Msg("Failed to remove previous manuscript")
		}
	}

	reviewers, err := s.paperRepo.ListPaperReviewers(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("paperID", id).Msg("Could not load reviewers for resubmission notice")
	}
	for _, r := range reviewers {
		s.publisher.notify(r.ReviewerID, websocket.NewNotification(websocket.PaperResubmitted, id, "",
			"Değerlendirdiğiniz bildirinin yeni sürümü yüklendi: "+paper.Title))
	}
	s.publisher.Publish(ctx, change)

	return s.paperRepo.GetPaperByID(ctx, id)
}

// DeletePaper deletes a paper. Authors may delete their own PENDING papers,
// administrators any paper.
func (s *PaperService) DeletePaper(ctx context.Context, actor auth.Actor, id int64) error {
	paper, err := s.paperRepo.GetPaperByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		if paper.AuthorID != actor.UserID {
			return apperrors.ErrPermissionDenied
		}
		if paper.Status != domain.StatusPending {
			return apperrors.ErrPaperLocked
		}
	}

	fileURL, err := s.paperRepo.DeletePaper(ctx, id)
	if err != nil {
		return err
	}
	if fileURL != "" {
		if err := s.storage.DeleteFile(fileURL); err != nil {
			s.logger.Warn().Err(err).Str("fileURL", fileURL).Msg("Failed to remove manuscript of deleted paper")
		}
	}
	s.logger.Info().Int64("paperID", id).Int64("deletedBy", actor.UserID).Msg("Paper deleted")
	return nil
}

// AssignReviewers replaces the reviewer set of a paper. Every reviewer must be
// an active REVIEWER other than the author. Newly added reviewers are notified.
func (s *PaperService) AssignReviewers(ctx context.Context, paperID int64, reviewerIDs []int64) ([]*models.PaperReviewer, error) {
	paper, err := s.paperRepo.GetPaperByID(ctx, paperID)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(reviewerIDs)
	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, id := range ids {
		u, ok := byID[id]
		switch {
		case !ok:
			return nil, fmt.Errorf("%w: user %d does not exist", apperrors.ErrReviewerNotAllowed, id)
		case u.RoleType != models.RoleReviewer || !u.IsActive:
			return nil, fmt.Errorf("%w: user %d is not an active reviewer", apperrors.ErrReviewerNotAllowed, id)
		case u.ID == paper.AuthorID:
			return nil, fmt.Errorf("%w: the author cannot review their own paper", apperrors.ErrReviewerNotAllowed)
		}
	}

	added, change, err := s.paperRepo.ReplaceReviewers(ctx, paperID, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range added {
		s.publisher.notify(id, websocket.NewNotification(websocket.ReviewerAssigned, paperID, "",
			"Size değerlendirme için yeni bir bildiri atandı: "+paper.Title))
	}
	s.publisher.Publish(ctx, change)
	s.logger.Info().Int64("paperID", paperID).Ints64("reviewers", ids).Msg("Reviewers assigned")

	return s.paperRepo.ListPaperReviewers(ctx, paperID)
}

// ListReviewers returns the reviewers of a paper
func (s *PaperService) ListReviewers(ctx context.Context, paperID int64) ([]*models.PaperReviewer, error) {
	if _, err := s.paperRepo.GetPaperByID(ctx, paperID); err != nil {
		return nil, err
	}
	return s.paperRepo.ListPaperReviewers(ctx, paperID)
}

// SetStatus overrides a paper's status. The override holds until the next
// reviewer decision re-evaluates the paper.
func (s *PaperService) SetStatus(ctx context.Context, paperID int64, status models.PaperStatus) (*models.Paper, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "unknown paper status")
	}
	change, err := s.paperRepo.SetStatus(ctx, paperID, status)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, change)
	return s.paperRepo.GetPaperByID(ctx, paperID)
}

// ManuscriptPath returns the stored manuscript of a paper the caller may read
func (s *PaperService) ManuscriptPath(ctx context.Context, actor auth.Actor, id int64) (string, error) {
	paper, _, err := s.GetPaper(ctx, actor, id)
	if err != nil {
		return "", err
	}
	path := s.storage.GetFullPath(paper.FileURL)
	if paper.FileURL == "" || path == "" {
		return "", apperrors.NewResourceNotFoundError("manuscript not found")
	}
	return path, nil
}

// AcceptanceLetter renders the acceptance letter of an ACCEPTED paper
func (s *PaperService) AcceptanceLetter(ctx context.Context, actor auth.Actor, id int64) ([]byte, error) {
	paper, err := s.paperRepo.GetPaperByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.RequirePaperAccess(ctx, actor, paper, auth.AccessOwner, auth.AccessAdmin); err != nil {
		return nil, err
	}
	if paper.Status != domain.StatusAccepted {
		return nil, apperrors.ErrPaperNotAccepted
	}

	sym, err := s.symposiumRepo.GetSymposiumByID(ctx, paper.SymposiumID)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetUserByID(ctx, paper.AuthorID)
	if err != nil {
		return nil, err
	}
	return pdfdoc.AcceptanceLetter(sym, paper, author.FullName(), s.now())
}

// uniqueIDs drops duplicates and non-positive IDs, keeping a stable order
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
