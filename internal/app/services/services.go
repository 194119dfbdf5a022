package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/email"
	"github.com/yigit/sempozyum/internal/pkg/metrics"
	"github.com/yigit/sempozyum/internal/pkg/websocket"
)

// Services defined in this package:
// - AuthService: registration, login and token rotation
// - UserService: admin user and role management
// - SymposiumService: symposium editions, topics and the archive
// - PaperService: paper (bildiri) submission, reviewer assignment, status override
// - ReviewService: reviewer decisions (revize) and their history
// - CommitteeService, JournalService, ProgramService, SponsorService, ContactService: public catalog

// UserStore is the user persistence used by the services
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, role models.RoleType, query string, page, size int) ([]*models.User, dto.PaginationInfo, error)
	ListActiveByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, userID int64, role models.RoleType) ([]models.StatusChange, error)
	SetActive(ctx context.Context, userID int64, active bool) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) ([]models.StatusChange, error)
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiry time.Time) error
	RotateToken(ctx context.Context, oldToken, newToken string, expiry time.Time) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// SymposiumStore persists symposium editions
type SymposiumStore interface {
	CreateSymposium(ctx context.Context, s *models.Symposium) (int64, error)
	GetSymposiumByID(ctx context.Context, id int64) (*models.Symposium, error)
	GetActiveSymposium(ctx context.Context) (*models.Symposium, error)
	ListSymposia(ctx context.Context) ([]*models.Symposium, error)
	UpdateSymposium(ctx context.Context, s *models.Symposium) error
	DeleteSymposium(ctx context.Context, id int64) ([]string, error)
	ActivateSymposium(ctx context.Context, id int64) error
	ListArchive(ctx context.Context) ([]*models.ArchiveEntry, error)
}

// TopicStore persists topics
type TopicStore interface {
	CreateTopic(ctx context.Context, t *models.Topic) (int64, error)
	GetTopicByID(ctx context.Context, id int64) (*models.Topic, error)
	ListTopics(ctx context.Context, symposiumID int64) ([]*models.Topic, error)
	UpdateTopic(ctx context.Context, t *models.Topic) error
	DeleteTopic(ctx context.Context, id int64) error
}

// PaperStore persists papers and reviewer assignments
type PaperStore interface {
	CreatePaper(ctx context.Context, p *models.Paper) (int64, error)
	GetPaperByID(ctx context.Context, id int64) (*models.Paper, error)
	ListPapers(ctx context.Context, f models.PaperFilter, page, size int) ([]*models.Paper, dto.PaginationInfo, error)
	ListPapersByAuthor(ctx context.Context, authorID int64) ([]*models.Paper, error)
	ListAcceptedPapers(ctx context.Context, symposiumID int64) ([]*models.Paper, error)
	UpdatePaper(ctx context.Context, p *models.Paper) error
	ReplaceManuscript(ctx context.Context, paperID int64, fileURL string, pages int) (*models.StatusChange, string, error)
	SetStatus(ctx context.Context, paperID int64, status models.PaperStatus) (*models.StatusChange, error)
	DeletePaper(ctx context.Context, paperID int64) (string, error)
	ReplaceReviewers(ctx context.Context, paperID int64, reviewerIDs []int64) ([]int64, *models.StatusChange, error)
	ListPaperReviewers(ctx context.Context, paperID int64) ([]*models.PaperReviewer, error)
	IsReviewerAssigned(ctx context.Context, paperID, reviewerID int64) (bool, error)
	ListAssignedPapers(ctx context.Context, reviewerID int64) ([]*models.AssignedPaper, error)
}

// RevisionStore persists reviewer decisions
type RevisionStore interface {
	RecordDecision(ctx context.Context, rev *models.Revision) (*models.StatusChange, error)
	UpdateLatestRevision(ctx context.Context, revisionID, reviewerID int64, decision models.Decision, comments string) (*models.Revision, *models.StatusChange, error)
	GetRevisionByID(ctx context.Context, id int64) (*models.Revision, error)
	ListRevisions(ctx context.Context, paperID, reviewerID int64) ([]*models.Revision, error)
}

// Notifier pushes realtime events to connected users
type Notifier interface {
	Notify(userID int64, n websocket.Notification)
}

// StatusPublisher fans a paper status change out to the author: a websocket
// event always, and a decision email when the status is final.
type StatusPublisher struct {
	users    UserStore
	notifier Notifier
	mailer   email.EmailService
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewStatusPublisher creates a new StatusPublisher
func NewStatusPublisher(users UserStore, notifier Notifier, mailer email.EmailService, m *metrics.Metrics, logger zerolog.Logger) *StatusPublisher {
	return &StatusPublisher{users: users, notifier: notifier, mailer: mailer, metrics: m, logger: logger}
}

// Publish delivers a status change; a nil change is ignored. Failures are
// logged and never returned since the change is already committed.
func (p *StatusPublisher) Publish(ctx context.Context, change *models.StatusChange) {
	if change == nil {
		return
	}

	p.metrics.StatusTransitions.WithLabelValues(string(change.To)).Inc()
	p.notify(change.AuthorID, websocket.NewNotification(websocket.PaperStatusChanged, change.PaperID, string(change.To),
		"Bildirinizin durumu güncellendi: "+change.Title))

	if !change.To.IsFinal() {
		return
	}

	author, err := p.users.GetUserByID(ctx, change.AuthorID)
	if err != nil {
		p.logger.Error().Err(err).Int64("paperID", change.PaperID).Msg("Could not load author for decision email")
		return
	}
	if err := p.mailer.SendDecisionEmail(author.Email, author.FullName(), change.Title, string(change.To)); err != nil {
		p.logger.Error().Err(err).Int64("paperID", change.PaperID).Msg("Failed to send decision email")
	}
}

// PublishAll publishes a batch of changes
func (p *StatusPublisher) PublishAll(ctx context.Context, changes []models.StatusChange) {
	for i := range changes {
		p.Publish(ctx, &changes[i])
	}
}

func (p *StatusPublisher) notify(userID int64, n websocket.Notification) {
	p.metrics.NotificationsQueued.Inc()
	p.notifier.Notify(userID, n)
}

// resolveSymposium returns the symposium with id, or the active one when id is zero
func resolveSymposium(ctx context.Context, store SymposiumStore, id int64) (*models.Symposium, error) {
	if id > 0 {
		return store.GetSymposiumByID(ctx, id)
	}
	return store.GetActiveSymposium(ctx)
}
