package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/domain"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/metrics"
	"github.com/yigit/sempozyum/internal/pkg/websocket"
)

type reviewFixture struct {
	papers    *MockPaperStore
	revisions *MockRevisionStore
	users     *MockUserStore
	mailer    *MockEmailService
	notifier  *recordingNotifier
	storage   *memoryStorage
	svc       *ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		papers:    new(MockPaperStore),
		revisions: new(MockRevisionStore),
		users:     new(MockUserStore),
		mailer:    new(MockEmailService),
		notifier:  newRecordingNotifier(),
		storage:   newMemoryStorage(),
	}
	m := metrics.New("test")
	publisher := NewStatusPublisher(f.users, f.notifier, f.mailer, m, zerolog.Nop())
	f.svc = NewReviewService(f.papers, f.revisions, auth.NewAuthorizationService(f.papers), f.storage, publisher, m, zerolog.Nop())
	return f
}

var reviewer = auth.Actor{UserID: 3, Role: models.RoleReviewer}

func TestCreateRevision(t *testing.T) {
	ctx := context.Background()
	paper := &models.Paper{ID: 5, AuthorID: 2, Title: "Bildiri", Status: domain.StatusUnderReview}

	t.Run("final decision notifies and emails the author", func(t *testing.T) {
		f := newReviewFixture()
		f.papers.On("GetPaperByID", ctx, int64(5)).Return(paper, nil)
		change := &models.StatusChange{PaperID: 5, AuthorID: 2, Title: "Bildiri", From: domain.StatusUnderReview, To: domain.StatusAccepted}
		f.revisions.On("RecordDecision", ctx, mock.MatchedBy(func(r *models.Revision) bool {
			return r.ReviewerID == 3 && r.Decision == domain.DecisionAccept && r.Comments == "Uygun"
		})).Return(change, nil)
		f.users.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2, Email: "yazar@uni.edu.tr", FirstName: "Ali", LastName: "Veli"}, nil)
		f.mailer.On("SendDecisionEmail", "yazar@uni.edu.tr", "Ali Veli", "Bildiri", "ACCEPTED").Return(nil)

		out, err := f.svc.CreateRevision(ctx, reviewer, 5, domain.DecisionAccept, "  Uygun ", nil)
		require.NoError(t, err)
		assert.True(t, out.Changed)
		assert.Equal(t, domain.StatusAccepted, out.Status)
		assert.Equal(t, []websocket.NotificationType{websocket.RevisionAdded, websocket.PaperStatusChanged}, f.notifier.types(2))
		f.mailer.AssertExpectations(t)
	})

	t.Run("status unchanged keeps current status", func(t *testing.T) {
		f := newReviewFixture()
		f.papers.On("GetPaperByID", ctx, int64(5)).Return(paper, nil)
		f.revisions.On("RecordDecision", ctx, mock.Anything).Return(nil, nil)

		out, err := f.svc.CreateRevision(ctx, reviewer, 5, domain.DecisionReject, "", nil)
		require.NoError(t, err)
		assert.False(t, out.Changed)
		assert.Equal(t, domain.StatusUnderReview, out.Status)
		f.mailer.AssertNotCalled(t, "SendDecisionEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown decision", func(t *testing.T) {
		f := newReviewFixture()
		_, err := f.svc.CreateRevision(ctx, reviewer, 5, "MAYBE", "", nil)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("attachment must be a PDF", func(t *testing.T) {
		f := newReviewFixture()
		f.papers.On("GetPaperByID", ctx, int64(5)).Return(paper, nil)

		_, err := f.svc.CreateRevision(ctx, reviewer, 5, domain.DecisionRevise, "", []byte("not a pdf"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidManuscript)
	})

	t.Run("rejected record removes stored attachment", func(t *testing.T) {
		f := newReviewFixture()
		f.papers.On("GetPaperByID", ctx, int64(5)).Return(paper, nil)
		f.revisions.On("RecordDecision", ctx, mock.Anything).Return(nil, apperrors.ErrNotAssigned)

		_, err := f.svc.CreateRevision(ctx, reviewer, 5, domain.DecisionRevise, "", samplePDF(t, 1))
		assert.ErrorIs(t, err, apperrors.ErrNotAssigned)
		assert.Zero(t, f.storage.count())
	})
}

func TestListRevisionsVisibility(t *testing.T) {
	ctx := context.Background()
	paper := &models.Paper{ID: 5, AuthorID: 2, Status: domain.StatusUnderReview}
	rows := []*models.Revision{{ID: 1, PaperID: 5, ReviewerID: 3}, {ID: 2, PaperID: 5, ReviewerID: 4}}

	t.Run("author sees all rows anonymously", func(t *testing.T) {
		f := newReviewFixture()
		f.papers.On("GetPaperByID", ctx, int64(5)).Return(paper, nil)
		f.revisions.On("ListRevisions", ctx, int64(5), int64(0)).Return(rows, nil)

		list, anonymous, err := f.svc.ListRevisions(ctx, author, 5)
		require.NoError(t, err)
		assert.True(t, anonymous)
		assert.Len(t, list, 2)
	})

	t.Run("reviewer sees own rows", func(t *testing.T) {
		f := newReviewFixture()
		f.papers.On("GetPaperByID", ctx, int64(5)).Return(paper, nil)
		f.papers.On("IsReviewerAssigned", ctx, int64(5), int64(3)).Return(true, nil)
		f.revisions.On("ListRevisions", ctx, int64(5), int64(3)).Return(rows[:1], nil)

		list, anonymous, err := f.svc.ListRevisions(ctx, reviewer, 5)
		require.NoError(t, err)
		assert.False(t, anonymous)
		assert.Len(t, list, 1)
	})

	t.Run("unassigned reviewer is refused", func(t *testing.T) {
		f := newReviewFixture()
		f.papers.On("GetPaperByID", ctx, int64(5)).Return(paper, nil)
		f.papers.On("IsReviewerAssigned", ctx, int64(5), int64(9)).Return(false, nil)

		_, _, err := f.svc.ListRevisions(ctx, auth.Actor{UserID: 9, Role: models.RoleReviewer}, 5)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestUpdateRevision(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture()
	rev := &models.Revision{ID: 7, PaperID: 5, ReviewerID: 3, Decision: domain.DecisionRevise}
	change := &models.StatusChange{PaperID: 5, AuthorID: 2, From: domain.StatusUnderReview, To: domain.StatusRevisionRequested}
	f.revisions.On("UpdateLatestRevision", ctx, int64(7), int64(3), domain.DecisionRevise, "Kaynakça eksik").Return(rev, change, nil)
	f.papers.On("GetPaperByID", ctx, int64(5)).Return(&models.Paper{ID: 5, Status: domain.StatusRevisionRequested}, nil)

	out, err := f.svc.UpdateRevision(ctx, reviewer, 7, domain.DecisionRevise, "Kaynakça eksik")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRevisionRequested, out.Status)
	assert.Equal(t, []websocket.NotificationType{websocket.PaperStatusChanged}, f.notifier.types(2))
}

func TestRevisionFilePath(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture()
	url, _ := f.storage.Save([]byte("%PDF"), ".pdf", "revisions")
	f.revisions.On("GetRevisionByID", ctx, int64(7)).Return(&models.Revision{ID: 7, PaperID: 5, ReviewerID: 3, FileURL: url}, nil)
	f.papers.On("GetPaperByID", ctx, int64(5)).Return(&models.Paper{ID: 5, AuthorID: 2}, nil)

	path, err := f.svc.RevisionFilePath(ctx, reviewer, 7)
	require.NoError(t, err)
	assert.Equal(t, "/data"+url, path)

	_, err = f.svc.RevisionFilePath(ctx, author, 7)
	require.NoError(t, err)

	_, err = f.svc.RevisionFilePath(ctx, auth.Actor{UserID: 8, Role: models.RoleAuthor}, 7)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
