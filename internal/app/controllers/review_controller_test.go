package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/app/services"
	"github.com/yigit/sempozyum/internal/domain"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) ListAssigned(ctx context.Context, a appauth.Actor) ([]*models.AssignedPaper, error) {
	args := m.Called(ctx, a)
	l, _ := args.Get(0).([]*models.AssignedPaper)
	return l, args.Error(1)
}

func (m *mockReviewService) CreateRevision(ctx context.Context, a appauth.Actor, paperID int64, decision models.Decision, comments string, attachment []byte) (*services.RevisionOutcome, error) {
	args := m.Called(ctx, a, paperID, decision, comments, attachment)
	o, _ := args.Get(0).(*services.RevisionOutcome)
	return o, args.Error(1)
}

func (m *mockReviewService) UpdateRevision(ctx context.Context, a appauth.Actor, revisionID int64, decision models.Decision, comments string) (*services.RevisionOutcome, error) {
	args := m.Called(ctx, a, revisionID, decision, comments)
	o, _ := args.Get(0).(*services.RevisionOutcome)
	return o, args.Error(1)
}

func (m *mockReviewService) ListRevisions(ctx context.Context, a appauth.Actor, paperID int64) ([]*models.Revision, bool, error) {
	args := m.Called(ctx, a, paperID)
	l, _ := args.Get(0).([]*models.Revision)
	return l, args.Bool(1), args.Error(2)
}

func (m *mockReviewService) RevisionFilePath(ctx context.Context, a appauth.Actor, revisionID int64) (string, error) {
	args := m.Called(ctx, a, revisionID)
	return args.String(0), args.Error(1)
}

var hakem = appauth.Actor{UserID: 3, Role: models.RoleReviewer}

func reviewRouter(svc *mockReviewService, userID int64, role models.RoleType) *gin.Engine {
	c := NewReviewController(svc, 1<<20, zerolog.Nop())
	r := gin.New()
	g := r.Group("", as(userID, role))
	g.GET("/reviews/assigned", c.ListAssigned)
	g.POST("/papers/:id/revisions", c.CreateRevision)
	g.GET("/papers/:id/revisions", c.ListRevisions)
	g.PUT("/revisions/:id", c.UpdateRevision)
	return r
}

func TestCreateRevisionJSON(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("CreateRevision", mock.Anything, hakem, int64(10), domain.DecisionRevise, "Yöntem bölümü eksik", []byte(nil)).
		Return(&services.RevisionOutcome{
			Revision: &models.Revision{ID: 50, PaperID: 10, ReviewerID: 3, Decision: domain.DecisionRevise},
			Status:   domain.StatusRevisionRequested,
			Changed:  true,
		}, nil)

	w := doJSON(reviewRouter(svc, 3, models.RoleReviewer), http.MethodPost, "/papers/10/revisions",
		dto.CreateRevisionRequest{Decision: domain.DecisionRevise, Comments: "Yöntem bölümü eksik"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got dto.RevisionResult
	decode(t, w, &got)
	assert.Equal(t, int64(50), got.Revision.ID)
	assert.Equal(t, domain.StatusRevisionRequested, got.PaperStatus)
	assert.True(t, got.Changed)
	svc.AssertExpectations(t)
}

func TestCreateRevisionMultipart(t *testing.T) {
	svc := new(mockReviewService)
	notes := []byte("%PDF notes")
	svc.On("CreateRevision", mock.Anything, hakem, int64(10), domain.DecisionAccept, "", notes).
		Return(&services.RevisionOutcome{
			Revision: &models.Revision{ID: 51, PaperID: 10, ReviewerID: 3, Decision: domain.DecisionAccept, FileURL: "/uploads/revisions/a.pdf"},
			Status:   domain.StatusUnderReview,
		}, nil)

	body, ct := multipartBody(t, map[string]string{"decision": "ACCEPT"},
		map[string][]byte{"file": notes}, map[string]string{"file": "notlar.pdf"})
	w := do(reviewRouter(svc, 3, models.RoleReviewer), http.MethodPost, "/papers/10/revisions", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got dto.RevisionResult
	decode(t, w, &got)
	assert.True(t, got.Revision.HasFile)
	assert.False(t, got.Changed)
}

func TestCreateRevisionErrors(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("CreateRevision", mock.Anything, hakem, int64(11), mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrPaperFinalized)
	svc.On("CreateRevision", mock.Anything, hakem, int64(12), mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotAssigned)
	r := reviewRouter(svc, 3, models.RoleReviewer)

	w := doJSON(r, http.MethodPost, "/papers/10/revisions", map[string]string{"decision": "MAYBE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/papers/11/revisions", dto.CreateRevisionRequest{Decision: domain.DecisionAccept})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodePaperFinalized, decode(t, w, nil).Error.Code)

	w = doJSON(r, http.MethodPost, "/papers/12/revisions", dto.CreateRevisionRequest{Decision: domain.DecisionAccept})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateRevisionNotLatest(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("UpdateRevision", mock.Anything, hakem, int64(40), domain.DecisionAccept, "tamam").Return(nil, apperrors.ErrRevisionNotLatest)

	w := doJSON(reviewRouter(svc, 3, models.RoleReviewer), http.MethodPut, "/revisions/40",
		dto.UpdateRevisionRequest{Decision: domain.DecisionAccept, Comments: "tamam"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodeRevisionNotLatest, decode(t, w, nil).Error.Code)
}

func TestListRevisionsAnonymousForAuthor(t *testing.T) {
	author := appauth.Actor{UserID: 2, Role: models.RoleAuthor}
	svc := new(mockReviewService)
	svc.On("ListRevisions", mock.Anything, author, int64(10)).Return([]*models.Revision{
		{ID: 1, PaperID: 10, ReviewerID: 3, Decision: domain.DecisionRevise, Comments: "düzeltin"},
		{ID: 2, PaperID: 10, ReviewerID: 4, Decision: domain.DecisionAccept},
	}, true, nil)

	w := do(reviewRouter(svc, 2, models.RoleAuthor), http.MethodGet, "/papers/10/revisions", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []dto.RevisionResponse
	decode(t, w, &got)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Zero(t, r.ReviewerID)
	}
	assert.NotContains(t, w.Body.String(), "reviewerId")
}

func TestListAssigned(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("ListAssigned", mock.Anything, hakem).Return([]*models.AssignedPaper{
		{Paper: models.Paper{ID: 10, AuthorID: 2, AuthorName: "Ayşe Yılmaz", Title: "Derin Öğrenme", Status: domain.StatusUnderReview}},
	}, nil)

	w := do(reviewRouter(svc, 3, models.RoleReviewer), http.MethodGet, "/reviews/assigned", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Derin Öğrenme")
	assert.NotContains(t, w.Body.String(), "Ayşe")
}
