package controllers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/domain"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

type mockPaperService struct{ mock.Mock }

func (m *mockPaperService) Submit(ctx context.Context, a appauth.Actor, req dto.SubmitPaperRequest, manuscript []byte) (*models.Paper, error) {
	args := m.Called(ctx, a, req, manuscript)
	p, _ := args.Get(0).(*models.Paper)
	return p, args.Error(1)
}

func (m *mockPaperService) ListMine(ctx context.Context, a appauth.Actor) ([]*models.Paper, error) {
	args := m.Called(ctx, a)
	p, _ := args.Get(0).([]*models.Paper)
	return p, args.Error(1)
}

func (m *mockPaperService) ListPapers(ctx context.Context, f models.PaperFilter, page, size int) ([]*models.Paper, dto.PaginationInfo, error) {
	args := m.Called(ctx, f, page, size)
	p, _ := args.Get(0).([]*models.Paper)
	return p, args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *mockPaperService) GetPaper(ctx context.Context, a appauth.Actor, id int64) (*models.Paper, appauth.PaperAccess, error) {
	args := m.Called(ctx, a, id)
	p, _ := args.Get(0).(*models.Paper)
	return p, args.Get(1).(appauth.PaperAccess), args.Error(2)
}

func (m *mockPaperService) UpdatePaper(ctx context.Context, a appauth.Actor, id int64, req dto.UpdatePaperRequest) (*models.Paper, error) {
	args := m.Called(ctx, a, id, req)
	p, _ := args.Get(0).(*models.Paper)
	return p, args.Error(1)
}

func (m *mockPaperService) ReplaceManuscript(ctx context.Context, a appauth.Actor, id int64, manuscript []byte) (*models.Paper, error) {
	args := m.Called(ctx, a, id, manuscript)
	p, _ := args.Get(0).(*models.Paper)
	return p, args.Error(1)
}

func (m *mockPaperService) DeletePaper(ctx context.Context, a appauth.Actor, id int64) error {
	return m.Called(ctx, a, id).Error(0)
}

func (m *mockPaperService) AssignReviewers(ctx context.Context, paperID int64, reviewerIDs []int64) ([]*models.PaperReviewer, error) {
	args := m.Called(ctx, paperID, reviewerIDs)
	r, _ := args.Get(0).([]*models.PaperReviewer)
	return r, args.Error(1)
}

func (m *mockPaperService) ListReviewers(ctx context.Context, paperID int64) ([]*models.PaperReviewer, error) {
	args := m.Called(ctx, paperID)
	r, _ := args.Get(0).([]*models.PaperReviewer)
	return r, args.Error(1)
}

func (m *mockPaperService) SetStatus(ctx context.Context, paperID int64, status models.PaperStatus) (*models.Paper, error) {
	args := m.Called(ctx, paperID, status)
	p, _ := args.Get(0).(*models.Paper)
	return p, args.Error(1)
}

func (m *mockPaperService) ManuscriptPath(ctx context.Context, a appauth.Actor, id int64) (string, error) {
	args := m.Called(ctx, a, id)
	return args.String(0), args.Error(1)
}

func (m *mockPaperService) AcceptanceLetter(ctx context.Context, a appauth.Actor, id int64) ([]byte, error) {
	args := m.Called(ctx, a, id)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func paperRouter(svc *mockPaperService, userID int64, role models.RoleType) *gin.Engine {
	c := NewPaperController(svc, 1<<20, zerolog.Nop())
	r := gin.New()
	g := r.Group("", as(userID, role))
	g.POST("/papers", c.SubmitPaper)
	g.GET("/papers", c.ListPapers)
	g.GET("/papers/:id", c.GetPaper)
	g.POST("/papers/:id/file", c.UploadManuscript)
	g.PUT("/papers/:id/reviewers", c.AssignReviewers)
	g.GET("/papers/:id/acceptance-letter", c.AcceptanceLetter)
	return r
}

func samplePaper() *models.Paper {
	return &models.Paper{
		ID: 10, SymposiumID: 1, AuthorID: 2, AuthorName: "Ayşe Yılmaz",
		Title: "Derin Öğrenme", Abstract: "Özet", Keywords: []string{"yapay zeka"},
		Status: domain.StatusPending, FileURL: "/uploads/papers/x.pdf",
	}
}

func TestSubmitPaperController(t *testing.T) {
	author := appauth.Actor{UserID: 2, Role: models.RoleAuthor}

	t.Run("multipart submission", func(t *testing.T) {
		svc := new(mockPaperService)
		pdf := []byte("%PDF-1.4 test")
		svc.On("Submit", mock.Anything, author, mock.MatchedBy(func(req dto.SubmitPaperRequest) bool {
			return req.Title == "Derin Öğrenme" && req.Keywords == "yapay zeka, NLP" && req.TopicID == 4
		}), pdf).Return(samplePaper(), nil)

		body, ct := multipartBody(t,
			map[string]string{"title": "Derin Öğrenme", "abstract": "Özet", "keywords": "yapay zeka, NLP", "topicId": "4"},
			map[string][]byte{"file": pdf}, map[string]string{"file": "bildiri.pdf"})
		w := do(paperRouter(svc, 2, models.RoleAuthor), http.MethodPost, "/papers", body, ct)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got dto.PaperResponse
		env := decode(t, w, &got)
		assert.True(t, env.Success)
		assert.Equal(t, int64(10), got.ID)
		assert.Equal(t, "Ayşe Yılmaz", got.AuthorName)
		svc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		svc := new(mockPaperService)
		body, ct := multipartBody(t, map[string]string{"title": "T", "abstract": "A"}, nil, nil)
		w := do(paperRouter(svc, 2, models.RoleAuthor), http.MethodPost, "/papers", body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w, nil)
		assert.Equal(t, "file", env.Error.Field)
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deadline passed", func(t *testing.T) {
		svc := new(mockPaperService)
		svc.On("Submit", mock.Anything, author, mock.Anything, mock.Anything).Return(nil, apperrors.ErrSubmissionDeadlinePast)
		body, ct := multipartBody(t, map[string]string{"title": "T", "abstract": "A"},
			map[string][]byte{"file": []byte("%PDF")}, map[string]string{"file": "a.pdf"})
		w := do(paperRouter(svc, 2, models.RoleAuthor), http.MethodPost, "/papers", body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeDeadlinePassed, decode(t, w, nil).Error.Code)
	})

	t.Run("file over the limit", func(t *testing.T) {
		svc := new(mockPaperService)
		body, ct := multipartBody(t, map[string]string{"title": "T", "abstract": "A"},
			map[string][]byte{"file": make([]byte, 1<<20+1)}, map[string]string{"file": "big.pdf"})
		w := do(paperRouter(svc, 2, models.RoleAuthor), http.MethodPost, "/papers", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetPaperBlindReview(t *testing.T) {
	reviewer := appauth.Actor{UserID: 3, Role: models.RoleReviewer}
	svc := new(mockPaperService)
	svc.On("GetPaper", mock.Anything, reviewer, int64(10)).Return(samplePaper(), appauth.AccessReviewer, nil)

	w := do(paperRouter(svc, 3, models.RoleReviewer), http.MethodGet, "/papers/10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Ayşe")
	assert.NotContains(t, w.Body.String(), "authorId")

	w = do(paperRouter(svc, 3, models.RoleReviewer), http.MethodGet, "/papers/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPaperForbidden(t *testing.T) {
	stranger := appauth.Actor{UserID: 9, Role: models.RoleAuthor}
	svc := new(mockPaperService)
	svc.On("GetPaper", mock.Anything, stranger, int64(10)).Return(nil, appauth.AccessNone, apperrors.ErrPermissionDenied)

	w := do(paperRouter(svc, 9, models.RoleAuthor), http.MethodGet, "/papers/10", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListPapersFilters(t *testing.T) {
	svc := new(mockPaperService)
	want := models.PaperFilter{Status: domain.StatusUnderReview, SymposiumID: 1, TopicID: 5, Query: "ağ"}
	svc.On("ListPapers", mock.Anything, want, 2, 5).
		Return([]*models.Paper{samplePaper()}, dto.PaginationInfo{CurrentPage: 2, PageSize: 5, TotalItems: 6, TotalPages: 2}, nil)

	w := do(paperRouter(svc, 1, models.RoleAdmin), http.MethodGet,
		"/papers?status=UNDER_REVIEW&symposiumId=1&topicId=5&q=a%C4%9F&page=2&size=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.Contains(w.Body.String(), `"totalItems":6`))

	w = do(paperRouter(svc, 1, models.RoleAdmin), http.MethodGet, "/papers?topicId=x", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignReviewersController(t *testing.T) {
	svc := new(mockPaperService)
	svc.On("AssignReviewers", mock.Anything, int64(10), []int64{3, 4}).
		Return([]*models.PaperReviewer{{PaperID: 10, ReviewerID: 3}, {PaperID: 10, ReviewerID: 4}}, nil)
	svc.On("AssignReviewers", mock.Anything, int64(11), []int64{2}).Return(nil, apperrors.ErrReviewerNotAllowed)

	r := paperRouter(svc, 1, models.RoleAdmin)
	w := doJSON(r, http.MethodPut, "/papers/10/reviewers", dto.AssignReviewersRequest{ReviewerIDs: []int64{3, 4}})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPut, "/papers/11/reviewers", dto.AssignReviewersRequest{ReviewerIDs: []int64{2}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/papers/10/reviewers", map[string]interface{}{"reviewerIds": []int64{0}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadManuscriptLocked(t *testing.T) {
	author := appauth.Actor{UserID: 2, Role: models.RoleAuthor}
	svc := new(mockPaperService)
	svc.On("ReplaceManuscript", mock.Anything, author, int64(10), []byte("%PDF new")).Return(nil, apperrors.ErrPaperLocked)

	body, ct := multipartBody(t, nil, map[string][]byte{"file": []byte("%PDF new")}, map[string]string{"file": "v2.pdf"})
	w := do(paperRouter(svc, 2, models.RoleAuthor), http.MethodPost, "/papers/10/file", body, ct)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodePaperLocked, decode(t, w, nil).Error.Code)
}

func TestAcceptanceLetterController(t *testing.T) {
	author := appauth.Actor{UserID: 2, Role: models.RoleAuthor}
	svc := new(mockPaperService)
	svc.On("AcceptanceLetter", mock.Anything, author, int64(10)).Return([]byte("%PDF letter"), nil)
	svc.On("AcceptanceLetter", mock.Anything, author, int64(11)).Return(nil, apperrors.ErrPaperNotAccepted)

	r := paperRouter(svc, 2, models.RoleAuthor)
	w := do(r, http.MethodGet, "/papers/10/acceptance-letter", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "kabul-mektubu-10.pdf")

	w = do(r, http.MethodGet, "/papers/11/acceptance-letter", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}
