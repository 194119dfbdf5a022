package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/app/services"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

type mockArchiveService struct{ mock.Mock }

func (m *mockArchiveService) ListArchive(ctx context.Context) ([]*models.ArchiveEntry, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*models.ArchiveEntry)
	return l, args.Error(1)
}

func (m *mockArchiveService) AcceptedPapers(ctx context.Context, id int64) (*models.Symposium, []*models.Paper, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Symposium)
	p, _ := args.Get(1).([]*models.Paper)
	return s, p, args.Error(2)
}

func (m *mockArchiveService) BibTeX(ctx context.Context, id int64) (string, string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.String(1), args.Error(2)
}

type mockContactService struct{ mock.Mock }

func (m *mockContactService) Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactMessage, error) {
	args := m.Called(ctx, req)
	msg, _ := args.Get(0).(*models.ContactMessage)
	return msg, args.Error(1)
}

func (m *mockContactService) ListMessages(ctx context.Context, unread *bool, page, size int) ([]*models.ContactMessage, dto.PaginationInfo, error) {
	args := m.Called(ctx, unread, page, size)
	l, _ := args.Get(0).([]*models.ContactMessage)
	return l, args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *mockContactService) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContactService) DeleteMessage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSponsorService struct{ mock.Mock }

func (m *mockSponsorService) ListSponsors(ctx context.Context, symposiumID int64) ([]*models.Sponsor, error) {
	args := m.Called(ctx, symposiumID)
	l, _ := args.Get(0).([]*models.Sponsor)
	return l, args.Error(1)
}

func (m *mockSponsorService) CreateSponsor(ctx context.Context, req dto.SponsorRequest, logo *services.Logo) (*models.Sponsor, error) {
	args := m.Called(ctx, req, logo)
	s, _ := args.Get(0).(*models.Sponsor)
	return s, args.Error(1)
}

func (m *mockSponsorService) UpdateSponsor(ctx context.Context, id int64, req dto.SponsorRequest, logo *services.Logo) (*models.Sponsor, error) {
	args := m.Called(ctx, id, req, logo)
	s, _ := args.Get(0).(*models.Sponsor)
	return s, args.Error(1)
}

func (m *mockSponsorService) DeleteSponsor(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProgramService struct{ mock.Mock }

func (m *mockProgramService) ListProgram(ctx context.Context, symposiumID int64) (*models.Symposium, []dto.ProgramDay, error) {
	args := m.Called(ctx, symposiumID)
	s, _ := args.Get(0).(*models.Symposium)
	d, _ := args.Get(1).([]dto.ProgramDay)
	return s, d, args.Error(2)
}

func (m *mockProgramService) Booklet(ctx context.Context, symposiumID int64) ([]byte, *models.Symposium, error) {
	args := m.Called(ctx, symposiumID)
	b, _ := args.Get(0).([]byte)
	s, _ := args.Get(1).(*models.Symposium)
	return b, s, args.Error(2)
}

func (m *mockProgramService) CreateItem(ctx context.Context, req dto.ProgramItemRequest) (*models.ProgramItem, error) {
	args := m.Called(ctx, req)
	i, _ := args.Get(0).(*models.ProgramItem)
	return i, args.Error(1)
}

func (m *mockProgramService) UpdateItem(ctx context.Context, id int64, req dto.ProgramItemRequest) (*models.ProgramItem, error) {
	args := m.Called(ctx, id, req)
	i, _ := args.Get(0).(*models.ProgramItem)
	return i, args.Error(1)
}

func (m *mockProgramService) DeleteItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestArchiveController(t *testing.T) {
	svc := new(mockArchiveService)
	c := NewArchiveController(svc)
	r := gin.New()
	r.GET("/archive", c.ListArchive)
	r.GET("/archive/:symposiumId/papers", c.AcceptedPapers)
	r.GET("/archive/:symposiumId/bibtex", c.BibTeX)

	sym := &models.Symposium{ID: 1, Title: "Sempozyum 2025", Year: 2025}
	svc.On("ListArchive", mock.Anything).Return([]*models.ArchiveEntry{{Symposium: *sym, AcceptedPapers: 12}}, nil)
	svc.On("AcceptedPapers", mock.Anything, int64(1)).Return(sym, []*models.Paper{{ID: 5, AuthorName: "Ali Veli", Title: "Bildiri"}}, nil)
	svc.On("BibTeX", mock.Anything, int64(1)).Return("@inproceedings{veli2025,\n}\n", "sempozyum-2025.bib", nil)
	svc.On("BibTeX", mock.Anything, int64(99)).Return("", "", apperrors.ErrSymposiumNotFound)

	w := do(r, http.MethodGet, "/archive", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"acceptedPapers":12`)

	w = do(r, http.MethodGet, "/archive/1/papers", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var papers dto.ArchivePapersResponse
	decode(t, w, &papers)
	require.Len(t, papers.Papers, 1)
	assert.Equal(t, "Ali Veli", papers.Papers[0].AuthorName)

	w = do(r, http.MethodGet, "/archive/1/bibtex", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/x-bibtex")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sempozyum-2025.bib")
	assert.Contains(t, w.Body.String(), "@inproceedings")

	w = do(r, http.MethodGet, "/archive/99/bibtex", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactController(t *testing.T) {
	svc := new(mockContactService)
	c := NewContactController(svc)
	r := gin.New()
	r.POST("/contact", c.Submit)
	r.GET("/contact", c.ListMessages)
	r.PUT("/contact/:id/read", c.MarkRead)

	req := dto.ContactRequest{Name: "Zeynep", Email: "zeynep@uni.edu.tr", Subject: "Kayıt", Message: "Merhaba"}
	svc.On("Submit", mock.Anything, req).Return(&models.ContactMessage{ID: 1, Name: "Zeynep", CreatedAt: time.Now()}, nil)

	w := doJSON(r, http.MethodPost, "/contact", req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/contact", dto.ContactRequest{Name: "Z", Email: "not-an-email", Subject: "s", Message: "m"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	unread := true
	svc.On("ListMessages", mock.Anything, &unread, 1, 10).Return([]*models.ContactMessage{}, dto.PaginationInfo{CurrentPage: 1, PageSize: 10}, nil)
	w = do(r, http.MethodGet, "/contact?unread=true&page=1&size=10", nil, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/contact?unread=maybe", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("MarkRead", mock.Anything, int64(7)).Return(apperrors.ErrContactMessageNotFound)
	w = do(r, http.MethodPut, "/contact/7/read", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSponsorControllerLogoUpload(t *testing.T) {
	svc := new(mockSponsorService)
	c := NewSponsorController(svc, 1<<20)
	r := gin.New()
	r.POST("/sponsors", c.CreateSponsor)
	r.PUT("/sponsors/:id", c.UpdateSponsor)

	logo := []byte{0x89, 'P', 'N', 'G'}
	svc.On("CreateSponsor", mock.Anything, dto.SponsorRequest{Name: "Teknoloji A.Ş.", Tier: models.TierGold},
		mock.MatchedBy(func(l *services.Logo) bool { return l != nil && l.Filename == "logo.png" && len(l.Data) == 4 })).
		Return(&models.Sponsor{ID: 3, Name: "Teknoloji A.Ş.", Tier: models.TierGold, LogoURL: "/uploads/logos/x.png"}, nil)

	body, ct := multipartBody(t, map[string]string{"name": "Teknoloji A.Ş.", "tier": "GOLD"},
		map[string][]byte{"logo": logo}, map[string]string{"logo": "logo.png"})
	w := do(r, http.MethodPost, "/sponsors", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// No logo part keeps the current logo
	svc.On("UpdateSponsor", mock.Anything, int64(3), dto.SponsorRequest{Name: "Teknoloji A.Ş.", Tier: models.TierSilver}, (*services.Logo)(nil)).
		Return(&models.Sponsor{ID: 3, Tier: models.TierSilver}, nil)
	body, ct = multipartBody(t, map[string]string{"name": "Teknoloji A.Ş.", "tier": "SILVER"}, nil, nil)
	w = do(r, http.MethodPut, "/sponsors/3", body, ct)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body, ct = multipartBody(t, map[string]string{"name": "X", "tier": "DIAMOND"}, nil, nil)
	w = do(r, http.MethodPost, "/sponsors", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestProgramController(t *testing.T) {
	svc := new(mockProgramService)
	c := NewProgramController(svc, zerolog.Nop())
	r := gin.New()
	r.GET("/program", c.ListProgram)
	r.GET("/program/pdf", c.Booklet)

	sym := &models.Symposium{ID: 1, Year: 2026}
	svc.On("ListProgram", mock.Anything, int64(0)).Return(sym, []dto.ProgramDay{{Day: "2026-05-12"}}, nil)
	svc.On("Booklet", mock.Anything, int64(1)).Return([]byte("%PDF booklet"), sym, nil)

	w := do(r, http.MethodGet, "/program", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got ProgramResponse
	decode(t, w, &got)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "2026-05-12", got.Days[0].Day)

	w = do(r, http.MethodGet, "/program/pdf?symposiumId=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "program-2026.pdf")

	w = do(r, http.MethodGet, "/program?symposiumId=-4", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
