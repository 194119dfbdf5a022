package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/helpers"
)

// PaperService is what PaperController needs from the paper service
type PaperService interface {
	Submit(ctx context.Context, actor appauth.Actor, req dto.SubmitPaperRequest, manuscript []byte) (*models.Paper, error)
	ListMine(ctx context.Context, actor appauth.Actor) ([]*models.Paper, error)
	ListPapers(ctx context.Context, f models.PaperFilter, page, size int) ([]*models.Paper, dto.PaginationInfo, error)
	GetPaper(ctx context.Context, actor appauth.Actor, id int64) (*models.Paper, appauth.PaperAccess, error)
	UpdatePaper(ctx context.Context, actor appauth.Actor, id int64, req dto.UpdatePaperRequest) (*models.Paper, error)
	ReplaceManuscript(ctx context.Context, actor appauth.Actor, id int64, manuscript []byte) (*models.Paper, error)
	DeletePaper(ctx context.Context, actor appauth.Actor, id int64) error
	AssignReviewers(ctx context.Context, paperID int64, reviewerIDs []int64) ([]*models.PaperReviewer, error)
	ListReviewers(ctx context.Context, paperID int64) ([]*models.PaperReviewer, error)
	SetStatus(ctx context.Context, paperID int64, status models.PaperStatus) (*models.Paper, error)
	ManuscriptPath(ctx context.Context, actor appauth.Actor, id int64) (string, error)
	AcceptanceLetter(ctx context.Context, actor appauth.Actor, id int64) ([]byte, error)
}

// PaperController handles paper (bildiri) endpoints
type PaperController struct {
	paperService  PaperService
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewPaperController creates a new PaperController
func NewPaperController(paperService PaperService, maxUploadSize int64, logger zerolog.Logger) *PaperController {
	return &PaperController{paperService: paperService, maxUploadSize: maxUploadSize, logger: logger}
}

// SubmitPaper godoc
// @Summary Submit a paper
// @Description Multipart submission with the manuscript PDF in "file". Goes to the active symposium unless symposiumId is given.
// @Tags papers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param abstract formData string true "Abstract"
// @Param keywords formData string false "Comma separated keywords"
// @Param coAuthors formData string false "Co-authors"
// @Param language formData string false "tr or en"
// @Param topicId formData int false "Topic ID"
// @Param symposiumId formData int false "Symposium ID"
// @Param file formData file true "Manuscript (PDF)"
// @Success 201 {object} dto.APIResponse{data=dto.PaperResponse} "Submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid form, file or deadline passed"
// @Failure 404 {object} dto.ErrorResponse "Symposium or topic not found"
// @Router /papers [post]
func (c *PaperController) SubmitPaper(ctx *gin.Context) {
	caller, found := actor(ctx)
	if !found {
		return
	}
	limitBody(ctx, c.maxUploadSize)

	var req dto.SubmitPaperRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	data, _, err := readUpload(ctx, "file", c.maxUploadSize)
	if err != nil {
		if errors.Is(err, errFileMissing) {
			err = apperrors.NewValidationError("file", "manuscript PDF is required")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	paper, err := c.paperService.Submit(ctx.Request.Context(), caller, req, data)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", caller.UserID).Msg("Paper submission failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, dto.FromPaper(paper, true), "Paper submitted")
}

// ListMyPapers godoc
// @Summary My papers
// @Tags papers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PaperResponse} "Papers"
// @Router /papers/mine [get]
func (c *PaperController) ListMyPapers(ctx *gin.Context) {
	caller, found := actor(ctx)
	if !found {
		return
	}
	papers, err := c.paperService.ListMine(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromPapers(papers, true), "")
}

// ListPapers godoc
// @Summary List papers
// @Description Paginated, filterable list for administrators
// @Tags papers
// @Produce json
// @Security BearerAuth
// @Param status query string false "Paper status"
// @Param symposiumId query int false "Symposium ID"
// @Param topicId query int false "Topic ID"
// @Param q query string false "Search in title, abstract and keywords"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse} "Papers"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /papers [get]
func (c *PaperController) ListPapers(ctx *gin.Context) {
	f := models.PaperFilter{
		Status: models.PaperStatus(ctx.Query("status")),
		Query:  ctx.Query("q"),
	}
	var err error
	if f.SymposiumID, err = helpers.QueryInt64(ctx, "symposiumId"); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("symposiumId", "must be a positive integer"))
		return
	}
	if f.TopicID, err = helpers.QueryInt64(ctx, "topicId"); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("topicId", "must be a positive integer"))
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	papers, info, err := c.paperService.ListPapers(ctx.Request.Context(), f, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.PageResponse{Items: dto.FromPapers(papers, true), Pagination: info}, "")
}

// GetPaper godoc
// @Summary Get a paper
// @Description Visible to the author, administrators and assigned reviewers. Reviewers do not see author identity.
// @Tags papers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 200 {object} dto.APIResponse{data=dto.PaperResponse} "Paper"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{id} [get]
func (c *PaperController) GetPaper(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	paper, access, err := c.paperService.GetPaper(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromPaper(paper, access.SeesAuthor()), "")
}

// UpdatePaper godoc
// @Summary Edit paper metadata
// @Description Only the author, and only while the paper is PENDING or REVISION_REQUESTED
// @Tags papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Param request body dto.UpdatePaperRequest true "Metadata"
// @Success 200 {object} dto.APIResponse{data=dto.PaperResponse} "Updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 409 {object} dto.ErrorResponse "Paper is locked"
// @Router /papers/{id} [put]
func (c *PaperController) UpdatePaper(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	var req dto.UpdatePaperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	paper, err := c.paperService.UpdatePaper(ctx.Request.Context(), caller, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromPaper(paper, true), "Paper updated")
}

// UploadManuscript godoc
// @Summary Upload a new manuscript version
// @Description A paper in REVISION_REQUESTED goes back to UNDER_REVIEW and its reviewers are notified
// @Tags papers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Param file formData file true "Manuscript (PDF)"
// @Success 200 {object} dto.APIResponse{data=dto.PaperResponse} "Uploaded"
// @Failure 400 {object} dto.ErrorResponse "Invalid file"
// @Failure 409 {object} dto.ErrorResponse "Paper is locked"
// @Router /papers/{id}/file [post]
func (c *PaperController) UploadManuscript(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	limitBody(ctx, c.maxUploadSize)
	data, _, err := readUpload(ctx, "file", c.maxUploadSize)
	if err != nil {
		if errors.Is(err, errFileMissing) {
			err = apperrors.NewValidationError("file", "manuscript PDF is required")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	paper, err := c.paperService.ReplaceManuscript(ctx.Request.Context(), caller, id, data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromPaper(paper, true), "Manuscript uploaded")
}

// DownloadManuscript godoc
// @Summary Download the manuscript
// @Tags papers
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 200 {file} binary "Manuscript"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /papers/{id}/file [get]
func (c *PaperController) DownloadManuscript(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	path, err := c.paperService.ManuscriptPath(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(path, fmt.Sprintf("bildiri-%d.pdf", id))
}

// DeletePaper godoc
// @Summary Delete a paper
// @Description The author may delete a PENDING paper, administrators any paper
// @Tags papers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 409 {object} dto.ErrorResponse "Paper is locked"
// @Router /papers/{id} [delete]
func (c *PaperController) DeletePaper(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	if err := c.paperService.DeletePaper(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Paper deleted")
}

// AssignReviewers godoc
// @Summary Assign reviewers
// @Description Replaces the reviewer (hakem) set of a paper; newly added reviewers are notified
// @Tags papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Param request body dto.AssignReviewersRequest true "Reviewer IDs"
// @Success 200 {object} dto.APIResponse{data=[]models.PaperReviewer} "Current reviewers"
// @Failure 400 {object} dto.ErrorResponse "A user cannot review this paper"
// @Failure 409 {object} dto.ErrorResponse "Paper has a final decision"
// @Router /papers/{id}/reviewers [put]
func (c *PaperController) AssignReviewers(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.AssignReviewersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	reviewers, err := c.paperService.AssignReviewers(ctx.Request.Context(), id, req.ReviewerIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, reviewers, "Reviewers assigned")
}

// ListReviewers godoc
// @Summary Reviewers of a paper
// @Tags papers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 200 {object} dto.APIResponse{data=[]models.PaperReviewer} "Reviewers"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{id}/reviewers [get]
func (c *PaperController) ListReviewers(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	reviewers, err := c.paperService.ListReviewers(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, reviewers, "")
}

// UpdateStatus godoc
// @Summary Override paper status
// @Description Manual decision; it holds until the next reviewer decision
// @Tags papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Param request body dto.UpdatePaperStatusRequest true "Status"
// @Success 200 {object} dto.APIResponse{data=dto.PaperResponse} "Updated"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{id}/status [put]
func (c *PaperController) UpdateStatus(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.UpdatePaperStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	paper, err := c.paperService.SetStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromPaper(paper, true), "Status updated")
}

// AcceptanceLetter godoc
// @Summary Acceptance letter
// @Description PDF letter for an ACCEPTED paper
// @Tags papers
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 200 {file} binary "Letter"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 409 {object} dto.ErrorResponse "Paper is not accepted"
// @Router /papers/{id}/acceptance-letter [get]
func (c *PaperController) AcceptanceLetter(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	pdf, err := c.paperService.AcceptanceLetter(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendPDF(ctx, pdf, fmt.Sprintf("kabul-mektubu-%d.pdf", id), true)
}
