package controllers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/app/services"
	"github.com/yigit/sempozyum/internal/middleware"
)

// ReviewService is what ReviewController needs from the review service
type ReviewService interface {
	ListAssigned(ctx context.Context, actor appauth.Actor) ([]*models.AssignedPaper, error)
	CreateRevision(ctx context.Context, actor appauth.Actor, paperID int64, decision models.Decision, comments string, attachment []byte) (*services.RevisionOutcome, error)
	UpdateRevision(ctx context.Context, actor appauth.Actor, revisionID int64, decision models.Decision, comments string) (*services.RevisionOutcome, error)
	ListRevisions(ctx context.Context, actor appauth.Actor, paperID int64) ([]*models.Revision, bool, error)
	RevisionFilePath(ctx context.Context, actor appauth.Actor, revisionID int64) (string, error)
}

// ReviewController handles reviewer (hakem) decisions, the revize history
type ReviewController struct {
	reviewService ReviewService
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService ReviewService, maxUploadSize int64, logger zerolog.Logger) *ReviewController {
	return &ReviewController{reviewService: reviewService, maxUploadSize: maxUploadSize, logger: logger}
}

func revisionResult(out *services.RevisionOutcome) dto.RevisionResult {
	return dto.RevisionResult{
		Revision:    dto.FromRevisions([]*models.Revision{out.Revision}, false)[0],
		PaperStatus: out.Status,
		Changed:     out.Changed,
	}
}

// ListAssigned godoc
// @Summary My review queue
// @Description Papers assigned to the caller with the caller's latest decision
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignedPaperResponse} "Assigned papers"
// @Router /reviews/assigned [get]
func (c *ReviewController) ListAssigned(ctx *gin.Context) {
	caller, found := actor(ctx)
	if !found {
		return
	}
	list, err := c.reviewService.ListAssigned(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromAssignedPapers(list), "")
}

// CreateRevision godoc
// @Summary Record a decision
// @Description JSON body, or multipart form with an optional annotated PDF in "file". The paper status is re-evaluated.
// @Tags reviews
// @Accept json,multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Param request body dto.CreateRevisionRequest true "Decision"
// @Success 201 {object} dto.APIResponse{data=dto.RevisionResult} "Recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid decision or file"
// @Failure 403 {object} dto.ErrorResponse "Not assigned"
// @Failure 409 {object} dto.ErrorResponse "Paper has a final decision"
// @Router /papers/{id}/revisions [post]
func (c *ReviewController) CreateRevision(ctx *gin.Context) {
	paperID, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}

	var req dto.CreateRevisionRequest
	var attachment []byte
	if isMultipart(ctx) {
		limitBody(ctx, c.maxUploadSize)
		if err := ctx.ShouldBind(&req); err != nil {
			middleware.HandleValidationError(ctx, err)
			return
		}
		data, _, err := readUpload(ctx, "file", c.maxUploadSize)
		if err != nil && !errors.Is(err, errFileMissing) {
			middleware.HandleAPIError(ctx, err)
			return
		}
		attachment = data
	} else if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	out, err := c.reviewService.CreateRevision(ctx.Request.Context(), caller, paperID, req.Decision, req.Comments, attachment)
	if err != nil {
		c.logger.Warn().Err(err).Int64("paperID", paperID).Int64("reviewerID", caller.UserID).Msg("Revision rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, revisionResult(out), "Revision recorded")
}

// UpdateRevision godoc
// @Summary Edit my latest decision
// @Description Only the reviewer's latest revision for the paper can be edited
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Revision ID"
// @Param request body dto.UpdateRevisionRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.RevisionResult} "Updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author of the revision"
// @Failure 409 {object} dto.ErrorResponse "Not the latest revision or paper finalized"
// @Router /revisions/{id} [put]
func (c *ReviewController) UpdateRevision(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	var req dto.UpdateRevisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	out, err := c.reviewService.UpdateRevision(ctx.Request.Context(), caller, id, req.Decision, req.Comments)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, revisionResult(out), "Revision updated")
}

// ListRevisions godoc
// @Summary Revision history of a paper
// @Description The author sees every row without reviewer identity; a reviewer sees only their own rows
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RevisionResponse} "Revisions"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Router /papers/{id}/revisions [get]
func (c *ReviewController) ListRevisions(ctx *gin.Context) {
	paperID, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	list, anonymous, err := c.reviewService.ListRevisions(ctx.Request.Context(), caller, paperID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromRevisions(list, anonymous), "")
}

// DownloadRevisionFile godoc
// @Summary Download a revision attachment
// @Tags reviews
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Revision ID"
// @Success 200 {file} binary "Attachment"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "No attachment"
// @Router /revisions/{id}/file [get]
func (c *ReviewController) DownloadRevisionFile(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	path, err := c.reviewService.RevisionFilePath(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(path, fmt.Sprintf("revize-%d%s", id, filepath.Ext(path)))
}
