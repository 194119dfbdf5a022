package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
)

// JournalService is what JournalController needs from the journal service
type JournalService interface {
	ListJournals(ctx context.Context) ([]*models.Journal, error)
	GetJournal(ctx context.Context, id int64) (*models.Journal, error)
	CreateJournal(ctx context.Context, req dto.JournalRequest) (*models.Journal, error)
	UpdateJournal(ctx context.Context, id int64, req dto.JournalRequest) (*models.Journal, error)
	DeleteJournal(ctx context.Context, id int64) error
}

// JournalController handles partner journals (dergi)
type JournalController struct {
	journalService JournalService
}

// NewJournalController creates a new JournalController
func NewJournalController(journalService JournalService) *JournalController {
	return &JournalController{journalService: journalService}
}

// ListJournals godoc
// @Summary List journals
// @Tags journals
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Journal} "Journals"
// @Router /journals [get]
func (c *JournalController) ListJournals(ctx *gin.Context) {
	list, err := c.journalService.ListJournals(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, list, "")
}

// GetJournal godoc
// @Summary Get a journal
// @Tags journals
// @Produce json
// @Param id path int true "Journal ID"
// @Success 200 {object} dto.APIResponse{data=models.Journal} "Journal"
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Router /journals/{id} [get]
func (c *JournalController) GetJournal(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	j, err := c.journalService.GetJournal(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, j, "")
}

// CreateJournal godoc
// @Summary Add a journal
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JournalRequest true "Journal"
// @Success 201 {object} dto.APIResponse{data=models.Journal} "Created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /journals [post]
func (c *JournalController) CreateJournal(ctx *gin.Context) {
	var req dto.JournalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	j, err := c.journalService.CreateJournal(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, j, "Journal created")
}

// UpdateJournal godoc
// @Summary Update a journal
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Journal ID"
// @Param request body dto.JournalRequest true "Journal"
// @Success 200 {object} dto.APIResponse{data=models.Journal} "Updated"
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Router /journals/{id} [put]
func (c *JournalController) UpdateJournal(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.JournalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	j, err := c.journalService.UpdateJournal(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, j, "Journal updated")
}

// DeleteJournal godoc
// @Summary Delete a journal
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Journal ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Router /journals/{id} [delete]
func (c *JournalController) DeleteJournal(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.journalService.DeleteJournal(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Journal deleted")
}
