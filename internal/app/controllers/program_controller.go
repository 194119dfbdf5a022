package controllers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/helpers"
)

// ProgramService is what ProgramController needs from the program service
type ProgramService interface {
	ListProgram(ctx context.Context, symposiumID int64) (*models.Symposium, []dto.ProgramDay, error)
	Booklet(ctx context.Context, symposiumID int64) ([]byte, *models.Symposium, error)
	CreateItem(ctx context.Context, req dto.ProgramItemRequest) (*models.ProgramItem, error)
	UpdateItem(ctx context.Context, id int64, req dto.ProgramItemRequest) (*models.ProgramItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

// ProgramResponse is the day-grouped program of a symposium
type ProgramResponse struct {
	Symposium *models.Symposium `json:"symposium"`
	Days      []dto.ProgramDay  `json:"days"`
}

// ProgramController handles the symposium program
type ProgramController struct {
	programService ProgramService
	logger         zerolog.Logger
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService ProgramService, logger zerolog.Logger) *ProgramController {
	return &ProgramController{programService: programService, logger: logger}
}

func querySymposiumID(ctx *gin.Context) (int64, bool) {
	id, err := helpers.QueryInt64(ctx, "symposiumId")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("symposiumId", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// ListProgram godoc
// @Summary Get the program grouped by day
// @Tags program
// @Produce json
// @Param symposiumId query int false "Symposium ID, defaults to the active one"
// @Success 200 {object} dto.APIResponse{data=ProgramResponse} "Program"
// @Failure 404 {object} dto.ErrorResponse "No such symposium"
// @Router /program [get]
func (c *ProgramController) ListProgram(ctx *gin.Context) {
	symposiumID, valid := querySymposiumID(ctx)
	if !valid {
		return
	}
	sym, days, err := c.programService.ListProgram(ctx.Request.Context(), symposiumID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, ProgramResponse{Symposium: sym, Days: days}, "")
}

// Booklet godoc
// @Summary Download the program booklet
// @Tags program
// @Produce application/pdf
// @Param symposiumId query int false "Symposium ID, defaults to the active one"
// @Success 200 {file} file "Program PDF"
// @Failure 404 {object} dto.ErrorResponse "No such symposium"
// @Router /program/pdf [get]
func (c *ProgramController) Booklet(ctx *gin.Context) {
	symposiumID, valid := querySymposiumID(ctx)
	if !valid {
		return
	}
	data, sym, err := c.programService.Booklet(ctx.Request.Context(), symposiumID)
	if err != nil {
		c.logger.Error().Err(err).Int64("symposiumID", symposiumID).Msg("Program booklet failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendPDF(ctx, data, fmt.Sprintf("program-%d.pdf", sym.Year), true)
}

// CreateItem godoc
// @Summary Add a program slot
// @Tags program
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgramItemRequest true "Slot"
// @Success 201 {object} dto.APIResponse{data=models.ProgramItem} "Created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /program [post]
func (c *ProgramController) CreateItem(ctx *gin.Context) {
	var req dto.ProgramItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	item, err := c.programService.CreateItem(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, item, "Program item created")
}

// UpdateItem godoc
// @Summary Update a program slot
// @Tags program
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program item ID"
// @Param request body dto.ProgramItemRequest true "Slot"
// @Success 200 {object} dto.APIResponse{data=models.ProgramItem} "Updated"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /program/{id} [put]
func (c *ProgramController) UpdateItem(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.ProgramItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	item, err := c.programService.UpdateItem(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, item, "Program item updated")
}

// DeleteItem godoc
// @Summary Delete a program slot
// @Tags program
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program item ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /program/{id} [delete]
func (c *ProgramController) DeleteItem(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.programService.DeleteItem(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Program item deleted")
}
