package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
)

// SymposiumService is what SymposiumController needs from the symposium service
type SymposiumService interface {
	ListSymposia(ctx context.Context) ([]*models.Symposium, error)
	GetSymposium(ctx context.Context, id int64) (*models.Symposium, error)
	GetActiveSymposium(ctx context.Context) (*models.Symposium, error)
	CreateSymposium(ctx context.Context, req dto.SymposiumRequest) (*models.Symposium, error)
	UpdateSymposium(ctx context.Context, id int64, req dto.SymposiumRequest) (*models.Symposium, error)
	DeleteSymposium(ctx context.Context, id int64) error
	ActivateSymposium(ctx context.Context, id int64) (*models.Symposium, error)
	ListTopics(ctx context.Context, symposiumID int64) ([]*models.Topic, error)
	CreateTopic(ctx context.Context, symposiumID int64, req dto.TopicRequest) (*models.Topic, error)
	UpdateTopic(ctx context.Context, id int64, req dto.TopicRequest) (*models.Topic, error)
	DeleteTopic(ctx context.Context, id int64) error
}

// SymposiumController handles symposium editions (sempozyum) and topics
type SymposiumController struct {
	symposiumService SymposiumService
	logger           zerolog.Logger
}

// NewSymposiumController creates a new SymposiumController
func NewSymposiumController(symposiumService SymposiumService, logger zerolog.Logger) *SymposiumController {
	return &SymposiumController{symposiumService: symposiumService, logger: logger}
}

// ListSymposia godoc
// @Summary List symposia
// @Tags symposia
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Symposium} "Symposia"
// @Router /symposia [get]
func (c *SymposiumController) ListSymposia(ctx *gin.Context) {
	list, err := c.symposiumService.ListSymposia(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, list, "")
}

// GetActiveSymposium godoc
// @Summary Current symposium
// @Tags symposia
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Symposium} "Active symposium"
// @Failure 404 {object} dto.ErrorResponse "No active symposium"
// @Router /symposia/active [get]
func (c *SymposiumController) GetActiveSymposium(ctx *gin.Context) {
	sym, err := c.symposiumService.GetActiveSymposium(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, sym, "")
}

// GetSymposium godoc
// @Summary Get a symposium
// @Tags symposia
// @Produce json
// @Param id path int true "Symposium ID"
// @Success 200 {object} dto.APIResponse{data=models.Symposium} "Symposium"
// @Failure 404 {object} dto.ErrorResponse "Symposium not found"
// @Router /symposia/{id} [get]
func (c *SymposiumController) GetSymposium(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	sym, err := c.symposiumService.GetSymposium(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, sym, "")
}

// CreateSymposium godoc
// @Summary Create a symposium
// @Description New editions start inactive
// @Tags symposia
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SymposiumRequest true "Symposium"
// @Success 201 {object} dto.APIResponse{data=models.Symposium} "Created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /symposia [post]
func (c *SymposiumController) CreateSymposium(ctx *gin.Context) {
	var req dto.SymposiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	sym, err := c.symposiumService.CreateSymposium(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, sym, "Symposium created")
}

// UpdateSymposium godoc
// @Summary Update a symposium
// @Tags symposia
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Symposium ID"
// @Param request body dto.SymposiumRequest true "Symposium"
// @Success 200 {object} dto.APIResponse{data=models.Symposium} "Updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Symposium not found"
// @Router /symposia/{id} [put]
func (c *SymposiumController) UpdateSymposium(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.SymposiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	sym, err := c.symposiumService.UpdateSymposium(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, sym, "Symposium updated")
}

// DeleteSymposium godoc
// @Summary Delete a symposium
// @Description Refused while papers reference it
// @Tags symposia
// @Produce json
// @Security BearerAuth
// @Param id path int true "Symposium ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 409 {object} dto.ErrorResponse "Symposium has papers"
// @Router /symposia/{id} [delete]
func (c *SymposiumController) DeleteSymposium(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.symposiumService.DeleteSymposium(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("symposiumID", id).Msg("Symposium deleted")
	ok(ctx, nil, "Symposium deleted")
}

// ActivateSymposium godoc
// @Summary Activate a symposium
// @Description Deactivates every other edition and activates this one
// @Tags symposia
// @Produce json
// @Security BearerAuth
// @Param id path int true "Symposium ID"
// @Success 200 {object} dto.APIResponse{data=models.Symposium} "Activated"
// @Failure 404 {object} dto.ErrorResponse "Symposium not found"
// @Router /symposia/{id}/activate [put]
func (c *SymposiumController) ActivateSymposium(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	sym, err := c.symposiumService.ActivateSymposium(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("symposiumID", id).Msg("Symposium activated")
	ok(ctx, sym, "Symposium activated")
}

// ListTopics godoc
// @Summary List topics of a symposium
// @Tags topics
// @Produce json
// @Param id path int true "Symposium ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Topic} "Topics"
// @Failure 404 {object} dto.ErrorResponse "Symposium not found"
// @Router /symposia/{id}/topics [get]
func (c *SymposiumController) ListTopics(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	topics, err := c.symposiumService.ListTopics(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, topics, "")
}

// CreateTopic godoc
// @Summary Add a topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Symposium ID"
// @Param request body dto.TopicRequest true "Topic"
// @Success 201 {object} dto.APIResponse{data=models.Topic} "Created"
// @Failure 409 {object} dto.ErrorResponse "Topic name already used"
// @Router /symposia/{id}/topics [post]
func (c *SymposiumController) CreateTopic(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	topic, err := c.symposiumService.CreateTopic(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, topic, "Topic created")
}

// UpdateTopic godoc
// @Summary Update a topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body dto.TopicRequest true "Topic"
// @Success 200 {object} dto.APIResponse{data=models.Topic} "Updated"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /topics/{id} [put]
func (c *SymposiumController) UpdateTopic(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	topic, err := c.symposiumService.UpdateTopic(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, topic, "Topic updated")
}

// DeleteTopic godoc
// @Summary Delete a topic
// @Description Papers of the topic keep existing without a topic
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /topics/{id} [delete]
func (c *SymposiumController) DeleteTopic(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.symposiumService.DeleteTopic(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Topic deleted")
}
