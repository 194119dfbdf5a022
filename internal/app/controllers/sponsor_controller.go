package controllers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/app/services"
	"github.com/yigit/sempozyum/internal/middleware"
)

// SponsorService is what SponsorController needs from the sponsor service
type SponsorService interface {
	ListSponsors(ctx context.Context, symposiumID int64) ([]*models.Sponsor, error)
	CreateSponsor(ctx context.Context, req dto.SponsorRequest, logo *services.Logo) (*models.Sponsor, error)
	UpdateSponsor(ctx context.Context, id int64, req dto.SponsorRequest, logo *services.Logo) (*models.Sponsor, error)
	DeleteSponsor(ctx context.Context, id int64) error
}

// SponsorController handles sponsors and their logos
type SponsorController struct {
	sponsorService SponsorService
	maxUploadSize  int64
}

// NewSponsorController creates a new SponsorController
func NewSponsorController(sponsorService SponsorService, maxUploadSize int64) *SponsorController {
	return &SponsorController{sponsorService: sponsorService, maxUploadSize: maxUploadSize}
}

// bindSponsor reads the sponsor form and the optional logo; on failure the
// error response is already written
func (c *SponsorController) bindSponsor(ctx *gin.Context) (dto.SponsorRequest, *services.Logo, bool) {
	var req dto.SponsorRequest
	limitBody(ctx, c.maxUploadSize)
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return req, nil, false
	}
	if !isMultipart(ctx) {
		return req, nil, true
	}
	data, name, err := readUpload(ctx, "logo", c.maxUploadSize)
	if errors.Is(err, errFileMissing) {
		return req, nil, true
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return req, nil, false
	}
	return req, &services.Logo{Data: data, Filename: name}, true
}

// ListSponsors godoc
// @Summary List sponsors ordered by tier
// @Tags sponsors
// @Produce json
// @Param symposiumId query int false "Symposium ID, defaults to the active one"
// @Success 200 {object} dto.APIResponse{data=[]models.Sponsor} "Sponsors"
// @Router /sponsors [get]
func (c *SponsorController) ListSponsors(ctx *gin.Context) {
	symposiumID, valid := querySymposiumID(ctx)
	if !valid {
		return
	}
	list, err := c.sponsorService.ListSponsors(ctx.Request.Context(), symposiumID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, list, "")
}

// CreateSponsor godoc
// @Summary Add a sponsor
// @Tags sponsors
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Sponsor name"
// @Param tier formData string true "PLATINUM, GOLD, SILVER, BRONZE or SUPPORTER"
// @Param website formData string false "Website"
// @Param symposiumId formData int false "Symposium ID"
// @Param logo formData file false "Logo image"
// @Success 201 {object} dto.APIResponse{data=models.Sponsor} "Created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /sponsors [post]
func (c *SponsorController) CreateSponsor(ctx *gin.Context) {
	req, logo, valid := c.bindSponsor(ctx)
	if !valid {
		return
	}
	s, err := c.sponsorService.CreateSponsor(ctx.Request.Context(), req, logo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, s, "Sponsor created")
}

// UpdateSponsor godoc
// @Summary Update a sponsor
// @Description Without a logo file the current logo is kept
// @Tags sponsors
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sponsor ID"
// @Param name formData string true "Sponsor name"
// @Param tier formData string true "Tier"
// @Param website formData string false "Website"
// @Param logo formData file false "Logo image"
// @Success 200 {object} dto.APIResponse{data=models.Sponsor} "Updated"
// @Failure 404 {object} dto.ErrorResponse "Sponsor not found"
// @Router /sponsors/{id} [put]
func (c *SponsorController) UpdateSponsor(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	req, logo, valid := c.bindSponsor(ctx)
	if !valid {
		return
	}
	s, err := c.sponsorService.UpdateSponsor(ctx.Request.Context(), id, req, logo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, s, "Sponsor updated")
}

// DeleteSponsor godoc
// @Summary Delete a sponsor
// @Tags sponsors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sponsor ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Sponsor not found"
// @Router /sponsors/{id} [delete]
func (c *SponsorController) DeleteSponsor(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.sponsorService.DeleteSponsor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Sponsor deleted")
}
