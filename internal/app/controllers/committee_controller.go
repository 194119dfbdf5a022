package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
)

// CommitteeService is what CommitteeController needs from the committee service
type CommitteeService interface {
	ListMembers(ctx context.Context, symposiumID int64, committeeType models.CommitteeType) ([]*models.CommitteeMember, error)
	CreateMember(ctx context.Context, req dto.CommitteeMemberRequest) (*models.CommitteeMember, error)
	UpdateMember(ctx context.Context, id int64, req dto.CommitteeMemberRequest) (*models.CommitteeMember, error)
	DeleteMember(ctx context.Context, id int64) error
}

// CommitteeController handles committee (kurul) members
type CommitteeController struct {
	committeeService CommitteeService
}

// NewCommitteeController creates a new CommitteeController
func NewCommitteeController(committeeService CommitteeService) *CommitteeController {
	return &CommitteeController{committeeService: committeeService}
}

// ListMembers godoc
// @Summary List committee members
// @Tags committee
// @Produce json
// @Param symposiumId query int false "Symposium ID, defaults to the active one"
// @Param type query string false "SCIENTIFIC, ORGANIZING, HONORARY or ADVISORY"
// @Success 200 {object} dto.APIResponse{data=[]models.CommitteeMember} "Members"
// @Router /committee [get]
func (c *CommitteeController) ListMembers(ctx *gin.Context) {
	symposiumID, valid := querySymposiumID(ctx)
	if !valid {
		return
	}
	members, err := c.committeeService.ListMembers(ctx.Request.Context(), symposiumID, models.CommitteeType(ctx.Query("type")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, members, "")
}

// CreateMember godoc
// @Summary Add a committee member
// @Tags committee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CommitteeMemberRequest true "Member"
// @Success 201 {object} dto.APIResponse{data=models.CommitteeMember} "Created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /committee [post]
func (c *CommitteeController) CreateMember(ctx *gin.Context) {
	var req dto.CommitteeMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	m, err := c.committeeService.CreateMember(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, m, "Committee member created")
}

// UpdateMember godoc
// @Summary Update a committee member
// @Tags committee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body dto.CommitteeMemberRequest true "Member"
// @Success 200 {object} dto.APIResponse{data=models.CommitteeMember} "Updated"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Router /committee/{id} [put]
func (c *CommitteeController) UpdateMember(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	var req dto.CommitteeMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	m, err := c.committeeService.UpdateMember(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, m, "Committee member updated")
}

// DeleteMember godoc
// @Summary Delete a committee member
// @Tags committee
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Router /committee/{id} [delete]
func (c *CommitteeController) DeleteMember(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.committeeService.DeleteMember(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Committee member deleted")
}
