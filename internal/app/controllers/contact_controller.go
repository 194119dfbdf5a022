package controllers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/helpers"
)

// ContactService is what ContactController needs from the contact service
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactMessage, error)
	ListMessages(ctx context.Context, unread *bool, page, size int) ([]*models.ContactMessage, dto.PaginationInfo, error)
	MarkRead(ctx context.Context, id int64) error
	DeleteMessage(ctx context.Context, id int64) error
}

// ContactController handles the public contact form (iletişim)
type ContactController struct {
	contactService ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contactService ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// Submit godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.ContactMessage} "Received"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	msg, err := c.contactService.Submit(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, msg, "Message received")
}

// ListMessages godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread (true) or only read (false)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse} "Messages"
// @Router /contact [get]
func (c *ContactController) ListMessages(ctx *gin.Context) {
	var unread *bool
	if raw := ctx.Query("unread"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("unread", "must be true or false"))
			return
		}
		unread = &v
	}
	page, size := helpers.ParsePaginationParams(ctx)
	list, info, err := c.contactService.ListMessages(ctx.Request.Context(), unread, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.PageResponse{Items: list, Pagination: info}, "")
}

// MarkRead godoc
// @Summary Mark a message as read
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse "Marked"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /contact/{id}/read [put]
func (c *ContactController) MarkRead(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.contactService.MarkRead(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Message marked as read")
}

// DeleteMessage godoc
// @Summary Delete a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /contact/{id} [delete]
func (c *ContactController) DeleteMessage(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	if err := c.contactService.DeleteMessage(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, nil, "Message deleted")
}
