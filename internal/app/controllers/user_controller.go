package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
	"github.com/yigit/sempozyum/internal/pkg/helpers"
)

// UserService is what UserController needs from the user service
type UserService interface {
	ListUsers(ctx context.Context, role models.RoleType, query string, page, size int) ([]*models.User, dto.PaginationInfo, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListReviewers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	UpdateRole(ctx context.Context, actorID, userID int64, role models.RoleType) (*models.User, error)
	SetActive(ctx context.Context, actorID, userID int64, active bool) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, userID int64) error
}

// UserController handles user administration
type UserController struct {
	userService UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService UserService, logger zerolog.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

// ListUsers godoc
// @Summary List users
// @Description Paginated user list, filterable by role and a free-text query
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "ADMIN, AUTHOR or REVIEWER"
// @Param q query string false "Search in name, email and institution"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse} "Users"
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	users, info, err := c.userService.ListUsers(ctx.Request.Context(), models.RoleType(ctx.Query("role")), ctx.Query("q"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.PageResponse{Items: dto.FromUsers(users), Pagination: info}, "")
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	user, err := c.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromUser(user), "")
}

// ListReviewers godoc
// @Summary List active reviewers
// @Description Active REVIEWER accounts for the assignment screen
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Reviewers"
// @Router /reviewers [get]
func (c *UserController) ListReviewers(ctx *gin.Context) {
	users, err := c.userService.ListReviewers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromUsers(users), "")
}

// CreateUser godoc
// @Summary Create a user
// @Description Creates an account with any role, e.g. to invite a reviewer (hakem)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	user, err := c.userService.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, dto.FromUser(user), "User created")
}

// UpdateRole godoc
// @Summary Change a user's role
// @Description Demoting a reviewer removes their open assignments and re-evaluates the affected papers
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated"
// @Failure 403 {object} dto.ErrorResponse "Cannot change own role"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/role [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateRole(ctx.Request.Context(), caller.UserID, id, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("userID", id).Str("role", string(req.Role)).Int64("by", caller.UserID).Msg("Role changed")
	ok(ctx, dto.FromUser(user), "Role updated")
}

// UpdateStatus godoc
// @Summary Activate or deactivate a user
// @Description Deactivation revokes the user's refresh tokens
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated"
// @Failure 403 {object} dto.ErrorResponse "Cannot change own status"
// @Router /users/{id}/status [put]
func (c *UserController) UpdateStatus(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.SetActive(ctx.Request.Context(), caller.UserID, id, *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.FromUser(user), "Status updated")
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Cannot delete self"
// @Failure 409 {object} dto.ErrorResponse "User has papers or revisions"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, valid := parseID(ctx, "id")
	if !valid {
		return
	}
	caller, found := actor(ctx)
	if !found {
		return
	}
	if err := c.userService.DeleteUser(ctx.Request.Context(), caller.UserID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("userID", id).Int64("by", caller.UserID).Msg("User deleted")
	ok(ctx, nil, "User deleted")
}
