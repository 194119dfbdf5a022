package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

// UserService handles admin user management
type UserService struct {
	userRepo  UserStore
	tokenRepo TokenStore
	auth      *AuthService
	publisher *StatusPublisher
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, tokenRepo TokenStore, authService *AuthService, publisher *StatusPublisher, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		auth:      authService,
		publisher: publisher,
		logger:    logger,
	}
}

// ListUsers returns a filtered page of users
func (s *UserService) ListUsers(ctx context.Context, role models.RoleType, query string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	if role != "" && !role.Valid() {
		return nil, dto.PaginationInfo{}, apperrors.NewValidationError("role", "unknown role")
	}
	return s.userRepo.ListUsers(ctx, role, query, page, size)
}

// GetUser returns a single user
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// ListReviewers returns active reviewers (hakem) for the assignment screen
func (s *UserService) ListReviewers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListActiveByRole(ctx, models.RoleReviewer)
}

// CreateUser creates an account with an explicit role
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewValidationError("role", "unknown role")
	}
	user, err := s.auth.newUser(req.RegisterRequest, req.Role)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User created by admin")
	return user, nil
}

// UpdateRole changes a user's role. Demoted reviewers lose their open
// assignments and the affected papers are re-evaluated.
func (s *UserService) UpdateRole(ctx context.Context, actorID, userID int64, role models.RoleType) (*models.User, error) {
	if actorID == userID {
		return nil, apperrors.ErrSelfModification
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role", "unknown role")
	}

	changes, err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	s.publisher.PublishAll(ctx, changes)

	return s.userRepo.GetUserByID(ctx, userID)
}

// SetActive activates or deactivates a user; deactivation revokes refresh tokens
func (s *UserService) SetActive(ctx context.Context, actorID, userID int64, active bool) (*models.User, error) {
	if actorID == userID {
		return nil, apperrors.ErrSelfModification
	}
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}
	if !active {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetUserByID(ctx, userID)
}

// DeleteUser deletes a user other than the caller. Papers the user was
// reviewing are re-evaluated without them.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return apperrors.ErrSelfModification
	}
	changes, err := s.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	s.publisher.PublishAll(ctx, changes)
	return nil
}
