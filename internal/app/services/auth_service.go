package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/auth"
	"github.com/yigit/sempozyum/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger

	hashPassword func(string) (string, error)
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, tokenRepo TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
		logger:       logger,
		hashPassword: auth.HashPassword,
	}
}

// validateCredentials checks email format and password strength
func validateCredentials(email, password string) error {
	if !validation.NewStringValidation(email).WithRequired(true).WithPattern(validation.CompiledPatterns.Email).Validate() {
		return apperrors.NewValidationError("email", "invalid email format")
	}
	if !validation.IsStrongPassword(password) {
		return apperrors.NewValidationError("password", "password must be at least 8 characters and contain a letter and a digit")
	}
	return nil
}

// newUser builds a user from a registration request with a hashed password
func (s *AuthService) newUser(req dto.RegisterRequest, role models.RoleType) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	return &models.User{
		Email:       email,
		Password:    hashed,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Title:       strings.TrimSpace(req.Title),
		Institution: strings.TrimSpace(req.Institution),
		RoleType:    role,
		IsActive:    true,
	}, nil
}

// Register creates an AUTHOR account and signs it in
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := s.newUser(req, models.RoleAuthor)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", user.ID).Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiry); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           pair.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             pair.ExpiresIn,
			RefreshToken:          pair.RefreshToken,
			RefreshTokenExpiresIn: pair.RefreshExpiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}

// RefreshToken exchanges a refresh token for a new pair. The old token is
// revoked in the same transaction that stores the new one.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	newRefresh, expiry := s.jwtService.NewRefreshToken()
	userID, err := s.tokenRepo.RotateToken(ctx, refreshToken, newRefresh, expiry)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		_ = s.tokenRepo.RevokeToken(ctx, newRefresh)
		return nil, apperrors.ErrAccountDisabled
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             s.jwtService.AccessTokenTTL(),
		RefreshToken:          newRefresh,
		RefreshTokenExpiresIn: s.jwtService.RefreshTokenTTL(),
	}, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, strings.TrimSpace(refreshToken))
}

// GetProfile retrieves user profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// UpdateProfile updates the caller's name, title and institution
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Title = strings.TrimSpace(req.Title)
	user.Institution = strings.TrimSpace(req.Institution)
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.FromUser(user)
	return &resp, nil
}
