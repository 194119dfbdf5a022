package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
)

// AccountLookup loads the account behind a token
type AccountLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	accounts   AccountLookup
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, accounts AccountLookup) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		accounts:   accounts,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// tokenFromRequest reads the Authorization header, falling back to the
// token query parameter used by websocket clients
func tokenFromRequest(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		header = c.Query("token")
	}
	if header == "" {
		return "", apperrors.ErrTokenNotFound
	}

	header = strings.Trim(header, "\"'")
	if !strings.HasPrefix(header, "Bearer ") && strings.Count(header, ".") == 2 {
		// Raw JWT
		return header, nil
	}
	return auth.ExtractBearerToken(header)
}

// JWTAuth validates the access token and stores the caller in the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenNotFound) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			} else {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			}
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTokenExpired):
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
			case errors.Is(err, apperrors.ErrInvalidFormat):
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			default:
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			}
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.RoleType)

		c.Next()
	}
}

// ActiveAccountRequired rejects disabled accounts and replaces the role from
// the token with the current one, so role changes apply before the token expires.
// Must run after JWTAuth.
func (m *AuthMiddleware) ActiveAccountRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User information not found")
			return
		}

		user, err := m.accounts.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Account no longer exists")
				return
			}
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if !user.IsActive {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextRoleType, user.RoleType)
		c.Next()
	}
}

// RoleRequired allows the request when the caller has one of the roles
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}
