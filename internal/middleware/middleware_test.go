package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/auth"
	"github.com/yigit/sempozyum/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type accountsStub map[int64]*models.User

func (s accountsStub) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "sempozyum.test",
	})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAuthRouter(jwt *auth.JWTService, accounts accountsStub) *gin.Engine {
	m := NewAuthMiddleware(jwt, accounts)
	r := gin.New()
	r.GET("/me", m.JWTAuth(), m.ActiveAccountRequired(), func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, "%d:%s", actor.UserID, actor.Role)
	})
	r.GET("/admin", m.JWTAuth(), m.ActiveAccountRequired(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwt := newJWT()
	user := &models.User{ID: 7, Email: "hakem@uni.edu.tr", RoleType: models.RoleReviewer, IsActive: true}
	token, err := jwt.GenerateAccessToken(user)
	require.NoError(t, err)
	r := newAuthRouter(jwt, accountsStub{7: user})

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "7:REVIEWER", w.Body.String())
	})

	t.Run("query token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?token="+token, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeError(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, dto.ErrorCodeUnauthorized, body.Error.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer a.b.c")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Error.Code)
	})
}

func TestActiveAccountRequired(t *testing.T) {
	jwt := newJWT()
	token, err := jwt.GenerateAccessToken(&models.User{ID: 7, Email: "a@uni.edu.tr", RoleType: models.RoleReviewer})
	require.NoError(t, err)

	do := func(r *gin.Engine, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("disabled account", func(t *testing.T) {
		w := do(newAuthRouter(jwt, accountsStub{7: {ID: 7, RoleType: models.RoleReviewer}}), "/me")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrorCodeAccountDisabled, decodeError(t, w).Error.Code)
	})

	t.Run("demoted reviewer uses current role", func(t *testing.T) {
		w := do(newAuthRouter(jwt, accountsStub{7: {ID: 7, RoleType: models.RoleAuthor, IsActive: true}}), "/me")
		assert.Equal(t, "7:AUTHOR", w.Body.String())
	})

	t.Run("deleted account", func(t *testing.T) {
		w := do(newAuthRouter(jwt, accountsStub{}), "/me")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("role required", func(t *testing.T) {
		w := do(newAuthRouter(jwt, accountsStub{7: {ID: 7, RoleType: models.RoleReviewer, IsActive: true}}), "/admin")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = do(newAuthRouter(jwt, accountsStub{7: {ID: 7, RoleType: models.RoleAdmin, IsActive: true}}), "/admin")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrPaperNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.NewResourceNotFoundError("manuscript not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrNotAssigned, http.StatusForbidden, dto.ErrorCodeNotAssigned},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrPaperLocked, http.StatusConflict, dto.ErrorCodePaperLocked},
		{fmt.Errorf("%w: 12 pages, limit is 10", apperrors.ErrTooManyPages), http.StatusBadRequest, dto.ErrorCodeInvalidFile},
		{apperrors.ErrSubmissionDeadlinePast, http.StatusBadRequest, dto.ErrorCodeDeadlinePassed},
		{fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleAPIError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Error.Code)
		})
	}

	t.Run("validation field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		HandleAPIError(c, apperrors.NewValidationError("issn", "ISSN must look like 1234-567X"))
		body := decodeError(t, w)
		assert.Equal(t, "issn", body.Error.Field)
		assert.Equal(t, "ISSN must look like 1234-567X", body.Error.Details)
	})
}

func TestHandleValidationError(t *testing.T) {
	r := gin.New()
	r.POST("/x", func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"email":"nope"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Error.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("test")
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/papers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/papers/%d", i), nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/papers/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
