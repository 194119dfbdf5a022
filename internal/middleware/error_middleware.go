package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: specific sentinels before the generic ones they may wrap.
var errorMappings = []errorMapping{
	// 401
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},

	// 403
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrNotAssigned, http.StatusForbidden, dto.ErrorCodeNotAssigned, "Reviewer is not assigned to this paper"},
	{apperrors.ErrSelfModification, http.StatusForbidden, dto.ErrorCodeForbidden, "Administrators cannot modify their own account"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	// 404
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrSymposiumNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Symposium not found"},
	{apperrors.ErrNoActiveSymposium, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "No active symposium"},
	{apperrors.ErrTopicNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Topic not found"},
	{apperrors.ErrPaperNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Paper not found"},
	{apperrors.ErrRevisionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Revision not found"},
	{apperrors.ErrCommitteeMemberNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Committee member not found"},
	{apperrors.ErrJournalNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Journal not found"},
	{apperrors.ErrProgramItemNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Program item not found"},
	{apperrors.ErrSponsorNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Sponsor not found"},
	{apperrors.ErrContactMessageNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Contact message not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	// 409
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrTopicAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Topic already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrPaperLocked, http.StatusConflict, dto.ErrorCodePaperLocked, "Paper cannot be modified in its current status"},
	{apperrors.ErrPaperFinalized, http.StatusConflict, dto.ErrorCodePaperFinalized, "Paper already has a final decision"},
	{apperrors.ErrPaperNotAccepted, http.StatusConflict, dto.ErrorCodeConflict, "Paper is not accepted"},
	{apperrors.ErrRevisionNotLatest, http.StatusConflict, dto.ErrorCodeRevisionNotLatest, "Only the latest revision can be edited"},
	{apperrors.ErrHasRelations, http.StatusConflict, dto.ErrorCodeConflict, "Resource has associated data"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	// 400
	{apperrors.ErrSubmissionDeadlinePast, http.StatusBadRequest, dto.ErrorCodeDeadlinePassed, "Submission deadline has passed"},
	{apperrors.ErrInvalidManuscript, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "File must be a readable PDF"},
	{apperrors.ErrTooManyPages, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "Manuscript exceeds the page limit"},
	{apperrors.ErrReviewerNotAllowed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Reviewer cannot be assigned"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email"},
	{apperrors.ErrInvalidPassword, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Bad request"},
}

// HandleAPIError maps an error to its status code and writes the error envelope
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		if err.Error() != m.target.Error() {
			detail = detail.WithDetails(err.Error())
		}
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		c.JSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	// Handle unknown errors
	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").WithSeverity(dto.ErrorSeverityCritical),
	))
}
