// Package controllers handles HTTP request handling
package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sempozyum/internal/app/auth"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

// parseID reads a positive int64 path parameter; on failure the 400 is already written
func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID").
			WithField(name).
			WithDetails(fmt.Sprintf("%s must be a positive integer", name))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// actor returns the caller; on failure the 401 is already written
func actor(ctx *gin.Context) (appauth.Actor, bool) {
	a, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return a, ok
}

var errFileMissing = errors.New("file missing")

// readUpload reads a multipart file field up to limit bytes. A missing field
// returns errFileMissing.
func readUpload(ctx *gin.Context, field string, limit int64) ([]byte, string, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", errFileMissing
		}
		return nil, "", apperrors.NewValidationError(field, "could not read uploaded file")
	}
	if limit > 0 && fh.Size > limit {
		return nil, "", apperrors.NewValidationError(field, fmt.Sprintf("file exceeds the %d byte limit", limit))
	}
	data, err := readFileHeader(fh, limit)
	if err != nil {
		return nil, "", apperrors.NewValidationError(field, "could not read uploaded file")
	}
	return data, filepath.Base(fh.Filename), nil
}

func readFileHeader(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, fmt.Errorf("file exceeds %d bytes", limit)
	}
	return buf.Bytes(), nil
}

// limitBody caps the request body before multipart parsing
func limitBody(ctx *gin.Context, limit int64) {
	if limit > 0 {
		// Form fields and multipart framing need some headroom
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit+1<<20)
	}
}

func isMultipart(ctx *gin.Context) bool {
	return strings.HasPrefix(ctx.ContentType(), "multipart/form-data")
}

// sendPDF writes an inline or attached PDF
func sendPDF(ctx *gin.Context, data []byte, filename string, attachment bool) {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

func ok(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, message))
}

func created(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}
