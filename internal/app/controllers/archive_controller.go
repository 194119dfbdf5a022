package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/middleware"
)

// ArchiveService is what ArchiveController needs from the archive service
type ArchiveService interface {
	ListArchive(ctx context.Context) ([]*models.ArchiveEntry, error)
	AcceptedPapers(ctx context.Context, symposiumID int64) (*models.Symposium, []*models.Paper, error)
	BibTeX(ctx context.Context, symposiumID int64) (string, string, error)
}

// ArchiveController serves past symposia and their accepted papers
type ArchiveController struct {
	archiveService ArchiveService
}

// NewArchiveController creates a new ArchiveController
func NewArchiveController(archiveService ArchiveService) *ArchiveController {
	return &ArchiveController{archiveService: archiveService}
}

// ListArchive godoc
// @Summary List symposia with accepted paper counts
// @Tags archive
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ArchiveEntry} "Archive"
// @Router /archive [get]
func (c *ArchiveController) ListArchive(ctx *gin.Context) {
	entries, err := c.archiveService.ListArchive(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, entries, "")
}

// AcceptedPapers godoc
// @Summary List the accepted papers of a symposium
// @Tags archive
// @Produce json
// @Param symposiumId path int true "Symposium ID"
// @Success 200 {object} dto.APIResponse{data=dto.ArchivePapersResponse} "Papers"
// @Failure 404 {object} dto.ErrorResponse "Symposium not found"
// @Router /archive/{symposiumId}/papers [get]
func (c *ArchiveController) AcceptedPapers(ctx *gin.Context) {
	id, valid := parseID(ctx, "symposiumId")
	if !valid {
		return
	}
	sym, papers, err := c.archiveService.AcceptedPapers(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, dto.ArchivePapersResponse{Symposium: sym, Papers: dto.FromPapers(papers, true)}, "")
}

// BibTeX godoc
// @Summary Export accepted papers as BibTeX
// @Tags archive
// @Produce plain
// @Param symposiumId path int true "Symposium ID"
// @Success 200 {string} string "BibTeX entries"
// @Failure 404 {object} dto.ErrorResponse "Symposium not found"
// @Router /archive/{symposiumId}/bibtex [get]
func (c *ArchiveController) BibTeX(ctx *gin.Context) {
	id, valid := parseID(ctx, "symposiumId")
	if !valid {
		return
	}
	content, filename, err := c.archiveService.BibTeX(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "text/x-bibtex; charset=utf-8", []byte(content))
}
