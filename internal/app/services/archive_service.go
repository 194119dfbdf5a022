package services

import (
	"context"
	"fmt"

	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/pkg/bibexport"
	"github.com/yigit/sempozyum/internal/pkg/textnorm"
)

// ArchiveService exposes past editions and their accepted papers
type ArchiveService struct {
	symposiumRepo SymposiumStore
	paperRepo     PaperStore
}

// NewArchiveService creates a new ArchiveService
func NewArchiveService(symposiumRepo SymposiumStore, paperRepo PaperStore) *ArchiveService {
	return &ArchiveService{symposiumRepo: symposiumRepo, paperRepo: paperRepo}
}

// ListArchive returns inactive editions with accepted paper counts
func (s *ArchiveService) ListArchive(ctx context.Context) ([]*models.ArchiveEntry, error) {
	return s.symposiumRepo.ListArchive(ctx)
}

// AcceptedPapers returns a symposium and its accepted papers
func (s *ArchiveService) AcceptedPapers(ctx context.Context, symposiumID int64) (*models.Symposium, []*models.Paper, error) {
	sym, err := s.symposiumRepo.GetSymposiumByID(ctx, symposiumID)
	if err != nil {
		return nil, nil, err
	}
	papers, err := s.paperRepo.ListAcceptedPapers(ctx, symposiumID)
	if err != nil {
		return nil, nil, err
	}
	return sym, papers, nil
}

// BibTeX renders the accepted papers of a symposium and suggests a file name
func (s *ArchiveService) BibTeX(ctx context.Context, symposiumID int64) (string, string, error) {
	sym, papers, err := s.AcceptedPapers(ctx, symposiumID)
	if err != nil {
		return "", "", err
	}
	slug := textnorm.Slug(sym.Title)
	if slug == "" {
		slug = "sempozyum"
	}
	filename := fmt.Sprintf("%s-%d.bib", slug, sym.Year)
	return bibexport.Export(sym, papers), filename, nil
}
