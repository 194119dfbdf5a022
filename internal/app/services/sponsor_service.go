package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/filestorage"
)

// SponsorStore persists sponsors
type SponsorStore interface {
	CreateSponsor(ctx context.Context, s *models.Sponsor) (int64, error)
	GetSponsorByID(ctx context.Context, id int64) (*models.Sponsor, error)
	ListSponsors(ctx context.Context, symposiumID int64) ([]*models.Sponsor, error)
	UpdateSponsor(ctx context.Context, s *models.Sponsor) error
	DeleteSponsor(ctx context.Context, id int64) (string, error)
}

// Logo extensions accepted for sponsors
var logoExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".svg": true, ".webp": true}

// Logo is an uploaded sponsor logo
type Logo struct {
	Data     []byte
	Filename string
}

// SponsorService handles sponsors and their logos
type SponsorService struct {
	sponsorRepo   SponsorStore
	symposiumRepo SymposiumStore
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewSponsorService creates a new SponsorService
func NewSponsorService(sponsorRepo SponsorStore, symposiumRepo SymposiumStore, storage filestorage.FileStorage, logger zerolog.Logger) *SponsorService {
	return &SponsorService{sponsorRepo: sponsorRepo, symposiumRepo: symposiumRepo, storage: storage, logger: logger}
}

// ListSponsors returns sponsors ordered by tier, then name
func (s *SponsorService) ListSponsors(ctx context.Context, symposiumID int64) ([]*models.Sponsor, error) {
	sym, err := resolveSymposium(ctx, s.symposiumRepo, symposiumID)
	if err != nil {
		return nil, err
	}
	list, err := s.sponsorRepo.ListSponsors(ctx, sym.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Tier.Rank() < list[j].Tier.Rank() })
	return list, nil
}

// saveLogo stores a logo and returns its URL; a nil logo yields ""
func (s *SponsorService) saveLogo(logo *Logo) (string, error) {
	if logo == nil || len(logo.Data) == 0 {
		return "", nil
	}
	ext := strings.ToLower(filepath.Ext(logo.Filename))
	if !logoExtensions[ext] {
		return "", apperrors.NewValidationError("logo", "logo must be a PNG, JPEG, SVG or WebP image")
	}
	url, err := s.storage.Save(logo.Data, ext, filestorage.LogoDir)
	if err != nil {
		return "", fmt.Errorf("error storing logo: %w", err)
	}
	return url, nil
}

func (s *SponsorService) removeLogo(url string) {
	if url == "" {
		return
	}
	if err := s.storage.DeleteFile(url); err != nil {
		s.logger.Warn().Err(err).Str("logoURL", url).Msg("Failed to remove sponsor logo")
	}
}

// CreateSponsor adds a sponsor with an optional logo
func (s *SponsorService) CreateSponsor(ctx context.Context, req dto.SponsorRequest, logo *Logo) (*models.Sponsor, error) {
	sym, err := resolveSymposium(ctx, s.symposiumRepo, req.SymposiumID)
	if err != nil {
		return nil, err
	}
	if !req.Tier.Valid() {
		return nil, apperrors.NewValidationError("tier", "unknown sponsor tier")
	}

	logoURL, err := s.saveLogo(logo)
	if err != nil {
		return nil, err
	}
	sp := &models.Sponsor{
		SymposiumID: sym.ID,
		Name:        strings.TrimSpace(req.Name),
		Tier:        req.Tier,
		LogoURL:     logoURL,
		Website:     strings.TrimSpace(req.Website),
	}
	if _, err := s.sponsorRepo.CreateSponsor(ctx, sp); err != nil {
		s.removeLogo(logoURL)
		return nil, err
	}
	return sp, nil
}

// UpdateSponsor edits a sponsor; a new logo replaces the old one
func (s *SponsorService) UpdateSponsor(ctx context.Context, id int64, req dto.SponsorRequest, logo *Logo) (*models.Sponsor, error) {
	sp, err := s.sponsorRepo.GetSponsorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.Tier.Valid() {
		return nil, apperrors.NewValidationError("tier", "unknown sponsor tier")
	}

	newLogo, err := s.saveLogo(logo)
	if err != nil {
		return nil, err
	}
	oldLogo := sp.LogoURL
	if newLogo != "" {
		sp.LogoURL = newLogo
	}
	sp.Name = strings.TrimSpace(req.Name)
	sp.Tier = req.Tier
	sp.Website = strings.TrimSpace(req.Website)

	if err := s.sponsorRepo.UpdateSponsor(ctx, sp); err != nil {
		s.removeLogo(newLogo)
		return nil, err
	}
	if newLogo != "" {
		s.removeLogo(oldLogo)
	}
	return sp, nil
}

// DeleteSponsor removes a sponsor and its logo
func (s *SponsorService) DeleteSponsor(ctx context.Context, id int64) error {
	logoURL, err := s.sponsorRepo.DeleteSponsor(ctx, id)
	if err != nil {
		return err
	}
	s.removeLogo(logoURL)
	return nil
}
