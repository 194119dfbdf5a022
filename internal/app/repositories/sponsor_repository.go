package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/dberrors"
)

// SponsorRepository handles sponsors
type SponsorRepository struct {
	db *pgxpool.Pool
}

// NewSponsorRepository creates a new SponsorRepository
func NewSponsorRepository(db *pgxpool.Pool) *SponsorRepository {
	return &SponsorRepository{db: db}
}

// tierOrder sorts PLATINUM first and SUPPORTER last
const tierOrder = `CASE tier WHEN 'PLATINUM' THEN 0 WHEN 'GOLD' THEN 1 WHEN 'SILVER' THEN 2 WHEN 'BRONZE' THEN 3 ELSE 4 END`

func scanSponsor(row pgx.Row) (*models.Sponsor, error) {
	var s models.Sponsor
	if err := row.Scan(&s.ID, &s.SymposiumID, &s.Name, &s.Tier, &s.LogoURL, &s.Website); err != nil {
		return nil, notFound(err, apperrors.ErrSponsorNotFound)
	}
	return &s, nil
}

func selectSponsorQuery() squirrel.SelectBuilder {
	return psql.Select("id", "symposium_id", "name", "tier", "logo_url", "website").From("sponsors")
}

// CreateSponsor inserts a sponsor
func (r *SponsorRepository) CreateSponsor(ctx context.Context, s *models.Sponsor) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO sponsors (symposium_id, name, tier, logo_url, website) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.SymposiumID, s.Name, s.Tier, s.LogoURL, s.Website).Scan(&s.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrSymposiumNotFound
		}
		return 0, fmt.Errorf("error creating sponsor: %w", err)
	}
	return s.ID, nil
}

// GetSponsorByID retrieves a sponsor
func (r *SponsorRepository) GetSponsorByID(ctx context.Context, id int64) (*models.Sponsor, error) {
	sql, args, err := selectSponsorQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanSponsor(r.db.QueryRow(ctx, sql, args...))
}

// ListSponsors returns the sponsors of a symposium ordered by tier and name
func (r *SponsorRepository) ListSponsors(ctx context.Context, symposiumID int64) ([]*models.Sponsor, error) {
	b := selectSponsorQuery().Where(squirrel.Eq{"symposium_id": symposiumID}).OrderBy(tierOrder, "name")
	return selectAll(ctx, r.db, b, scanSponsor)
}

// UpdateSponsor updates a sponsor including its logo URL
func (r *SponsorRepository) UpdateSponsor(ctx context.Context, s *models.Sponsor) error {
	return execAffecting(ctx, r.db,
		`UPDATE sponsors SET name = $1, tier = $2, logo_url = $3, website = $4 WHERE id = $5`,
		[]interface{}{s.Name, s.Tier, s.LogoURL, s.Website, s.ID}, apperrors.ErrSponsorNotFound)
}

// DeleteSponsor removes a sponsor and returns its logo URL
func (r *SponsorRepository) DeleteSponsor(ctx context.Context, id int64) (string, error) {
	var logoURL string
	if err := r.db.QueryRow(ctx, `DELETE FROM sponsors WHERE id = $1 RETURNING logo_url`, id).Scan(&logoURL); err != nil {
		return "", notFound(err, apperrors.ErrSponsorNotFound)
	}
	return logoURL, nil
}
