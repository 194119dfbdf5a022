package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

// JournalRepository handles partner journals
type JournalRepository struct {
	db *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{db: db}
}

func scanJournal(row pgx.Row) (*models.Journal, error) {
	var j models.Journal
	if err := row.Scan(&j.ID, &j.Name, &j.ISSN, &j.Publisher, &j.URL, &j.Description); err != nil {
		return nil, notFound(err, apperrors.ErrJournalNotFound)
	}
	return &j, nil
}

func selectJournalQuery() squirrel.SelectBuilder {
	return psql.Select("id", "name", "issn", "publisher", "url", "description").From("journals")
}

// CreateJournal inserts a journal
func (r *JournalRepository) CreateJournal(ctx context.Context, j *models.Journal) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO journals (name, issn, publisher, url, description) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		j.Name, j.ISSN, j.Publisher, j.URL, j.Description).Scan(&j.ID)
	if err != nil {
		return 0, fmt.Errorf("error creating journal: %w", err)
	}
	return j.ID, nil
}

// GetJournalByID retrieves a journal
func (r *JournalRepository) GetJournalByID(ctx context.Context, id int64) (*models.Journal, error) {
	sql, args, err := selectJournalQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanJournal(r.db.QueryRow(ctx, sql, args...))
}

// ListJournals returns all journals by name
func (r *JournalRepository) ListJournals(ctx context.Context) ([]*models.Journal, error) {
	return selectAll(ctx, r.db, selectJournalQuery().OrderBy("name"), scanJournal)
}

// UpdateJournal updates a journal
func (r *JournalRepository) UpdateJournal(ctx context.Context, j *models.Journal) error {
	return execAffecting(ctx, r.db,
		`UPDATE journals SET name = $1, issn = $2, publisher = $3, url = $4, description = $5 WHERE id = $6`,
		[]interface{}{j.Name, j.ISSN, j.Publisher, j.URL, j.Description, j.ID}, apperrors.ErrJournalNotFound)
}

// DeleteJournal removes a journal
func (r *JournalRepository) DeleteJournal(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM journals WHERE id = $1`, []interface{}{id}, apperrors.ErrJournalNotFound)
}
