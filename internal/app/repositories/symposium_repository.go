package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/db"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/dberrors"
	"github.com/yigit/sempozyum/internal/pkg/logger"
)

// SymposiumRepository handles symposium (sempozyum) editions
type SymposiumRepository struct {
	db *pgxpool.Pool
}

// NewSymposiumRepository creates a new SymposiumRepository
func NewSymposiumRepository(db *pgxpool.Pool) *SymposiumRepository {
	return &SymposiumRepository{db: db}
}

var symposiumColumns = []string{
	"s.id", "s.title", "s.year", "s.start_date", "s.end_date", "s.location", "s.description",
	"s.submission_deadline", "s.is_active", "s.created_at", "s.updated_at",
}

func scanSymposium(row pgx.Row) (*models.Symposium, error) {
	var s models.Symposium
	err := row.Scan(&s.ID, &s.Title, &s.Year, &s.StartDate, &s.EndDate, &s.Location, &s.Description,
		&s.SubmissionDeadline, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, notFound(err, apperrors.ErrSymposiumNotFound)
	}
	return &s, nil
}

// CreateSymposium inserts a new, inactive symposium
func (r *SymposiumRepository) CreateSymposium(ctx context.Context, s *models.Symposium) (int64, error) {
	sql, args, err := psql.Insert("symposia").
		Columns("title", "year", "start_date", "end_date", "location", "description", "submission_deadline").
		Values(s.Title, s.Year, s.StartDate, s.EndDate, s.Location, s.Description, s.SubmissionDeadline).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create symposium query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if dberrors.IsCheckViolation(err) {
			return 0, apperrors.NewValidationError("endDate", "end date must not be before start date")
		}
		return 0, fmt.Errorf("error creating symposium: %w", err)
	}
	return s.ID, nil
}

// GetSymposiumByID retrieves a symposium by ID
func (r *SymposiumRepository) GetSymposiumByID(ctx context.Context, id int64) (*models.Symposium, error) {
	sql, args, err := psql.Select(symposiumColumns...).From("symposia s").Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanSymposium(r.db.QueryRow(ctx, sql, args...))
}

// GetActiveSymposium returns the active symposium or ErrNoActiveSymposium
func (r *SymposiumRepository) GetActiveSymposium(ctx context.Context) (*models.Symposium, error) {
	sql, args, err := psql.Select(symposiumColumns...).From("symposia s").Where("s.is_active").ToSql()
	if err != nil {
		return nil, err
	}
	s, err := scanSymposium(r.db.QueryRow(ctx, sql, args...))
	if err == apperrors.ErrSymposiumNotFound {
		return nil, apperrors.ErrNoActiveSymposium
	}
	return s, err
}

// ListSymposia returns every edition, newest first
func (r *SymposiumRepository) ListSymposia(ctx context.Context) ([]*models.Symposium, error) {
	return selectAll(ctx, r.db, psql.Select(symposiumColumns...).From("symposia s").OrderBy("s.start_date DESC", "s.id DESC"), scanSymposium)
}

// UpdateSymposium updates the editable fields of a symposium
func (r *SymposiumRepository) UpdateSymposium(ctx context.Context, s *models.Symposium) error {
	sql, args, err := psql.Update("symposia").
		Set("title", s.Title).
		Set("year", s.Year).
		Set("start_date", s.StartDate).
		Set("end_date", s.EndDate).
		Set("location", s.Location).
		Set("description", s.Description).
		Set("submission_deadline", s.SubmissionDeadline).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return err
	}
	err = execAffecting(ctx, r.db, sql, args, apperrors.ErrSymposiumNotFound)
	if dberrors.IsCheckViolation(err) {
		return apperrors.NewValidationError("endDate", "end date must not be before start date")
	}
	return err
}

// DeleteSymposium deletes a symposium together with its catalog data and
// returns the logo URLs of the sponsors removed with it.
// Editions that received papers cannot be deleted.
func (r *SymposiumRepository) DeleteSymposium(ctx context.Context, id int64) ([]string, error) {
	var logos []string
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT logo_url FROM sponsors WHERE symposium_id = $1 AND logo_url <> ''`, id)
		if err != nil {
			return fmt.Errorf("error loading sponsor logos: %w", err)
		}
		if logos, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
			return err
		}
		return execAffecting(ctx, tx, `DELETE FROM symposia WHERE id = $1`, []interface{}{id}, apperrors.ErrSymposiumNotFound)
	})
	if dberrors.IsForeignKeyViolation(err) {
		return nil, apperrors.ErrHasRelations
	}
	if err != nil {
		return nil, err
	}
	return logos, nil
}

// ActivateSymposium makes id the only active symposium
func (r *SymposiumRepository) ActivateSymposium(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM symposia WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrSymposiumNotFound
		}

		// Deactivate first so the single-active index never sees two rows
		if _, err := tx.Exec(ctx, `UPDATE symposia SET is_active = FALSE, updated_at = NOW() WHERE is_active AND id <> $1`, id); err != nil {
			return fmt.Errorf("error deactivating symposia: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE symposia SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error activating symposium: %w", err)
		}
		logger.Info().Int64("symposiumID", id).Msg("Symposium activated")
		return nil
	})
}

// ListArchive returns inactive editions with their accepted paper counts, newest first
func (r *SymposiumRepository) ListArchive(ctx context.Context) ([]*models.ArchiveEntry, error) {
	cols := append(append([]string{}, symposiumColumns...),
		"(SELECT COUNT(*) FROM papers p WHERE p.symposium_id = s.id AND p.status = 'ACCEPTED')")
	b := psql.Select(cols...).From("symposia s").Where("NOT s.is_active").OrderBy("s.start_date DESC", "s.id DESC")

	return selectAll(ctx, r.db, b, func(row pgx.Row) (*models.ArchiveEntry, error) {
		var e models.ArchiveEntry
		s := &e.Symposium
		err := row.Scan(&s.ID, &s.Title, &s.Year, &s.StartDate, &s.EndDate, &s.Location, &s.Description,
			&s.SubmissionDeadline, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &e.AcceptedPapers)
		if err != nil {
			return nil, err
		}
		return &e, nil
	})
}

// TopicRepository handles paper topics (tracks) of a symposium
type TopicRepository struct {
	db *pgxpool.Pool
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{db: db}
}

func scanTopic(row pgx.Row) (*models.Topic, error) {
	var t models.Topic
	if err := row.Scan(&t.ID, &t.SymposiumID, &t.Name, &t.Description); err != nil {
		return nil, notFound(err, apperrors.ErrTopicNotFound)
	}
	return &t, nil
}

func mapTopicError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "topics_symposium_name_key"):
		return apperrors.ErrTopicAlreadyExists
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrSymposiumNotFound
	}
	return err
}

// CreateTopic inserts a topic
func (r *TopicRepository) CreateTopic(ctx context.Context, t *models.Topic) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO topics (symposium_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
		t.SymposiumID, t.Name, t.Description).Scan(&t.ID)
	if err != nil {
		return 0, mapTopicError(err)
	}
	return t.ID, nil
}

// GetTopicByID retrieves a topic
func (r *TopicRepository) GetTopicByID(ctx context.Context, id int64) (*models.Topic, error) {
	return scanTopic(r.db.QueryRow(ctx, `SELECT id, symposium_id, name, description FROM topics WHERE id = $1`, id))
}

// ListTopics returns the topics of a symposium ordered by name
func (r *TopicRepository) ListTopics(ctx context.Context, symposiumID int64) ([]*models.Topic, error) {
	b := psql.Select("id", "symposium_id", "name", "description").From("topics").
		Where(squirrel.Eq{"symposium_id": symposiumID}).OrderBy("name")
	return selectAll(ctx, r.db, b, scanTopic)
}

// UpdateTopic renames or re-describes a topic
func (r *TopicRepository) UpdateTopic(ctx context.Context, t *models.Topic) error {
	err := execAffecting(ctx, r.db, `UPDATE topics SET name = $1, description = $2 WHERE id = $3`,
		[]interface{}{t.Name, t.Description, t.ID}, apperrors.ErrTopicNotFound)
	return mapTopicError(err)
}

// DeleteTopic deletes a topic; its papers keep existing without a topic
func (r *TopicRepository) DeleteTopic(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM topics WHERE id = $1`, []interface{}{id}, apperrors.ErrTopicNotFound)
}
