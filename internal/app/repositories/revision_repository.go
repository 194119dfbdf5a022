package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/db"
	"github.com/yigit/sempozyum/internal/domain"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

// RevisionRepository handles reviewer decision records (revize)
type RevisionRepository struct {
	db *pgxpool.Pool
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db *pgxpool.Pool) *RevisionRepository {
	return &RevisionRepository{db: db}
}

var revisionColumns = []string{"id", "paper_id", "reviewer_id", "decision", "comments", "file_url", "created_at"}

func scanRevision(row pgx.Row) (*models.Revision, error) {
	var rev models.Revision
	if err := row.Scan(&rev.ID, &rev.PaperID, &rev.ReviewerID, &rev.Decision, &rev.Comments, &rev.FileURL, &rev.CreatedAt); err != nil {
		return nil, notFound(err, apperrors.ErrRevisionNotFound)
	}
	return &rev, nil
}

// reaggregate recomputes a paper's status from its assigned reviewers and
// their latest decisions. Final papers and papers without reviewers keep
// their status. Must run inside a transaction.
func reaggregate(ctx context.Context, tx pgx.Tx, paperID int64) (*models.StatusChange, error) {
	p, err := lockPaper(ctx, tx, paperID)
	if err != nil {
		return nil, err
	}
	if p.Status.IsFinal() {
		return nil, nil
	}

	rows, err := tx.Query(ctx, `SELECT reviewer_id FROM paper_reviewers WHERE paper_id = $1`, paperID)
	if err != nil {
		return nil, fmt.Errorf("error loading reviewers: %w", err)
	}
	assigned, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `SELECT id, reviewer_id, decision, created_at FROM revisions WHERE paper_id = $1`, paperID)
	if err != nil {
		return nil, fmt.Errorf("error loading revisions: %w", err)
	}
	var decisions []domain.ReviewerDecision
	for rows.Next() {
		var d domain.ReviewerDecision
		if err := rows.Scan(&d.RevisionID, &d.ReviewerID, &d.Decision, &d.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		decisions = append(decisions, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	status, ok := domain.AggregateStatus(assigned, domain.LatestDecisions(decisions))
	if !ok {
		return nil, nil
	}
	return setStatus(ctx, tx, p, status)
}

// reaggregateAll re-evaluates each paper and collects the resulting changes
func reaggregateAll(ctx context.Context, tx pgx.Tx, paperIDs []int64) ([]models.StatusChange, error) {
	var changes []models.StatusChange
	for _, paperID := range paperIDs {
		change, err := reaggregate(ctx, tx, paperID)
		if err != nil {
			return nil, err
		}
		if change != nil {
			changes = append(changes, *change)
		}
	}
	return changes, nil
}

func checkAssigned(ctx context.Context, tx pgx.Tx, paperID, reviewerID int64) error {
	var assigned bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM paper_reviewers WHERE paper_id = $1 AND reviewer_id = $2)`, paperID, reviewerID).Scan(&assigned)
	if err != nil {
		return fmt.Errorf("error checking assignment: %w", err)
	}
	if !assigned {
		return apperrors.ErrNotAssigned
	}
	return nil
}

// RecordDecision appends a revision and re-evaluates the paper status in one
// transaction holding the paper row lock. rev is filled with its ID and timestamp.
func (r *RevisionRepository) RecordDecision(ctx context.Context, rev *models.Revision) (*models.StatusChange, error) {
	var change *models.StatusChange
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		p, err := lockPaper(ctx, tx, rev.PaperID)
		if err != nil {
			return err
		}
		if p.Status.IsFinal() {
			return apperrors.ErrPaperFinalized
		}
		if err := checkAssigned(ctx, tx, rev.PaperID, rev.ReviewerID); err != nil {
			return err
		}

		sql, args, err := psql.Insert("revisions").
			Columns("paper_id", "reviewer_id", "decision", "comments", "file_url").
			Values(rev.PaperID, rev.ReviewerID, rev.Decision, rev.Comments, rev.FileURL).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&rev.ID, &rev.CreatedAt); err != nil {
			return fmt.Errorf("error inserting revision: %w", err)
		}

		change, err = reaggregate(ctx, tx, rev.PaperID)
		return err
	})
	return change, err
}

// UpdateLatestRevision edits the decision and comments of a reviewer's newest
// revision for a paper and re-evaluates the paper status.
func (r *RevisionRepository) UpdateLatestRevision(ctx context.Context, revisionID, reviewerID int64, decision models.Decision, comments string) (*models.Revision, *models.StatusChange, error) {
	var updated *models.Revision
	var change *models.StatusChange
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		current, err := r.getRevision(ctx, tx, revisionID)
		if err != nil {
			return err
		}
		if current.ReviewerID != reviewerID {
			return apperrors.ErrPermissionDenied
		}

		p, err := lockPaper(ctx, tx, current.PaperID)
		if err != nil {
			return err
		}
		if p.Status.IsFinal() {
			return apperrors.ErrPaperFinalized
		}
		if err := checkAssigned(ctx, tx, current.PaperID, reviewerID); err != nil {
			return err
		}

		var latestID int64
		err = tx.QueryRow(ctx, `
			SELECT id FROM revisions WHERE paper_id = $1 AND reviewer_id = $2
			ORDER BY created_at DESC, id DESC LIMIT 1`, current.PaperID, reviewerID).Scan(&latestID)
		if err != nil {
			return fmt.Errorf("error loading latest revision: %w", err)
		}
		if latestID != revisionID {
			return apperrors.ErrRevisionNotLatest
		}

		sql, args, err := psql.Update("revisions").
			Set("decision", decision).
			Set("comments", comments).
			Where(squirrel.Eq{"id": revisionID}).
			Suffix("RETURNING " + strings.Join(revisionColumns, ", ")).
			ToSql()
		if err != nil {
			return err
		}
		if updated, err = scanRevision(tx.QueryRow(ctx, sql, args...)); err != nil {
			return err
		}

		change, err = reaggregate(ctx, tx, current.PaperID)
		return err
	})
	return updated, change, err
}

func (r *RevisionRepository) getRevision(ctx context.Context, q db.Querier, id int64) (*models.Revision, error) {
	sql, args, err := psql.Select(revisionColumns...).From("revisions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRevision(q.QueryRow(ctx, sql, args...))
}

// GetRevisionByID returns a single revision
func (r *RevisionRepository) GetRevisionByID(ctx context.Context, id int64) (*models.Revision, error) {
	return r.getRevision(ctx, r.db, id)
}

// ListRevisions returns the revision history of a paper, oldest first.
// A non-zero reviewerID limits the result to that reviewer's rows.
func (r *RevisionRepository) ListRevisions(ctx context.Context, paperID, reviewerID int64) ([]*models.Revision, error) {
	b := psql.Select(revisionColumns...).From("revisions").Where(squirrel.Eq{"paper_id": paperID})
	if reviewerID > 0 {
		b = b.Where(squirrel.Eq{"reviewer_id": reviewerID})
	}
	sql, args, err := b.OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying revisions: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Revision, 0)
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}
