package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/db"
	"github.com/yigit/sempozyum/internal/domain"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/dberrors"
	"github.com/yigit/sempozyum/internal/pkg/logger"
)

// PaperRepository handles database operations for papers (bildiri) and reviewer assignments
type PaperRepository struct {
	db *pgxpool.Pool
}

// NewPaperRepository creates a new PaperRepository
func NewPaperRepository(db *pgxpool.Pool) *PaperRepository {
	return &PaperRepository{db: db}
}

// Common select query builder for papers with topic and author joins
func selectPaperQuery() squirrel.SelectBuilder {
	return psql.Select(
		"p.id", "p.symposium_id", "p.topic_id", "p.author_id", "p.title", "p.abstract", "p.keywords",
		"p.co_authors", "p.language", "p.file_url", "p.page_count", "p.status", "p.created_at", "p.updated_at",
		"COALESCE(t.name, '') AS topic_name", "u.first_name || ' ' || u.last_name AS author_name",
	).From("papers p").
		LeftJoin("topics t ON t.id = p.topic_id").
		Join("users u ON u.id = p.author_id")
}

func scanPaper(row pgx.Row, extra ...interface{}) (*models.Paper, error) {
	var p models.Paper
	dest := []interface{}{
		&p.ID, &p.SymposiumID, &p.TopicID, &p.AuthorID, &p.Title, &p.Abstract, &p.Keywords,
		&p.CoAuthors, &p.Language, &p.FileURL, &p.PageCount, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&p.TopicName, &p.AuthorName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, notFound(err, apperrors.ErrPaperNotFound)
	}
	return &p, nil
}

func (r *PaperRepository) queryPapers(ctx context.Context, b squirrel.SelectBuilder) ([]*models.Paper, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying papers: %w", err)
	}
	defer rows.Close()

	papers := make([]*models.Paper, 0)
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// CreatePaper inserts a new paper and returns its ID
func (r *PaperRepository) CreatePaper(ctx context.Context, p *models.Paper) (int64, error) {
	sql, args, err := psql.Insert("papers").
		Columns("symposium_id", "topic_id", "author_id", "title", "abstract", "keywords", "co_authors", "language", "file_url", "page_count", "status").
		Values(p.SymposiumID, p.TopicID, p.AuthorID, p.Title, p.Abstract, p.Keywords, p.CoAuthors, p.Language, p.FileURL, p.PageCount, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create paper query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NewBadRequestError("referenced symposium or topic does not exist")
		}
		logger.Error().Err(err).Msg("Error executing create paper query")
		return 0, fmt.Errorf("error creating paper: %w", err)
	}
	return p.ID, nil
}

// GetPaperByID retrieves a single paper with topic and author names
func (r *PaperRepository) GetPaperByID(ctx context.Context, id int64) (*models.Paper, error) {
	sql, args, err := selectPaperQuery().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPaper(r.db.QueryRow(ctx, sql, args...))
}

// ListPapers retrieves a filtered, paginated list of papers, newest first
func (r *PaperRepository) ListPapers(ctx context.Context, f models.PaperFilter, page, size int) ([]*models.Paper, dto.PaginationInfo, error) {
	where := squirrel.And{}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"p.status": f.Status})
	}
	if f.SymposiumID > 0 {
		where = append(where, squirrel.Eq{"p.symposium_id": f.SymposiumID})
	}
	if f.TopicID > 0 {
		where = append(where, squirrel.Eq{"p.topic_id": f.TopicID})
	}
	if f.AuthorID > 0 {
		where = append(where, squirrel.Eq{"p.author_id": f.AuthorID})
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.title": like},
			squirrel.ILike{"p.abstract": like},
			squirrel.Expr("array_to_string(p.keywords, ' ') ILIKE ?", like),
		})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("papers p").Where(where).ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error counting papers: %w", err)
	}

	b, info := paginate(selectPaperQuery().Where(where).OrderBy("p.created_at DESC", "p.id DESC"), total, page, size)
	papers, err := r.queryPapers(ctx, b)
	return papers, info, err
}

// ListPapersByAuthor returns all papers of an author, newest first
func (r *PaperRepository) ListPapersByAuthor(ctx context.Context, authorID int64) ([]*models.Paper, error) {
	return r.queryPapers(ctx, selectPaperQuery().Where(squirrel.Eq{"p.author_id": authorID}).OrderBy("p.created_at DESC"))
}

// ListAcceptedPapers returns the accepted papers of a symposium ordered by title
func (r *PaperRepository) ListAcceptedPapers(ctx context.Context, symposiumID int64) ([]*models.Paper, error) {
	return r.queryPapers(ctx, selectPaperQuery().
		Where(squirrel.Eq{"p.symposium_id": symposiumID, "p.status": domain.StatusAccepted}).
		OrderBy("p.title"))
}

// lockPaper loads the workflow fields of a paper and locks its row for the transaction
func lockPaper(ctx context.Context, tx pgx.Tx, paperID int64) (*models.Paper, error) {
	var p models.Paper
	err := tx.QueryRow(ctx, `SELECT id, author_id, title, status, file_url FROM papers WHERE id = $1 FOR UPDATE`, paperID).
		Scan(&p.ID, &p.AuthorID, &p.Title, &p.Status, &p.FileURL)
	if err != nil {
		return nil, notFound(err, apperrors.ErrPaperNotFound)
	}
	return &p, nil
}

func setStatus(ctx context.Context, tx pgx.Tx, p *models.Paper, to models.PaperStatus) (*models.StatusChange, error) {
	if p.Status == to {
		return nil, nil
	}
	if _, err := tx.Exec(ctx, `UPDATE papers SET status = $1, updated_at = NOW() WHERE id = $2`, to, p.ID); err != nil {
		return nil, fmt.Errorf("error updating paper status: %w", err)
	}
	return &models.StatusChange{PaperID: p.ID, AuthorID: p.AuthorID, Title: p.Title, From: p.Status, To: to}, nil
}

// UpdatePaper updates paper metadata while the paper is still editable by its author
func (r *PaperRepository) UpdatePaper(ctx context.Context, p *models.Paper) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		current, err := lockPaper(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		if !current.Status.AuthorCanEdit() {
			return apperrors.ErrPaperLocked
		}

		sql, args, err := psql.Update("papers").
			Set("topic_id", p.TopicID).
			Set("title", p.Title).
			Set("abstract", p.Abstract).
			Set("keywords", p.Keywords).
			Set("co_authors", p.CoAuthors).
			Set("language", p.Language).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": p.ID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrTopicNotFound
			}
			return fmt.Errorf("error updating paper: %w", err)
		}
		return nil
	})
}

// ReplaceManuscript stores a new manuscript version. A paper waiting for a
// revision goes back under review. The previous file URL is returned.
func (r *PaperRepository) ReplaceManuscript(ctx context.Context, paperID int64, fileURL string, pages int) (*models.StatusChange, string, error) {
	var change *models.StatusChange
	var oldURL string
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		p, err := lockPaper(ctx, tx, paperID)
		if err != nil {
			return err
		}
		if !p.Status.AuthorCanEdit() {
			return apperrors.ErrPaperLocked
		}
		oldURL = p.FileURL

		if _, err := tx.Exec(ctx, `UPDATE papers SET file_url = $1, page_count = $2, updated_at = NOW() WHERE id = $3`, fileURL, pages, paperID); err != nil {
			return fmt.Errorf("error updating manuscript: %w", err)
		}

		if p.Status == domain.StatusRevisionRequested {
			change, err = setStatus(ctx, tx, p, domain.StatusUnderReview)
			return err
		}
		return nil
	})
	return change, oldURL, err
}

// SetStatus overrides the status of a paper
func (r *PaperRepository) SetStatus(ctx context.Context, paperID int64, status models.PaperStatus) (*models.StatusChange, error) {
	var change *models.StatusChange
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		p, err := lockPaper(ctx, tx, paperID)
		if err != nil {
			return err
		}
		change, err = setStatus(ctx, tx, p, status)
		return err
	})
	return change, err
}

// DeletePaper deletes a paper with its assignments and revisions and returns the manuscript URL
func (r *PaperRepository) DeletePaper(ctx context.Context, paperID int64) (string, error) {
	var fileURL string
	err := r.db.QueryRow(ctx, `DELETE FROM papers WHERE id = $1 RETURNING file_url`, paperID).Scan(&fileURL)
	if err != nil {
		return "", notFound(err, apperrors.ErrPaperNotFound)
	}
	return fileURL, nil
}

// ReplaceReviewers sets the reviewer set of a paper to exactly reviewerIDs and
// returns the newly added reviewers. The status is then re-evaluated against
// the new set: a pending paper moves to UNDER_REVIEW, and decisions of removed
// reviewers stop counting. An empty set keeps the current status.
func (r *PaperRepository) ReplaceReviewers(ctx context.Context, paperID int64, reviewerIDs []int64) ([]int64, *models.StatusChange, error) {
	var added []int64
	var change *models.StatusChange
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		p, err := lockPaper(ctx, tx, paperID)
		if err != nil {
			return err
		}
		if p.Status.IsFinal() {
			return apperrors.ErrPaperFinalized
		}

		del := psql.Delete("paper_reviewers").Where(squirrel.Eq{"paper_id": paperID})
		if len(reviewerIDs) > 0 {
			del = del.Where(squirrel.NotEq{"reviewer_id": reviewerIDs})
		}
		sql, args, err := del.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error removing reviewers: %w", err)
		}

		if len(reviewerIDs) > 0 {
			ins := psql.Insert("paper_reviewers").Columns("paper_id", "reviewer_id")
			for _, id := range reviewerIDs {
				ins = ins.Values(paperID, id)
			}
			sql, args, err = ins.Suffix("ON CONFLICT (paper_id, reviewer_id) DO NOTHING RETURNING reviewer_id").ToSql()
			if err != nil {
				return err
			}
			rows, err := tx.Query(ctx, sql, args...)
			if err != nil {
				return fmt.Errorf("error assigning reviewers: %w", err)
			}
			if added, err = pgx.CollectRows(rows, pgx.RowTo[int64]); err != nil {
				return err
			}
		}

		change, err = reaggregate(ctx, tx, paperID)
		return err
	})
	return added, change, err
}

// ListPaperReviewers returns the reviewers assigned to a paper
func (r *PaperRepository) ListPaperReviewers(ctx context.Context, paperID int64) ([]*models.PaperReviewer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT pr.paper_id, pr.reviewer_id, pr.assigned_at, u.first_name || ' ' || u.last_name, u.email
		FROM paper_reviewers pr
		JOIN users u ON u.id = pr.reviewer_id
		WHERE pr.paper_id = $1
		ORDER BY pr.assigned_at, pr.reviewer_id`, paperID)
	if err != nil {
		return nil, fmt.Errorf("error querying paper reviewers: %w", err)
	}
	defer rows.Close()

	list := make([]*models.PaperReviewer, 0)
	for rows.Next() {
		var pr models.PaperReviewer
		if err := rows.Scan(&pr.PaperID, &pr.ReviewerID, &pr.AssignedAt, &pr.ReviewerName, &pr.ReviewerEmail); err != nil {
			return nil, err
		}
		list = append(list, &pr)
	}
	return list, rows.Err()
}

// IsReviewerAssigned reports whether the reviewer is assigned to the paper
func (r *PaperRepository) IsReviewerAssigned(ctx context.Context, paperID, reviewerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM paper_reviewers WHERE paper_id = $1 AND reviewer_id = $2)`, paperID, reviewerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking reviewer assignment: %w", err)
	}
	return exists, nil
}

// ListAssignedPapers returns a reviewer's queue with their latest decision per paper
func (r *PaperRepository) ListAssignedPapers(ctx context.Context, reviewerID int64) ([]*models.AssignedPaper, error) {
	sql, args, err := selectPaperQuery().
		Columns("pr.assigned_at", "lr.decision", "lr.created_at").
		Join("paper_reviewers pr ON pr.paper_id = p.id").
		LeftJoin(`LATERAL (
			SELECT decision, created_at FROM revisions
			WHERE paper_id = p.id AND reviewer_id = pr.reviewer_id
			ORDER BY created_at DESC, id DESC LIMIT 1
		) lr ON TRUE`).
		Where(squirrel.Eq{"pr.reviewer_id": reviewerID}).
		OrderBy("pr.assigned_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying assigned papers: %w", err)
	}
	defer rows.Close()

	list := make([]*models.AssignedPaper, 0)
	for rows.Next() {
		var a models.AssignedPaper
		p, err := scanPaper(rows, &a.AssignedAt, &a.LatestDecision, &a.DecidedAt)
		if err != nil {
			return nil, err
		}
		a.Paper = *p
		list = append(list, &a)
	}
	return list, rows.Err()
}
