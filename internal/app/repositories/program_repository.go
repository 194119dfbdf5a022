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

// ProgramRepository handles the symposium schedule
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// TIME columns travel as HH:MM text
var programColumns = []string{
	"id", "symposium_id", "day", "to_char(start_time, 'HH24:MI')", "to_char(end_time, 'HH24:MI')",
	"title", "session_chair", "location", "paper_id", "description",
}

func scanProgramItem(row pgx.Row) (*models.ProgramItem, error) {
	var it models.ProgramItem
	err := row.Scan(&it.ID, &it.SymposiumID, &it.Day, &it.StartTime, &it.EndTime,
		&it.Title, &it.SessionChair, &it.Location, &it.PaperID, &it.Description)
	if err != nil {
		return nil, notFound(err, apperrors.ErrProgramItemNotFound)
	}
	return &it, nil
}

func mapProgramError(err error) error {
	switch {
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("endTime", "end time must be after start time")
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewBadRequestError("referenced symposium or paper does not exist")
	}
	return err
}

// CreateItem inserts a program item
func (r *ProgramRepository) CreateItem(ctx context.Context, it *models.ProgramItem) (int64, error) {
	sql, args, err := psql.Insert("program_items").
		Columns("symposium_id", "day", "start_time", "end_time", "title", "session_chair", "location", "paper_id", "description").
		Values(it.SymposiumID, it.Day,
			squirrel.Expr("CAST(? AS TIME)", it.StartTime), squirrel.Expr("CAST(? AS TIME)", it.EndTime),
			it.Title, it.SessionChair, it.Location, it.PaperID, it.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&it.ID); err != nil {
		if mapped := mapProgramError(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("error creating program item: %w", err)
	}
	return it.ID, nil
}

// GetItemByID retrieves a program item
func (r *ProgramRepository) GetItemByID(ctx context.Context, id int64) (*models.ProgramItem, error) {
	sql, args, err := psql.Select(programColumns...).From("program_items").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanProgramItem(r.db.QueryRow(ctx, sql, args...))
}

// ListItems returns the schedule of a symposium in chronological order
func (r *ProgramRepository) ListItems(ctx context.Context, symposiumID int64) ([]*models.ProgramItem, error) {
	b := psql.Select(programColumns...).From("program_items").
		Where(squirrel.Eq{"symposium_id": symposiumID}).
		OrderBy("day", "start_time", "id")
	return selectAll(ctx, r.db, b, scanProgramItem)
}

// UpdateItem updates a program item
func (r *ProgramRepository) UpdateItem(ctx context.Context, it *models.ProgramItem) error {
	sql, args, err := psql.Update("program_items").
		Set("day", it.Day).
		Set("start_time", squirrel.Expr("CAST(? AS TIME)", it.StartTime)).
		Set("end_time", squirrel.Expr("CAST(? AS TIME)", it.EndTime)).
		Set("title", it.Title).
		Set("session_chair", it.SessionChair).
		Set("location", it.Location).
		Set("paper_id", it.PaperID).
		Set("description", it.Description).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return mapProgramError(execAffecting(ctx, r.db, sql, args, apperrors.ErrProgramItemNotFound))
}

// DeleteItem removes a program item
func (r *ProgramRepository) DeleteItem(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM program_items WHERE id = $1`, []interface{}{id}, apperrors.ErrProgramItemNotFound)
}
