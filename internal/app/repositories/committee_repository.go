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

// CommitteeRepository handles committee members
type CommitteeRepository struct {
	db *pgxpool.Pool
}

// NewCommitteeRepository creates a new CommitteeRepository
func NewCommitteeRepository(db *pgxpool.Pool) *CommitteeRepository {
	return &CommitteeRepository{db: db}
}

var committeeColumns = []string{"id", "symposium_id", "full_name", "title", "institution", "committee_type", "sort_order"}

func scanCommitteeMember(row pgx.Row) (*models.CommitteeMember, error) {
	var m models.CommitteeMember
	if err := row.Scan(&m.ID, &m.SymposiumID, &m.FullName, &m.Title, &m.Institution, &m.CommitteeType, &m.SortOrder); err != nil {
		return nil, notFound(err, apperrors.ErrCommitteeMemberNotFound)
	}
	return &m, nil
}

// CreateMember inserts a committee member
func (r *CommitteeRepository) CreateMember(ctx context.Context, m *models.CommitteeMember) (int64, error) {
	sql, args, err := psql.Insert("committee_members").
		Columns("symposium_id", "full_name", "title", "institution", "committee_type", "sort_order").
		Values(m.SymposiumID, m.FullName, m.Title, m.Institution, m.CommitteeType, m.SortOrder).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrSymposiumNotFound
		}
		return 0, fmt.Errorf("error creating committee member: %w", err)
	}
	return m.ID, nil
}

// GetMemberByID retrieves a committee member
func (r *CommitteeRepository) GetMemberByID(ctx context.Context, id int64) (*models.CommitteeMember, error) {
	sql, args, err := psql.Select(committeeColumns...).From("committee_members").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanCommitteeMember(r.db.QueryRow(ctx, sql, args...))
}

// ListMembers returns the members of a symposium, optionally of one committee,
// ordered by committee, sort order and name
func (r *CommitteeRepository) ListMembers(ctx context.Context, symposiumID int64, committeeType models.CommitteeType) ([]*models.CommitteeMember, error) {
	b := psql.Select(committeeColumns...).From("committee_members").Where(squirrel.Eq{"symposium_id": symposiumID})
	if committeeType != "" {
		b = b.Where(squirrel.Eq{"committee_type": committeeType})
	}
	return selectAll(ctx, r.db, b.OrderBy("committee_type", "sort_order", "full_name"), scanCommitteeMember)
}

// UpdateMember updates a committee member
func (r *CommitteeRepository) UpdateMember(ctx context.Context, m *models.CommitteeMember) error {
	sql, args, err := psql.Update("committee_members").
		Set("full_name", m.FullName).
		Set("title", m.Title).
		Set("institution", m.Institution).
		Set("committee_type", m.CommitteeType).
		Set("sort_order", m.SortOrder).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, sql, args, apperrors.ErrCommitteeMemberNotFound)
}

// DeleteMember removes a committee member
func (r *CommitteeRepository) DeleteMember(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM committee_members WHERE id = $1`, []interface{}{id}, apperrors.ErrCommitteeMemberNotFound)
}
