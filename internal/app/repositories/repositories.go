package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/db"
	"github.com/yigit/sempozyum/internal/pkg/helpers"
)

// psql is the statement builder shared by all repositories
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	TokenRepository     *TokenRepository
	SymposiumRepository *SymposiumRepository
	TopicRepository     *TopicRepository
	PaperRepository     *PaperRepository
	RevisionRepository  *RevisionRepository
	CommitteeRepository *CommitteeRepository
	JournalRepository   *JournalRepository
	ProgramRepository   *ProgramRepository
	SponsorRepository   *SponsorRepository
	ContactRepository   *ContactRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		TokenRepository:     NewTokenRepository(db),
		SymposiumRepository: NewSymposiumRepository(db),
		TopicRepository:     NewTopicRepository(db),
		PaperRepository:     NewPaperRepository(db),
		RevisionRepository:  NewRevisionRepository(db),
		CommitteeRepository: NewCommitteeRepository(db),
		JournalRepository:   NewJournalRepository(db),
		ProgramRepository:   NewProgramRepository(db),
		SponsorRepository:   NewSponsorRepository(db),
		ContactRepository:   NewContactRepository(db),
	}
}

// notFound maps pgx.ErrNoRows to the given sentinel
func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

// paginate applies page/size to a select and returns the pagination info for total
func paginate(b squirrel.SelectBuilder, total int64, page, size int) (squirrel.SelectBuilder, dto.PaginationInfo) {
	info := helpers.NewPaginationInfo(total, page, size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return b.Limit(limit).Offset(offset), info
}

// selectAll runs b and scans every row with scan
func selectAll[T any](ctx context.Context, q db.Querier, b squirrel.SelectBuilder, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// count runs a COUNT(*) over table filtered by where
func count(ctx context.Context, q db.Querier, table string, where squirrel.Sqlizer) (int64, error) {
	sql, args, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, err
	}
	var total int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return total, nil
}

// execAffecting runs a statement and returns missing when no row was touched
func execAffecting(ctx context.Context, q db.Querier, sql string, args []interface{}, missing error) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return missing
	}
	return nil
}
