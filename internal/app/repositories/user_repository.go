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
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/dberrors"
	"github.com/yigit/sempozyum/internal/pkg/logger"
)

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "title", "institution",
	"role_type", "is_active", "last_login_at", "created_at", "updated_at",
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Title, &u.Institution,
		&u.RoleType, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &u, nil
}

// CreateUser inserts a user and returns its ID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := psql.Insert("users").
		Columns("email", "password", "first_name", "last_name", "title", "institution", "role_type", "is_active").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.Title, user.Institution, user.RoleType, user.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(ctx, sql, args...))
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where("LOWER(email) = LOWER(?)", email).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(ctx, sql, args...))
}

// ListUsers returns a filtered page of users ordered by name
func (r *UserRepository) ListUsers(ctx context.Context, role models.RoleType, query string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	where := squirrel.And{}
	if role != "" {
		where = append(where, squirrel.Eq{"role_type": role})
	}
	if query != "" {
		like := "%" + query + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"email": like},
			squirrel.ILike{"first_name": like},
			squirrel.ILike{"last_name": like},
			squirrel.ILike{"institution": like},
		})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("users").Where(where).ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error counting users: %w", err)
	}

	b, info := paginate(psql.Select(userColumns...).From("users").Where(where).OrderBy("last_name", "first_name", "id"), total, page, size)
	users, err := r.queryUsers(ctx, b)
	return users, info, err
}

// ListActiveByRole returns all active users with the given role
func (r *UserRepository) ListActiveByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	return r.queryUsers(ctx, psql.Select(userColumns...).From("users").
		Where(squirrel.Eq{"role_type": role, "is_active": true}).
		OrderBy("last_name", "first_name"))
}

// GetUsersByIDs returns the users with the given IDs; missing IDs are skipped
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	return r.queryUsers(ctx, psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": ids}))
}

func (r *UserRepository) queryUsers(ctx context.Context, b squirrel.SelectBuilder) ([]*models.User, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile updates the editable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	sql, args, err := psql.Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("title", user.Title).
		Set("institution", user.Institution).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, sql, args, apperrors.ErrUserNotFound)
}

// UpdateRole changes a user's role. When a reviewer loses the role they are
// also removed from every paper that has no final decision yet, and those
// papers are re-evaluated. The resulting status changes are returned.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role models.RoleType) ([]models.StatusChange, error) {
	var changes []models.StatusChange
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.RoleType
		if err := tx.QueryRow(ctx, `SELECT role_type FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&current); err != nil {
			return notFound(err, apperrors.ErrUserNotFound)
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET role_type = $1, updated_at = NOW() WHERE id = $2`, role, userID); err != nil {
			return fmt.Errorf("error updating role: %w", err)
		}

		if current != models.RoleReviewer || role == models.RoleReviewer {
			return nil
		}

		rows, err := tx.Query(ctx, `
			DELETE FROM paper_reviewers pr
			USING papers p
			WHERE pr.paper_id = p.id AND pr.reviewer_id = $1 AND p.status NOT IN ('ACCEPTED', 'REJECTED')
			RETURNING pr.paper_id`, userID)
		if err != nil {
			return fmt.Errorf("error removing reviewer assignments: %w", err)
		}
		paperIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}

		changes, err = reaggregateAll(ctx, tx, paperIDs)
		return err
	})
	return changes, err
}

// SetActive activates or deactivates a user
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	sql, args, err := psql.Update("users").
		Set("is_active", active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, sql, args, apperrors.ErrUserNotFound)
}

// UpdateLastLogin stamps the login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// DeleteUser deletes a user. Users that authored papers or recorded decisions
// cannot be deleted. Papers that lose the user as reviewer are re-evaluated
// and the resulting status changes are returned.
func (r *UserRepository) DeleteUser(ctx context.Context, userID int64) ([]models.StatusChange, error) {
	var changes []models.StatusChange
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT pr.paper_id FROM paper_reviewers pr
			JOIN papers p ON p.id = pr.paper_id
			WHERE pr.reviewer_id = $1 AND p.status NOT IN ('ACCEPTED', 'REJECTED')`, userID)
		if err != nil {
			return fmt.Errorf("error loading reviewer assignments: %w", err)
		}
		paperIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}

		if err := execAffecting(ctx, tx, `DELETE FROM users WHERE id = $1`, []interface{}{userID}, apperrors.ErrUserNotFound); err != nil {
			return err
		}

		changes, err = reaggregateAll(ctx, tx, paperIDs)
		return err
	})
	if dberrors.IsForeignKeyViolation(err) {
		return nil, apperrors.ErrHasRelations
	}
	return changes, err
}
