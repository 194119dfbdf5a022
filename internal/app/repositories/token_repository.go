package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/db"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
	"github.com/yigit/sempozyum/internal/pkg/dberrors"
	"github.com/yigit/sempozyum/internal/pkg/logger"
)

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

func insertToken(ctx context.Context, q db.Querier, token string, userID int64, expiry time.Time) error {
	sql, args, err := psql.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date").
		Values(token, userID, expiry).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if _, err = q.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// CreateToken stores a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiry time.Time) error {
	return insertToken(ctx, r.db, token, userID, expiry)
}

// checkToken validates a token row and returns its owner
func checkToken(ctx context.Context, q db.Querier, token string, lock bool) (int64, error) {
	b := psql.Select("user_id", "expiry_date", "is_revoked").From("refresh_tokens").Where(squirrel.Eq{"token": token})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}

	var userID int64
	var expiry time.Time
	var revoked bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&userID, &expiry, &revoked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		return 0, fmt.Errorf("error retrieving token: %w", err)
	}

	if revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if expiry.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return userID, nil
}

// GetUserIDByToken returns the owner of a valid (unrevoked, unexpired) token
func (r *TokenRepository) GetUserIDByToken(ctx context.Context, token string) (int64, error) {
	return checkToken(ctx, r.db, token, false)
}

// RotateToken revokes oldToken and stores newToken for the same user in one
// transaction. A token can therefore be exchanged only once.
func (r *TokenRepository) RotateToken(ctx context.Context, oldToken, newToken string, expiry time.Time) (int64, error) {
	var userID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		userID, err = checkToken(ctx, tx, oldToken, true)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE refresh_tokens SET is_revoked = TRUE WHERE token = $1`, oldToken); err != nil {
			return fmt.Errorf("error revoking token: %w", err)
		}
		return insertToken(ctx, tx, newToken, userID, expiry)
	})
	return userID, err
}

// RevokeToken revokes a token
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET is_revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllUserTokens revokes every active token of a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET is_revoked = TRUE WHERE user_id = $1 AND NOT is_revoked`, userID)
	if err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}
	logger.Debug().Int64("userID", userID).Int64("revoked", tag.RowsAffected()).Msg("Revoked user tokens")
	return nil
}

// CleanupExpiredTokens deletes expired and revoked tokens
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expiry_date < NOW() OR is_revoked`)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
