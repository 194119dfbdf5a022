package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/app/models/dto"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

// ContactRepository stores messages from the public contact form
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

func scanContactMessage(row pgx.Row) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, notFound(err, apperrors.ErrContactMessageNotFound)
	}
	return &m, nil
}

// CreateMessage stores a contact message
func (r *ContactRepository) CreateMessage(ctx context.Context, m *models.ContactMessage) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, subject, message) VALUES ($1, $2, $3, $4) RETURNING id, is_read, created_at`,
		m.Name, m.Email, m.Subject, m.Message).Scan(&m.ID, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating contact message: %w", err)
	}
	return m.ID, nil
}

// ListMessages returns contact messages newest first; unread filters by read state when set
func (r *ContactRepository) ListMessages(ctx context.Context, unread *bool, page, size int) ([]*models.ContactMessage, dto.PaginationInfo, error) {
	where := squirrel.And{}
	if unread != nil {
		where = append(where, squirrel.Eq{"is_read": !*unread})
	}

	total, err := count(ctx, r.db, "contact_messages", where)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	b, info := paginate(psql.Select("id", "name", "email", "subject", "message", "is_read", "created_at").
		From("contact_messages").Where(where).OrderBy("created_at DESC", "id DESC"), total, page, size)
	list, err := selectAll(ctx, r.db, b, scanContactMessage)
	return list, info, err
}

// MarkRead flags a message as read
func (r *ContactRepository) MarkRead(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `UPDATE contact_messages SET is_read = TRUE WHERE id = $1`, []interface{}{id}, apperrors.ErrContactMessageNotFound)
}

// DeleteMessage removes a message
func (r *ContactRepository) DeleteMessage(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM contact_messages WHERE id = $1`, []interface{}{id}, apperrors.ErrContactMessageNotFound)
}
