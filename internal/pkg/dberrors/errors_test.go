package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintHelpers(t *testing.T) {
	unique := fmt.Errorf("insert topic: %w", &pgconn.PgError{Code: "23505", ConstraintName: "topics_symposium_id_name_key"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "papers_symposium_id_fkey"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsDuplicateConstraintError(unique, "topics_symposium_id_name_key"))
	assert.False(t, IsDuplicateConstraintError(unique, "users_email_key"))
	assert.False(t, IsForeignKeyViolation(unique))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsCheckViolation(fk))

	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
