package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

type fakeAssignments map[[2]int64]bool

func (f fakeAssignments) IsReviewerAssigned(_ context.Context, paperID, reviewerID int64) (bool, error) {
	if paperID < 0 {
		return false, errors.New("db down")
	}
	return f[[2]int64{paperID, reviewerID}], nil
}

func TestPaperAccess(t *testing.T) {
	svc := NewAuthorizationService(fakeAssignments{{10, 3}: true})
	paper := &models.Paper{ID: 10, AuthorID: 2}
	ctx := context.Background()

	tests := []struct {
		name  string
		actor Actor
		want  PaperAccess
	}{
		{"admin", Actor{UserID: 1, Role: models.RoleAdmin}, AccessAdmin},
		{"owner", Actor{UserID: 2, Role: models.RoleAuthor}, AccessOwner},
		{"assigned reviewer", Actor{UserID: 3, Role: models.RoleReviewer}, AccessReviewer},
		{"other reviewer", Actor{UserID: 4, Role: models.RoleReviewer}, AccessNone},
		{"other author", Actor{UserID: 5, Role: models.RoleAuthor}, AccessNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.PaperAccess(ctx, tt.actor, paper)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequirePaperAccess(t *testing.T) {
	svc := NewAuthorizationService(fakeAssignments{{10, 3}: true})
	paper := &models.Paper{ID: 10, AuthorID: 2}

	_, err := svc.RequirePaperAccess(context.Background(), Actor{UserID: 3, Role: models.RoleReviewer}, paper, AccessOwner, AccessAdmin)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := svc.RequirePaperAccess(context.Background(), Actor{UserID: 2, Role: models.RoleAuthor}, paper, AccessOwner, AccessAdmin)
	require.NoError(t, err)
	assert.True(t, got.SeesAuthor())
	assert.False(t, AccessReviewer.SeesAuthor())

	_, err = svc.PaperAccess(context.Background(), Actor{UserID: 3, Role: models.RoleReviewer}, &models.Paper{ID: -1, AuthorID: 2})
	assert.Error(t, err)
}
