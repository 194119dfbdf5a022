package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		assigned []int64
		latest   map[int64]Decision
		want     PaperStatus
		wantOK   bool
	}{
		{
			name:     "no reviewers keeps current status",
			assigned: nil,
			latest:   map[int64]Decision{1: DecisionReject},
			wantOK:   false,
		},
		{
			name:     "nobody answered yet",
			assigned: []int64{1, 2},
			latest:   map[int64]Decision{},
			want:     StatusUnderReview,
			wantOK:   true,
		},
		{
			name:     "single reject wins even with missing answers",
			assigned: []int64{1, 2, 3},
			latest:   map[int64]Decision{1: DecisionAccept, 2: DecisionReject},
			want:     StatusRejected,
			wantOK:   true,
		},
		{
			name:     "reject beats revise",
			assigned: []int64{1, 2},
			latest:   map[int64]Decision{1: DecisionRevise, 2: DecisionReject},
			want:     StatusRejected,
			wantOK:   true,
		},
		{
			name:     "revise without reject",
			assigned: []int64{1, 2, 3},
			latest:   map[int64]Decision{1: DecisionAccept, 2: DecisionRevise},
			want:     StatusRevisionRequested,
			wantOK:   true,
		},
		{
			name:     "partial accepts stay under review",
			assigned: []int64{1, 2},
			latest:   map[int64]Decision{1: DecisionAccept},
			want:     StatusUnderReview,
			wantOK:   true,
		},
		{
			name:     "all accept",
			assigned: []int64{1, 2},
			latest:   map[int64]Decision{1: DecisionAccept, 2: DecisionAccept},
			want:     StatusAccepted,
			wantOK:   true,
		},
		{
			name:     "removed reviser no longer holds the paper back",
			assigned: []int64{1, 2},
			latest:   map[int64]Decision{1: DecisionAccept, 2: DecisionAccept, 3: DecisionRevise},
			want:     StatusAccepted,
			wantOK:   true,
		},
		{
			name:     "unassigned reviewer reject is ignored",
			assigned: []int64{1},
			latest:   map[int64]Decision{1: DecisionAccept, 9: DecisionReject},
			want:     StatusAccepted,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AggregateStatus(tt.assigned, tt.latest)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLatestDecisions(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []ReviewerDecision{
		{RevisionID: 1, ReviewerID: 1, Decision: DecisionRevise, CreatedAt: base},
		{RevisionID: 2, ReviewerID: 2, Decision: DecisionAccept, CreatedAt: base},
		{RevisionID: 3, ReviewerID: 1, Decision: DecisionAccept, CreatedAt: base.Add(time.Hour)},
		// same timestamp as revision 2, higher id wins
		{RevisionID: 4, ReviewerID: 2, Decision: DecisionReject, CreatedAt: base},
	}

	latest := LatestDecisions(rows)

	assert.Len(t, latest, 2)
	assert.Equal(t, DecisionAccept, latest[1])
	assert.Equal(t, DecisionReject, latest[2])
}

func TestPaperStatusPredicates(t *testing.T) {
	assert.True(t, StatusAccepted.IsFinal())
	assert.True(t, StatusRejected.IsFinal())
	assert.False(t, StatusRevisionRequested.IsFinal())

	assert.True(t, StatusPending.AuthorCanEdit())
	assert.True(t, StatusRevisionRequested.AuthorCanEdit())
	assert.False(t, StatusUnderReview.AuthorCanEdit())

	assert.False(t, PaperStatus("DRAFT").Valid())
	assert.True(t, DecisionRevise.Valid())
	assert.False(t, Decision("MAYBE").Valid())
}
