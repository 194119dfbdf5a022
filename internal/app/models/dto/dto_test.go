package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sempozyum/internal/app/models"
)

func TestFromPaperHidesAuthor(t *testing.T) {
	p := &models.Paper{ID: 1, AuthorID: 9, AuthorName: "Ali Veli", CoAuthors: "Ayşe", FileURL: "/uploads/papers/x.pdf"}

	blind := FromPaper(p, false)
	assert.Zero(t, blind.AuthorID)
	assert.Empty(t, blind.AuthorName)
	assert.Empty(t, blind.CoAuthors)
	assert.True(t, blind.HasFile)
	assert.NotNil(t, blind.Keywords)

	full := FromPaper(p, true)
	assert.EqualValues(t, 9, full.AuthorID)
	assert.Equal(t, "Ali Veli", full.AuthorName)
}

func TestFromRevisionsAnonymous(t *testing.T) {
	revs := []*models.Revision{{ID: 1, ReviewerID: 5, Decision: models.Decision("REVISE")}}
	assert.Zero(t, FromRevisions(revs, true)[0].ReviewerID)
	assert.EqualValues(t, 5, FromRevisions(revs, false)[0].ReviewerID)
}

func TestGroupProgramByDay(t *testing.T) {
	d1 := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	items := []*models.ProgramItem{
		{ID: 1, Day: d1, StartTime: "09:00"},
		{ID: 2, Day: d1, StartTime: "10:00"},
		{ID: 3, Day: d2, StartTime: "09:00"},
	}

	days := GroupProgramByDay(items)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-05-12", days[0].Day)
	assert.Len(t, days[0].Items, 2)
	assert.Len(t, days[1].Items, 1)

	assert.Empty(t, GroupProgramByDay(nil))
}
