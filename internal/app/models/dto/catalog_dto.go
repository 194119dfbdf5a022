package dto

import (
	"github.com/yigit/sempozyum/internal/app/models"
)

// CommitteeMemberRequest creates or updates a committee member
type CommitteeMemberRequest struct {
	SymposiumID   int64                `json:"symposiumId"`
	FullName      string               `json:"fullName" binding:"required,max=255"`
	Title         string               `json:"title" binding:"max=100"`
	Institution   string               `json:"institution" binding:"max=255"`
	CommitteeType models.CommitteeType `json:"committeeType" binding:"required,oneof=SCIENTIFIC ORGANIZING HONORARY ADVISORY"`
	SortOrder     int                  `json:"sortOrder"`
}

// JournalRequest creates or updates a journal
type JournalRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	ISSN        string `json:"issn"`
	Publisher   string `json:"publisher" binding:"max=255"`
	URL         string `json:"url" binding:"omitempty,url,max=500"`
	Description string `json:"description"`
}

// ProgramItemRequest creates or updates a program slot
type ProgramItemRequest struct {
	SymposiumID  int64  `json:"symposiumId"`
	Day          string `json:"day" binding:"required"` // YYYY-MM-DD
	StartTime    string `json:"startTime" binding:"required"`
	EndTime      string `json:"endTime" binding:"required"`
	Title        string `json:"title" binding:"required,max=500"`
	SessionChair string `json:"sessionChair" binding:"max=255"`
	Location     string `json:"location" binding:"max=255"`
	PaperID      *int64 `json:"paperId"`
	Description  string `json:"description"`
}

// ProgramDay groups the slots of one day
type ProgramDay struct {
	Day   string                `json:"day"`
	Items []*models.ProgramItem `json:"items"`
}

// GroupProgramByDay groups items that are already ordered by day and start time
func GroupProgramByDay(items []*models.ProgramItem) []ProgramDay {
	days := make([]ProgramDay, 0)
	for _, it := range items {
		key := it.Day.Format("2006-01-02")
		if n := len(days); n == 0 || days[n-1].Day != key {
			days = append(days, ProgramDay{Day: key})
		}
		last := &days[len(days)-1]
		last.Items = append(last.Items, it)
	}
	return days
}

// SponsorRequest is the multipart form of a sponsor; the logo comes in "logo"
type SponsorRequest struct {
	SymposiumID int64              `form:"symposiumId" json:"symposiumId"`
	Name        string             `form:"name" json:"name" binding:"required,max=255"`
	Tier        models.SponsorTier `form:"tier" json:"tier" binding:"required,oneof=PLATINUM GOLD SILVER BRONZE SUPPORTER"`
	Website     string             `form:"website" json:"website" binding:"omitempty,url,max=500"`
}

// ContactRequest is a public contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Subject string `json:"subject" binding:"required,max=255"`
	Message string `json:"message" binding:"required,max=5000"`
}

// ArchivePapersResponse lists the accepted papers of a past symposium
type ArchivePapersResponse struct {
	Symposium *models.Symposium `json:"symposium"`
	Papers    []PaperResponse   `json:"papers"`
}
