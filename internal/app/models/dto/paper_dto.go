package dto

import (
	"time"

	"github.com/yigit/sempozyum/internal/app/models"
)

// SubmitPaperRequest is the multipart form of a new submission; the PDF comes in "file"
type SubmitPaperRequest struct {
	SymposiumID int64  `form:"symposiumId"`
	TopicID     int64  `form:"topicId"`
	Title       string `form:"title" binding:"required,max=500"`
	Abstract    string `form:"abstract" binding:"required"`
	Keywords    string `form:"keywords"` // comma separated
	CoAuthors   string `form:"coAuthors"`
	Language    string `form:"language" binding:"omitempty,oneof=tr en"`
}

// UpdatePaperRequest edits paper metadata
type UpdatePaperRequest struct {
	TopicID   *int64   `json:"topicId"`
	Title     string   `json:"title" binding:"required,max=500"`
	Abstract  string   `json:"abstract" binding:"required"`
	Keywords  []string `json:"keywords"`
	CoAuthors string   `json:"coAuthors"`
	Language  string   `json:"language" binding:"omitempty,oneof=tr en"`
}

// AssignReviewersRequest replaces the reviewer set of a paper
type AssignReviewersRequest struct {
	ReviewerIDs []int64 `json:"reviewerIds" binding:"required,dive,min=1"`
}

// UpdatePaperStatusRequest is a manual status override
type UpdatePaperStatusRequest struct {
	Status models.PaperStatus `json:"status" binding:"required,oneof=PENDING UNDER_REVIEW REVISION_REQUESTED ACCEPTED REJECTED"`
}

// PaperResponse is a paper as returned by the API. Author fields are left
// empty for reviewers.
type PaperResponse struct {
	ID          int64              `json:"id"`
	SymposiumID int64              `json:"symposiumId"`
	TopicID     *int64             `json:"topicId,omitempty"`
	TopicName   string             `json:"topicName,omitempty"`
	AuthorID    int64              `json:"authorId,omitempty"`
	AuthorName  string             `json:"authorName,omitempty"`
	CoAuthors   string             `json:"coAuthors,omitempty"`
	Title       string             `json:"title"`
	Abstract    string             `json:"abstract"`
	Keywords    []string           `json:"keywords"`
	Language    string             `json:"language"`
	PageCount   int                `json:"pageCount"`
	HasFile     bool               `json:"hasFile"`
	Status      models.PaperStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// FromPaper converts a paper; withAuthor=false hides author identity
func FromPaper(p *models.Paper, withAuthor bool) PaperResponse {
	resp := PaperResponse{
		ID:          p.ID,
		SymposiumID: p.SymposiumID,
		TopicID:     p.TopicID,
		TopicName:   p.TopicName,
		Title:       p.Title,
		Abstract:    p.Abstract,
		Keywords:    p.Keywords,
		Language:    p.Language,
		PageCount:   p.PageCount,
		HasFile:     p.FileURL != "",
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if resp.Keywords == nil {
		resp.Keywords = []string{}
	}
	if withAuthor {
		resp.AuthorID = p.AuthorID
		resp.AuthorName = p.AuthorName
		resp.CoAuthors = p.CoAuthors
	}
	return resp
}

// FromPapers converts a slice of papers
func FromPapers(papers []*models.Paper, withAuthor bool) []PaperResponse {
	out := make([]PaperResponse, 0, len(papers))
	for _, p := range papers {
		out = append(out, FromPaper(p, withAuthor))
	}
	return out
}

// AssignedPaperResponse is an entry of a reviewer's queue
type AssignedPaperResponse struct {
	PaperResponse
	AssignedAt     time.Time        `json:"assignedAt"`
	LatestDecision *models.Decision `json:"latestDecision,omitempty"`
	DecidedAt      *time.Time       `json:"decidedAt,omitempty"`
}

// FromAssignedPapers converts a reviewer queue; author identity is never included
func FromAssignedPapers(list []*models.AssignedPaper) []AssignedPaperResponse {
	out := make([]AssignedPaperResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AssignedPaperResponse{
			PaperResponse:  FromPaper(&a.Paper, false),
			AssignedAt:     a.AssignedAt,
			LatestDecision: a.LatestDecision,
			DecidedAt:      a.DecidedAt,
		})
	}
	return out
}
