package models

import "time"

// Revision is a single reviewer decision record (revize) for a paper.
// Rows are append-only; the newest row per reviewer is that reviewer's
// current decision.
type Revision struct {
	ID         int64     `json:"id" db:"id"`
	PaperID    int64     `json:"paperId" db:"paper_id"`
	ReviewerID int64     `json:"reviewerId,omitempty" db:"reviewer_id"`
	Decision   Decision  `json:"decision" db:"decision"`
	Comments   string    `json:"comments" db:"comments"`
	FileURL    string    `json:"fileUrl,omitempty" db:"file_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
