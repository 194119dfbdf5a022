package dto

import (
	"time"

	"github.com/yigit/sempozyum/internal/app/models"
)

// CreateRevisionRequest records a reviewer decision. Accepted as JSON or as
// multipart form with an optional annotated "file".
type CreateRevisionRequest struct {
	Decision models.Decision `json:"decision" form:"decision" binding:"required,oneof=ACCEPT REVISE REJECT"`
	Comments string          `json:"comments" form:"comments"`
}

// UpdateRevisionRequest edits the reviewer's latest revision
type UpdateRevisionRequest struct {
	Decision models.Decision `json:"decision" binding:"required,oneof=ACCEPT REVISE REJECT"`
	Comments string          `json:"comments"`
}

// RevisionResponse is a revision row. ReviewerID is omitted when the viewer is the author.
type RevisionResponse struct {
	ID         int64           `json:"id"`
	PaperID    int64           `json:"paperId"`
	ReviewerID int64           `json:"reviewerId,omitempty"`
	Decision   models.Decision `json:"decision"`
	Comments   string          `json:"comments"`
	HasFile    bool            `json:"hasFile"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// FromRevisions converts revisions; anonymous drops reviewer identity
func FromRevisions(list []*models.Revision, anonymous bool) []RevisionResponse {
	out := make([]RevisionResponse, 0, len(list))
	for _, r := range list {
		resp := RevisionResponse{
			ID:        r.ID,
			PaperID:   r.PaperID,
			Decision:  r.Decision,
			Comments:  r.Comments,
			HasFile:   r.FileURL != "",
			CreatedAt: r.CreatedAt,
		}
		if !anonymous {
			resp.ReviewerID = r.ReviewerID
		}
		out = append(out, resp)
	}
	return out
}

// RevisionResult is returned after recording a decision
type RevisionResult struct {
	Revision    RevisionResponse   `json:"revision"`
	PaperStatus models.PaperStatus `json:"paperStatus"`
	Changed     bool               `json:"statusChanged"`
}
