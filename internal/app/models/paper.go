package models

import "time"

// Paper is a submitted conference paper (bildiri)
type Paper struct {
	ID          int64       `json:"id" db:"id"`
	SymposiumID int64       `json:"symposiumId" db:"symposium_id"`
	TopicID     *int64      `json:"topicId,omitempty" db:"topic_id"`
	AuthorID    int64       `json:"authorId" db:"author_id"`
	Title       string      `json:"title" db:"title"`
	Abstract    string      `json:"abstract" db:"abstract"`
	Keywords    []string    `json:"keywords" db:"keywords"`
	CoAuthors   string      `json:"coAuthors,omitempty" db:"co_authors"`
	Language    string      `json:"language" db:"language"`
	FileURL     string      `json:"fileUrl,omitempty" db:"file_url"`
	PageCount   int         `json:"pageCount" db:"page_count"`
	Status      PaperStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`

	// Joined fields, no db column
	TopicName  string `json:"topicName,omitempty"`
	AuthorName string `json:"authorName,omitempty"`
}

// PaperFilter narrows the admin paper listing
type PaperFilter struct {
	Status      PaperStatus
	SymposiumID int64
	TopicID     int64
	AuthorID    int64
	Query       string
}

// PaperReviewer links a reviewer (hakem) to a paper
type PaperReviewer struct {
	PaperID    int64     `json:"paperId" db:"paper_id"`
	ReviewerID int64     `json:"reviewerId" db:"reviewer_id"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`

	ReviewerName  string `json:"reviewerName,omitempty"`
	ReviewerEmail string `json:"reviewerEmail,omitempty"`
}

// AssignedPaper is a paper as seen from a reviewer's queue
type AssignedPaper struct {
	Paper
	AssignedAt     time.Time  `json:"assignedAt"`
	LatestDecision *Decision  `json:"latestDecision,omitempty"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
}

// StatusChange records a paper status transition caused by a workflow event
type StatusChange struct {
	PaperID  int64
	AuthorID int64
	Title    string
	From     PaperStatus
	To       PaperStatus
}
