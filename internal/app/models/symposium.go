package models

import "time"

// Symposium is a single edition of the symposium (sempozyum)
type Symposium struct {
	ID                 int64      `json:"id" db:"id"`
	Title              string     `json:"title" db:"title"`
	Year               int        `json:"year" db:"year"`
	StartDate          time.Time  `json:"startDate" db:"start_date"`
	EndDate            time.Time  `json:"endDate" db:"end_date"`
	Location           string     `json:"location" db:"location"`
	Description        string     `json:"description,omitempty" db:"description"`
	SubmissionDeadline *time.Time `json:"submissionDeadline,omitempty" db:"submission_deadline"`
	IsActive           bool       `json:"isActive" db:"is_active"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`
}

// AcceptsSubmissions reports whether a paper may be submitted at the given time
func (s *Symposium) AcceptsSubmissions(now time.Time) bool {
	if s.SubmissionDeadline == nil {
		return true
	}
	return !now.After(*s.SubmissionDeadline)
}

// Topic is a paper track within a symposium
type Topic struct {
	ID          int64  `json:"id" db:"id"`
	SymposiumID int64  `json:"symposiumId" db:"symposium_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

// ArchiveEntry summarizes a past symposium for the archive page
type ArchiveEntry struct {
	Symposium
	AcceptedPapers int64 `json:"acceptedPapers"`
}
