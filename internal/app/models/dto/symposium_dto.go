package dto

// SymposiumRequest creates or updates a symposium. Dates are YYYY-MM-DD,
// the deadline is RFC 3339 or YYYY-MM-DD (end of that day, UTC).
type SymposiumRequest struct {
	Title              string `json:"title" binding:"required,max=255"`
	Year               int    `json:"year" binding:"required,min=1900,max=2100"`
	StartDate          string `json:"startDate" binding:"required"`
	EndDate            string `json:"endDate" binding:"required"`
	Location           string `json:"location" binding:"max=255"`
	Description        string `json:"description"`
	SubmissionDeadline string `json:"submissionDeadline"`
}

// TopicRequest creates or updates a topic
type TopicRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}
