package models

import "time"

// ProgramItem is a slot in the symposium schedule
type ProgramItem struct {
	ID           int64     `json:"id" db:"id"`
	SymposiumID  int64     `json:"symposiumId" db:"symposium_id"`
	Day          time.Time `json:"day" db:"day"`
	StartTime    string    `json:"startTime" db:"start_time"` // HH:MM
	EndTime      string    `json:"endTime" db:"end_time"`     // HH:MM
	Title        string    `json:"title" db:"title"`
	SessionChair string    `json:"sessionChair,omitempty" db:"session_chair"`
	Location     string    `json:"location,omitempty" db:"location"`
	PaperID      *int64    `json:"paperId,omitempty" db:"paper_id"`
	Description  string    `json:"description,omitempty" db:"description"`
}
