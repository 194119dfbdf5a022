package models

// CommitteeMember is a member of one of the symposium committees
type CommitteeMember struct {
	ID            int64         `json:"id" db:"id"`
	SymposiumID   int64         `json:"symposiumId" db:"symposium_id"`
	FullName      string        `json:"fullName" db:"full_name"`
	Title         string        `json:"title,omitempty" db:"title"`
	Institution   string        `json:"institution,omitempty" db:"institution"`
	CommitteeType CommitteeType `json:"committeeType" db:"committee_type"`
	SortOrder     int           `json:"sortOrder" db:"sort_order"`
}
