package models

// Sponsor supports a symposium edition
type Sponsor struct {
	ID          int64       `json:"id" db:"id"`
	SymposiumID int64       `json:"symposiumId" db:"symposium_id"`
	Name        string      `json:"name" db:"name"`
	Tier        SponsorTier `json:"tier" db:"tier"`
	LogoURL     string      `json:"logoUrl,omitempty" db:"logo_url"`
	Website     string      `json:"website,omitempty" db:"website"`
}
