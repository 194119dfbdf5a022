package models

// Journal is a partner journal where extended papers may be published
type Journal struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	ISSN        string `json:"issn,omitempty" db:"issn"`
	Publisher   string `json:"publisher,omitempty" db:"publisher"`
	URL         string `json:"url,omitempty" db:"url"`
	Description string `json:"description,omitempty" db:"description"`
}
