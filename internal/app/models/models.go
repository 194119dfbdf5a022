package models

import "github.com/yigit/sempozyum/internal/domain"

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin    RoleType = "ADMIN"
	RoleAuthor   RoleType = "AUTHOR"   // yazar
	RoleReviewer RoleType = "REVIEWER" // hakem
)

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	return r == RoleAdmin || r == RoleAuthor || r == RoleReviewer
}

// Paper status and reviewer decision live in the domain package so the
// aggregation rule stays free of persistence concerns.
type (
	PaperStatus = domain.PaperStatus
	Decision    = domain.Decision
)

// CommitteeType groups committee members on the public page
type CommitteeType string

const (
	CommitteeScientific CommitteeType = "SCIENTIFIC"
	CommitteeOrganizing CommitteeType = "ORGANIZING"
	CommitteeHonorary   CommitteeType = "HONORARY"
	CommitteeAdvisory   CommitteeType = "ADVISORY"
)

// Valid reports whether c is a known committee type
func (c CommitteeType) Valid() bool {
	switch c {
	case CommitteeScientific, CommitteeOrganizing, CommitteeHonorary, CommitteeAdvisory:
		return true
	}
	return false
}

// SponsorTier orders sponsors on the public page, highest first
type SponsorTier string

const (
	TierPlatinum  SponsorTier = "PLATINUM"
	TierGold      SponsorTier = "GOLD"
	TierSilver    SponsorTier = "SILVER"
	TierBronze    SponsorTier = "BRONZE"
	TierSupporter SponsorTier = "SUPPORTER"
)

// Rank returns the display order of the tier; unknown tiers sort last
func (t SponsorTier) Rank() int {
	switch t {
	case TierPlatinum:
		return 0
	case TierGold:
		return 1
	case TierSilver:
		return 2
	case TierBronze:
		return 3
	case TierSupporter:
		return 4
	}
	return 5
}

// Valid reports whether t is a known tier
func (t SponsorTier) Valid() bool {
	return t.Rank() < 5
}
