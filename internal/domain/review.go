// Package domain holds the pure rules of the review workflow: paper
// statuses, reviewer decisions and how decisions combine into a status.
package domain

import "time"

// PaperStatus is the lifecycle state of a submitted paper (bildiri)
type PaperStatus string

const (
	StatusPending           PaperStatus = "PENDING"
	StatusUnderReview       PaperStatus = "UNDER_REVIEW"
	StatusRevisionRequested PaperStatus = "REVISION_REQUESTED"
	StatusAccepted          PaperStatus = "ACCEPTED"
	StatusRejected          PaperStatus = "REJECTED"
)

// Valid reports whether s is a known status
func (s PaperStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusRevisionRequested, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsFinal reports whether no further reviewer decisions are accepted
func (s PaperStatus) IsFinal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// AuthorCanEdit reports whether the author may still change metadata or upload a new version
func (s PaperStatus) AuthorCanEdit() bool {
	return s == StatusPending || s == StatusRevisionRequested
}

// Decision is a single reviewer's verdict recorded in a revision (revize) row
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionRevise Decision = "REVISE"
	DecisionReject Decision = "REJECT"
)

// Valid reports whether d is a known decision
func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionRevise || d == DecisionReject
}

// ReviewerDecision is a revision row reduced to what aggregation needs
type ReviewerDecision struct {
	RevisionID int64
	ReviewerID int64
	Decision   Decision
	CreatedAt  time.Time
}

// LatestDecisions returns each reviewer's most recent decision.
// Ties on CreatedAt are broken by the higher revision ID.
func LatestDecisions(rows []ReviewerDecision) map[int64]Decision {
	latest := make(map[int64]ReviewerDecision, len(rows))
	for _, row := range rows {
		cur, ok := latest[row.ReviewerID]
		if !ok || row.CreatedAt.After(cur.CreatedAt) ||
			(row.CreatedAt.Equal(cur.CreatedAt) && row.RevisionID > cur.RevisionID) {
			latest[row.ReviewerID] = row
		}
	}

	out := make(map[int64]Decision, len(latest))
	for reviewerID, row := range latest {
		out[reviewerID] = row.Decision
	}
	return out
}

// AggregateStatus derives a paper status from the assigned reviewers and
// their latest decisions. Any REJECT wins, then any REVISE; ACCEPTED needs
// every assigned reviewer to have accepted. Decisions of reviewers who are
// no longer assigned are ignored.
//
// The second return value is false when no reviewer is assigned, in which
// case the caller keeps the current status.
func AggregateStatus(assigned []int64, latest map[int64]Decision) (PaperStatus, bool) {
	if len(assigned) == 0 {
		return "", false
	}

	var revise bool
	accepted := 0
	for _, reviewerID := range assigned {
		decision, ok := latest[reviewerID]
		if !ok {
			continue
		}
		switch decision {
		case DecisionReject:
			return StatusRejected, true
		case DecisionRevise:
			revise = true
		case DecisionAccept:
			accepted++
		}
	}

	if revise {
		return StatusRevisionRequested, true
	}
	if accepted == len(assigned) {
		return StatusAccepted, true
	}
	return StatusUnderReview, true
}
