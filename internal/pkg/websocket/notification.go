package websocket

import (
	"time"
)

// NotificationType identifies the kind of event pushed to a user
type NotificationType string

const (
	PaperStatusChanged NotificationType = "PAPER_STATUS_CHANGED"
	ReviewerAssigned   NotificationType = "REVIEWER_ASSIGNED"
	PaperResubmitted   NotificationType = "PAPER_RESUBMITTED"
	RevisionAdded      NotificationType = "REVISION_ADDED"
)

// Notification is the JSON event delivered to a connected user
type Notification struct {
	Type      NotificationType `json:"type"`
	PaperID   int64            `json:"paperId"`
	Status    string           `json:"status,omitempty"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewNotification stamps a notification with the current time
func NewNotification(typ NotificationType, paperID int64, status, message string) Notification {
	return Notification{
		Type:      typ,
		PaperID:   paperID,
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}
