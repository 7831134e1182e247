package events

import (
	"time"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

// EventType enumerates moderation lifecycle event identifiers.
type EventType string

const (
	EventReportSubmitted  EventType = "report_submitted"
	EventReportApproved   EventType = "report_approved"
	EventReportOverridden EventType = "report_overridden"
	EventReportDeleted    EventType = "report_deleted"
	EventAppealSubmitted  EventType = "appeal_submitted"
	EventAppealResolved   EventType = "appeal_resolved"
)

// Actor identifies who triggered an event.
type Actor struct {
	SubjectID string `json:"subject_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// ActorFromIdentity converts an identity into event actor metadata.
func ActorFromIdentity(identity domain.Identity) Actor {
	return Actor{SubjectID: identity.SubjectID, Username: identity.Username, IsAdmin: identity.IsAdmin}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportSubmittedPayload payload.
type ReportSubmittedPayload struct {
	ReportID   string                `json:"report_id"`
	TargetName string                `json:"target_name"`
	Category   domain.ReportCategory `json:"category"`
}

// ReportApprovedPayload payload.
type ReportApprovedPayload struct {
	ReportID string `json:"report_id"`
}

// ReportOverriddenPayload payload.
type ReportOverriddenPayload struct {
	ReportID  string               `json:"report_id"`
	NewStatus *domain.ReportStatus `json:"new_status,omitempty"`
	NoteSet   bool                 `json:"note_set"`
}

// ReportDeletedPayload payload.
type ReportDeletedPayload struct {
	ReportID string `json:"report_id"`
}

// AppealSubmittedPayload payload.
type AppealSubmittedPayload struct {
	AppealID   string `json:"appeal_id"`
	TargetName string `json:"target_name"`
}

// AppealResolvedPayload payload.
type AppealResolvedPayload struct {
	AppealID        string   `json:"appeal_id"`
	TargetName      string   `json:"target_name"`
	ResolvedReports []string `json:"resolved_reports"`
}
