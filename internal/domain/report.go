package domain

import "time"

// ReportStatus enumerates lifecycle states for blacklist reports.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusFlagged  ReportStatus = "FLAGGED"
	ReportStatusResolved ReportStatus = "RESOLVED"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusFlagged, ReportStatusResolved:
		return true
	}
	return false
}

// ReportCategory enumerates the closed set of fraud types a report may claim.
type ReportCategory string

const (
	CategoryScam            ReportCategory = "SCAM"
	CategoryAccountTakeover ReportCategory = "ACCOUNT_TAKEOVER"
	CategoryAccountLocked   ReportCategory = "ACCOUNT_LOCKED"
	CategoryOther           ReportCategory = "OTHER"
)

// Valid reports whether the category belongs to the closed enumeration.
func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryScam, CategoryAccountTakeover, CategoryAccountLocked, CategoryOther:
		return true
	}
	return false
}

// DefaultNegotiationNote is the value a report carries until a resolution
// or a raw status override writes over it.
const DefaultNegotiationNote = "none"

// Report is the aggregate for a fraud accusation. EvidenceImage is a
// self-describing data URI blob, written once at creation and never mutated;
// only Status and NegotiationNote change after creation.
type Report struct {
	ID              string
	ReportedBy      string
	TargetName      string
	Category        ReportCategory
	Detail          string
	EvidenceImage   string
	Status          ReportStatus
	NegotiationNote string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReportStats aggregates per-status counts for the moderation dashboard.
type ReportStats struct {
	Pending  int64 `json:"pending"`
	Flagged  int64 `json:"flagged"`
	Resolved int64 `json:"resolved"`
	Total    int64 `json:"total"`
}
