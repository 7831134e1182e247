package dto

import (
	"time"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

// ReportCreateRequest payload for submitting a report.
type ReportCreateRequest struct {
	TargetName    string `json:"target_name"`
	Category      string `json:"category"`
	Detail        string `json:"detail"`
	EvidenceImage string `json:"evidence_image"`
}

// StatusOverrideRequest payload for the raw status override. Absent fields
// are left unchanged.
type StatusOverrideRequest struct {
	Status          *string `json:"status"`
	NegotiationNote *string `json:"negotiation_note"`
}

// ReportResponse is the wire view of a report. EvidenceImage is omitted when
// empty; list views never populate it and the evidence endpoint is the only
// way to fetch it.
type ReportResponse struct {
	ID              string    `json:"id"`
	ReportedBy      string    `json:"reported_by"`
	TargetName      string    `json:"target_name"`
	Category        string    `json:"category"`
	Detail          string    `json:"detail"`
	EvidenceImage   string    `json:"evidence_image,omitempty"`
	Status          string    `json:"status"`
	NegotiationNote string    `json:"negotiation_note"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EvidenceResponse carries the evidence blob alone.
type EvidenceResponse struct {
	Image string `json:"image"`
}

// ReportFromDomain maps a report record to its response shape.
func ReportFromDomain(report domain.Report) ReportResponse {
	return ReportResponse{
		ID:              report.ID,
		ReportedBy:      report.ReportedBy,
		TargetName:      report.TargetName,
		Category:        string(report.Category),
		Detail:          report.Detail,
		EvidenceImage:   report.EvidenceImage,
		Status:          string(report.Status),
		NegotiationNote: report.NegotiationNote,
		CreatedAt:       report.CreatedAt,
		UpdatedAt:       report.UpdatedAt,
	}
}

// ReportsFromDomain maps a report list.
func ReportsFromDomain(reports []domain.Report) []ReportResponse {
	result := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		result = append(result, ReportFromDomain(report))
	}
	return result
}
