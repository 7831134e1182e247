package dto

import (
	"time"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

// AppealCreateRequest payload for submitting an appeal.
type AppealCreateRequest struct {
	TargetName    string `json:"target_name"`
	Detail        string `json:"detail"`
	EvidenceImage string `json:"evidence_image"`
}

// AppealResponse is the wire view of an appeal. Appeals are only ever served
// to privileged callers, so the evidence blob rides along.
type AppealResponse struct {
	ID            string    `json:"id"`
	SubmittedBy   string    `json:"submitted_by"`
	TargetName    string    `json:"target_name"`
	Detail        string    `json:"detail"`
	EvidenceImage string    `json:"evidence_image,omitempty"`
	IsClosed      bool      `json:"is_closed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AppealFromDomain maps an appeal record to its response shape.
func AppealFromDomain(appeal domain.Appeal) AppealResponse {
	return AppealResponse{
		ID:            appeal.ID,
		SubmittedBy:   appeal.SubmittedBy,
		TargetName:    appeal.TargetName,
		Detail:        appeal.Detail,
		EvidenceImage: appeal.EvidenceImage,
		IsClosed:      appeal.IsClosed,
		CreatedAt:     appeal.CreatedAt,
		UpdatedAt:     appeal.UpdatedAt,
	}
}

// AppealsFromDomain maps an appeal list.
func AppealsFromDomain(appeals []domain.Appeal) []AppealResponse {
	result := make([]AppealResponse, 0, len(appeals))
	for _, appeal := range appeals {
		result = append(result, AppealFromDomain(appeal))
	}
	return result
}
