package domain

import "time"

// Appeal is a dispute asking that a report's status be changed. TargetName
// references reports by value, not by foreign key: zero or more reports may
// carry the same target name. Once IsClosed is true the appeal is never
// reopened or mutated further.
type Appeal struct {
	ID            string
	SubmittedBy   string
	TargetName    string
	Detail        string
	EvidenceImage string
	IsClosed      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
