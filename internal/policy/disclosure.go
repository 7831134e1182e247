package policy

import "github.com/scamwatch/blacklist-service/internal/domain"

// CanViewEvidence decides whether a requester may see a report's evidence
// image. Evidence tied to an unreviewed accusation stays hidden from the
// public until a moderator has acted on the report; privileged subjects see
// everything. Appeal evidence has no gate of its own because appeals are only
// ever listed to privileged subjects.
func CanViewEvidence(status domain.ReportStatus, requesterIsPrivileged bool) bool {
	return requesterIsPrivileged || status != domain.ReportStatusPending
}
