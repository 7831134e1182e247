package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

func TestCanViewEvidence(t *testing.T) {
	cases := []struct {
		name       string
		status     domain.ReportStatus
		privileged bool
		want       bool
	}{
		{"pending hidden from public", domain.ReportStatusPending, false, false},
		{"pending visible to admin", domain.ReportStatusPending, true, true},
		{"flagged visible to public", domain.ReportStatusFlagged, false, true},
		{"flagged visible to admin", domain.ReportStatusFlagged, true, true},
		{"resolved visible to public", domain.ReportStatusResolved, false, true},
		{"resolved visible to admin", domain.ReportStatusResolved, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanViewEvidence(tc.status, tc.privileged))
		})
	}
}
