package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/blacklist-service/internal/domain"
	"github.com/scamwatch/blacklist-service/internal/events"
	"github.com/scamwatch/blacklist-service/internal/repository"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

var (
	reporter = domain.Identity{SubjectID: "u-1", Username: "somchai"}
	admin    = domain.AdminIdentity("Admin")
)

func newReportFixture(t *testing.T) (*ReportService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc := NewReportService(ReportDependencies{
		ReportRepo: store.Reports(),
		Cache:      NewCounterCache(nil),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	return svc, store
}

func validReportInput(target string) ReportCreateInput {
	return ReportCreateInput{
		TargetName:    target,
		Category:      domain.CategoryScam,
		Detail:        "paid for an item that never arrived",
		EvidenceImage: "data:image/png;base64,AAAA",
	}
}

func TestCreateReport(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	report, err := svc.Create(ctx, reporter, validReportInput("  scammer01  "))
	require.NoError(t, err)

	assert.Contains(t, report.ID, "SCAM-")
	assert.Equal(t, "somchai", report.ReportedBy)
	assert.Equal(t, "scammer01", report.TargetName, "target name is trimmed")
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	assert.Equal(t, domain.DefaultNegotiationNote, report.NegotiationNote)
	assert.False(t, report.CreatedAt.IsZero())
}

func TestCreateReportValidation(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ReportCreateInput
	}{
		{"blank target name", ReportCreateInput{TargetName: "   ", Category: domain.CategoryScam, Detail: "d", EvidenceImage: "i"}},
		{"missing detail", ReportCreateInput{TargetName: "x", Category: domain.CategoryScam, EvidenceImage: "i"}},
		{"missing evidence", ReportCreateInput{TargetName: "x", Category: domain.CategoryScam, Detail: "d"}},
		{"missing category", ReportCreateInput{TargetName: "x", Detail: "d", EvidenceImage: "i"}},
		{"unknown category", ReportCreateInput{TargetName: "x", Category: "GOSSIP", Detail: "d", EvidenceImage: "i"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, reporter, tc.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestCreateReportConcurrentIDsUnique(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	const n = 64
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			report, err := svc.Create(ctx, reporter, validReportInput(fmt.Sprintf("target-%d", i)))
			if err == nil {
				ids <- report.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, n, "every concurrent creation gets a distinct id")
}

func TestListPublicExcludesPendingAndEvidence(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	pending, err := svc.Create(ctx, reporter, validReportInput("hidden"))
	require.NoError(t, err)
	flagged, err := svc.Create(ctx, reporter, validReportInput("visible"))
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, admin, flagged.ID))

	list, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, flagged.ID, list[0].ID)
	assert.Empty(t, list[0].EvidenceImage, "evidence never rides along in list views")

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, report := range all {
		assert.Empty(t, report.EvidenceImage)
	}

	queue, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)
	assert.NotEmpty(t, queue[0].EvidenceImage, "the moderation queue needs the evidence")
}

func TestSearch(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	r1, err := svc.Create(ctx, reporter, validReportInput("alice123"))
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, admin, r1.ID))

	_, err = svc.Create(ctx, reporter, validReportInput("Alice99")) // stays pending
	require.NoError(t, err)

	r3, err := svc.Create(ctx, reporter, validReportInput("bob"))
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, admin, r3.ID))

	results, err := svc.Search(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, results, 1, "case-insensitive match, pending excluded")
	assert.Equal(t, "alice123", results[0].TargetName)

	_, err = svc.Search(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestApprove(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	report, err := svc.Create(ctx, reporter, validReportInput("scammer01"))
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, admin, report.ID))
	stored, err := store.Reports().GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusFlagged, stored.Status)

	// Re-approving an already flagged report is a no-op success.
	require.NoError(t, svc.Approve(ctx, admin, report.ID))
	stored, err = store.Reports().GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusFlagged, stored.Status)

	err = svc.Approve(ctx, admin, "SCAM-unknown")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestApproveConcurrent(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	report, err := svc.Create(ctx, reporter, validReportInput("scammer01"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Approve(ctx, admin, report.ID)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	stored, err := store.Reports().GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusFlagged, stored.Status)
}

func TestSetStatusOverride(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	report, err := svc.Create(ctx, reporter, validReportInput("scammer01"))
	require.NoError(t, err)

	err = svc.SetStatus(ctx, admin, report.ID, nil, nil)
	require.Error(t, err, "at least one field must be supplied")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	bogus := domain.ReportStatus("WEIRD")
	err = svc.SetStatus(ctx, admin, report.ID, &bogus, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// The escape hatch bypasses the state machine entirely.
	resolved := domain.ReportStatusResolved
	note := "refunded after mediation"
	require.NoError(t, svc.SetStatus(ctx, admin, report.ID, &resolved, &note))

	stored, err := store.Reports().GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusResolved, stored.Status)
	assert.Equal(t, note, stored.NegotiationNote)

	// And can force it back.
	pending := domain.ReportStatusPending
	require.NoError(t, svc.SetStatus(ctx, admin, report.ID, &pending, nil))
	stored, err = store.Reports().GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, stored.Status)
	assert.Equal(t, note, stored.NegotiationNote, "absent note field leaves the note unchanged")
}

func TestGetEvidenceDisclosure(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	report, err := svc.Create(ctx, reporter, validReportInput("scammer01"))
	require.NoError(t, err)

	anonymous := domain.Identity{}

	_, err = svc.GetEvidence(ctx, anonymous, report.ID)
	require.Error(t, err, "pending evidence is withheld from the public")
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	image, err := svc.GetEvidence(ctx, admin, report.ID)
	require.NoError(t, err, "privileged callers see pending evidence")
	assert.Equal(t, "data:image/png;base64,AAAA", image)

	require.NoError(t, svc.Approve(ctx, admin, report.ID))
	image, err = svc.GetEvidence(ctx, anonymous, report.ID)
	require.NoError(t, err, "acted-on evidence is public")
	assert.NotEmpty(t, image)

	_, err = svc.GetEvidence(ctx, admin, "SCAM-unknown")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDelete(t *testing.T) {
	svc, store := newReportFixture(t)
	ctx := context.Background()

	report, err := svc.Create(ctx, reporter, validReportInput("scammer01"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, report.ID))
	_, err = store.Reports().GetByID(ctx, report.ID)
	require.Error(t, err)

	err = svc.Delete(ctx, admin, report.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestStats(t *testing.T) {
	svc, _ := newReportFixture(t)
	ctx := context.Background()

	r1, err := svc.Create(ctx, reporter, validReportInput("a"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, reporter, validReportInput("b"))
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, admin, r1.ID))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStats{Pending: 1, Flagged: 1, Resolved: 0, Total: 2}, stats)
}
