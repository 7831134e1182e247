package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/blacklist-service/internal/events"
	"github.com/scamwatch/blacklist-service/internal/repository"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

func newAppealFixture(t *testing.T) (*AppealService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc := NewAppealService(AppealDependencies{
		AppealRepo: store.Appeals(),
		Cache:      NewCounterCache(nil),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	return svc, store
}

func TestCreateAppeal(t *testing.T) {
	svc, _ := newAppealFixture(t)
	ctx := context.Background()

	appeal, err := svc.Create(ctx, reporter, AppealCreateInput{
		TargetName:    "  scammer01  ",
		Detail:        "the order was delivered late, not stolen",
		EvidenceImage: "data:image/png;base64,BBBB",
	})
	require.NoError(t, err)

	assert.Contains(t, appeal.ID, "APP-")
	assert.Equal(t, "somchai", appeal.SubmittedBy)
	assert.Equal(t, "scammer01", appeal.TargetName, "target name is trimmed")
	assert.False(t, appeal.IsClosed)
	assert.False(t, appeal.CreatedAt.IsZero())
}

func TestCreateAppealValidation(t *testing.T) {
	svc, _ := newAppealFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input AppealCreateInput
	}{
		{"blank target name", AppealCreateInput{TargetName: "   ", Detail: "d", EvidenceImage: "i"}},
		{"missing detail", AppealCreateInput{TargetName: "x", EvidenceImage: "i"}},
		{"missing evidence", AppealCreateInput{TargetName: "x", Detail: "d"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, reporter, tc.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestListOpenNewestFirst(t *testing.T) {
	svc, _ := newAppealFixture(t)
	ctx := context.Background()

	a1, err := svc.Create(ctx, reporter, validAppealInput("one"))
	require.NoError(t, err)
	a2, err := svc.Create(ctx, reporter, validAppealInput("two"))
	require.NoError(t, err)

	closed, err := svc.Create(ctx, reporter, validAppealInput("three"))
	require.NoError(t, err)
	_, err = svc.Close(ctx, closed.ID)
	require.NoError(t, err)

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2, "closed appeals leave the queue")
	assert.Equal(t, a2.ID, open[0].ID)
	assert.Equal(t, a1.ID, open[1].ID)
}

func TestCountOpen(t *testing.T) {
	svc, _ := newAppealFixture(t)
	ctx := context.Background()

	count, err := svc.CountOpen(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	appeal, err := svc.Create(ctx, reporter, validAppealInput("one"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, reporter, validAppealInput("two"))
	require.NoError(t, err)

	count, err = svc.CountOpen(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = svc.Close(ctx, appeal.ID)
	require.NoError(t, err)

	count, err = svc.CountOpen(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCloseAppeal(t *testing.T) {
	svc, store := newAppealFixture(t)
	ctx := context.Background()

	appeal, err := svc.Create(ctx, reporter, validAppealInput("scammer01"))
	require.NoError(t, err)

	closed, err := svc.Close(ctx, appeal.ID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)

	// Closing again is a no-op success.
	closed, err = svc.Close(ctx, appeal.ID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)

	stored, err := store.Appeals().GetByID(ctx, appeal.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsClosed)

	_, err = svc.Close(ctx, "APP-unknown")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
