package expiry

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/service"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/store"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
	"github.com/batoulgheleb/crisiszone/pkg/testutil"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireStaleRequests(context.Context) (int, error) {
	e.calls.Add(1)
	return 0, e.err
}

func TestNewRequiresExpirer(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestRunOnceExpiresAgainstClock(t *testing.T) {
	ctx := requestcontext.WithTime(context.Background(), testutil.FixedNow)
	repo := store.NewInMemory()
	require.NoError(t, repo.CreateRequest(ctx, testutil.NewRequestBuilder().Build()))

	svc := service.New(service.StoresFrom(repo), store.NewCoordinator(repo), nil)

	early, err := New(svc, WithClock(func() time.Time { return testutil.FixedNow.Add(time.Hour) }))
	require.NoError(t, err)
	n, err := early.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	late, err := New(svc, WithClock(func() time.Time { return testutil.FixedNow.Add(models.RequestTTL + time.Second) }))
	require.NoError(t, err)
	n, err = late.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	r, err := repo.FindRequestByID(ctx, testutil.TestIDs.Request1)
	require.NoError(t, err)
	assert.Equal(t, models.RequestExpired, r.Status)
}

func TestStartSweepsUntilCancelled(t *testing.T) {
	expirer := &countingExpirer{err: errors.New("database unavailable")}
	sweeper, err := New(expirer,
		WithInterval(5*time.Millisecond),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Start(ctx) }()

	require.Eventually(t, func() bool { return expirer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
