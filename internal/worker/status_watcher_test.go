package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/logger"
	"gigBoard/internal/models/gig"
	"gigBoard/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockGigLister struct {
	mock.Mock
}

func (m *MockGigLister) List(ctx context.Context) ([]gig.Gig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gig.Gig), args.Error(1)
}

var _ worker.GigLister = (*MockGigLister)(nil)

type fakeClock struct {
	mtx sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.now = c.now.Add(d)
}

func TestStatusWatcher_Check(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, time.September, 25, 12, 0, 0, 0, time.UTC)}

	gigs := []gig.Gig{
		gig.New("fresh", "Fuel delivery", "24th September 2025, 12:00"),
		gig.New("parcel", "Parcel", "1st September 2025", gig.WithDeadline("2025-09-27")),
		gig.New("old", "Old job", "1st September 2025"),
	}
	repo := new(MockGigLister)
	repo.On("List", mock.Anything).Return(gigs, nil)

	w := worker.NewStatusWatcher(repo,
		gigstatus.NewClassifier(gigstatus.WithLocation(time.UTC)),
		worker.WithClock(clock.Now),
		worker.WithInterval(time.Hour))
	assert.Equal(t, time.Hour, w.Interval())

	transitions, err := w.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, transitions, "первый проход только запоминает статусы")

	transitions, err = w.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, transitions)

	clock.Advance(3 * 24 * time.Hour)

	transitions, err = w.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, []worker.Transition{
		{GigID: "fresh", From: gigstatus.StatusNew, To: gigstatus.StatusOpen},
		{GigID: "parcel", From: gigstatus.StatusClosingSoon, To: gigstatus.StatusClosed},
	}, transitions)
}

func TestStatusWatcher_Check_RepoError(t *testing.T) {
	repo := new(MockGigLister)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	w := worker.NewStatusWatcher(repo, gigstatus.NewClassifier())

	_, err := w.Check(context.Background())
	assert.ErrorContains(t, err, "получение гигов")
	assert.Equal(t, worker.DefaultInterval, w.Interval())
}

func TestStatusWatcher_IgnoresAddedAndRemovedGigs(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, time.September, 25, 12, 0, 0, 0, time.UTC)}
	repo := new(MockGigLister)
	repo.On("List", mock.Anything).Return([]gig.Gig{gig.New("a", "A", "1st September 2025")}, nil).Once()
	repo.On("List", mock.Anything).Return([]gig.Gig{gig.New("b", "B", "25th September 2025")}, nil).Once()

	w := worker.NewStatusWatcher(repo, gigstatus.NewClassifier(gigstatus.WithLocation(time.UTC)), worker.WithClock(clock.Now))

	_, err := w.Check(context.Background())
	require.NoError(t, err)
	transitions, err := w.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, transitions)
	repo.AssertExpectations(t)
}

func TestStatusWatcher_StartStopsOnCancel(t *testing.T) {
	var passes atomic.Int32
	repo := new(MockGigLister)
	repo.On("List", mock.Anything).Return([]gig.Gig{}, nil).Run(func(mock.Arguments) {
		passes.Add(1)
	})

	w := worker.NewStatusWatcher(repo, gigstatus.NewClassifier(), worker.WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return passes.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("воркер не остановился после отмены контекста")
	}
}

func TestStatusWatcher_LogsEachGigAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = previous })

	clock := &fakeClock{now: time.Date(2025, time.September, 25, 12, 0, 0, 0, time.UTC)}
	repo := new(MockGigLister)
	repo.On("List", mock.Anything).Return([]gig.Gig{
		gig.New("fresh", "Fuel delivery", "24th September 2025, 12:00"),
		gig.New("open-ended", "Old job", "1st September 2025"),
	}, nil)

	w := worker.NewStatusWatcher(repo, gigstatus.NewClassifier(gigstatus.WithLocation(time.UTC)), worker.WithClock(clock.Now))
	_, err := w.Check(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("Worker: Статус гига").AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "fresh", fields["gig_id"])
	assert.Equal(t, "NEW", fields["status"])
	assert.Equal(t, "1", fields["days_since_posted"])
	assert.Equal(t, "unknown", entries[1].ContextMap()["days_until_deadline"])
}
