package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"movie-comments/internal/data/entity"
	"movie-comments/internal/data/repository"
	"movie-comments/pkg/movieapi"
	"movie-comments/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func nowFunc() func() time.Time {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return clock.Now
}

func TestViewMountStartsLoad(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := repository.NewRepository(staticSource{movie: &movieapi.Movie{OriginalTitle: "Mon Oncle"}}, zap.NewNop())
	views := newViewService(repo, utils.ViewConfig{}, zap.NewNop(), time.Now)
	defer views.Close()

	view := views.Mount()
	state := waitTerminal(t, view.Movie)

	assert.Equal(t, StatusReady, state.Status)
	assert.Equal(t, "Mon Oncle", state.Movie.Title)
	assert.Equal(t, 0, view.Comments.Len())
}

func TestViewMountFailedFetch(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := repository.NewRepository(staticSource{err: errors.New("dns failure")}, zap.NewNop())
	views := newViewService(repo, utils.ViewConfig{}, zap.NewNop(), time.Now)
	defer views.Close()

	view := views.Mount()
	state := waitTerminal(t, view.Movie)

	assert.Equal(t, StatusFailed, state.Status)
	assert.Contains(t, state.Err.Error(), "dns failure")
}

func TestViewMountsAreIndependent(t *testing.T) {
	repo := repository.NewRepository(staticSource{movie: &movieapi.Movie{}}, zap.NewNop())
	views := newViewService(repo, utils.ViewConfig{}, zap.NewNop(), time.Now)
	defer views.Close()

	a := views.Mount()
	b := views.Mount()

	assert.NotEqual(t, a.ID, b.ID)
	a.Comments.Append(entity.CommentCandidate{Body: "a", Rating: 1})
	assert.Equal(t, 0, b.Comments.Len())
}

func TestViewFindAndTeardown(t *testing.T) {
	defer goleak.VerifyNone(t)

	blocking := newFakeMovieRepo()
	repo := repository.NewRepository(staticSource{}, zap.NewNop())
	repo.Movie = blocking
	views := newViewService(repo, utils.ViewConfig{}, zap.NewNop(), time.Now)
	defer views.Close()

	view := views.Mount()
	<-blocking.calls

	found, ok := views.Find(view.ID)
	require.True(t, ok)
	assert.Same(t, view, found)

	views.Teardown(view.ID)

	_, ok = views.Find(view.ID)
	assert.False(t, ok)
	_, err := views.Get(view.ID)
	assert.ErrorIs(t, err, ErrViewNotFound)

	// torn down mid-flight: the late result is never applied
	blocking.results <- fakeResult{movie: &entity.Movie{Title: "late"}}
	assert.Equal(t, StatusLoading, view.Movie.State().Status)

	// unknown ids are ignored
	views.Teardown(uuid.New())
}

func TestViewSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := repository.NewRepository(staticSource{movie: &movieapi.Movie{}}, zap.NewNop())
	views := newViewService(repo, utils.ViewConfig{IdleTTL: 10 * time.Minute}, zap.NewNop(), clock.Now)
	defer views.Close()

	idle := views.Mount()
	active := views.Mount()

	clock.Advance(8 * time.Minute)
	_, ok := views.Find(active.ID)
	require.True(t, ok)

	clock.Advance(5 * time.Minute)
	assert.Equal(t, 1, views.Sweep(clock.Now()))

	_, ok = views.Find(idle.ID)
	assert.False(t, ok)
	_, ok = views.Find(active.ID)
	assert.True(t, ok)
}

func TestViewSweepDisabledWithoutTTL(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	repo := repository.NewRepository(staticSource{movie: &movieapi.Movie{}}, zap.NewNop())
	views := newViewService(repo, utils.ViewConfig{}, zap.NewNop(), clock.Now)
	defer views.Close()

	views.Mount()
	clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, views.Sweep(clock.Now()))
}

func TestViewRunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := repository.NewRepository(staticSource{movie: &movieapi.Movie{}}, zap.NewNop())
	views := newViewService(repo, utils.ViewConfig{IdleTTL: time.Nanosecond, SweepInterval: time.Millisecond}, zap.NewNop(), time.Now)
	defer views.Close()

	view := views.Mount()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		views.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := views.Find(view.ID)
		return !ok
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestViewCloseStopsEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	blocking := newFakeMovieRepo()
	repo := repository.NewRepository(staticSource{}, zap.NewNop())
	repo.Movie = blocking
	views := newViewService(repo, utils.ViewConfig{}, zap.NewNop(), time.Now)

	a := views.Mount()
	b := views.Mount()
	<-blocking.calls
	<-blocking.calls

	views.Close()

	_, ok := views.Find(a.ID)
	assert.False(t, ok)
	_, ok = views.Find(b.ID)
	assert.False(t, ok)
}

func TestViewMountEvictsLeastRecentlySeen(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	blocking := newFakeMovieRepo()
	repo := repository.NewRepository(staticSource{}, zap.NewNop())
	repo.Movie = blocking
	views := newViewService(repo, utils.ViewConfig{MaxViews: 2}, zap.NewNop(), clock.Now)
	defer views.Close()

	first := views.Mount()
	clock.Advance(time.Minute)
	second := views.Mount()
	clock.Advance(time.Minute)

	// reading the first view makes the second one the oldest
	_, ok := views.Find(first.ID)
	require.True(t, ok)
	clock.Advance(time.Minute)

	third := views.Mount()

	_, ok = views.Find(second.ID)
	assert.False(t, ok)
	_, ok = views.Find(first.ID)
	assert.True(t, ok)
	_, ok = views.Find(third.ID)
	assert.True(t, ok)

	// the evicted view was stopped: Wait returns at once, still loading
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	state := second.Movie.Wait(ctx)
	require.NoError(t, ctx.Err())
	assert.Equal(t, StatusLoading, state.Status)
}
