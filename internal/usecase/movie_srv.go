package usecase

import (
	"context"
	"fmt"
	"sync"

	"movie-comments/internal/data/entity"
	"movie-comments/internal/data/repository"
	"movie-comments/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LoadStatus string

const (
	StatusLoading LoadStatus = "loading"
	StatusReady   LoadStatus = "ready"
	StatusFailed  LoadStatus = "failed"
)

// MsgMovieFetchFailed is the only failure text shown to visitors.
const MsgMovieFetchFailed = "Erreur lors de la récupération du film"

// MovieState is a read-only snapshot of the loader. Movie is set only when
// Status is StatusReady, Err only when it is StatusFailed.
type MovieState struct {
	Status LoadStatus
	Movie  *entity.Movie
	Err    error
}

func (s MovieState) Terminal() bool {
	return s.Status == StatusReady || s.Status == StatusFailed
}

// MovieLoader fetches one movie for one view. Ready and Failed are terminal:
// there is no retry, and the only way to load again is a new loader.
type MovieLoader struct {
	repo repository.MovieRepository
	log  *zap.Logger

	mu      sync.RWMutex
	state   MovieState
	stopped bool
	cancel  context.CancelFunc

	start sync.Once
	done  chan struct{}
	wg    sync.WaitGroup
}

func NewMovieLoader(repo repository.MovieRepository, log *zap.Logger) *MovieLoader {
	return &MovieLoader{
		repo:  repo,
		log:   log.With(zap.String("service", "movie_loader")),
		state: MovieState{Status: StatusLoading},
		done:  make(chan struct{}),
	}
}

// Start issues the single fetch in the background. Later calls do nothing.
func (l *MovieLoader) Start(parent context.Context) {
	l.start.Do(func() {
		l.mu.Lock()
		if l.stopped {
			l.mu.Unlock()
			return
		}
		ctx, cancel := context.WithCancel(parent)
		l.cancel = cancel
		l.wg.Add(1)
		l.mu.Unlock()

		go l.run(ctx)
	})
}

func (l *MovieLoader) run(ctx context.Context) {
	defer l.wg.Done()

	movie, err := l.repo.FetchRandom(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		l.log.Debug("Discarding movie result after teardown", zap.Error(err))
		return
	}

	l.cancel()
	if err != nil {
		l.log.Error("Movie load failed", zap.Error(err))
		l.state = MovieState{Status: StatusFailed, Err: err}
	} else {
		l.log.Info("Movie loaded", zap.String("title", movie.Title))
		l.state = MovieState{Status: StatusReady, Movie: movie}
	}
	close(l.done)
}

func (l *MovieLoader) State() MovieState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Wait blocks until the state is terminal, the loader is stopped, or ctx is
// done, and returns the state at that point.
func (l *MovieLoader) Wait(ctx context.Context) MovieState {
	select {
	case <-l.done:
	case <-ctx.Done():
	}
	return l.State()
}

// Stop tears the loader down. An in-flight fetch is cancelled and whatever it
// returns is dropped. Stop waits for the fetch goroutine to exit.
func (l *MovieLoader) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	if l.cancel != nil {
		l.cancel()
	}
	if !l.state.Terminal() {
		close(l.done)
	}
	l.mu.Unlock()

	l.wg.Wait()
}

type MovieService interface {
	// State reports the view's loader state. With wait set it blocks until
	// the load is terminal or ctx is done.
	State(ctx context.Context, viewID uuid.UUID, wait bool) (*response.MovieStateResponse, error)
}

type movieService struct {
	views ViewService
	log   *zap.Logger
}

func NewMovieService(views ViewService, log *zap.Logger) MovieService {
	return &movieService{
		views: views,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) State(ctx context.Context, viewID uuid.UUID, wait bool) (*response.MovieStateResponse, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return nil, fmt.Errorf("movie state of view %s: %w", viewID, err)
	}

	state := view.Movie.State()
	if wait && !state.Terminal() {
		state = view.Movie.Wait(ctx)
		if !state.Terminal() {
			s.log.Debug("Stopped waiting for movie before load finished",
				zap.String("view_id", viewID.String()),
				zap.Error(ctx.Err()),
			)
		}
	}

	resp := MovieStateToResponse(state)
	return &resp, nil
}

// MovieStateToResponse never leaks the underlying failure to clients.
func MovieStateToResponse(state MovieState) response.MovieStateResponse {
	resp := response.MovieStateResponse{Status: string(state.Status)}
	switch state.Status {
	case StatusReady:
		movie := response.MovieToResponse(state.Movie)
		resp.Movie = &movie
	case StatusFailed:
		resp.Error = MsgMovieFetchFailed
	}
	return resp
}
