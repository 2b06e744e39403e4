package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"movie-comments/internal/data/repository"
	"movie-comments/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrViewNotFound = errors.New("view not found")

// View is one mounted page: its own movie loader and its own comment ledger.
type View struct {
	ID       uuid.UUID
	Movie    *MovieLoader
	Comments repository.CommentRepository

	mu       sync.Mutex
	lastSeen time.Time
	unsub    func()
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *View) idleSince(now time.Time) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return now.Sub(v.lastSeen)
}

type ViewService interface {
	Mount() *View
	Find(id uuid.UUID) (*View, bool)
	Get(id uuid.UUID) (*View, error)
	Teardown(id uuid.UUID)
	Sweep(now time.Time) int
	Run(ctx context.Context)
	Close()
}

type viewService struct {
	repo *repository.Repository
	cfg  utils.ViewConfig
	log  *zap.Logger
	now  func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.RWMutex
	views map[uuid.UUID]*View
}

func NewViewService(repo *repository.Repository, cfg utils.ViewConfig, log *zap.Logger) ViewService {
	return newViewService(repo, cfg, log, time.Now)
}

func newViewService(repo *repository.Repository, cfg utils.ViewConfig, log *zap.Logger, now func() time.Time) *viewService {
	ctx, cancel := context.WithCancel(context.Background())
	return &viewService{
		repo:   repo,
		cfg:    cfg,
		log:    log.With(zap.String("service", "view")),
		now:    now,
		ctx:    ctx,
		cancel: cancel,
		views:  make(map[uuid.UUID]*View),
	}
}

// Mount creates a fresh view and starts its one movie fetch. When the
// registry is full the least recently seen views make room for it.
func (s *viewService) Mount() *View {
	view := &View{
		ID:       utils.GenerateViewID(),
		Movie:    NewMovieLoader(s.repo.Movie, s.log),
		Comments: s.repo.NewCommentLedger(),
		lastSeen: s.now(),
	}

	viewLog := s.log.With(zap.String("view_id", view.ID.String()))
	view.unsub = view.Comments.Subscribe(func(ev repository.LedgerEvent) {
		viewLog.Debug("Comment ledger changed",
			zap.String("event", string(ev.Kind)),
			zap.String("comment_id", ev.Comment.ID.String()),
			zap.Int("size", ev.Size),
		)
	})

	s.mu.Lock()
	evicted := s.evictOldestLocked()
	s.views[view.ID] = view
	s.mu.Unlock()

	for _, old := range evicted {
		s.teardown(old)
		s.log.Info("View evicted, registry full",
			zap.String("view_id", old.ID.String()),
			zap.Int("max_views", s.cfg.MaxViews))
	}

	view.Movie.Start(s.ctx)

	s.log.Info("View mounted", zap.String("view_id", view.ID.String()))
	return view
}

// evictOldestLocked removes views until one more fits under MaxViews.
// s.mu must be held.
func (s *viewService) evictOldestLocked() []*View {
	if s.cfg.MaxViews <= 0 {
		return nil
	}

	now := s.now()
	var evicted []*View
	for len(s.views) >= s.cfg.MaxViews {
		var oldest *View
		var oldestIdle time.Duration
		for _, view := range s.views {
			if idle := view.idleSince(now); oldest == nil || idle > oldestIdle {
				oldest, oldestIdle = view, idle
			}
		}
		delete(s.views, oldest.ID)
		evicted = append(evicted, oldest)
	}
	return evicted
}

func (s *viewService) Find(id uuid.UUID) (*View, bool) {
	s.mu.RLock()
	view, ok := s.views[id]
	s.mu.RUnlock()

	if ok {
		view.touch(s.now())
	}
	return view, ok
}

func (s *viewService) Get(id uuid.UUID) (*View, error) {
	view, ok := s.Find(id)
	if !ok {
		return nil, ErrViewNotFound
	}
	return view, nil
}

// Teardown drops the view and stops its loader. Unknown ids are ignored.
func (s *viewService) Teardown(id uuid.UUID) {
	s.mu.Lock()
	view, ok := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()

	if !ok {
		return
	}

	s.teardown(view)
	s.log.Info("View torn down", zap.String("view_id", id.String()))
}

func (s *viewService) teardown(view *View) {
	view.Movie.Stop()
	if view.unsub != nil {
		view.unsub()
	}
}

// Sweep tears down every view idle for longer than the configured TTL.
func (s *viewService) Sweep(now time.Time) int {
	if s.cfg.IdleTTL <= 0 {
		return 0
	}

	var expired []*View
	s.mu.Lock()
	for id, view := range s.views {
		if view.idleSince(now) > s.cfg.IdleTTL {
			expired = append(expired, view)
			delete(s.views, id)
		}
	}
	s.mu.Unlock()

	for _, view := range expired {
		s.teardown(view)
	}

	if len(expired) > 0 {
		s.log.Info("Expired views swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done.
func (s *viewService) Run(ctx context.Context) {
	if s.cfg.SweepInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}

// Close tears down every view and cancels outstanding fetches.
func (s *viewService) Close() {
	s.cancel()

	s.mu.Lock()
	views := s.views
	s.views = make(map[uuid.UUID]*View)
	s.mu.Unlock()

	for _, view := range views {
		s.teardown(view)
	}
}
