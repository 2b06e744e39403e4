package repository

import (
	"sync"
	"time"

	"movie-comments/internal/data/entity"
	"movie-comments/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LedgerEventKind string

const (
	LedgerAppended LedgerEventKind = "appended"
	LedgerRemoved  LedgerEventKind = "removed"
)

// LedgerEvent is published after every mutation. Size is the ledger length
// once the mutation has been applied.
type LedgerEvent struct {
	Kind    LedgerEventKind
	Comment entity.Comment
	Size    int
}

// CommentRepository is the in-memory, ordered comment ledger of one view.
type CommentRepository interface {
	Append(candidate entity.CommentCandidate) entity.Comment
	Remove(id uuid.UUID) bool
	List() []entity.Comment
	Len() int
	Subscribe(fn func(LedgerEvent)) (unsubscribe func())
}

type commentRepository struct {
	mu       sync.RWMutex
	comments []entity.Comment
	index    map[uuid.UUID]struct{}

	subMu  sync.Mutex
	subs   map[int]func(LedgerEvent)
	nextID int

	newID func() uuid.UUID
	now   func() time.Time
	log   *zap.Logger
}

func NewCommentRepository(log *zap.Logger) CommentRepository {
	return newCommentRepository(utils.GenerateCommentID, time.Now, log)
}

func newCommentRepository(newID func() uuid.UUID, now func() time.Time, log *zap.Logger) *commentRepository {
	return &commentRepository{
		index: make(map[uuid.UUID]struct{}),
		subs:  make(map[int]func(LedgerEvent)),
		newID: newID,
		now:   now,
		log:   log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Append(candidate entity.CommentCandidate) entity.Comment {
	r.mu.Lock()
	id := r.newID()
	for {
		if _, taken := r.index[id]; !taken {
			break
		}
		r.log.Warn("Comment ID collision, drawing a new one", zap.String("comment_id", id.String()))
		id = r.newID()
	}

	comment := entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        id,
			CreatedAt: r.now(),
		},
		Body:   candidate.Body,
		Rating: candidate.Rating,
	}
	r.comments = append(r.comments, comment)
	r.index[id] = struct{}{}
	size := len(r.comments)
	r.mu.Unlock()

	r.publish(LedgerEvent{Kind: LedgerAppended, Comment: comment, Size: size})
	return comment
}

func (r *commentRepository) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	if _, ok := r.index[id]; !ok {
		r.mu.Unlock()
		return false
	}

	var removed entity.Comment
	for i, c := range r.comments {
		if c.ID == id {
			removed = c
			r.comments = append(r.comments[:i:i], r.comments[i+1:]...)
			break
		}
	}
	delete(r.index, id)
	size := len(r.comments)
	r.mu.Unlock()

	r.publish(LedgerEvent{Kind: LedgerRemoved, Comment: removed, Size: size})
	return true
}

func (r *commentRepository) List() []entity.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Comment, len(r.comments))
	copy(out, r.comments)
	return out
}

func (r *commentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.comments)
}

func (r *commentRepository) Subscribe(fn func(LedgerEvent)) func() {
	r.subMu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, id)
			r.subMu.Unlock()
		})
	}
}

// publish runs subscribers outside the ledger lock so they may read it back.
func (r *commentRepository) publish(ev LedgerEvent) {
	r.subMu.Lock()
	subs := make([]func(LedgerEvent), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
