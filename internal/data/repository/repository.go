package repository

import (
	"go.uber.org/zap"
)

type Repository struct {
	Movie MovieRepository

	log *zap.Logger
}

func NewRepository(source MovieSource, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(source, log),
		log:   log,
	}
}

// NewCommentLedger hands out an empty ledger. Each view owns its own.
func (r *Repository) NewCommentLedger() CommentRepository {
	return NewCommentRepository(r.log)
}
