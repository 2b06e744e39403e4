package usecase

import (
	"movie-comments/internal/data/repository"
	"movie-comments/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	View    ViewService
	Movie   MovieService
	Comment CommentService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	views := NewViewService(repo, config.View, log)
	return &Service{
		View:    views,
		Movie:   NewMovieService(views, log),
		Comment: NewCommentService(views, log),
	}
}
