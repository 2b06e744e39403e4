package adaptor

import (
	"movie-comments/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Movie   *MovieHandler
	Comment *CommentHandler
	Page    *PageHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:   NewMovieHandler(service.Movie, log),
		Comment: NewCommentHandler(service.Comment, log),
		Page:    NewPageHandler(service, log),
	}
}
