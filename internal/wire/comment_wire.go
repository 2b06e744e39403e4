package wire

import (
	"movie-comments/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(r chi.Router, commentHandler *adaptor.CommentHandler) {
	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/", commentHandler.GetComments)          // GET /api/comments
		r.Post("/", commentHandler.CreateComment)       // POST /api/comments
		r.Delete("/{id}", commentHandler.DeleteComment) // DELETE /api/comments/{id}
	})
}
