package wire

import (
	"movie-comments/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePage(r chi.Router, pageHandler *adaptor.PageHandler) {
	r.Get("/", pageHandler.Show)
	r.Post("/comments", pageHandler.SubmitComment)
	r.Post("/comments/{id}/delete", pageHandler.DeleteComment)
	r.Post("/reload", pageHandler.Reload)
}
