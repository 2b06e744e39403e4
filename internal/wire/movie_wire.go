package wire

import (
	"movie-comments/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// GET /api/movie - Loader state of the current view (?wait=1 to block)
	r.Get("/api/movie", movieHandler.GetMovie)
}
