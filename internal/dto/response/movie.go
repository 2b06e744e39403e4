package response

import (
	"movie-comments/internal/data/entity"
)

type MovieResponse struct {
	Title         string  `json:"original_title"`
	PosterURL     string  `json:"poster_path"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	ReleaseDateFR string  `json:"release_date_fr"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
}

// MovieStateResponse is the loader state as exposed to clients.
type MovieStateResponse struct {
	Status string         `json:"status"`
	Movie  *MovieResponse `json:"movie,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Helper converter
func MovieToResponse(movie *entity.Movie) MovieResponse {
	// fr-FR short date; fall back to whatever upstream sent
	releaseFR := movie.ReleaseDate
	if movie.ReleasedAt != nil {
		releaseFR = movie.ReleasedAt.Format("02/01/2006")
	}

	return MovieResponse{
		Title:         movie.Title,
		PosterURL:     movie.PosterURL,
		Overview:      movie.Overview,
		ReleaseDate:   movie.ReleaseDate,
		ReleaseDateFR: releaseFR,
		VoteAverage:   movie.VoteAverage,
		VoteCount:     movie.VoteCount,
	}
}
