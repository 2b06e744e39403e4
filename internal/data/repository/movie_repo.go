package repository

import (
	"context"
	"fmt"
	"time"

	"movie-comments/internal/data/entity"
	"movie-comments/pkg/movieapi"

	"go.uber.org/zap"
)

type MovieRepository interface {
	FetchRandom(ctx context.Context) (*entity.Movie, error)
}

// MovieSource is the upstream the repository reads from.
type MovieSource interface {
	FetchRandom(ctx context.Context) (*movieapi.Movie, error)
}

type movieRepository struct {
	source MovieSource
	log    *zap.Logger
}

func NewMovieRepository(source MovieSource, log *zap.Logger) MovieRepository {
	return &movieRepository{
		source: source,
		log:    log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) FetchRandom(ctx context.Context) (*entity.Movie, error) {
	raw, err := r.source.FetchRandom(ctx)
	if err != nil {
		r.log.Error("Failed to fetch random movie", zap.Error(err))
		return nil, fmt.Errorf("fetch random movie: %w", err)
	}

	movie := &entity.Movie{
		Title:       raw.OriginalTitle,
		PosterURL:   raw.PosterPath,
		Overview:    raw.Overview,
		ReleaseDate: raw.ReleaseDate,
		ReleasedAt:  parseReleaseDate(raw.ReleaseDate),
		VoteAverage: raw.VoteAverage,
		VoteCount:   raw.VoteCount,
	}

	r.log.Debug("Random movie fetched",
		zap.String("title", movie.Title),
		zap.String("release_date", movie.ReleaseDate),
	)

	return movie, nil
}

var releaseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func parseReleaseDate(value string) *time.Time {
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
