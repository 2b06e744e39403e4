package adaptor

import (
	"errors"
	"net/http"

	"movie-comments/internal/usecase"
	"movie-comments/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovie handles GET /api/movie
//
// ?wait=1 holds the request until the load is settled or the client goes away.
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	viewID, ok := utils.GetViewIDFromContext(r.Context())
	if !ok {
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	wait := utils.ParseBool(r.URL.Query().Get("wait"), false)

	state, err := h.service.State(r.Context(), viewID, wait)
	if err != nil {
		h.handleServiceError(w, err, "get movie")
		return
	}

	switch usecase.LoadStatus(state.Status) {
	case usecase.StatusReady:
		utils.ResponseSuccess(w, "success", state)
	case usecase.StatusFailed:
		utils.ResponseBadGateway(w, state.Error, state)
	default:
		utils.ResponseAccepted(w, "loading", state)
	}
}

func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrViewNotFound):
		h.log.Warn(operation+" failed - view not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "View not found")

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
