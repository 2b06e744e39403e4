package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-comments/internal/dto/request"
	"movie-comments/internal/usecase"
	"movie-comments/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// CreateComment handles POST /api/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	viewID, ok := utils.GetViewIDFromContext(r.Context())
	if !ok {
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	var req request.CommentDraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, validationErrors, err := h.service.Submit(r.Context(), viewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create comment")
		return
	}
	if len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// GetComments handles GET /api/comments
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	viewID, ok := utils.GetViewIDFromContext(r.Context())
	if !ok {
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	comments, err := h.service.List(r.Context(), viewID)
	if err != nil {
		h.handleServiceError(w, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// DeleteComment handles DELETE /api/comments/{id}
//
// Unknown ids succeed: removal is idempotent.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	viewID, ok := utils.GetViewIDFromContext(r.Context())
	if !ok {
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	if err := h.service.Remove(r.Context(), viewID, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *CommentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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
