package adaptor

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"movie-comments/internal/dto/request"
	"movie-comments/internal/dto/response"
	"movie-comments/internal/usecase"
	"movie-comments/pkg/middleware"
	"movie-comments/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var pageTemplates embed.FS

var pageTemplate = template.Must(template.ParseFS(pageTemplates, "templates/page.html"))

// PageHandler serves the server-rendered page and its form posts.
type PageHandler struct {
	service *usecase.Service
	log     *zap.Logger
}

func NewPageHandler(service *usecase.Service, log *zap.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		log:     log.With(zap.String("handler", "page")),
	}
}

// Show handles GET /
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	viewID, ok := utils.GetViewIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, viewID, http.StatusOK, request.CommentDraft{}, nil)
}

// SubmitComment handles POST /comments
func (h *PageHandler) SubmitComment(w http.ResponseWriter, r *http.Request) {
	viewID, ok := utils.GetViewIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	draft := request.CommentDraftFromForm(r.PostForm)

	_, validationErrors, err := h.service.Comment.Submit(r.Context(), viewID, &draft)
	if err != nil {
		h.handleServiceError(w, err, "submit comment")
		return
	}
	if len(validationErrors) > 0 {
		// keep what the visitor typed
		h.render(w, r, viewID, http.StatusUnprocessableEntity, draft, validationErrors)
		return
	}

	// redirect so the form comes back empty
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteComment handles POST /comments/{id}/delete
func (h *PageHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	viewID, ok := utils.GetViewIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.service.Comment.Remove(r.Context(), viewID, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete comment")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reload handles POST /reload: the current view is discarded and a new one
// is mounted, which fetches a new movie and starts with no comments.
func (h *PageHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if viewID, ok := utils.GetViewIDFromContext(r.Context()); ok {
		h.service.View.Teardown(viewID)
	}

	view := h.service.View.Mount()
	middleware.SetViewCookie(w, r, view.ID)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, viewID uuid.UUID, status int, draft request.CommentDraft, validationErrors map[string]string) {
	state, err := h.service.Movie.State(r.Context(), viewID, false)
	if err != nil {
		h.handleServiceError(w, err, "render page")
		return
	}

	page := response.PageView{
		Movie:  *state,
		Draft:  draft,
		Errors: validationErrors,
		Notes:  request.NoteOptions,
	}

	// the comment list only exists on a loaded page
	if usecase.LoadStatus(state.Status) == usecase.StatusReady {
		comments, err := h.service.Comment.List(r.Context(), viewID)
		if err != nil {
			h.handleServiceError(w, err, "render page")
			return
		}
		page.Comments = comments
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		h.log.Error("Failed to render page", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *PageHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrViewNotFound):
		// the view expired between the middleware and here; start over
		h.log.Warn(operation+" failed - view not found",
			zap.Error(err),
			zap.String("operation", operation))
		http.Error(w, "Session expirée, veuillez recharger la page", http.StatusGone)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
