package middleware

import (
	"net/http"

	"movie-comments/internal/usecase"
	"movie-comments/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ViewCookieName = "movie_view"

// View resolves the visitor's view from its cookie, mounting a fresh one when
// the cookie is missing or points at a view that no longer exists.
func View(views usecase.ViewService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var view *usecase.View

			if cookie, err := r.Cookie(ViewCookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					view, _ = views.Find(id)
				}
				if view == nil {
					logger.Debug("Unknown view cookie, mounting a new view",
						zap.String("cookie", cookie.Value))
				}
			}

			if view == nil {
				view = views.Mount()
				SetViewCookie(w, r, view.ID)
			}

			ctx := utils.SetViewContext(r.Context(), view.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SetViewCookie(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     ViewCookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
