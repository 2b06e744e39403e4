// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-comments/internal/adaptor"
	"movie-comments/internal/data/repository"
	"movie-comments/internal/usecase"
	"movie-comments/pkg/middleware"
	"movie-comments/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
	Views  usecase.ViewService
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, config, logger)

	return &App{
		Router: router,
		Views:  service.View,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	// Health check endpoint, outside any view
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Everything else belongs to the visitor's view
	r.Group(func(r chi.Router) {
		r.Use(middleware.View(service.View, logger))

		wirePage(r, handler.Page)
		wireMovie(r, handler.Movie)
		wireComment(r, handler.Comment)
	})

	return r
}
