package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "listing-service/internal/core/port"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(cfg ServerConfig,
	searchHandlers *SearchHandler,
	listingHandlers *ListingHandler,
	visitorHandlers *VisitorHandler,
	auth *VisitorAuth,
	baseLogger core_port.LoggerPort) *Server {

	r := newRouter(cfg, searchHandlers, listingHandlers, visitorHandlers, auth, baseLogger)

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func newRouter(cfg ServerConfig,
	searchHandlers *SearchHandler,
	listingHandlers *ListingHandler,
	visitorHandlers *VisitorHandler,
	auth *VisitorAuth,
	baseLogger core_port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(chimw.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID", "X-User-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные маршруты, посетитель необязателен
		r.Group(func(r chi.Router) {
			r.Use(auth.IdentifyVisitor)

			r.Get("/search", searchHandlers.Search)

			r.Get("/listings/new", listingHandlers.GetNewArrivals)
			r.Get("/listings/{listingID}", listingHandlers.GetListing)
			r.Get("/listings/{listingID}/similar", listingHandlers.GetSimilar)

			r.Get("/dictionaries", listingHandlers.GetDictionaries)
			r.Get("/lines/{lineKey}/stops", listingHandlers.GetLineStops)

			r.Post("/visitors", visitorHandlers.IssueToken)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(auth.RequireVisitor)

			r.Get("/favorites", visitorHandlers.GetFavorites)
			r.Post("/favorites", visitorHandlers.AddFavorite)
			r.Get("/favorites/ids", visitorHandlers.GetFavoriteIDs)
			r.Put("/favorites/{listingID}/toggle", visitorHandlers.ToggleFavorite)
			r.Delete("/favorites/{listingID}", visitorHandlers.RemoveFavorite)

			r.Get("/recently-viewed", visitorHandlers.GetRecentlyViewed)
			r.Post("/recently-viewed", visitorHandlers.RecordView)

			r.Get("/search-history", visitorHandlers.GetSearchHistory)
			r.Post("/search-history", visitorHandlers.SaveSearch)
			r.Delete("/search-history", visitorHandlers.ClearSearchHistory)
			r.Delete("/search-history/item", visitorHandlers.RemoveSearch)
		})
	})

	return r
}

// Start блокируется до остановки сервера.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
