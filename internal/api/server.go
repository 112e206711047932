package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Server The http adapter around the catalog and the deck resolver.
type Server struct {
	cfg        config.HTTP
	router     *chi.Mux
	httpServer *http.Server
}

func NewServer(cfg config.HTTP, h *Handler) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes(h)

	s.httpServer = &http.Server{
		Addr:              cfg.AddressOrDefault(),
		Handler:           s.router,
		ReadTimeout:       cfg.ReadTimeoutOrDefault(),
		ReadHeaderTimeout: cfg.ReadTimeoutOrDefault(),
		WriteTimeout:      cfg.WriteTimeoutOrDefault(),
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(exposeRequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(hlog.NewHandler(log.Logger))
	s.router.Use(hlog.AccessHandler(accessLog))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.RequestTimeoutOrDefault()))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOriginsOrDefault(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if s.cfg.RateLimit > 0 {
		s.router.Use(rateLimit(s.cfg.RateLimit, s.cfg.RateBurst))
	}
	s.router.Use(maxBodySize(s.cfg.MaxBodyBytesOrDefault()))
}

func (s *Server) setupRoutes(h *Handler) {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, newErr(r, http.StatusNotFound, "route not found"))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, newErr(r, http.StatusMethodNotAllowed, r.Method+" is not allowed"))
	})

	s.router.Get("/health", h.Health)
	s.router.Get("/cards/{name}", h.Card)
	s.router.Route("/deck", func(r chi.Router) {
		r.Post("/resolve", h.Resolve)
		r.Post("/diff", h.Diff)
		r.Post("/stats", h.Stats)
	})
}

// Handler returns the router with all middlewares.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is done and shuts the server down gracefully afterwards.
func (s *Server) Run(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error {
		log.Info().Msgf("Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	errg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeoutOrDefault())
		defer cancel()

		return s.Shutdown(shutdownCtx)
	})

	return errg.Wait()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down http server")

	return s.httpServer.Shutdown(ctx)
}
