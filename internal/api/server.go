// Package api provides the HTTP API server and handlers for the banner service.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bannerdeck/banner-server/internal/logger"
	"github.com/bannerdeck/banner-server/internal/service"
	"github.com/bannerdeck/banner-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   store.Store
	auth    *service.AuthService
	banners *service.BannerService
	router  *chi.Mux
	api     huma.API
	logger  *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, authService *service.AuthService, bannerService *service.BannerService, log *logger.Logger) *Server {
	s := &Server{
		store:   st,
		auth:    authService,
		banners: bannerService,
		router:  chi.NewRouter(),
		logger:  log,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("BannerDeck API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"token": {
			Type: "apiKey",
			In:   "header",
			Name: "token",
		},
	}

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerBannerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "token"},
		MaxAge:         300,
	}))
}
