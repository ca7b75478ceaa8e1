package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/config"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(settings config.ServerSettings, contact config.ContactSettings, deps Dependencies) (Server, error) {
	if deps.Verifier == nil {
		return Server{}, fmt.Errorf("api: a token verifier is required")
	}
	if deps.Uploader == nil {
		return Server{}, fmt.Errorf("api: an uploader is required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", settings.Port) // Bind to 0.0.0.0 for external access
	startupTime := time.Now()

	router := newRouter(deps,
		withAcceptedOrigins(settings.AcceptedOrigins),
		withStartupTime(startupTime),
		withContactRate(contact.RatePerMinute, contact.Burst),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	acceptedOrigins []string
	startupTime     time.Time
	contactPerMin   int
	contactBurst    int
}

func withAcceptedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withContactRate(perMinute, burst int) func(*router) {
	return func(r *router) {
		r.contactPerMin = perMinute
		r.contactBurst = burst
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{
		startupTime:   time.Now(),
		contactPerMin: 5,
		contactBurst:  3,
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	chiRouter.Use(CORSCheckMiddleware(router.acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers := initializeHandlers(deps, router.startupTime)
	authMiddleware := newAuthMiddleware(deps.Verifier)
	contactLimiter := newIPRateLimiter(router.contactPerMin, router.contactBurst,
		NewResponder(log.With().Str("handlerName", "contactLimiter").Logger()))

	setupPublicRoutes(chiRouter, handlers, contactLimiter)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)
	if deps.LocalStore != nil {
		setupUploadFileServer(chiRouter, deps.LocalStore)
	}

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
