package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sngm3741/secucheck/api/internal/config"
	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/notify"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/observability"
	adminhttp "github.com/sngm3741/secucheck/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/secucheck/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/secucheck/api/internal/interfaces/http/public"
)

// Dependencies are the already-opened resources the server composes.
type Dependencies struct {
	Repository evalapp.EvaluationRepository
	Pinger     evalapp.Pinger
	IDs        evalapp.IDGenerator
	// Close releases the store on shutdown. Optional.
	Close func(context.Context) error
}

// Server is the composition root: it builds the services, mounts the public
// and admin handlers and owns the HTTP lifecycle.
type Server struct {
	logger    *log.Logger
	addr      string
	router    http.Handler
	adminJWT  *config.JWTConfig
	metrics   *observability.Metrics
	messenger *notify.Messenger
	closeDeps func(context.Context) error
}

// New wires the services and the router. It never touches the network.
func New(cfg config.Config, deps Dependencies) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = log.New(os.Stdout, "[secucheck-api] ", log.LstdFlags)
	}

	srv := &Server{
		logger:    logger,
		addr:      cfg.Addr,
		adminJWT:  cfg.AdminJWT,
		closeDeps: deps.Close,
	}

	recorders := []evalapp.EventRecorder{observability.NewLogRecorder(logger)}
	if cfg.MetricsEnabled {
		srv.metrics = observability.NewMetrics()
		recorders = append(recorders, srv.metrics)
	}
	if cfg.MessengerEndpoint != "" {
		srv.messenger = notify.NewMessenger(notify.Config{
			Endpoint:    cfg.MessengerEndpoint,
			Destination: cfg.MessengerDestination,
			Timeout:     cfg.MessengerTimeout,
			Logger:      logger,
		})
		recorders = append(recorders, srv.messenger)
	}
	recorder := observability.NewFanout(recorders...)

	policy := domain.ScoringPolicy{InvertPublicWifi: cfg.InvertPublicWifi}
	commands := evalapp.NewEvaluationCommandService(deps.Repository, deps.IDs, recorder, evalapp.WithScoringPolicy(policy))
	queries := evalapp.NewEvaluationQueryService(deps.Repository, recorder)

	maxBody := cfg.MaxRequestBody
	if maxBody <= 0 {
		maxBody = commonhttp.MaxEvaluationRequestBody
	}

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:   logger,
		Commands: commands,
		Queries:  queries,
		Store:    deps.Pinger,
		MaxBody:  maxBody,
	})
	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:  logger,
		Queries: queries,
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	router.Use(middleware.Recoverer)
	if srv.metrics != nil {
		router.Use(srv.metrics.Middleware)
	}
	router.Use(securityHeaders)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		commonhttp.WriteJSON(logger, w, http.StatusNotFound, map[string]string{"message": "route not found"})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		commonhttp.WriteJSON(logger, w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
	})

	router.Route("/api", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(rateLimiter(logger, cfg.RateLimitRequests, cfg.RateLimitWindow))
		}
		publicHandler.Register(r)
	})

	if srv.adminJWT != nil {
		router.Route("/admin", func(r chi.Router) {
			r.Use(srv.authMiddleware)
			adminHandler.Register(r)
		})
	} else {
		logger.Printf("ADMIN_JWT_SECRET is not set; /admin routes are disabled")
	}

	if srv.metrics != nil {
		router.Method(http.MethodGet, "/metrics", srv.metrics.Handler())
	}

	srv.router = router
	return srv
}

// Handler exposes the assembled router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts listening and blocks until the listener fails or the process
// receives SIGINT/SIGTERM.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// shutdown drains pending notifications and releases the store.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.messenger != nil {
		if err := s.messenger.Close(shutdownCtx); err != nil {
			s.logger.Printf("messenger drain: %v", err)
		}
	}
	if s.closeDeps != nil {
		if err := s.closeDeps(shutdownCtx); err != nil {
			s.logger.Printf("store close: %v", err)
		}
	}
}

func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("http shutdown: %v", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
