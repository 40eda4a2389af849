package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	analysishandlers "github.com/de-tools/finreport/pkg/handlers/analysis"
	"github.com/de-tools/finreport/pkg/handlers/dashboard"
	finreportmiddleware "github.com/de-tools/finreport/pkg/server/middleware"
	"github.com/de-tools/finreport/pkg/services/report"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Analyzer  analysishandlers.Analyzer
	Assembler *report.Assembler
	Providers []string
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	RateLimit       float64
	RateBurst       int
	MaxUploadBytes  int64
	Currency        string
	Dependencies    Dependencies
}

// ConfigureRouter wires the JSON API under /api/v1 and the dashboard at /.
func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	apiHandler := analysishandlers.NewHandler(deps.Analyzer, deps.Assembler, deps.Providers, config.MaxUploadBytes)
	pageHandler := dashboard.NewHandler(deps.Analyzer, config.Currency, config.MaxUploadBytes)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(finreportmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	// One limiter guards every route that runs an analysis.
	throttle := func(next http.Handler) http.Handler { return next }
	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst <= 0 {
			burst = 1
		}
		throttle = finreportmiddleware.NewRateLimiter(config.RateLimit, burst).Handler
	}

	router.Get("/", pageHandler.Index)
	router.With(throttle).Post("/", pageHandler.Submit)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", apiHandler.Health)

		r.Group(func(r chi.Router) {
			r.Use(throttle)
			r.Post("/analyze", apiHandler.Analyze)
			r.Post("/analyze/manual", apiHandler.AnalyzeManual)
			r.Post("/reports/render", apiHandler.RenderReport)
		})
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: shutdownTimeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
