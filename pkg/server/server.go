package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/promo-atlas/pkg/handlers/dashboard"
	promoatlasmiddleware "github.com/de-tools/promo-atlas/pkg/server/middleware"
	"github.com/de-tools/promo-atlas/pkg/services/registry"
	"github.com/de-tools/promo-atlas/pkg/services/session"
	"github.com/de-tools/promo-atlas/pkg/services/views"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Registry registry.Registry
	Sessions *session.Manager
	Views    views.Builder
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter wires the dashboard handler into a chi router.
func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	handler := dashboard.NewHandler(deps.Registry, deps.Sessions, deps.Views)

	router := chi.NewRouter()
	router.Use(promoatlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/datasets", handler.ListDatasets)
		r.Get("/datasets/{kind}", handler.GetDataset)
		r.Post("/datasets/{kind}/invalidate", handler.InvalidateDataset)

		r.Post("/sessions", handler.CreateSession)
		r.Get("/sessions/{session}/filters", handler.GetFilters)
		r.Put("/sessions/{session}/filters/{dimension}", handler.UpdateFilter)
		r.Delete("/sessions/{session}/filters", handler.ResetFilters)

		r.Get("/dimensions", handler.ListDimensions)
		r.Get("/views", handler.ListViews)
		r.Get("/sessions/{session}/views/{view}", handler.GetView)
	})

	return router
}

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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
