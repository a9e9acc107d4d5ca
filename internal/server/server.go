// Package server hosts the admin descriptor API and the scale trigger feed.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/crowmatic/perch/internal/config"
	"github.com/crowmatic/perch/internal/functions"
	"github.com/crowmatic/perch/internal/metrics"
	"github.com/crowmatic/perch/internal/storage"
)

type Server struct {
	cfg       *config.Config
	store     storage.Store
	registry  *functions.Registry
	assembler *functions.Assembler
	extractor *functions.TriggerExtractor
	watcher   *functions.Watcher

	httpServer *http.Server
	router     *Router
}

func New(cfg *config.Config, store storage.Store) *Server {
	hostPaths := functions.HostPaths{
		RootScriptPath: cfg.Host.ScriptRoot,
		TestDataPath:   cfg.Host.TestDataPath,
	}

	assembler := functions.NewAssembler(store)

	srv := &Server{
		cfg:       cfg,
		store:     store,
		registry:  functions.NewRegistry(store, hostPaths),
		assembler: assembler,
		extractor: functions.NewTriggerExtractor(assembler.Resolver()),
	}

	srv.router = NewRouter(srv)
	srv.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      srv.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return srv
}

func (s *Server) Start(ctx context.Context) error {
	log.Info().
		Str("addr", s.cfg.Server.Address()).
		Str("script_root", s.cfg.Host.ScriptRoot).
		Msg("Starting server")

	if err := s.registry.Discover(ctx); err != nil {
		return fmt.Errorf("discovering functions: %w", err)
	}
	metrics.UpdateRegistrySize(s.registry.Count())

	if s.cfg.Watch.Enabled && s.cfg.Storage.Type == "filesystem" {
		rootDir := filepath.Join(s.cfg.Storage.Path, filepath.FromSlash(s.cfg.Host.ScriptRoot))
		watcher, err := functions.NewWatcher(s.registry, rootDir, s.cfg.Watch.Debounce)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create script root watcher")
		} else if err := watcher.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start script root watcher")
		} else {
			s.watcher = watcher
			log.Info().Str("root", rootDir).Msg("Script root watcher started")
		}
	}

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server")

	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			log.Warn().Err(err).Msg("Error stopping script root watcher")
		}
	}

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Config() *config.Config {
	return s.cfg
}

func (s *Server) Store() storage.Store {
	return s.store
}

func (s *Server) Registry() *functions.Registry {
	return s.registry
}

func (s *Server) Assembler() *functions.Assembler {
	return s.assembler
}

func (s *Server) Extractor() *functions.TriggerExtractor {
	return s.extractor
}
