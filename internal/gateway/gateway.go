// ABOUTME: Gateway orchestrator that wires the command pipeline to HTTP
// ABOUTME: Manages store, catalog, NLP client, broadcaster, and server lifecycle

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/warebot/picker-gateway/internal/catalog"
	"github.com/warebot/picker-gateway/internal/command"
	"github.com/warebot/picker-gateway/internal/config"
	"github.com/warebot/picker-gateway/internal/dispatch"
	"github.com/warebot/picker-gateway/internal/nlp"
	"github.com/warebot/picker-gateway/internal/store"
)

// Gateway orchestrates the picker-gateway server components: the command
// interpretation pipeline, the conversation log, and the robot broadcast
// channel.
type Gateway struct {
	config      *config.Config
	log         store.MessageLog
	builder     *command.Builder
	corrector   nlp.Corrector
	extractor   nlp.Extractor
	broadcaster *dispatch.Broadcaster
	httpServer  *http.Server
	logger      *slog.Logger

	// closers are shut down after the HTTP server stops.
	closers []func() error
}

// New creates a gateway from configuration. The catalog is loaded here, once;
// a load failure does not prevent startup — command requests that need
// resolution will fail individually until the operator fixes the catalog
// file and restarts.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening message store: %w", err)
	}

	var resolver command.Resolver
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Error("catalog load failed, command requests will be rejected",
			"path", cfg.Catalog.Path, "error", err)
	} else {
		logger.Info("catalog loaded", "path", cfg.Catalog.Path, "products", cat.Len())
		resolver = cat
	}

	nlpClient := nlp.NewClient(cfg.NLP.BaseURL, cfg.NLP.Timeout, logger)

	g := &Gateway{
		config:      cfg,
		log:         s,
		builder:     command.NewBuilder(resolver),
		corrector:   nlpClient,
		extractor:   nlpClient,
		broadcaster: dispatch.NewBroadcaster(logger),
		logger:      logger.With("component", "gateway"),
	}
	g.closers = append(g.closers, s.Close)

	return g, nil
}

// routes builds the HTTP mux for all ingress paths.
func (g *Gateway) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/command", g.handleSendCommand)
	mux.HandleFunc("/api/messages", g.handleListMessages)
	mux.HandleFunc("/api/robot/stream", g.handleRobotStream)
	mux.HandleFunc("/api/robot/status", g.handleRobotStatus)
	mux.HandleFunc("/api/robot/error", g.handleRobotError)
	mux.HandleFunc("/health", g.handleHealth)
	mux.HandleFunc("/health/ready", g.handleReady)

	return mux
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails. Shutdown is graceful with a short drain window.
func (g *Gateway) Run(ctx context.Context) error {
	g.httpServer = &http.Server{
		Addr:    g.config.Server.HTTPAddr,
		Handler: g.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", g.config.Server.HTTPAddr)
		if err := g.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		g.shutdown()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	g.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.httpServer.Shutdown(shutdownCtx); err != nil {
		g.logger.Error("http shutdown", "error", err)
	}

	g.shutdown()
	return nil
}

// shutdown closes the broadcaster and any registered closers.
func (g *Gateway) shutdown() {
	g.broadcaster.Close()
	for _, close := range g.closers {
		if err := close(); err != nil {
			g.logger.Error("closing component", "error", err)
		}
	}
}
