// Package api provides the HTTP REST API and WebSocket server for the
// intercom bridge.
//
// It exposes the relay-open actions, the entity surface (PIN sensors,
// door buttons, last-call sensors), and the call log to user interfaces
// and automations, plus a WebSocket stream of entity state changes.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/gray-logic-intercom/internal/account"
	"github.com/nerrad567/gray-logic-intercom/internal/calllog"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-intercom/internal/relay"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// RelayService is the relay surface the API exposes; satisfied by
// *relay.Orchestrator.
type RelayService interface {
	OpenByDoorID(ctx context.Context, doorID, entryID string) error
	OpenByKeyID(ctx context.Context, keyID, entryID string) error
	OpenByLastCall(ctx context.Context, entityID, entryID string) relay.OpenRelayResult
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Entities *entity.Store
	Accounts *account.Registry
	Relay    RelayService
	CallLog  *calllog.Repository
	DB       *database.DB

	// ExternalHub, if set, is used instead of creating a new hub. The
	// entity store observer feeding the hub is wired in main, so the hub
	// usually exists before the server.
	ExternalHub *Hub
	Version     string
}

// Server is the HTTP API server for the intercom bridge.
type Server struct {
	cfg      config.APIConfig
	wsCfg    config.WebSocketConfig
	secCfg   config.SecurityConfig
	logger   *logging.Logger
	entities *entity.Store
	accounts *account.Registry
	relay    RelayService
	callLog  *calllog.Repository
	db       *database.DB
	version  string

	server      *http.Server
	hub         *Hub
	externalHub bool
	tickets     *ticketStore
	cancel      context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Entities == nil {
		return nil, fmt.Errorf("entity store is required")
	}
	if deps.Relay == nil {
		return nil, fmt.Errorf("relay service is required")
	}

	s := &Server{
		cfg:      deps.Config,
		wsCfg:    deps.WS,
		secCfg:   deps.Security,
		logger:   deps.Logger,
		entities: deps.Entities,
		accounts: deps.Accounts,
		relay:    deps.Relay,
		callLog:  deps.CallLog,
		db:       deps.DB,
		version:  deps.Version,
		tickets:  newTicketStore(),
	}

	if deps.ExternalHub != nil {
		s.hub = deps.ExternalHub
		s.externalHub = true
	}

	return s, nil
}

// Hub returns the server's WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub (unless one was injected), the periodic
// ticket cleanup, and the HTTP listener in a background goroutine. The
// server is stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
		go s.hub.Run(srvCtx)
	}

	go s.tickets.cleanLoop(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
