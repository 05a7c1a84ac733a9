package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/deedshare/deedshare/internal/services/market/storage/sqlite"
)

// ServerConfig defines the inputs for the market server process.
type ServerConfig struct {
	HTTPAddr string
	GRPCAddr string
	DBPath   string
	// BlockInterval is the wall-clock duration of one chain block.
	BlockInterval time.Duration
	// Handler serves the HTTP API; built by the caller around the runtime.
	Handler func(*Runtime) http.Handler
}

// Server hosts the market HTTP API, health endpoint, and block ticker.
type Server struct {
	runtime       *Runtime
	store         *sqlite.Store
	httpListener  net.Listener
	grpcListener  net.Listener
	httpServer    *http.Server
	grpcServer    *grpc.Server
	health        *health.Server
	blockInterval time.Duration
}

// NewServer opens storage, replays the journal, and binds the listeners.
func NewServer(ctx context.Context, cfg ServerConfig) (*Server, error) {
	if cfg.Handler == nil {
		return nil, errors.New("handler constructor is required")
	}
	if cfg.BlockInterval <= 0 {
		cfg.BlockInterval = 6 * time.Second
	}

	store, err := openMarketStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	runtime, err := NewRuntime(ctx, Config{Journal: store})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init runtime: %w", err)
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
	}
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		httpListener.Close()
		store.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("deedshare.market", grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		runtime:      runtime,
		store:        store,
		httpListener: httpListener,
		grpcListener: grpcListener,
		httpServer: &http.Server{
			Handler:           cfg.Handler(runtime),
			ReadHeaderTimeout: 10 * time.Second,
		},
		grpcServer:    grpcServer,
		health:        healthServer,
		blockInterval: cfg.BlockInterval,
	}, nil
}

// Runtime returns the server's market runtime.
func (s *Server) Runtime() *Runtime {
	return s.runtime
}

// HTTPAddr returns the bound HTTP listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Serve runs the HTTP API, health endpoint, and block ticker until the
// context is canceled.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	defer s.Close()

	log.Printf("market API listening at %v", s.httpListener.Addr())
	log.Printf("market health listening at %v", s.grpcListener.Addr())

	serveErr := make(chan error, 2)
	go func() {
		err := s.httpServer.Serve(s.httpListener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()
	go func() {
		err := s.grpcServer.Serve(s.grpcListener)
		if errors.Is(err, grpc.ErrServerStopped) {
			err = nil
		}
		serveErr <- err
	}()

	ticker := time.NewTicker(s.blockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return nil
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("serve market: %w", err)
			}
			return nil
		case <-ticker.C:
			if err := s.runtime.AdvanceBlock(ctx, 1); err != nil {
				log.Printf("advance block: %v", err)
			}
		}
	}
}

func (s *Server) shutdown() {
	if s.health != nil {
		s.health.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown http server: %v", err)
	}
	s.grpcServer.GracefulStop()
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close market store: %v", err)
		}
	}
}

func openMarketStore(path string) (*sqlite.Store, error) {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == "" {
		return nil, errors.New("db path is required")
	}
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}
