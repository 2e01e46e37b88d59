package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
)

// DefaultShutdownTimeout bounds the whole shutdown sequence
const DefaultShutdownTimeout = 30 * time.Second

// GracefulServer wraps Echo server with graceful shutdown capabilities
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	port            int
	shutdownTimeout time.Duration
	components      *ShutdownManager
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, port int) *GracefulServer {
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		port:            port,
		shutdownTimeout: DefaultShutdownTimeout,
		components:      NewShutdownManager(zapLogger),
	}
}

// WithShutdownTimeout overrides the shutdown deadline; non-positive values are ignored
func (s *GracefulServer) WithShutdownTimeout(d time.Duration) *GracefulServer {
	if d > 0 {
		s.shutdownTimeout = d
	}
	return s
}

// Components exposes the manager that runs after the HTTP server has stopped
func (s *GracefulServer) Components() *ShutdownManager {
	return s.components
}

// Run serves HTTP until ctx is done or SIGINT/SIGTERM arrives, then shuts everything down
func (s *GracefulServer) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.echo.Listener = ln

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", ln.Addr().String()))
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal", logger.Err(context.Cause(ctx)))
	case err := <-serveErr:
		if err != nil {
			s.logger.Error("HTTP server stopped unexpectedly", logger.Err(err))
			_ = s.Shutdown()
			return err
		}
	}

	return s.Shutdown()
}

// Addr returns the bound listener address once Run has started listening
func (s *GracefulServer) Addr() net.Addr {
	if s.echo.Listener == nil {
		return nil
	}
	return s.echo.Listener.Addr()
}

// Shutdown gracefully shuts down the server, then the registered components
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
		errs = append(errs, err)
	}

	if err := s.components.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info("Server shutdown completed")
	return errors.Join(errs...)
}

type component struct {
	name string
	fn   func(context.Context) error
}

// ShutdownManager runs cleanup functions in registration order
type ShutdownManager struct {
	logger     *logger.ZapLogger
	components []component
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a cleanup function to be called during shutdown
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.components = append(sm.components, component{name: name, fn: fn})
}

// Shutdown executes all registered cleanup functions, continuing past failures
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.logger.Info("Starting graceful shutdown of components", logger.Int("components", len(sm.components)))

	var errs []error
	for _, c := range sm.components {
		sm.logger.Info("Stopping component", logger.String("component", c.name))
		if err := c.fn(ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.String("component", c.name),
				logger.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}

	sm.logger.Info("All components shutdown completed")
	return errors.Join(errs...)
}
