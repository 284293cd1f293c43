package server

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/handler"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	shutdownTimeout time.Duration

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
	if servers.shutdownTimeout <= 0 {
		servers.shutdownTimeout = defaultShutdownTimeout
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		router, err := handlers.HTTP.Init()
		if err != nil {
			return nil, err
		}
		servers.httpServer = newHTTPServer(router, cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer launches every created server and blocks until ctx is done or
// one of them fails; either way all servers are shut down before it returns.
func (s *server) RunServer(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	if s.httpServer != nil {
		g.Go(func() error { return s.httpServer.RunServer(gCtx) })
	}
	if s.gRPCServer != nil {
		g.Go(func() error { return s.gRPCServer.RunServer(gCtx) })
	}

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		s.Shutdown(shutdownCtx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		s.logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) {
	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown(ctx)
	}
}
