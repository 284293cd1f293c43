// Package grpc exposes the ledger's gRPC surface, which is limited to the
// standard grpc.health.v1.Health service.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
)

// ServiceName is the health service name reported alongside the overall
// ("") status.
const ServiceName = "kirana.ledger"

// Handler is the root gRPC transport handler.
//
// It owns the health status that the health worker flips and that load
// balancers query. A handler is created once at startup and shared by the
// gRPC server.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler returns a handler whose status starts as NOT_SERVING until the
// first successful dependency check.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.SetServing(false)
	return h
}

// Register attaches the health service to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing reports the dependency state to health clients.
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
