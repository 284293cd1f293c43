package handler

import (
	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/handler/grpc"
	"github.com/MKhiriev/kirana-ledger/internal/handler/http"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.RequestTimeout, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

// SetServing forwards the dependency state to the gRPC health service, if
// one is running.
func (h *Handlers) SetServing(serving bool) {
	if h.GRPC != nil {
		h.GRPC.SetServing(serving)
	}
}
