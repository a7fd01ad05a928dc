// Package transport exposes gRPC/HTTP handlers.
package transport

import (
	"context"

	blockinsight7000v1 "github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExplorerHandler implements ExplorerServiceServer.
type ExplorerHandler struct {
	blockinsight7000v1.UnimplementedExplorerServiceServer
	storage Pinger
	logger  *zap.Logger
}

// NewExplorerHandler returns an ExplorerHandler reporting the health of storage.
func NewExplorerHandler(storage Pinger, logger *zap.Logger) blockinsight7000v1.ExplorerServiceServer {
	return &ExplorerHandler{storage: storage, logger: logger}
}

// Health reports server health; the server is unavailable while storage does not answer.
func (h *ExplorerHandler) Health(ctx context.Context, _ *blockinsight7000v1.HealthRequest) (*blockinsight7000v1.HealthResponse, error) {
	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		return nil, status.Error(codes.Unavailable, "storage unavailable")
	}

	return &blockinsight7000v1.HealthResponse{
		Status:      blockinsight7000v1.HealthStatus_HEALTH_STATUS_HEALTHY,
		Description: "",
	}, nil
}
