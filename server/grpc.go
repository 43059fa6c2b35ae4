package server

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServiceName is the service reported alongside the overall ("") status.
const HealthServiceName = "billing"

type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	logger *zap.Logger
}

func NewGRPCServer(logger *zap.Logger) *GRPCServer {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &GRPCServer{
		server: server,
		health: healthServer,
		logger: logger,
	}
}

func (g *GRPCServer) Start(address string) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return g.Serve(lis)
}

// Serve marks the service as serving and blocks until Stop is called.
func (g *GRPCServer) Serve(lis net.Listener) error {
	g.health.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_SERVING)
	g.logger.Info("gRPC health server listening", zap.String("address", lis.Addr().String()))
	return g.server.Serve(lis)
}

func (g *GRPCServer) Stop() {
	g.health.Shutdown()
	g.server.GracefulStop()
}
