package grpcapi

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "foodbot.FoodbotService"

// HealthReporter publishes the database probe result through the standard gRPC health service.
type HealthReporter struct {
	server *health.Server
}

// RegisterHealth starts NOT_SERVING; the first successful database probe flips it.
func RegisterHealth(s *grpc.Server) *HealthReporter {
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	r := &HealthReporter{server: hs}
	r.SetHealthy(false)
	return r
}

func (r *HealthReporter) SetHealthy(healthy bool) {
	status := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(ServiceName, status)
}

// Shutdown marks every service NOT_SERVING so clients drain before the listener closes.
func (r *HealthReporter) Shutdown() {
	r.server.Shutdown()
}
