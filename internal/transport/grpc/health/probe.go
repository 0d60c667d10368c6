// Package health exposes store reachability over the standard gRPC health protocol.
package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
)

// ServiceName is the service reported alongside the overall ("") status.
const ServiceName = "carcat.v1.Catalog"

const (
	defaultInterval = 15 * time.Second
	pingTimeout     = 3 * time.Second
)

// Probe mirrors store reachability into a gRPC health server.
type Probe struct {
	checker  contracts.HealthChecker
	server   *grpchealth.Server
	interval time.Duration
	log      *zap.Logger
}

// NewProbe creates a Probe. A non-positive interval uses the default.
func NewProbe(checker contracts.HealthChecker, interval time.Duration, log *zap.Logger) *Probe {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Probe{
		checker:  checker,
		server:   grpchealth.NewServer(),
		interval: interval,
		log:      log,
	}
}

// HealthServer returns the underlying health service.
func (p *Probe) HealthServer() *grpchealth.Server {
	return p.server
}

// Check pings the store once and publishes the result.
func (p *Probe) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := p.checker.Ping(ctx); err != nil {
		p.log.Warn("store ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	p.server.SetServingStatus("", status)
	p.server.SetServingStatus(ServiceName, status)
	return status
}

// Run checks immediately and then every interval until ctx is done.
// On return every service reports NOT_SERVING.
func (p *Probe) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			p.server.Shutdown()
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// NewServer creates a gRPC server carrying the probe's health service and reflection.
func NewServer(p *Probe, opts ...grpc.ServerOption) *grpc.Server {
	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, p.server)
	reflection.Register(srv)
	return srv
}
