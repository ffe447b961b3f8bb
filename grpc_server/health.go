// Package grpcserver exposes the standard gRPC health service, driven by
// periodic database pings.
package grpcserver

import (
	"context"
	"time"

	"charsheet-restful/interceptors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "charsheet.Api"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthMonitor keeps a health.Server in sync with the database.
type HealthMonitor struct {
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *zap.Logger
	serving  bool
}

func NewHealthMonitor(pinger Pinger, interval time.Duration, logger *zap.Logger) *HealthMonitor {
	m := &HealthMonitor{
		health:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		logger:   logger.Named("health"),
	}
	m.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return m
}

// Server returns the health service to register on a gRPC server.
func (m *HealthMonitor) Server() *health.Server {
	return m.health
}

// Probe pings the database once and updates the reported status.
func (m *HealthMonitor) Probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	if err := m.pinger.PingContext(ctx); err != nil {
		if m.serving {
			m.logger.Warn("Database ping failed, reporting NOT_SERVING", zap.Error(err))
		}
		m.serving = false
		m.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	if !m.serving {
		m.logger.Info("Database reachable, reporting SERVING")
	}
	m.serving = true
	m.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// Run probes immediately and then every interval until ctx is done, after
// which all services are reported NOT_SERVING.
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			m.health.Shutdown()
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

func (m *HealthMonitor) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	m.health.SetServingStatus("", status)
	m.health.SetServingStatus(ServiceName, status)
}

// NewServer creates a gRPC server with zap call logging and the health
// service registered.
func NewServer(logger *zap.Logger, monitor *HealthMonitor) *grpc.Server {
	grpcLogger := logger.Named("grpc")
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptors.ZapLoggingInterceptor(grpcLogger)),
		grpc.ChainStreamInterceptor(interceptors.ZapStreamLoggingInterceptor(grpcLogger)),
	)
	healthpb.RegisterHealthServer(s, monitor.Server())
	return s
}
