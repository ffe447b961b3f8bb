package grpcserver

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type fakePinger struct {
	failing atomic.Bool
	calls   atomic.Int32
}

func (p *fakePinger) PingContext(context.Context) error {
	p.calls.Add(1)
	if p.failing.Load() {
		return errors.New("database unreachable")
	}
	return nil
}

func status(t *testing.T, m *HealthMonitor, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := m.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthMonitorProbe(t *testing.T) {
	pinger := &fakePinger{}
	m := NewHealthMonitor(pinger, time.Second, zap.NewNop())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, m, ""))

	m.Probe(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, m, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, m, ServiceName))

	pinger.failing.Store(true)
	m.Probe(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, m, ""))

	pinger.failing.Store(false)
	m.Probe(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, m, ServiceName))
}

func TestHealthMonitorRunStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pinger := &fakePinger{}
	m := NewHealthMonitor(pinger, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return pinger.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, m, ""))
}

func TestServerHealthCheck(t *testing.T) {
	m := NewHealthMonitor(&fakePinger{}, time.Second, zap.NewNop())
	m.Probe(context.Background())

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(zap.NewNop(), m)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
