package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakeChecker struct {
	err   atomic.Value
	calls atomic.Int32
}

func (f *fakeChecker) Ping(ctx context.Context) error {
	f.calls.Add(1)
	if err, ok := f.err.Load().(error); ok && err != nil {
		return err
	}
	return ctx.Err()
}

func status(t *testing.T, p *Probe, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := p.HealthServer().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestProbe_Check(t *testing.T) {
	checker := &fakeChecker{}
	p := NewProbe(checker, time.Minute, zap.NewNop())

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, p.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, p, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, p, ServiceName))

	checker.err.Store(errors.New("session pool exhausted"))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, p.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, p, ServiceName))
}

func TestProbe_RunStopsWithContext(t *testing.T) {
	checker := &fakeChecker{}
	p := NewProbe(checker, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return checker.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, p, ""))
}

func TestNewProbe_DefaultInterval(t *testing.T) {
	p := NewProbe(&fakeChecker{}, 0, zap.NewNop())
	assert.Equal(t, defaultInterval, p.interval)
}

func TestNewServer_RegistersServices(t *testing.T) {
	srv := NewServer(NewProbe(&fakeChecker{}, time.Minute, zap.NewNop()))
	defer srv.Stop()

	info := srv.GetServiceInfo()
	assert.Contains(t, info, healthpb.Health_ServiceDesc.ServiceName)
	assert.Contains(t, info, "grpc.reflection.v1.ServerReflection")
}
