package grpcserver

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/JoeShih716/go-rinha-ledger/internal/logger"
)

func TestLoggingInterceptor_PropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	interceptor := LoggingInterceptor(log)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(MetadataRequestID, "req-42"))
	info := &grpc.UnaryServerInfo{FullMethod: "/ledger.v1.LedgerService/ReadStatement"}

	var seen string
	_, err := interceptor(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		l := logger.FromContext(ctx)
		seen = l.GetLevel().String()
		l.Info().Msg("inside")
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", seen)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"method":"/ledger.v1.LedgerService/ReadStatement"`)
	assert.Contains(t, buf.String(), `"code":"OK"`)
}

func TestLoggingInterceptor_GeneratesRequestID(t *testing.T) {
	assert.Len(t, requestIDFromMetadata(context.Background()), 36)
}

func TestServer_HealthServing(t *testing.T) {
	s := New("bufnet", zerolog.Nop())
	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	defer s.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	assert.Equal(t, "bufnet", s.Addr())
}
