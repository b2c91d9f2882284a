package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-rinha-ledger/internal/logger"
)

// MetadataRequestID 請求追蹤 ID 的 metadata key
const MetadataRequestID = "x-request-id"

type Server struct {
	addr   string
	health *health.Server
	Server *grpc.Server
}

// New 建立 gRPC server，已註冊 health service 與 logging interceptor
func New(addr string, log zerolog.Logger, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingInterceptor(log))}, opts...)
	s := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return &Server{
		addr:   addr,
		health: hs,
		Server: s,
	}
}

// Start 開始監聽，阻塞直到 Stop
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve 使用外部提供的 listener (測試用 bufconn)
func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s.Server.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.Server.GracefulStop()
}

// Addr 設定的監聽位址
func (s *Server) Addr() string {
	return s.addr
}

// LoggingInterceptor 每個 unary 呼叫一行 log，並把帶 request_id 的 logger 放進 context
func LoggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		requestID := requestIDFromMetadata(ctx)
		reqLog := log.With().Str("request_id", requestID).Logger()

		resp, err := handler(logger.WithContext(ctx, reqLog), req)

		reqLog.Debug().
			Str("method", info.FullMethod).
			Stringer("code", status.Code(err)).
			Dur("duration", time.Since(start)).
			Msg("grpc request")
		return resp, err
	}
}

func requestIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(MetadataRequestID); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}
