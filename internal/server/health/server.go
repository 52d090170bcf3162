// Package health serves the standard gRPC health checking protocol. Each
// Check pings the store on demand.
package health

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the service reported alongside the overall "" status.
const ServiceName = "toomanytabs"

// Pinger is anything that can report whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	healthpb.UnimplementedHealthServer
	address string
	pinger  Pinger
	logger  logging.Logger
	timeout time.Duration
}

func NewServer(address string, p Pinger, l logging.Logger) *Server {
	return &Server{
		address: address,
		pinger:  p,
		logger:  l.With("module", "health_server"),
		timeout: 2 * time.Second,
	}
}

// Check implements grpc.health.v1.Health/Check.
func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", ServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "store ping failed", "error", err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping health server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting health server", "address", listen.Addr().String())

	// Serve reports ErrServerStopped when ctx was already done.
	if err := srv.Serve(listen); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *Server) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "grpc call",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
