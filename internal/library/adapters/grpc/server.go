// Package grpc предоставляет gRPC сервер проверки здоровья библиотеки.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"

	"libraryhub/pkg/logger"
)

const (
	// ServiceName имя сервиса в протоколе grpc.health.v1.
	ServiceName = "libraryhub.Library"

	metadataRequestID = "x-request-id"

	LogServerStarting = "Starting gRPC server"
	LogServerStarted  = "gRPC server started"
	LogServerStopping = "Stopping gRPC server"
	LogServerStopped  = "gRPC server stopped"
	LogGRPCCall       = "gRPC call"
	ErrServerStart    = "failed to start gRPC server"
	ErrServerServe    = "gRPC server stopped serving"
)

// Server gRPC сервер с health и reflection.
type Server struct {
	address  string
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

// New создает сервер. До Start все сервисы в статусе NOT_SERVING.
func New(ctx context.Context, address string) *Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger.Log(ctx))))
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &Server{address: address, server: srv, health: hs}
}

// Start начинает прием соединений и переводит сервис в SERVING.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStarting, zap.String("address", s.address))

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerServe, zap.Error(err))
		}
	}()

	s.SetServing(true)
	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr фактический адрес после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// SetServing меняет статус всех сервисов.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Stop объявляет NOT_SERVING и дожидается завершения вызовов.
func (s *Server) Stop(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStopping)

	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("grpc graceful stop: %w", ctx.Err())
	}

	log.Info(ctx, LogServerStopped)
	return nil
}

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		ctx = logger.NewRequestIDContext(ctx, incomingRequestID(ctx))
		resp, err := handler(ctx, req)
		fields := []zap.Field{zap.String("rpc", info.FullMethod), zap.Duration("latency", time.Since(start))}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		log.Debug(ctx, LogGRPCCall, fields...)
		return resp, err
	}
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if ids := md.Get(metadataRequestID); len(ids) > 0 {
		return ids[0]
	}
	return ""
}
