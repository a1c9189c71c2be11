// Package lifecycle pkg/lifecycle/server.go runs a set of services with
// signal-driven shutdown and a gRPC health endpoint for process
// supervision.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ShutdownTimeout = 10 * time.Second

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for running a daemon.
type ServerOptions struct {
	ServiceName string
	GrpcAddr    string // empty disables the health endpoint
	Services    []Service
}

// RunServer starts the services and blocks until a shutdown signal, a
// service error or context cancellation. Services are stopped in reverse
// start order, bounded by ShutdownTimeout.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	// Create error channel for service errors
	errChan := make(chan error, 1)

	for _, svc := range opts.Services {
		svc := svc

		go func() {
			if err := svc.Start(ctx); err != nil {
				select {
				case errChan <- err:
				default:
					log.Printf("Service error: %v", err)
				}
			}
		}()
	}

	var grpcServer *grpc.Server

	var healthServer *health.Server

	if opts.GrpcAddr != "" {
		lis, err := net.Listen("tcp", opts.GrpcAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", opts.GrpcAddr, err)
		}

		grpcServer = grpc.NewServer()
		healthServer = health.NewServer()
		healthServer.SetServingStatus(opts.ServiceName, healthpb.HealthCheckResponse_SERVING)
		healthpb.RegisterHealthServer(grpcServer, healthServer)

		go func() {
			log.Printf("Starting gRPC health server on %s", opts.GrpcAddr)

			if err := grpcServer.Serve(lis); err != nil {
				select {
				case errChan <- err:
				default:
					log.Printf("gRPC server error: %v", err)
				}
			}
		}()
	}

	return handleShutdown(ctx, cancel, grpcServer, healthServer, opts, errChan)
}

func handleShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	grpcServer *grpc.Server,
	healthServer *health.Server,
	opts *ServerOptions,
	errChan chan error,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)
		runErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
		runErr = ctx.Err()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if healthServer != nil {
		healthServer.SetServingStatus(opts.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	// Reverse order: consumers go down before the engine feeding them.
	for i := len(opts.Services) - 1; i >= 0; i-- {
		if err := opts.Services[i].Stop(shutdownCtx); err != nil {
			log.Printf("Error during service shutdown: %v", err)

			if runErr == nil {
				runErr = fmt.Errorf("shutdown error: %w", err)
			}
		}
	}

	return runErr
}
