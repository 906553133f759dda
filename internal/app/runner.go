package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-delivery-slots/internal/config"
	"service-delivery-slots/internal/http/pprofserver"
	"service-delivery-slots/internal/logx"
	"service-delivery-slots/internal/transport/kafka"
)

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Cfg      *config.Config
	Logger   logx.Logger
	Server   *http.Server
	Pool     *pgxpool.Pool
	Producer *kafka.Producer
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, in.Logger)
		debugSrv := startPprof(in.Cfg, in.Logger)
		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in, debugSrv)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("slot-service listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

// startPprof exposes the debug endpoints on a separate listener so they
// never share a port with the public API. Port 0 keeps it off.
func startPprof(cfg *config.Config, logger logx.Logger) *http.Server {
	if cfg.Pprof.Port == 0 {
		return nil
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Pprof.Port),
		Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Err(err))
		}
	}()
	return srv
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down slot-service")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in runIn, debugSrv *http.Server) {
	if err := in.Server.Close(); err != nil {
		in.Logger.Error("server close error", logx.Err(err))
	}
	if debugSrv != nil {
		if err := debugSrv.Close(); err != nil {
			in.Logger.Error("pprof close error", logx.Err(err))
		}
	}
	if err := in.Producer.Close(); err != nil {
		in.Logger.Error("kafka producer close error", logx.Err(err))
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
