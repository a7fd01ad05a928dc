package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/cache"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/service"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/transport"
)

type config struct {
	Addr               string        `long:"addr" env:"API_GATEWAY_ADDR" description:"addr" default:":8000"`
	RestAddr           string        `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	ClickhouseDSN      string        `long:"clickhouse-dsn" env:"API_GATEWAY_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	CacheCapacity      uint64        `long:"cache-capacity" env:"API_GATEWAY_CACHE_CAPACITY" description:"max finalized blocks kept in memory" default:"1000"`
	CacheFetchTimeout  time.Duration `long:"cache-fetch-timeout" env:"API_GATEWAY_CACHE_FETCH_TIMEOUT" description:"timeout of a shared block fetch" default:"10s"`
	CacheWarmup        uint64        `long:"cache-warmup" env:"API_GATEWAY_CACHE_WARMUP" description:"number of latest finalized blocks loaded at startup" default:"0"`
	CacheWarmupWorkers int           `long:"cache-warmup-workers" env:"API_GATEWAY_CACHE_WARMUP_WORKERS" description:"concurrent warm-up fetches" default:"4"`
	CacheWarmupRPS     int           `long:"cache-warmup-rps" env:"API_GATEWAY_CACHE_WARMUP_RPS" description:"warm-up fetches per second (0 = unlimited)" default:"50"`
	ConnectAttempts    int           `long:"connect-attempts" env:"API_GATEWAY_CONNECT_ATTEMPTS" description:"ClickHouse ping attempts at startup" default:"5"`
	ConnectDelay       time.Duration `long:"connect-delay" env:"API_GATEWAY_CONNECT_DELAY" description:"delay between ClickHouse ping attempts" default:"2s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api gateway failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Error("Failed to close repository", zap.Error(closeErr))
		}
	}()

	err = clock.Retry(ctx, cfg.ConnectAttempts, cfg.ConnectDelay, func(ctx context.Context) error {
		pingErr := repo.Ping(ctx)
		if pingErr != nil {
			logger.Warn("ClickHouse is not reachable yet", zap.Error(pingErr))
		}
		return pingErr
	})
	if err != nil {
		return fmt.Errorf("connect clickhouse: %w", err)
	}

	blockCache, err := cache.NewBlockDetailsCache(repo, metrics.NewBlockCache(), cfg.CacheCapacity, cfg.CacheFetchTimeout)
	if err != nil {
		return fmt.Errorf("init block cache: %w", err)
	}
	if cfg.CacheWarmup > 0 {
		warmer := cache.NewWarmer(blockCache, repo, cfg.CacheWarmupWorkers, cfg.CacheWarmupRPS, logger)
		if err := warmer.Warm(ctx, cfg.CacheWarmup); err != nil {
			logger.Warn("Block cache warm-up failed", zap.Error(err))
		}
	}

	blockService := service.NewBlockService(repo, blockCache, logger)

	grpcServer := newGRPCServer(logger)
	blockinsight7000v1.RegisterExplorerServiceServer(grpcServer, transport.NewExplorerHandler(repo, logger))

	socket, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("GRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	mux := http.NewServeMux()

	gw := gwruntime.NewServeMux()
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if err := blockinsight7000v1.RegisterExplorerServiceHandlerFromEndpoint(ctx, gw, cfg.Addr, opts); err != nil {
		return fmt.Errorf("register explorer handler: %w", err)
	}

	mux.Handle("/", gw)
	mux.Handle(transport.APIPrefix+"/", transport.NewBlockHandler(blockService, metrics.NewHTTPAPI(), logger))
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func newGRPCServer(logger *zap.Logger) *grpc.Server {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)
	return grpcServer
}
