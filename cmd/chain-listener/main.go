package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/block"
	"github.com/feral-file/darkpool-indexer/internal/chain"
	"github.com/feral-file/darkpool-indexer/internal/config"
	"github.com/feral-file/darkpool-indexer/internal/listener"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/routing"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "", "Directory holding .env files")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadListenerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		Service:   "chain-listener",
		SentryDSN: cfg.SentryDSN,
	}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting chain listener")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error(err, zap.String("kind", "setup"))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
	logger.Info("Chain listener stopped")
}

func run(ctx context.Context, cfg *config.ListenerConfig) error {
	clock := adapter.NewClock()

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	dataStore := store.NewPGStore(db)

	queue, closeQueue, err := openQueue(ctx, cfg.Queue, clock)
	if err != nil {
		return err
	}
	defer closeQueue()

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to dial Ethereum RPC: %w", err)
	}
	chainClient := chain.NewClient(ethClient, chain.Config{
		DarkpoolAddress: cfg.Chain.Address(),
		DeployBlock:     cfg.Chain.StartBlock,
		MaxBlockRange:   cfg.Chain.MaxBlockRange,
	})

	head := block.NewHeadTracker(chainClient, block.Config{
		TTL:           cfg.Chain.BlockHeadTTL,
		StaleWindow:   cfg.Chain.BlockHeadStaleWindow,
		Confirmations: cfg.Chain.Confirmations,
	}, clock)

	routes, err := routing.NewRouter(dataStore, cfg.Chain.RouteCacheSize)
	if err != nil {
		return err
	}

	l := listener.NewListener(chainClient, head, queue, routes, dataStore, listener.Config{
		StartBlock:    cfg.Chain.StartBlock,
		MaxBlockRange: cfg.Chain.MaxBlockRange,
		PollInterval:  cfg.Chain.PollInterval,
	}, clock)
	defer l.Close()

	logger.Info("Listening for darkpool events",
		zap.String("darkpool", cfg.Chain.DarkpoolAddress),
		zap.Uint64("start_block", cfg.Chain.StartBlock),
		zap.Uint64("confirmations", cfg.Chain.Confirmations),
		zap.String("queue_backend", cfg.Queue.Backend))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.Run(gctx)
	})

	if cfg.Metrics.Enabled {
		gin.SetMode(gin.ReleaseMode)
		router := gin.New()
		router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))

		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to serve metrics: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
