package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/api/middleware"
	"github.com/feral-file/darkpool-indexer/internal/api/server"
	"github.com/feral-file/darkpool-indexer/internal/applicator"
	"github.com/feral-file/darkpool-indexer/internal/backfill"
	"github.com/feral-file/darkpool-indexer/internal/chain"
	"github.com/feral-file/darkpool-indexer/internal/config"
	"github.com/feral-file/darkpool-indexer/internal/consumer"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/providers/temporal"
	"github.com/feral-file/darkpool-indexer/internal/routing"
	"github.com/feral-file/darkpool-indexer/internal/store"
	"github.com/feral-file/darkpool-indexer/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "", "Directory holding .env files")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		Service:   "darkpool-indexer",
		SentryDSN: cfg.SentryDSN,
	}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting darkpool indexer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error(err, zap.String("kind", "setup"))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
	logger.Info("Darkpool indexer stopped")
}

func run(ctx context.Context, cfg *config.IndexerConfig) error {
	clock := adapter.NewClock()

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	dataStore := store.NewPGStore(db)
	logger.Info("Connected to database")

	queue, closeQueue, err := openQueue(ctx, cfg.Queue, clock)
	if err != nil {
		return err
	}
	defer closeQueue()
	logger.Info("Message queue ready", zap.String("backend", cfg.Queue.Backend))

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to dial Ethereum RPC: %w", err)
	}
	defer ethClient.Close()
	chainClient := chain.NewClient(ethClient, chain.Config{
		DarkpoolAddress: cfg.Chain.Address(),
		DeployBlock:     cfg.Chain.StartBlock,
		MaxBlockRange:   cfg.Chain.MaxBlockRange,
	})
	logger.Info("Connected to chain RPC", zap.String("darkpool", cfg.Chain.DarkpoolAddress))

	backfillWorker := backfill.NewWorker(dataStore, chainClient, queue, backfill.Config{
		MaxSlots: cfg.Backfill.MaxSlots,
	}, clock)

	g, gctx := errgroup.WithContext(ctx)

	var dispatcher backfill.Dispatcher
	if cfg.Temporal.Enabled {
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Temporal: %w", err)
		}
		defer temporalClient.Close()

		executor := workflows.NewExecutor(backfillWorker)
		workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
			BackfillTimeout: cfg.Backfill.Timeout,
		})

		temporalWorker := worker.New(temporalClient, cfg.Temporal.TaskQueue, worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			Interceptors:                       []interceptor.WorkerInterceptor{temporal.NewSentryActivityInterceptor()},
		})
		temporalWorker.RegisterWorkflow(workerCore.BackfillAccountWorkflow)
		temporalWorker.RegisterActivity(executor.BackfillAccount)

		g.Go(func() error {
			if err := temporalWorker.Start(); err != nil {
				return fmt.Errorf("failed to start Temporal worker: %w", err)
			}
			<-gctx.Done()
			temporalWorker.Stop()
			return nil
		})

		dispatcher = workflows.NewDispatcher(temporalClient, workerCore, cfg.Temporal.TaskQueue)
		logger.Info("Backfills run as Temporal workflows", zap.String("task_queue", cfg.Temporal.TaskQueue))
	} else {
		pool := backfill.NewPoolDispatcher(gctx, backfillWorker, backfill.PoolConfig{
			PoolSize:  cfg.Backfill.PoolSize,
			QueueSize: cfg.Backfill.QueueSize,
			Timeout:   cfg.Backfill.Timeout,
		})
		defer pool.Stop()
		dispatcher = pool
	}

	app := applicator.NewApplicator(dataStore, dispatcher, clock, applicator.DefaultConfig())

	routes, err := routing.NewRouter(dataStore, cfg.Chain.RouteCacheSize)
	if err != nil {
		return err
	}

	c := consumer.NewConsumer(queue, consumer.NewHandler(chainClient, app), routes, dispatcher, consumer.Config{
		PoolSize:             cfg.Consumer.PoolSize,
		QueueSize:            cfg.Consumer.QueueSize,
		PollInterval:         cfg.Queue.PollInterval,
		DeferWindow:          cfg.Consumer.DeferWindow,
		TransientRetryWindow: cfg.Consumer.TransientRetryWindow,
	}, clock)
	g.Go(func() error {
		return c.Run(gctx)
	})

	authKey, err := cfg.Auth.Key()
	if err != nil {
		return err
	}
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		MetricsPath:  metricsPath,
		Auth: middleware.AuthConfig{
			Key:           authKey,
			MaxExpiration: cfg.Auth.MaxExpiration,
		},
	}, dataStore, dispatcher, queue, clock)

	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
