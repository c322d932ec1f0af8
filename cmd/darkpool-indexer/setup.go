package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/darkpool-indexer/db/migrations"
	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/config"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

// openDatabase connects to postgres, applies migrations and registers the
// read replica when one is configured
func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.ConfigureConnectionPool(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := migrations.Up(sqlDB); err != nil {
		return nil, err
	}

	if readDSN := cfg.ReadDSN(); readDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(readDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(cfg.MaxOpenConns).
			SetConnMaxLifetime(cfg.ConnMaxLifetime))
		if err != nil {
			return nil, fmt.Errorf("failed to register read replica: %w", err)
		}
		logger.Info("Registered read replica", zap.String("host", cfg.ReadHost))
	}

	return db, nil
}

// openQueue builds the configured queue backend. The returned func releases it.
func openQueue(ctx context.Context, cfg config.QueueConfig, clock adapter.Clock) (messagequeue.MessageQueue, func(), error) {
	switch cfg.Backend {
	case config.QueueBackendMemory:
		mcfg := messagequeue.DefaultMemoryConfig()
		if cfg.VisibilityTimeout > 0 {
			mcfg.VisibilityTimeout = cfg.VisibilityTimeout
		}
		return messagequeue.NewMemoryQueue(mcfg, clock), func() {}, nil

	case config.QueueBackendSQS:
		client, err := adapter.NewSQS(cfg.SQS.Region, cfg.SQS.Endpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create SQS client: %w", err)
		}
		return messagequeue.NewSQSQueue(messagequeue.SQSConfig{
			QueueURL:          cfg.SQS.QueueURL,
			MaxMessages:       int64(cfg.BatchSize),
			WaitTime:          cfg.PollInterval,
			VisibilityTimeout: cfg.VisibilityTimeout,
		}, client), func() {}, nil

	case config.QueueBackendNATS:
		q, err := messagequeue.NewJetStreamQueue(ctx, messagequeue.JetStreamConfig{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			ConsumerName:   cfg.NATS.ConsumerName,
			ConnectionName: cfg.NATS.ConnectionName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			AckWait:        cfg.VisibilityTimeout,
			MaxDeliver:     cfg.NATS.MaxDeliver,
			BatchSize:      cfg.BatchSize,
			FetchWait:      cfg.PollInterval,
			DedupWindow:    cfg.NATS.DedupWindow,
		}, adapter.NewNatsJetStream(), clock)
		if err != nil {
			return nil, nil, err
		}
		return q, q.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
}
