package app

import (
	"fmt"

	"github.com/apper-canvas/staffsync-program-correct/internal/config"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/recordstore"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp connects the infrastructure named by cfg and mounts every module
// on router. The returned cleanup releases sessions and connections.
func BuildApp(router *gin.Engine, cfg *config.Configuration) (func(), error) {
	logger := zap.L().Named("app")
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. Setup Infrastructure
	records, closeRecords, err := openRecordStore(cfg)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeRecords)
	logger.Info("record store ready", zap.String("backend", cfg.RecordStore.Backend))

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		cleanup()
		return nil, err
	}
	closers = append(closers, func() { _ = redisClient.Close() })

	publisher := employee.NewNoopEventPublisher()
	if cfg.Kafka.Broker != "" {
		writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, connectRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = writer.Close() })
		publisher = employee.NewKafkaEventPublisher(writer)
	} else {
		logger.Info("KAFKA_BROKER not set, employee lifecycle events are not published")
	}

	// 2. Register Modules & Routes
	workspaces, err := registerModules(router, cfg, Dependencies{
		Records:   records,
		Redis:     redisClient,
		Publisher: publisher,
	}, zap.L())
	if err != nil {
		cleanup()
		return nil, err
	}
	closers = append(closers, workspaces.CloseAll)
	closers = append(closers, workspaces.StartReaper(cfg.Session.ReapInterval, cfg.Session.IdleTimeout))

	return cleanup, nil
}

func openRecordStore(cfg *config.Configuration) (recordstore.Store[employee.Employee], func(), error) {
	switch cfg.RecordStore.Backend {
	case "http":
		store := recordstore.NewHTTPStore[employee.Employee](recordstore.HTTPConfig{
			BaseURL:   cfg.RecordStore.URL,
			Table:     employee.Employee{}.TableName(),
			ProjectID: cfg.RecordStore.ProjectID,
			PublicKey: cfg.RecordStore.PublicKey,
			Timeout:   cfg.RecordStore.Timeout,
		}, nil)
		return store, func() {}, nil

	case "postgres":
		db, err := connection.ConnectGORMWithRetry(cfg.Database.ConnectionString(), connectRetries)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&employee.Employee{}); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate employee table: %w", err)
		}
		store := recordstore.NewGormStore[employee.Employee](db, "id", employee.Columns)
		return store, func() { _ = sqlDB.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown record store backend %q", cfg.RecordStore.Backend)
	}
}
