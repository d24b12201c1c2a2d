package main

import (
	"github.com/apper-canvas/staffsync-program-correct/internal/app"
	"github.com/apper-canvas/staffsync-program-correct/internal/bootstrap"
	"github.com/apper-canvas/staffsync-program-correct/internal/config"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()
	r := gin.Default()

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfigFrom(cfg.Server),
		auditLogger,
		cleanup,
	)
}

func newLogger(cfg *config.Configuration) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
