package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-assist/internal/app"
	"github.com/BruksfildServices01/barber-assist/internal/backup"
	"github.com/BruksfildServices01/barber-assist/internal/clock"
	"github.com/BruksfildServices01/barber-assist/internal/config"
	"github.com/BruksfildServices01/barber-assist/internal/notify"
	"github.com/BruksfildServices01/barber-assist/internal/routes"
	"github.com/BruksfildServices01/barber-assist/internal/storage"
	"github.com/BruksfildServices01/barber-assist/internal/store"
	"github.com/BruksfildServices01/barber-assist/internal/voice"
)

func main() {

	cfg := config.Load()
	logger := app.NewLogger(cfg.AppEnv)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	persister, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	var bkp *backup.Dispatcher
	if cfg.BackupBucket != "" {
		uploader := backup.NewS3Uploader(
			cfg.BackupRegion,
			cfg.BackupBucket,
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccess,
		)
		bkp = backup.NewDispatcher(uploader, logger)
	}

	clk := clock.NewSystem()
	st := store.New(ctx, persister, bkp, clk, logger)

	notifier := notify.New(st, clk, logger)
	notifier.Start(ctx)
	defer notifier.Stop()

	liveClient := voice.NewGeminiLiveClient(cfg.GeminiAPIKey, logger)
	voiceCtrl := voice.NewController(
		st,
		liveClient,
		voice.NewNullSource(),
		voice.NullSink{},
		clk,
		logger,
		cfg.GeminiModel,
	)
	defer voiceCtrl.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	err = routes.RegisterRoutes(r, routes.Deps{
		Store:    st,
		Notifier: notifier,
		Voice:    voiceCtrl,
		Clock:    clk,
		Config:   cfg,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("failed to register routes", zap.Error(err))
	}

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
