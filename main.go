package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recipe-catalog/cmd/config"
	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()
	log.SetLevel(logLevel(utils.GetConfig("LOG_LEVEL")))
	if utils.GetConfig("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("error getting database handle: %v", err)
	}
	defer sqlDB.Close()

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	app, indexer, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	if utils.GetConfigBool("INDEX_ON_STARTUP", false) {
		indexer.ReindexInBackground(ctx)
	}

	go func() {
		if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
			log.Errorw("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorw("server shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server gracefully stopped")
}

func logLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
