package main

import (
	"Recipe-Catalog/cmd/config"
	migration "Recipe-Catalog/cmd/database/migrate"
	"Recipe-Catalog/internal/utils"
	"Recipe-Catalog/pkg/logger"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	utils.LoadConfig()
	logger.Init(utils.GetConfig("APP_ENV"))

	db, err := config.ConnectDB()
	if err != nil {
		logger.Error("failed to connect database", err)
		os.Exit(1)
	}

	if err := migration.Migrate(db); err != nil {
		logger.Error("failed to migrate database", err)
		os.Exit(1)
	}
	if *migrateOnly {
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		logger.Error("failed to build app", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down", nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", err)
		}
	}()

	port := utils.GetConfig("APP_PORT")
	logger.Info("starting server", map[string]any{"port": port})
	if err := app.Listen(":" + port); err != nil {
		logger.Error("server stopped", err)
		os.Exit(1)
	}
}
