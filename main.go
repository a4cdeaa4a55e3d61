// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starter-kit/cmd"
	"starter-kit/internal/adaptor"
	"starter-kit/internal/data/repository"
	"starter-kit/internal/session"
	"starter-kit/internal/wire"
	"starter-kit/pkg/cache"
	"starter-kit/pkg/database"
	"starter-kit/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("session_strategy", config.Session.Strategy),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	checks := []adaptor.DependencyCheck{{Name: "postgres", Ping: db.Ping}}

	var issuer session.Issuer
	switch config.Session.Strategy {
	case utils.SessionStrategyDatabase:
		dbIssuer := session.NewDatabaseIssuer(repos.Session)
		go cmd.SessionJanitor(ctx, dbIssuer, sessionCleanupInterval, logger)
		issuer = dbIssuer

	default:
		rdb, err := cache.Connect(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))

		checks = append(checks, adaptor.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		ttl := time.Duration(config.Session.TTLHours) * time.Hour
		issuer = session.NewJWTIssuer(config.Session.Secret, ttl, cache.NewDenylist(rdb))
	}

	app := wire.Wiring(ctx, wire.Deps{
		Repo:   repos,
		Issuer: issuer,
		Checks: checks,
		Config: config,
		Logger: logger,
	})

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
