package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alligatorO15/fin-lists/internal/api"
	"github.com/alligatorO15/fin-lists/internal/config"
	"github.com/alligatorO15/fin-lists/internal/database"
	"github.com/alligatorO15/fin-lists/internal/logger"
	"github.com/alligatorO15/fin-lists/internal/repository"
	"github.com/alligatorO15/fin-lists/internal/service"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	zl, err := logger.NewLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if envErr != nil {
		zl.Info("файл .env не найден, используются переменные окружения")
	}

	loc, err := cfg.Location()
	if err != nil {
		zl.Fatal("некорректная конфигурация", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		zl.Fatal("ошибка подключения к базе данных", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, zl.Named("migrations")); err != nil {
		zl.Fatal("ошибка выполнения миграций", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cfg, loc, zl)
	server := api.NewServer(cfg, services, zl)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Run)
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("остановка сервера")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zl.Error("сервер остановлен с ошибкой", zap.Error(err))
		return
	}
	zl.Info("сервер остановлен")
}
