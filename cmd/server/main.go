package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/db"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	httpRouter "github.com/ignatzorin/skillswap-backend/internal/http/router"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/export"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/skillswap-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/storage"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: ошибка конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	deps := httpRouter.Deps{Config: cfg}

	// Хранилище.
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Log.Warn("main: используется хранилище в памяти, данные не сохраняются между запусками")
		deps.Store = memory.NewStore()
	default:
		dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Log.Fatalf("main: %v", err)
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			logger.Log.Fatalf("main: ошибка миграций: %v", err)
		}
		deps.Store = persistence.NewStoreAdapter(dbConn)
		deps.DB = dbConn
	}

	// Аватары.
	deps.Avatars, err = newAvatarStorage(cfg)
	if err != nil {
		logger.Log.Fatalf("main: %v", err)
	}

	// Realtime.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)
	deps.Hub = hub
	deps.Publisher = ws.NewPublisher(hub)

	deps.Tokens = service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	deps.Exports = export.NewLogScheduler()

	seed(ctx, cfg, deps.Store)

	engine := httpRouter.SetupRouter(cfg, httpRouter.NewHandlers(ctx, deps), deps.Tokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	logger.Log.WithField("storage", cfg.StorageDriver).Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

func newAvatarStorage(cfg *config.Config) (storage.AvatarStorage, error) {
	if cfg.AvatarStorage == config.AvatarStorageS3 {
		s3cfg := storage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicURL:       cfg.S3.PublicURL,
			MaxUploadMB:     cfg.MaxUploadSizeMB,
		}
		return storage.NewS3AvatarStorage(storage.NewS3Client(s3cfg), s3cfg)
	}
	return storage.NewLocalAvatarStorage(cfg.MediaStoragePath, "/media", cfg.MaxUploadSizeMB)
}

// seed создаёт администратора и, если включено, демонстрационные профили. Ошибки не прерывают запуск.
func seed(ctx context.Context, cfg *config.Config, store repository.Store) {
	seeder := service.NewSeedService(store)

	if err := seeder.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Log.WithError(err).Error("main: не удалось создать администратора")
	}

	if !cfg.SeedDemoData {
		return
	}
	created, err := seeder.SeedDemoData(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("main: не удалось создать демо-профили")
		return
	}
	if created > 0 {
		logger.Log.WithField("count", created).Info("main: созданы демо-профили")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия базы: %v", err)
	}
}
