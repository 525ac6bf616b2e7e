// Package contactsapi собирает приложение: хранилище, миграции, кэш,
// сервисы, маршруты и HTTP-сервер с корректным завершением работы.
package contactsapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/andrusoleg/contacts-api/internal/cache"
	"github.com/andrusoleg/contacts-api/internal/config"
	jwtlib "github.com/andrusoleg/contacts-api/internal/lib/jwt"
	"github.com/andrusoleg/contacts-api/internal/lib/smtp"
	"github.com/andrusoleg/contacts-api/internal/migrations"
	authservice "github.com/andrusoleg/contacts-api/internal/services/auth"
	avatarservice "github.com/andrusoleg/contacts-api/internal/services/avatar"
	contactservice "github.com/andrusoleg/contacts-api/internal/services/contact"
	mailerservice "github.com/andrusoleg/contacts-api/internal/services/mailer"
	userservice "github.com/andrusoleg/contacts-api/internal/services/user"
	"github.com/andrusoleg/contacts-api/internal/storage"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New инициализирует все зависимости приложения и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.VerificationTokenTTL)
	transport := smtp.NewTransport(cfg.SMTP, logger)

	uploader, err := avatarservice.NewUploadService(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}

	authService := authservice.NewAuthService(db, cacheRedis, jwtMaker, cfg.IdentityCacheTTL, logger)
	contactService := contactservice.NewContactService(db, cacheRedis, logger)
	userService := userservice.NewUserService(db, uploader, cacheRedis, logger)
	mailerService := mailerservice.NewMailerService(transport, jwtMaker, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, contactService, userService, mailerService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", slog.Any("err", cerr))
		}
		if cerr := a.cache.Db.Close(); cerr != nil {
			a.logger.Error("failed to close redis client", slog.Any("err", cerr))
		}
		return err
	}
}
