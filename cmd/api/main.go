package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lukabartula/blog-website-api/internal/config"
	"github.com/lukabartula/blog-website-api/internal/db"
	"github.com/lukabartula/blog-website-api/internal/handlers"
	"github.com/lukabartula/blog-website-api/internal/logger"
	"github.com/lukabartula/blog-website-api/internal/services"
	"github.com/lukabartula/blog-website-api/internal/store"
	"github.com/lukabartula/blog-website-api/internal/store/memstore"
	"github.com/lukabartula/blog-website-api/internal/store/mongostore"
	"github.com/lukabartula/blog-website-api/internal/store/sqlstore"
	"github.com/lukabartula/blog-website-api/internal/utils"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, closer, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	authSvc := services.NewAuthService(users, utils.NewBcryptHasher(cfg.JWT.BcryptCost), cfg.JWT.Secret, log)
	userSvc := services.NewUserService(users, log)
	h := handlers.NewHandler(authSvc, userSvc, log)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           handlers.NewRouter(h, cfg.JWT.Secret, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openStore builds the user store selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.UserStore, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres, config.StoreSQLite:
		driver := db.DriverPostgres
		if cfg.Store.Driver == config.StoreSQLite {
			driver = db.DriverSQLite
		}

		conn, err := db.Connect(ctx, db.Options{
			Driver:      driver,
			DSN:         cfg.DB.DatabaseURL,
			MaxOpen:     cfg.DB.MaxOpen,
			MaxIdle:     cfg.DB.MaxIdle,
			MaxLifetime: cfg.DB.MaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		if err := db.Migrate(ctx, conn, log); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
		log.Info().Str("driver", driver).Msg("database ready")
		return sqlstore.New(conn), conn, nil

	case config.StoreMongo:
		client, st, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo ready")
		return st, closerFunc(func() error { return client.Disconnect(context.Background()) }), nil

	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return memstore.New(), closerFunc(func() error { return nil }), nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
