package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"taskmanager/internal/accounts"
	"taskmanager/internal/api"
	"taskmanager/internal/api/handler/v1handler"
	"taskmanager/internal/config"
	"taskmanager/internal/tasks"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/metrics"
	"taskmanager/pkg/password"
	"taskmanager/pkg/storage"
	"taskmanager/pkg/token"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getToken builds the RS256 signer and verifier from the auth settings.
func getToken(ctx context.Context, cfg *config.Config) *token.RS256 {
	rs256, err := token.NewRS256(token.Options{
		PrivateKey: cfg.Auth.PrivateKey,
		PublicKey:  cfg.Auth.PublicKey,
		Issuer:     cfg.Auth.Issuer,
		TTL:        cfg.Auth.AccessTokenTTL,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create token issuer", zap.Error(err))
	}

	return rs256
}

// getHasher builds the password hasher selected in cfg.Password.
func getHasher(ctx context.Context, cfg *config.Config) password.Hasher {
	hasher, err := password.New(password.Options{
		Algorithm:  cfg.Password.Algorithm,
		BcryptCost: cfg.Password.BcryptCost,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create password hasher", zap.Error(err))
	}

	return hasher
}

func setupServer(ctx context.Context, cfg *config.Config, strg storage.AllStorage) func(ctx context.Context) {
	provider, err := metrics.New()
	if err != nil {
		logger.Fatal(ctx, "could not create metrics provider", zap.Error(err))
	}

	rs256 := getToken(ctx, cfg)
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{
			Tasks:    tasks.New(strg),
			Accounts: accounts.New(strg, getHasher(ctx, cfg), rs256),
		},
		Verifier: rs256,
		Metrics:  provider,
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			stopWebserver := setupServer(ctx, cfg, strg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
