package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roamly/objectgw/internal/config"
	"github.com/roamly/objectgw/internal/httpapi"
	"github.com/roamly/objectgw/pkg/acl"
	"github.com/roamly/objectgw/pkg/creds"
	"github.com/roamly/objectgw/pkg/gateway"
	"github.com/roamly/objectgw/pkg/health"
	"github.com/roamly/objectgw/pkg/logger"
	"github.com/roamly/objectgw/pkg/objpath"
	"github.com/roamly/objectgw/pkg/signer"
	"github.com/roamly/objectgw/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("gateway exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(logger.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		MinLevel:    slog.LevelError,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, err := creds.New(creds.Config{
		ProjectID:   cfg.ProjectID,
		ClientEmail: cfg.ClientEmail,
		PrivateKey:  cfg.PrivateKey,
	})
	if err != nil {
		return err
	}
	if cfg.ServiceAccountConfigured() {
		log.Info("using service account credentials", slog.String("client_email", cfg.ClientEmail))
	} else {
		log.Info("using sidecar credential broker")
	}

	backend, err := storage.New(ctx, provider.TokenSource(ctx))
	if err != nil {
		return err
	}

	codec := objpath.New(objpath.Config{
		DefaultBucket: cfg.DefaultBucket,
		PrivateDir:    cfg.PrivateDir,
	})

	svc, err := gateway.New(
		gateway.Config{
			PrivateDir:  cfg.PrivateDir,
			PublicPaths: cfg.PublicPaths,
		},
		backend,
		signer.New(provider),
		acl.NewStore(backend),
		codec,
		gateway.WithLogger(log),
	)
	if err != nil {
		return err
	}

	checks := health.Checks{
		"storage": func(ctx context.Context) error {
			probe, err := codec.Parse(cfg.PrivateDir + "/.ping")
			if err != nil {
				return err
			}
			_, err = backend.Exists(ctx, probe)
			return err
		},
		"credentials": func(ctx context.Context) error {
			_, err := provider.TokenSource(ctx).Token()
			return err
		},
	}

	server := &http.Server{
		Addr:              cfg.Address,
		Handler:           httpapi.New(svc, log, checks),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := backend.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		log.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	log.Info("shutdown completed")
	return nil
}
