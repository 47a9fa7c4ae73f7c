package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	healthbot "github.com/FabioCLima/healthbot-project"
	httpAdapter "github.com/FabioCLima/healthbot-project/pkg/adapters/http"
	"github.com/FabioCLima/healthbot-project/pkg/adapters/redis"
	"github.com/FabioCLima/healthbot-project/pkg/observability"
	"github.com/FabioCLima/healthbot-project/pkg/session"
)

// shutdownGrace is the deadline given to in-flight requests on shutdown.
const shutdownGrace = 5 * time.Second

// RunServe starts the HTTP session API and blocks until the process is
// signalled or the listener fails.
func RunServe(opts RunOptions, addr string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}

	logger := createLogger(opts.Debug, cfg.LogLevel)

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	search, generator := buildCollaborators(cfg)
	engine := healthbot.New(search, generator,
		healthbot.WithLogger(logger),
		healthbot.WithLifecycleHooks(metrics.Hooks()),
	)

	managerOpts := []session.Option{session.WithLogger(logger)}
	// Redis-backed deployments run multiple replicas, so sessions also
	// take a distributed lock.
	if redisStore, ok := store.(*redis.Store); ok {
		managerOpts = append(managerOpts, session.WithLocker(redisStore.Locker()))
	}
	sessions := session.NewManager(store, managerOpts...)

	handler := httpAdapter.NewHandler(engine, sessions, logger, metrics)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store)
		fmt.Printf("HealthBot API listening on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		fmt.Println("HealthBot API stopped gracefully")
	}
	return nil
}
