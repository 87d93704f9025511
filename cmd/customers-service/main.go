package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/customers-service/internal/config"
	"github.com/pribylovaa/customers-service/internal/pkg/idgen"
	"github.com/pribylovaa/customers-service/internal/pkg/password"
	"github.com/pribylovaa/customers-service/internal/pkg/redact"
	"github.com/pribylovaa/customers-service/internal/service"
	"github.com/pribylovaa/customers-service/internal/storage"
	"github.com/pribylovaa/customers-service/internal/storage/minio"
	"github.com/pribylovaa/customers-service/internal/storage/orm"
	"github.com/pribylovaa/customers-service/internal/storage/postgres"
	"github.com/pribylovaa/customers-service/internal/telemetry"
	transporthttp "github.com/pribylovaa/customers-service/internal/transport/http"
	"github.com/pribylovaa/customers-service/internal/transport/http/middleware"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	serviceName = "customers-service"
	apiBasePath = "/api/v1"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting customers-service", "env", cfg.Env, "storage_backend", cfg.Storage.Backend)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Провайдеры otel ставятся до открытия БД: otelsql берёт их при регистрации драйвера.
	otelShutdown, err := telemetry.Setup(cfg.Telemetry, serviceName, os.Stdout)
	if err != nil {
		log.Error("telemetry_setup_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	customersStore, err := newCustomersStorage(dbCtx, cfg)
	dbCancel()
	if err != nil {
		log.Error("db_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("db_connected", "backend", cfg.Storage.Backend, "dsn", redact.DSN(cfg.Postgres.URL))

	s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
	imagesStore, err := minio.New(s3Ctx, cfg)
	s3Cancel()
	if err != nil {
		log.Error("minio_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		customersStore.Close()
		os.Exit(1)
	}
	log.Info("minio_connected")

	svc := service.New(
		customersStore,
		imagesStore,
		password.NewBcrypt(cfg.Password.BcryptCost),
		idgen.UUID{},
		cfg,
	)
	log.Info("service_initialized")

	var ready int32 // 0 — not ready; 1 — ready

	api := transporthttp.NewRouter(svc, transporthttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Request,
		BasePath: apiBasePath,
		Metrics:  middleware.NewMetrics(prometheus.DefaultRegisterer),
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle(apiBasePath+"/", api)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = httpSrv.Close()
	} else {
		log.Info("http_stopped")
	}

	if err := otelShutdown(shutdownCtx); err != nil {
		log.Warn("telemetry_shutdown_failed", slog.String("err", err.Error()))
	}
	shutdownCancel()

	rootCancel()
	customersStore.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// newCustomersStorage собирает бэкенд хранилища клиентов по storage.backend.
func newCustomersStorage(ctx context.Context, cfg *config.Config) (storage.CustomersStorage, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		st, err := postgres.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.BackendORM:
		st, err := orm.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
