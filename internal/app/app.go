package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/laundry/internal/health"
	"github.com/vladislavdragonenkov/laundry/internal/messaging/kafka"
	syncworker "github.com/vladislavdragonenkov/laundry/internal/service/sync"
	"github.com/vladislavdragonenkov/laundry/internal/storage/postgres"
	"github.com/vladislavdragonenkov/laundry/internal/version"
)

// Run собирает зависимости и держит процесс до отмены ctx: хранилище,
// учётную запись администратора по умолчанию, воркер синхронизации и
// HTTP-сервер метрик и health-проверок.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	healthHandler := healthcheck.NewHandler(version.String())

	var (
		deps  *Dependencies
		store *postgres.Store
	)
	if cfg.PostgresDSN != "" {
		// Недоступная база — фатальная ошибка запуска, резервного
		// in-memory режима при заданном DSN нет.
		var err error
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()

		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
		}

		deps = NewPostgresDependencies(store, logger)
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			return store.Ping(context.Background())
		}))
		logger.Info("postgres storage initialized")
	} else {
		deps = NewMemoryDependencies(logger)
		logger.Warn("LAUNDRY_POSTGRES_DSN is empty, using in-memory storage")
	}

	if err := seedDefaultAdmin(deps.Users, logger); err != nil {
		return err
	}

	// Kafka и воркер синхронизации опциональны: без брокеров заказы
	// просто копятся с synced=false.
	kafkaProducer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		logger.WithError(err).Warn("order sync is disabled")
	}
	if kafkaProducer != nil {
		publisher := kafka.NewOrderSyncPublisher(kafkaProducer, kafka.TopicOrderSync)
		worker := syncworker.NewWorker(
			deps.Orders,
			publisher,
			syncworker.WithLogger(logger.WithField("component", "sync-worker")),
			syncworker.WithPollInterval(cfg.SyncInterval),
			syncworker.WithBatchSize(cfg.SyncBatchSize),
		)
		go worker.Run(ctx)
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем сервис")

	shutdownHTTP(metricsSrv, logger)
	closeKafka(kafkaProducer, logger)

	return ctx.Err()
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
