package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/laundry/internal/app"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfig формирует конфигурацию приложения, позволяя переопределить
// настройки через переменные окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("LAUNDRY_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("LAUNDRY_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("LAUNDRY_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("LAUNDRY_SYNC_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			log.WithError(err).WithField("value", v).Warn("некорректный LAUNDRY_SYNC_INTERVAL, используем значение по умолчанию")
		} else {
			cfg.SyncInterval = interval
		}
	}
	if v := os.Getenv("LAUNDRY_SYNC_BATCH_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			log.WithField("value", v).Warn("некорректный LAUNDRY_SYNC_BATCH_SIZE, используем значение по умолчанию")
		} else {
			cfg.SyncBatchSize = size
		}
	}
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"metrics_addr":  cfg.MetricsAddr,
		"kafka_enabled": cfg.KafkaBrokers != "",
	}).Info("запускаем сервис прачечной")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("сервис прачечной остановлен")
}
