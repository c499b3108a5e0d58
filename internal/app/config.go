package app

import "time"

// Config описывает настройки запуска приложения.
type Config struct {
	// PostgresDSN — адрес базы. Пустое значение включает in-memory
	// хранилище для локальной разработки.
	PostgresDSN string
	// PostgresAutoMigrate применяет миграции при старте.
	PostgresAutoMigrate bool
	// MetricsAddr — адрес HTTP-сервера метрик и health-проверок.
	MetricsAddr string
	// KafkaBrokers — список брокеров через запятую; пустое значение
	// отключает выгрузку заказов.
	KafkaBrokers string
	// SyncInterval — период опроса несинхронизированных заказов.
	SyncInterval time.Duration
	// SyncBatchSize — максимум заказов за один цикл выгрузки.
	SyncBatchSize int
}

// DefaultConfig возвращает базовые настройки.
func DefaultConfig() Config {
	return Config{
		PostgresAutoMigrate: true,
		MetricsAddr:         ":9090",
		SyncInterval:        30 * time.Second,
		SyncBatchSize:       50,
	}
}
