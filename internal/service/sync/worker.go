package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultBatchSize    = 50
	defaultMaxAttempts  = 3
	defaultRetryDelay   = 50 * time.Millisecond
)

var (
	syncPublishAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_sync_publish_attempts_total",
		Help: "Total number of order sync publish attempts grouped by result.",
	}, []string{"result"})
	syncPendingOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "laundry_sync_pending_orders",
		Help: "Current number of orders awaiting external sync.",
	})
)

// WorkerOptions задаёт параметры sync worker.
type WorkerOptions struct {
	Logger       *log.Entry
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	RetryDelay   time.Duration
}

// Option настраивает Worker.
type Option func(*WorkerOptions)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *WorkerOptions) {
		opts.Logger = logger
	}
}

// WithPollInterval задаёт частоту опроса несинхронизированных заказов.
func WithPollInterval(interval time.Duration) Option {
	return func(opts *WorkerOptions) {
		opts.PollInterval = interval
	}
}

// WithBatchSize задаёт размер батча за один цикл.
func WithBatchSize(batchSize int) Option {
	return func(opts *WorkerOptions) {
		opts.BatchSize = batchSize
	}
}

// WithMaxAttempts задаёт число попыток публикации одного заказа за цикл.
func WithMaxAttempts(maxAttempts int) Option {
	return func(opts *WorkerOptions) {
		opts.MaxAttempts = maxAttempts
	}
}

// WithRetryDelay задаёт базовый delay для exponential backoff.
func WithRetryDelay(delay time.Duration) Option {
	return func(opts *WorkerOptions) {
		opts.RetryDelay = delay
	}
}

// Worker выгружает несинхронизированные заказы во внешнюю систему учёта.
// Успешная публикация помечает заказ synced; отказ пишется в журнал
// sync_errors, заказ остаётся в очереди до следующего цикла.
type Worker struct {
	repo         domain.OrderRepository
	publisher    domain.SyncPublisher
	logger       *log.Entry
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
	retryDelay   time.Duration
}

// NewWorker создаёт sync worker.
func NewWorker(repo domain.OrderRepository, publisher domain.SyncPublisher, options ...Option) *Worker {
	opts := WorkerOptions{
		PollInterval: defaultPollInterval,
		BatchSize:    defaultBatchSize,
		MaxAttempts:  defaultMaxAttempts,
		RetryDelay:   defaultRetryDelay,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "sync-worker")
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}

	return &Worker{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		pollInterval: opts.PollInterval,
		batchSize:    opts.BatchSize,
		maxAttempts:  opts.MaxAttempts,
		retryDelay:   opts.RetryDelay,
	}
}

// Run запускает периодическую синхронизацию до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.repo == nil || w.publisher == nil {
		w.logger.Warn("sync worker is disabled: repo or publisher is nil")
		return
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.ProcessOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce выполняет один цикл синхронизации.
func (w *Worker) ProcessOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	orders, err := w.repo.ListUnsynced(w.batchSize)
	if err != nil {
		w.logger.WithError(err).Warn("failed to list unsynced orders")
		return
	}
	syncPendingOrders.Set(float64(len(orders)))
	if len(orders) == 0 {
		return
	}

	for _, order := range orders {
		if ctx.Err() != nil {
			return
		}

		if err := w.publishWithRetry(ctx, order); err != nil {
			w.logger.WithError(err).WithField("order_id", order.ID).Error("order sync failed after retries")
			syncPublishAttempts.WithLabelValues("failed").Inc()

			if logErr := w.repo.LogSyncError(order.ID, err.Error()); logErr != nil {
				w.logger.WithError(logErr).WithField("order_id", order.ID).Warn("failed to record sync error")
			}
			continue
		}

		if err := w.repo.MarkSynced(order.ID); err != nil {
			w.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to mark order synced")
		}
	}
}

func (w *Worker) publishWithRetry(ctx context.Context, order domain.Order) error {
	var lastErr error

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		err := w.publisher.Publish(order)
		if err == nil {
			syncPublishAttempts.WithLabelValues("sent").Inc()
			return nil
		}
		lastErr = err
		syncPublishAttempts.WithLabelValues("retry_error").Inc()

		if attempt >= w.maxAttempts {
			break
		}

		delay := w.retryBackoff(attempt)
		if delay <= 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("publish failed after %d attempts: %w", w.maxAttempts, lastErr)
}

func (w *Worker) retryBackoff(attempt int) time.Duration {
	if w.retryDelay <= 0 {
		return 0
	}
	return w.retryDelay * time.Duration(1<<(attempt-1))
}
