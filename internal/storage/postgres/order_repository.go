package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

// decodeFallbacks считает деградации при чтении: неизвестные теги enum и
// некорректные даты заменяются документированными значениями по умолчанию,
// чтение из-за них не падает.
var decodeFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "laundry_store_decode_fallbacks_total",
	Help: "Total number of stored values decoded via the documented fallback.",
}, []string{"column"})

const orderColumns = `
	id, customer_name, room_number, service_type, items_json, total_amount,
	created_date, expected_completion_date, assigned_staff_id, status,
	payment_status, created_by, synced`

type orderRepository struct {
	db     *sql.DB
	logger *log.Entry
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{
		db:     store.DB(),
		logger: log.WithField("component", "order-repository"),
	}
}

// Save вставляет заказ. Позиции сериализуются в items_json: для схемы
// вложенный список непрозрачен, ключом выборки служит только id агрегата.
func (r *orderRepository) Save(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		order.ID, order.CustomerName, order.RoomNumber, order.ServiceType.String(),
		string(itemsJSON), order.TotalAmount,
		order.CreatedDate.Format(time.DateOnly),
		order.ExpectedCompletionDate.Format(time.DateOnly),
		nullable(order.AssignedStaffID), order.Status.String(),
		order.PaymentStatus.String(), order.CreatedBy, order.Synced,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderExists
		}
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// Update полностью перезаписывает изменяемые колонки по id.
func (r *orderRepository) Update(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET customer_name = $1,
		    room_number = $2,
		    service_type = $3,
		    items_json = $4,
		    total_amount = $5,
		    created_date = $6,
		    expected_completion_date = $7,
		    assigned_staff_id = $8,
		    status = $9,
		    payment_status = $10,
		    created_by = $11,
		    synced = $12
		WHERE id = $13
	`,
		order.CustomerName, order.RoomNumber, order.ServiceType.String(),
		string(itemsJSON), order.TotalAmount,
		order.CreatedDate.Format(time.DateOnly),
		order.ExpectedCompletionDate.Format(time.DateOnly),
		nullable(order.AssignedStaffID), order.Status.String(),
		order.PaymentStatus.String(), order.CreatedBy, order.Synced,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) GetByID(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	order, err := r.scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, err
	}

	return order, nil
}

// ListByStatus сравнивает хранимый тег без учёта регистра; порядок
// результата определяется хранилищем.
func (r *orderRepository) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	return r.list(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE LOWER(status) = LOWER($1)
	`, status.String())
}

// ListBetweenDates — включающий диапазон по created_date. Даты хранятся
// ISO-строками с нулевым дополнением, поэтому лексикографический BETWEEN
// совпадает с календарным.
func (r *orderRepository) ListBetweenDates(start, end time.Time) ([]domain.Order, error) {
	return r.list(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE created_date BETWEEN $1 AND $2
	`,
		domain.DateOnly(start).Format(time.DateOnly),
		domain.DateOnly(end).Format(time.DateOnly),
	)
}

// ListUnsynced возвращает заказы, ожидающие внешней синхронизации.
func (r *orderRepository) ListUnsynced(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		return r.list(`
			SELECT ` + orderColumns + `
			FROM orders
			WHERE NOT synced
			ORDER BY created_date
		`)
	}
	return r.list(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE NOT synced
		ORDER BY created_date
		LIMIT $1
	`, limit)
}

func (r *orderRepository) MarkSynced(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `UPDATE orders SET synced = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark order synced: %w", err)
	}
	return nil
}

// LogSyncError дописывает запись в append-only журнал sync_errors.
func (r *orderRepository) LogSyncError(orderID, message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_errors (order_id, error_message)
		VALUES ($1, $2)
	`, orderID, message); err != nil {
		return fmt.Errorf("log sync error: %w", err)
	}
	return nil
}

func (r *orderRepository) list(query string, args ...any) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrder восстанавливает агрегат из строки. Неизвестные enum-теги и
// битые даты деградируют до значений по умолчанию и логируются — запрос
// из-за legacy-значения не падает.
func (r *orderRepository) scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order         domain.Order
		serviceType   string
		itemsJSON     string
		createdDate   string
		completionDay string
		staffID       sql.NullString
		status        sql.NullString
		paymentStatus sql.NullString
		createdBy     sql.NullString
	)

	if err := row.Scan(
		&order.ID, &order.CustomerName, &order.RoomNumber, &serviceType,
		&itemsJSON, &order.TotalAmount, &createdDate, &completionDay,
		&staffID, &status, &paymentStatus, &createdBy, &order.Synced,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("scan order row: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return domain.Order{}, fmt.Errorf("decode order items for %s: %w", order.ID, err)
	}

	order.ServiceType = r.decodeServiceType(order.ID, serviceType)
	order.Status = r.decodeOrderStatus(order.ID, status.String)
	order.PaymentStatus = r.decodePaymentStatus(order.ID, paymentStatus.String)
	order.CreatedDate = r.decodeDate(order.ID, "created_date", createdDate)
	order.ExpectedCompletionDate = r.decodeDate(order.ID, "expected_completion_date", completionDay)
	order.AssignedStaffID = staffID.String
	order.CreatedBy = createdBy.String

	return order, nil
}

func (r *orderRepository) decodeServiceType(orderID, raw string) domain.ServiceType {
	st, fallback := domain.ParseServiceType(raw)
	if fallback {
		r.reportFallback(orderID, "service_type", raw)
	}
	return st
}

func (r *orderRepository) decodeOrderStatus(orderID, raw string) domain.OrderStatus {
	status, fallback := domain.ParseOrderStatus(raw)
	if fallback {
		r.reportFallback(orderID, "status", raw)
	}
	return status
}

func (r *orderRepository) decodePaymentStatus(orderID, raw string) domain.PaymentStatus {
	status, fallback := domain.ParsePaymentStatus(raw)
	if fallback {
		r.reportFallback(orderID, "payment_status", raw)
	}
	return status
}

func (r *orderRepository) decodeDate(orderID, column, raw string) time.Time {
	parsed, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		r.reportFallback(orderID, column, raw)
		return time.Time{}
	}
	return parsed
}

func (r *orderRepository) reportFallback(orderID, column, raw string) {
	decodeFallbacks.WithLabelValues(column).Inc()
	r.logger.WithFields(log.Fields{
		"order_id": orderID,
		"column":   column,
		"raw":      raw,
	}).Warn("stored value decoded via fallback")
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ domain.OrderRepository = (*orderRepository)(nil)
