package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

// SyncError — запись диагностического журнала sync_errors.
type SyncError struct {
	OrderID   string
	Message   string
	Timestamp time.Time
}

// OrderRepository — in-memory реализация domain.OrderRepository.
type OrderRepository struct {
	mu         sync.RWMutex
	items      map[string]domain.Order
	syncErrors []SyncError
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		items: make(map[string]domain.Order),
	}
}

// Save вставляет заказ, если ID ещё не занят.
func (r *OrderRepository) Save(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrOrderExists
	}
	r.items[order.ID] = cloned(order)
	return nil
}

// Update перезаписывает заказ целиком.
func (r *OrderRepository) Update(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; !exists {
		return domain.ErrOrderNotFound
	}
	r.items[order.ID] = cloned(order)
	return nil
}

func (r *OrderRepository) GetByID(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloned(order), nil
}

// ListByStatus сравнивает теги без учёта регистра, как и SQL-реализация.
func (r *OrderRepository) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.items {
		if strings.EqualFold(order.Status.String(), status.String()) {
			result = append(result, cloned(order))
		}
	}
	return result, nil
}

// ListBetweenDates — включающий диапазон по дате создания.
func (r *OrderRepository) ListBetweenDates(start, end time.Time) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	startDay := domain.DateOnly(start)
	endDay := domain.DateOnly(end)

	result := make([]domain.Order, 0)
	for _, order := range r.items {
		day := domain.DateOnly(order.CreatedDate)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		result = append(result, cloned(order))
	}
	return result, nil
}

func (r *OrderRepository) ListUnsynced(limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.items {
		if order.Synced {
			continue
		}
		result = append(result, cloned(order))
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *OrderRepository) MarkSynced(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return nil
	}
	order.Synced = true
	r.items[id] = order
	return nil
}

func (r *OrderRepository) LogSyncError(orderID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.syncErrors = append(r.syncErrors, SyncError{
		OrderID:   orderID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// SyncErrors возвращает накопленный журнал (нужен только тестам: продакшен-
// хранилище журнал не читает).
func (r *OrderRepository) SyncErrors() []SyncError {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]SyncError(nil), r.syncErrors...)
}

// cloned копирует агрегат вместе со слайсом позиций, чтобы хранилище не
// делило память с вызывающим.
func cloned(order domain.Order) domain.Order {
	order.Items = append([]domain.ClothingItem(nil), order.Items...)
	return order
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
