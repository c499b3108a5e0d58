package domain

import "time"

// UserRepository — durable-хранилище учётных записей.
type UserRepository interface {
	// Save выполняет upsert по id; дубликат username даёт ErrUsernameTaken.
	Save(user User) error
	// Authenticate сравнивает учётные данные точным совпадением строк и
	// возвращает ErrUserNotFound при несовпадении (никогда не паникует).
	Authenticate(username, password string) (User, error)
	// AllStaff возвращает пользователей с ролями cashier и admin.
	// Роль staff из этой выборки исключена — так ведёт себя исходная система.
	AllStaff() ([]User, error)
	// Delete удаляет пользователя безусловно; каскада на заказы нет,
	// повисшие ссылки допустимы при чтении.
	Delete(id string) error
	// GetByID — точечный поиск; ErrUserNotFound при промахе.
	GetByID(id string) (User, error)
}

// OrderRepository — durable-хранилище заказов.
type OrderRepository interface {
	// Save вставляет новый заказ.
	Save(order Order) error
	// Update полностью перезаписывает изменяемые колонки по id;
	// ErrOrderNotFound, если заказа нет.
	Update(order Order) error
	// GetByID — точечный поиск; ErrOrderNotFound при промахе.
	GetByID(id string) (Order, error)
	// ListByStatus выбирает заказы по статусу без учёта регистра хранимого
	// тега; порядок результата не определён.
	ListByStatus(status OrderStatus) ([]Order, error)
	// ListBetweenDates — включающий фильтр по created_date.
	ListBetweenDates(start, end time.Time) ([]Order, error)
	// ListUnsynced возвращает заказы, ещё не переданные внешней синхронизации.
	ListUnsynced(limit int) ([]Order, error)
	// MarkSynced выставляет флаг synced после успешной публикации.
	MarkSynced(id string) error
	// LogSyncError дописывает диагностическую запись в sync_errors
	// (append-only, best-effort).
	LogSyncError(orderID, message string) error
}

// SyncPublisher передаёт заказ внешнему процессу синхронизации.
type SyncPublisher interface {
	Publish(order Order) error
}
