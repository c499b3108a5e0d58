package kafka

import "time"

// Topics для Kafka
const (
	// TopicOrderSync — канал выгрузки заказов во внешнюю систему учёта.
	TopicOrderSync = "laundry.order.sync"
)

// OrderSyncEvent — снимок заказа, публикуемый при синхронизации.
type OrderSyncEvent struct {
	OrderID       string    `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	RoomNumber    string    `json:"room_number"`
	ServiceType   string    `json:"service_type"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedDate   string    `json:"created_date"`
	PublishedAt   time.Time `json:"published_at"`
}
