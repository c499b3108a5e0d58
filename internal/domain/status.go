package domain

import "strings"

// OrderStatus описывает жизненный цикл заказа:
// QUEUED → PROCESSING → COMPLETED → DELIVERED, CANCELLED — из любого нетерминального.
type OrderStatus string

const (
	OrderStatusQueued     OrderStatus = "QUEUED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal сообщает, что дальнейшие переходы по заказу невозможны.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus декодирует хранимое значение с fallback в QUEUED.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case OrderStatusQueued:
		return OrderStatusQueued, false
	case OrderStatusProcessing:
		return OrderStatusProcessing, false
	case OrderStatusCompleted:
		return OrderStatusCompleted, false
	case OrderStatusDelivered:
		return OrderStatusDelivered, false
	case OrderStatusCancelled:
		return OrderStatusCancelled, false
	default:
		return OrderStatusQueued, true
	}
}

// PaymentStatus — ортогональный к жизненному циклу флаг оплаты.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus декодирует хранимое значение с fallback в UNPAID.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch PaymentStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case PaymentStatusUnpaid:
		return PaymentStatusUnpaid, false
	case PaymentStatusPaid:
		return PaymentStatusPaid, false
	default:
		return PaymentStatusUnpaid, true
	}
}
