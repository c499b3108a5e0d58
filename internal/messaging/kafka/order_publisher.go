package kafka

import (
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

// OrderSyncPublisher публикует снимки заказов в Kafka topic синхронизации.
type OrderSyncPublisher struct {
	producer *Producer
	topic    string
}

// NewOrderSyncPublisher создаёт Kafka-паблишер синхронизации заказов.
func NewOrderSyncPublisher(producer *Producer, topic string) domain.SyncPublisher {
	if topic == "" {
		topic = TopicOrderSync
	}
	return &OrderSyncPublisher{
		producer: producer,
		topic:    topic,
	}
}

// Publish сериализует заказ и отправляет его с ключом партиционирования
// по идентификатору заказа.
func (p *OrderSyncPublisher) Publish(order domain.Order) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka order sync publisher is not initialized")
	}

	event := OrderSyncEvent{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		RoomNumber:    order.RoomNumber,
		ServiceType:   order.ServiceType.String(),
		TotalAmount:   order.TotalAmount,
		Status:        order.Status.String(),
		PaymentStatus: order.PaymentStatus.String(),
		CreatedDate:   order.CreatedDate.Format(time.DateOnly),
		PublishedAt:   time.Now().UTC(),
	}

	return p.producer.PublishEvent(p.topic, order.ID, event)
}

var _ domain.SyncPublisher = (*OrderSyncPublisher)(nil)
