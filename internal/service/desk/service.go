package desk

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

// unassignedStaffLabel подставляется в отчёты вместо имени, когда исполнитель
// не назначен или его учётная запись была удалена.
const unassignedStaffLabel = "Unassigned"

var ordersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "laundry_desk_orders_created_total",
	Help: "Total number of orders accepted at the front desk grouped by service type.",
}, []string{"service_type"})

// ItemInput — позиция заказа в том виде, в каком её вводит кассир.
type ItemInput struct {
	Type      string
	Quantity  int
	UnitPrice float64
}

// CreateOrderInput — параметры приёма нового заказа.
type CreateOrderInput struct {
	CustomerName string
	RoomNumber   string
	ServiceType  domain.ServiceType
	Items        []ItemInput
	CreatedBy    string
}

// Report — сводка по заказам за период для администратора.
type Report struct {
	Start        time.Time
	End          time.Time
	Orders       []domain.Order
	OrderCount   int
	TotalRevenue float64
	PaidCount    int
	UnpaidCount  int
}

// Service реализует рабочий процесс приёмной стойки поверх доменных
// репозиториев: приём и сопровождение заказов, учётные записи, отчёты.
type Service struct {
	orders domain.OrderRepository
	users  domain.UserRepository
	logger *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(orders domain.OrderRepository, users domain.UserRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "desk-service")
	}
	return &Service{
		orders: orders,
		users:  users,
		logger: logger,
	}
}

// CreateOrder принимает заказ: собирает агрегат, проверяет инварианты и
// сохраняет его в статусе QUEUED/UNPAID.
func (s *Service) CreateOrder(input CreateOrderInput) (domain.Order, error) {
	order := domain.NewOrder(input.CustomerName, input.RoomNumber, input.ServiceType, input.CreatedBy)

	items := make([]domain.ClothingItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.NewClothingItem(item.Type, item.Quantity, item.UnitPrice))
	}
	order = order.WithItems(items)

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, errors.Join(errs...)
	}

	if err := s.orders.Save(order); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}

	ordersCreated.WithLabelValues(order.ServiceType.String()).Inc()
	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"service_type": order.ServiceType.String(),
		"total_amount": order.TotalAmount,
	}).Info("order accepted")

	return order, nil
}

// AssignStaff назначает исполнителя на заказ и запускает обработку.
// Исполнитель должен существовать; заказ должен находиться в QUEUED.
func (s *Service) AssignStaff(orderID, staffID string) (domain.Order, error) {
	if _, err := s.users.GetByID(staffID); err != nil {
		return domain.Order{}, fmt.Errorf("resolve staff %s: %w", staffID, err)
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	order, err = order.AssignStaff(staffID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.orders.Update(order); err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"staff_id": staffID,
	}).Info("order assigned")

	return order, nil
}

// MarkComplete завершает обработку заказа.
func (s *Service) MarkComplete(orderID string) (domain.Order, error) {
	return s.transition(orderID, domain.Order.MarkComplete, "order completed")
}

// MarkDelivered выдаёт выполненный заказ клиенту.
func (s *Service) MarkDelivered(orderID string) (domain.Order, error) {
	return s.transition(orderID, domain.Order.MarkDelivered, "order delivered")
}

// CollectPayment отмечает заказ оплаченным. Оплата не зависит от статуса
// жизненного цикла и принимается не более одного раза.
func (s *Service) CollectPayment(orderID string) (domain.Order, error) {
	return s.transition(orderID, domain.Order.CollectPayment, "payment collected")
}

// CancelOrder отменяет заказ из любого нетерминального состояния.
func (s *Service) CancelOrder(orderID string) (domain.Order, error) {
	return s.transition(orderID, domain.Order.Cancel, "order cancelled")
}

func (s *Service) transition(orderID string, step func(domain.Order) (domain.Order, error), event string) (domain.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	order, err = step(order)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.orders.Update(order); err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	s.logger.WithField("order_id", order.ID).Info(event)
	return order, nil
}

// OrderByID возвращает заказ по идентификатору.
func (s *Service) OrderByID(orderID string) (domain.Order, error) {
	return s.orders.GetByID(orderID)
}

// OrdersByStatus возвращает заказы в указанном статусе.
func (s *Service) OrdersByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	return s.orders.ListByStatus(status)
}

// Report собирает сводку по заказам, принятым в указанном диапазоне дат
// (границы включаются).
func (s *Service) Report(start, end time.Time) (Report, error) {
	orders, err := s.orders.ListBetweenDates(start, end)
	if err != nil {
		return Report{}, fmt.Errorf("list orders for report: %w", err)
	}

	report := Report{
		Start:      domain.DateOnly(start),
		End:        domain.DateOnly(end),
		Orders:     orders,
		OrderCount: len(orders),
	}
	for _, order := range orders {
		report.TotalRevenue += order.TotalAmount
		if order.PaymentStatus == domain.PaymentStatusPaid {
			report.PaidCount++
		} else {
			report.UnpaidCount++
		}
	}

	return report, nil
}

// StaffName возвращает полное имя исполнителя для отчётов. Пустой или
// осиротевший идентификатор (исполнитель удалён) отображается как Unassigned.
func (s *Service) StaffName(staffID string) string {
	if staffID == "" {
		return unassignedStaffLabel
	}

	user, err := s.users.GetByID(staffID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.WithField("staff_id", staffID).WithError(err).Warn("staff lookup failed")
		}
		return unassignedStaffLabel
	}
	if user.FullName == "" {
		return user.Username
	}
	return user.FullName
}

// Authenticate проверяет учётные данные и возвращает пользователя.
func (s *Service) Authenticate(username, password string) (domain.User, error) {
	return s.users.Authenticate(username, password)
}

// RegisterUser создаёт учётную запись с новым идентификатором.
func (s *Service) RegisterUser(username, password string, role domain.Role, fullName string) (domain.User, error) {
	user := domain.NewUser(username, password, role, fullName)
	if err := s.users.Save(user); err != nil {
		return domain.User{}, err
	}

	s.logger.WithFields(log.Fields{
		"user_id": user.ID,
		"role":    string(user.Role),
	}).Info("user registered")

	return user, nil
}

// UpdateUser перезаписывает учётную запись по её идентификатору.
func (s *Service) UpdateUser(user domain.User) error {
	if _, err := s.users.GetByID(user.ID); err != nil {
		return err
	}
	return s.users.Save(user)
}

// DeleteUser удаляет учётную запись. Назначенные на пользователя заказы
// не трогаем: осиротевшие ссылки отчёт отображает как Unassigned.
func (s *Service) DeleteUser(id string) error {
	return s.users.Delete(id)
}

// ListStaff возвращает кассиров и администраторов.
func (s *Service) ListStaff() ([]domain.User, error) {
	return s.users.AllStaff()
}
