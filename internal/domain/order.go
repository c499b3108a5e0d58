package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Order — корневой агрегат: владеет позициями, считает итоговую сумму и
// производные даты, выполняет переходы жизненного цикла. Все мутации
// выполняются copy-on-write: методы возвращают новое значение Order, не
// трогая исходное.
type Order struct {
	ID                     string
	CustomerName           string
	RoomNumber             string
	ServiceType            ServiceType
	Items                  []ClothingItem
	TotalAmount            float64
	CreatedDate            time.Time
	ExpectedCompletionDate time.Time
	AssignedStaffID        string
	Status                 OrderStatus
	PaymentStatus          PaymentStatus
	CreatedBy              string
	Synced                 bool
}

// NewOrder создаёт заказ в состоянии QUEUED/UNPAID с сегодняшней датой
// создания и производной датой готовности.
func NewOrder(customerName, roomNumber string, serviceType ServiceType, createdBy string) Order {
	o := Order{
		ID:            uuid.NewString(),
		CustomerName:  customerName,
		RoomNumber:    roomNumber,
		ServiceType:   serviceType,
		CreatedDate:   DateOnly(time.Now().UTC()),
		Status:        OrderStatusQueued,
		PaymentStatus: PaymentStatusUnpaid,
		CreatedBy:     createdBy,
	}
	o.TotalAmount = o.recomputedTotal()
	o.ExpectedCompletionDate = o.derivedCompletion()
	return o
}

// DateOnly отбрасывает время, оставляя календарную дату в UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// recomputedTotal — сумма строк, умноженная на множитель услуги,
// с округлением до центов.
func (o Order) recomputedTotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.LineTotal
	}
	return round2(sum * o.ServiceType.Multiplier())
}

func (o Order) derivedCompletion() time.Time {
	return o.CreatedDate.AddDate(0, 0, o.ServiceType.TurnaroundDays())
}

// WithItems заменяет позиции заказа и пересчитывает итог. Слайс копируется,
// чтобы агрегат не делил память с вызывающим.
func (o Order) WithItems(items []ClothingItem) Order {
	o.Items = append([]ClothingItem(nil), items...)
	o.TotalAmount = o.recomputedTotal()
	return o
}

// AddItem добавляет позицию и пересчитывает итог.
func (o Order) AddItem(item ClothingItem) Order {
	items := make([]ClothingItem, 0, len(o.Items)+1)
	items = append(items, o.Items...)
	o.Items = append(items, item)
	o.TotalAmount = o.recomputedTotal()
	return o
}

// WithServiceType меняет услугу: пересчитываются и итог, и дата готовности.
func (o Order) WithServiceType(serviceType ServiceType) Order {
	o.ServiceType = serviceType
	o.TotalAmount = o.recomputedTotal()
	o.ExpectedCompletionDate = o.derivedCompletion()
	return o
}

// WithCreatedDate меняет дату создания и производную дату готовности.
func (o Order) WithCreatedDate(createdDate time.Time) Order {
	o.CreatedDate = DateOnly(createdDate)
	o.ExpectedCompletionDate = o.derivedCompletion()
	return o
}

// WithExpectedCompletion задаёт явную дату готовности вместо производной.
func (o Order) WithExpectedCompletion(date time.Time) Order {
	o.ExpectedCompletionDate = DateOnly(date)
	return o
}

// TotalItemCount возвращает суммарное количество вещей в заказе.
func (o Order) TotalItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// IsOverdue — заказ просрочен, если сегодня позже даты готовности и заказ
// ещё не выполнен и не выдан.
func (o Order) IsOverdue() bool {
	return o.IsOverdueAt(time.Now())
}

// IsOverdueAt — та же проверка относительно произвольного "сегодня".
func (o Order) IsOverdueAt(today time.Time) bool {
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusDelivered {
		return false
	}
	return DateOnly(today).After(o.ExpectedCompletionDate)
}

// AssignStaff назначает исполнителя и переводит заказ в PROCESSING.
// Существование исполнителя проверяет вызывающий слой.
func (o Order) AssignStaff(staffID string) (Order, error) {
	if o.Status != OrderStatusQueued {
		return o, ErrOrderNotQueued
	}
	o.AssignedStaffID = staffID
	o.Status = OrderStatusProcessing
	return o, nil
}

// MarkComplete переводит заказ из PROCESSING в COMPLETED. Оплаты не касается.
func (o Order) MarkComplete() (Order, error) {
	if o.Status != OrderStatusProcessing {
		return o, ErrOrderNotProcessing
	}
	o.Status = OrderStatusCompleted
	return o, nil
}

// MarkDelivered переводит выполненный заказ в DELIVERED.
func (o Order) MarkDelivered() (Order, error) {
	if o.Status != OrderStatusCompleted {
		return o, ErrOrderNotCompleted
	}
	o.Status = OrderStatusDelivered
	return o, nil
}

// CollectPayment отмечает заказ оплаченным. Не зависит от статуса жизненного
// цикла; повторный вызов — отказ "already collected" без побочных эффектов.
func (o Order) CollectPayment() (Order, error) {
	if o.PaymentStatus != PaymentStatusUnpaid {
		return o, ErrPaymentAlreadyCollected
	}
	o.PaymentStatus = PaymentStatusPaid
	return o, nil
}

// Cancel переводит заказ в CANCELLED из любого нетерминального состояния.
// Текущий рабочий процесс переход не использует, но агрегат его допускает.
func (o Order) Cancel() (Order, error) {
	if o.Status.IsTerminal() {
		return o, ErrOrderTerminal
	}
	o.Status = OrderStatusCancelled
	return o, nil
}

// ValidateInvariants проверяет агрегат перед сохранением и возвращает список замечаний.
func (o Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerName == "" {
		errs = append(errs, ErrCustomerRequired)
	}

	var sum float64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPrice <= 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		if item.LineTotal != float64(item.Quantity)*item.UnitPrice {
			errs = append(errs, ErrLineTotalMismatch)
		}
		sum += item.LineTotal
	}
	if o.TotalAmount != round2(sum*o.ServiceType.Multiplier()) {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
