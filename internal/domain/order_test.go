package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

func newOrderWithItems(serviceType domain.ServiceType, items ...domain.ClothingItem) domain.Order {
	o := domain.NewOrder("Alice Smith", "204", serviceType, "user-1")
	return o.WithItems(items)
}

func TestOrder_TotalForDryClean(t *testing.T) {
	o := newOrderWithItems(domain.ServiceDryClean, domain.NewClothingItem("Shirt", 3, 2.00))

	if o.TotalAmount != 12.00 {
		t.Fatalf("expected total 12.00, got %v", o.TotalAmount)
	}
	want := o.CreatedDate.AddDate(0, 0, 3)
	if !o.ExpectedCompletionDate.Equal(want) {
		t.Fatalf("expected completion %s, got %s", want, o.ExpectedCompletionDate)
	}
}

func TestOrder_TotalRecomputeIsIdempotent(t *testing.T) {
	o := newOrderWithItems(domain.ServiceIronOnly,
		domain.NewClothingItem("Shirt", 2, 1.25),
		domain.NewClothingItem("Trousers", 1, 3.10),
	)

	first := o.TotalAmount
	again := o.WithItems(o.Items)
	if again.TotalAmount != first {
		t.Fatalf("recompute not idempotent: %v vs %v", again.TotalAmount, first)
	}
	// 0.8 * (2.50 + 3.10) = 4.48
	if first != 4.48 {
		t.Fatalf("expected total 4.48, got %v", first)
	}
}

func TestOrder_ServiceTypeChangeRecomputes(t *testing.T) {
	o := newOrderWithItems(domain.ServiceWashOnly, domain.NewClothingItem("Shirt", 3, 2.00))
	if o.TotalAmount != 6.00 {
		t.Fatalf("expected total 6.00, got %v", o.TotalAmount)
	}

	express := o.WithServiceType(domain.ServiceExpress)
	if express.TotalAmount != 15.00 {
		t.Fatalf("expected total 15.00, got %v", express.TotalAmount)
	}
	if !express.ExpectedCompletionDate.Equal(express.CreatedDate.AddDate(0, 0, 2)) {
		t.Fatalf("expected express completion +2 days, got %s", express.ExpectedCompletionDate)
	}
	// исходный заказ не должен измениться
	if o.TotalAmount != 6.00 || o.ServiceType != domain.ServiceWashOnly {
		t.Fatalf("original order mutated: %+v", o)
	}
}

func TestOrder_ExplicitCompletionOverride(t *testing.T) {
	o := domain.NewOrder("Bob", "101", domain.ServiceWashOnly, "user-1")
	override := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	o = o.WithExpectedCompletion(override)
	if !o.ExpectedCompletionDate.Equal(override) {
		t.Fatalf("expected override %s, got %s", override, o.ExpectedCompletionDate)
	}
}

func TestOrder_TotalItemCount(t *testing.T) {
	o := newOrderWithItems(domain.ServiceWashOnly,
		domain.NewClothingItem("Shirt", 3, 2.00),
		domain.NewClothingItem("Socks", 5, 0.50),
	)
	if got := o.TotalItemCount(); got != 8 {
		t.Fatalf("expected 8 items, got %d", got)
	}
}

func TestOrder_IsOverdueAt(t *testing.T) {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	o := domain.NewOrder("Alice", "204", domain.ServiceWashOnly, "user-1").WithCreatedDate(created)
	// срок готовности: 11 января

	if o.IsOverdueAt(time.Date(2026, 1, 11, 23, 0, 0, 0, time.UTC)) {
		t.Fatal("due date itself must not be overdue")
	}
	if !o.IsOverdueAt(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected overdue on the day after the due date")
	}

	completed, err := o.AssignStaff("staff-1")
	if err != nil {
		t.Fatalf("assign staff: %v", err)
	}
	completed, err = completed.MarkComplete()
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if completed.IsOverdueAt(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("completed order must never be overdue")
	}
}

func TestOrder_AssignStaffTransition(t *testing.T) {
	o := domain.NewOrder("Alice", "204", domain.ServiceWashOnly, "user-1")

	assigned, err := o.AssignStaff("staff-1")
	if err != nil {
		t.Fatalf("assign staff: %v", err)
	}
	if assigned.Status != domain.OrderStatusProcessing || assigned.AssignedStaffID != "staff-1" {
		t.Fatalf("unexpected order after assignment: %+v", assigned)
	}

	if _, err := assigned.AssignStaff("staff-2"); !errors.Is(err, domain.ErrOrderNotQueued) {
		t.Fatalf("expected ErrOrderNotQueued, got %v", err)
	}
}

func TestOrder_MarkCompleteRequiresProcessing(t *testing.T) {
	o := domain.NewOrder("Alice", "204", domain.ServiceWashOnly, "user-1")

	if _, err := o.MarkComplete(); !errors.Is(err, domain.ErrOrderNotProcessing) {
		t.Fatalf("expected ErrOrderNotProcessing, got %v", err)
	}

	assigned, _ := o.AssignStaff("staff-1")
	done, err := assigned.MarkComplete()
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if done.Status != domain.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", done.Status)
	}
	if done.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Fatal("completion must not touch payment status")
	}
}

func TestOrder_CollectPaymentIdempotency(t *testing.T) {
	o := domain.NewOrder("Alice", "204", domain.ServiceWashOnly, "user-1")

	paid, err := o.CollectPayment()
	if err != nil {
		t.Fatalf("collect payment: %v", err)
	}
	if paid.PaymentStatus != domain.PaymentStatusPaid {
		t.Fatalf("expected PAID, got %s", paid.PaymentStatus)
	}

	again, err := paid.CollectPayment()
	if !errors.Is(err, domain.ErrPaymentAlreadyCollected) {
		t.Fatalf("expected ErrPaymentAlreadyCollected, got %v", err)
	}
	if again.PaymentStatus != domain.PaymentStatusPaid {
		t.Fatal("failed collect must not alter state")
	}
}

func TestOrder_CancelFromNonTerminalOnly(t *testing.T) {
	o := domain.NewOrder("Alice", "204", domain.ServiceWashOnly, "user-1")

	cancelled, err := o.Cancel()
	if err != nil {
		t.Fatalf("cancel queued order: %v", err)
	}
	if cancelled.Status != domain.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}

	if _, err := cancelled.Cancel(); !errors.Is(err, domain.ErrOrderTerminal) {
		t.Fatalf("expected ErrOrderTerminal, got %v", err)
	}
}

func TestOrder_ValidateInvariants(t *testing.T) {
	o := newOrderWithItems(domain.ServiceDryClean, domain.NewClothingItem("Shirt", 3, 2.00))
	if errs := o.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected valid order, got %v", errs)
	}

	o.Items[0].Quantity = 0
	o.Items[0].LineTotal = 1
	errs := o.ValidateInvariants()
	if len(errs) == 0 {
		t.Fatal("expected invariant violations")
	}
}
