package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

func integrationOrder(id string, day time.Time) domain.Order {
	order := domain.NewOrder("Ivanov", "101", domain.ServiceDryClean, "cashier-1").
		WithItems([]domain.ClothingItem{
			domain.NewClothingItem("Shirt", 3, 2.00),
			domain.NewClothingItem("Trousers", 1, 4.00),
		}).
		WithCreatedDate(day)
	order.ID = id
	return order
}

func TestOrderRepositoryIntegration_SaveGetRoundTrip(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	order := integrationOrder("order-rt-1", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if err := repo.Save(order); err != nil {
		t.Fatalf("save: %v", err)
	}

	stored, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if stored.CustomerName != order.CustomerName {
		t.Errorf("customer: expected %q, got %q", order.CustomerName, stored.CustomerName)
	}
	if stored.ServiceType != domain.ServiceDryClean {
		t.Errorf("service type: expected DRY_CLEAN, got %s", stored.ServiceType)
	}
	if stored.TotalAmount != order.TotalAmount {
		t.Errorf("total: expected %v, got %v", order.TotalAmount, stored.TotalAmount)
	}
	if !stored.CreatedDate.Equal(order.CreatedDate) {
		t.Errorf("created date: expected %v, got %v", order.CreatedDate, stored.CreatedDate)
	}
	if !stored.ExpectedCompletionDate.Equal(order.ExpectedCompletionDate) {
		t.Errorf("completion date: expected %v, got %v", order.ExpectedCompletionDate, stored.ExpectedCompletionDate)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
	if stored.Items[0].Type != "Shirt" || stored.Items[0].Quantity != 3 {
		t.Errorf("first item mismatch: %+v", stored.Items[0])
	}
	if stored.Items[0].LineTotal != 6.00 {
		t.Errorf("line total: expected 6.00, got %v", stored.Items[0].LineTotal)
	}
	if stored.Synced {
		t.Error("new order must not be marked synced")
	}

	if err := repo.Save(order); !errors.Is(err, domain.ErrOrderExists) {
		t.Fatalf("expected ErrOrderExists on duplicate save, got %v", err)
	}
}

func TestOrderRepositoryIntegration_UpdateLifecycle(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	order := integrationOrder("order-up-1", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if err := repo.Save(order); err != nil {
		t.Fatalf("save: %v", err)
	}

	order, err := order.AssignStaff("staff-1")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := repo.Update(order); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != domain.OrderStatusProcessing {
		t.Errorf("status: expected PROCESSING, got %s", stored.Status)
	}
	if stored.AssignedStaffID != "staff-1" {
		t.Errorf("staff: expected staff-1, got %q", stored.AssignedStaffID)
	}

	ghost := integrationOrder("order-ghost", time.Now().UTC())
	if err := repo.Update(ghost); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	if _, err := repo.GetByID("order-ghost"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepositoryIntegration_ListByStatusCaseInsensitive(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := repo.Save(integrationOrder("order-ls-1", day)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(integrationOrder("order-ls-2", day)); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Статус в нестандартном регистре, выборка всё равно должна находить.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.DB().ExecContext(ctx,
		`UPDATE orders SET status = 'queued' WHERE id = 'order-ls-2'`); err != nil {
		t.Fatalf("downcase status: %v", err)
	}

	orders, err := repo.ListByStatus(domain.OrderStatusQueued)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 queued orders, got %d", len(orders))
	}
}

func TestOrderRepositoryIntegration_ListBetweenDates(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"order-d-1", "order-d-2", "order-d-3", "order-d-4"} {
		if err := repo.Save(integrationOrder(id, base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	orders, err := repo.ListBetweenDates(base, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders in inclusive range, got %d", len(orders))
	}
}

func TestOrderRepositoryIntegration_SyncCycle(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := repo.Save(integrationOrder("order-s-1", day)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(integrationOrder("order-s-2", day.AddDate(0, 0, 1))); err != nil {
		t.Fatalf("save: %v", err)
	}

	pending, err := repo.ListUnsynced(1)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "order-s-1" {
		t.Fatalf("expected oldest pending order first, got %+v", pending)
	}

	if err := repo.MarkSynced("order-s-1"); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	pending, err = repo.ListUnsynced(0)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "order-s-2" {
		t.Fatalf("expected only order-s-2 pending, got %+v", pending)
	}

	if err := repo.LogSyncError("order-s-2", "broker unavailable"); err != nil {
		t.Fatalf("log sync error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var count int
	if err := store.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_errors WHERE order_id = 'order-s-2'`).Scan(&count); err != nil {
		t.Fatalf("count sync errors: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 sync error row, got %d", count)
	}
}

func TestOrderRepositoryIntegration_LegacyEnumFallback(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	order := integrationOrder("order-f-1", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if err := repo.Save(order); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Legacy-строки с неизвестными тегами читаются через значения по
	// умолчанию, а не роняют выборку.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.DB().ExecContext(ctx, `
		UPDATE orders
		SET service_type = 'STEAM_PRESS', status = 'ARCHIVED', payment_status = 'VOID'
		WHERE id = 'order-f-1'
	`); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}

	stored, err := repo.GetByID("order-f-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ServiceType != domain.ServiceWashOnly {
		t.Errorf("service fallback: expected WASH_ONLY, got %s", stored.ServiceType)
	}
	if stored.Status != domain.OrderStatusQueued {
		t.Errorf("status fallback: expected QUEUED, got %s", stored.Status)
	}
	if stored.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Errorf("payment fallback: expected UNPAID, got %s", stored.PaymentStatus)
	}
}
