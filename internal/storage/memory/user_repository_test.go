package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
	"github.com/vladislavdragonenkov/laundry/internal/storage/memory"
)

func TestUserRepository_SaveAuthenticate(t *testing.T) {
	repo := memory.NewUserRepository()
	user := domain.User{ID: "user-1", Username: "maria", Password: "secret", Role: domain.RoleCashier, FullName: "Maria P."}

	if err := repo.Save(user); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Authenticate("maria", "secret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, got.ID)
	}

	if _, err := repo.Authenticate("maria", "wrong"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on bad password, got %v", err)
	}
}

func TestUserRepository_SaveIsUpsert(t *testing.T) {
	repo := memory.NewUserRepository()
	user := domain.User{ID: "user-1", Username: "maria", Password: "secret", Role: domain.RoleCashier}

	if err := repo.Save(user); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	user.FullName = "Maria Petrova"
	if err := repo.Save(user); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := repo.GetByID("user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.FullName != "Maria Petrova" {
		t.Fatalf("expected updated full name, got %q", got.FullName)
	}
}

func TestUserRepository_UsernameTaken(t *testing.T) {
	repo := memory.NewUserRepository()

	if err := repo.Save(domain.User{ID: "user-1", Username: "maria", Role: domain.RoleCashier}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	err := repo.Save(domain.User{ID: "user-2", Username: "maria", Role: domain.RoleStaff})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserRepository_AllStaffExcludesStaffRole(t *testing.T) {
	repo := memory.NewUserRepository()

	users := []domain.User{
		{ID: "user-1", Username: "admin", Role: domain.RoleAdmin},
		{ID: "user-2", Username: "maria", Role: domain.RoleCashier},
		{ID: "user-3", Username: "ivan", Role: domain.RoleStaff},
	}
	for _, user := range users {
		if err := repo.Save(user); err != nil {
			t.Fatalf("save %s failed: %v", user.Username, err)
		}
	}

	staff, err := repo.AllStaff()
	if err != nil {
		t.Fatalf("all staff failed: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("expected 2 staff users, got %d", len(staff))
	}
	for _, user := range staff {
		if user.Role == domain.RoleStaff {
			t.Fatalf("role staff leaked into staff listing: %+v", user)
		}
	}
}

func TestUserRepository_DeleteIsIdempotent(t *testing.T) {
	repo := memory.NewUserRepository()

	if err := repo.Save(domain.User{ID: "user-1", Username: "maria", Role: domain.RoleCashier}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Delete("user-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete("user-1"); err != nil {
		t.Fatalf("repeated delete failed: %v", err)
	}
	if _, err := repo.GetByID("user-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}
