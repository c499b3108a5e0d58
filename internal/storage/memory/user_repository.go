package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

// userRepositoryInMemory — in-memory реализация UserRepository для
// локальной разработки и тестов.
type userRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.User
}

// NewUserRepository возвращает in-memory репозиторий пользователей.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{
		items: make(map[string]domain.User),
	}
}

// Save выполняет upsert по id, охраняя уникальность username.
func (r *userRepositoryInMemory) Save(user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if id != user.ID && existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.items[user.ID] = user
	return nil
}

// Authenticate — точное совпадение пары username/password.
func (r *userRepositoryInMemory) Authenticate(username, password string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.items {
		if user.Username == username && user.Password == password {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// AllStaff возвращает пользователей с ролями cashier и admin.
func (r *userRepositoryInMemory) AllStaff() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	staff := make([]domain.User, 0)
	for _, user := range r.items {
		if user.Role == domain.RoleCashier || user.Role == domain.RoleAdmin {
			staff = append(staff, user)
		}
	}
	return staff, nil
}

// Delete удаляет безусловно; отсутствие записи не ошибка.
func (r *userRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *userRepositoryInMemory) GetByID(id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}
