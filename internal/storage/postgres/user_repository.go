package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

const opTimeout = 5 * time.Second

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

// Save выполняет upsert по id. Дубликат username отдаётся как
// ErrUsernameTaken, а не как сырое нарушение constraint.
func (r *userRepository) Save(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, role, full_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
		    password = EXCLUDED.password,
		    role = EXCLUDED.role,
		    full_name = EXCLUDED.full_name
	`, user.ID, user.Username, user.Password, string(user.Role), user.FullName)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("save user: %w", err)
	}

	return nil
}

// Authenticate ищет точное совпадение пары username/password.
// Пароли хранятся открытым текстом — известная слабость исходной системы.
func (r *userRepository) Authenticate(username, password string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password, role, full_name
		FROM users
		WHERE username = $1 AND password = $2
	`, username, password)

	return scanUser(row)
}

// AllStaff возвращает пользователей с ролями cashier и admin; роль staff
// исходная система из этой выборки исключает.
func (r *userRepository) AllStaff() ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, password, role, full_name
		FROM users
		WHERE role IN ('cashier', 'admin')
	`)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		var role string
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &role, &user.FullName); err != nil {
			return nil, fmt.Errorf("scan staff row: %w", err)
		}
		user.Role = domain.Role(role)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff rows: %w", err)
	}

	return users, nil
}

// Delete удаляет пользователя безусловно; отсутствие строки не ошибка.
func (r *userRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password, role, full_name
		FROM users
		WHERE id = $1
	`, id)

	return scanUser(row)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.Password, &role, &user.FullName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	user.Role = domain.Role(role)

	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.UserRepository = (*userRepository)(nil)
