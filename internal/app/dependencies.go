package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
	"github.com/vladislavdragonenkov/laundry/internal/service/desk"
	"github.com/vladislavdragonenkov/laundry/internal/storage/memory"
	"github.com/vladislavdragonenkov/laundry/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Orders domain.OrderRepository
	Users  domain.UserRepository
	Desk   *desk.Service
	Logger *log.Entry
}

// NewMemoryDependencies собирает зависимости поверх in-memory хранилища.
// Используется для локальной разработки и в тестах.
func NewMemoryDependencies(logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	orders := memory.NewOrderRepository()
	users := memory.NewUserRepository()
	return &Dependencies{
		Orders: orders,
		Users:  users,
		Desk:   desk.NewService(orders, users, logger.WithField("layer", "desk")),
		Logger: logger,
	}
}

// NewPostgresDependencies собирает зависимости поверх PostgreSQL.
func NewPostgresDependencies(store *postgres.Store, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	orders := postgres.NewOrderRepository(store)
	users := postgres.NewUserRepository(store)
	return &Dependencies{
		Orders: orders,
		Users:  users,
		Desk:   desk.NewService(orders, users, logger.WithField("layer", "desk")),
		Logger: logger,
	}
}
