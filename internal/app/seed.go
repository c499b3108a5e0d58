package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/laundry/internal/domain"
)

// seedDefaultAdmin создаёт учётную запись администратора по умолчанию,
// если в системе ещё нет ни одного кассира или администратора. Первый вход
// выполняется с этими учётными данными, дальше их положено сменить.
func seedDefaultAdmin(users domain.UserRepository, logger *log.Entry) error {
	staff, err := users.AllStaff()
	if err != nil {
		return fmt.Errorf("list staff for seeding: %w", err)
	}
	if len(staff) > 0 {
		return nil
	}

	admin := domain.NewUser("admin", "admin123", domain.RoleAdmin, "Administrator")
	if err := users.Save(admin); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}

	logger.WithField("username", admin.Username).Info("default administrator created")
	return nil
}
