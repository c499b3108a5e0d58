package domain

import "strings"

// ServiceType определяет вид услуги прачечной. Канонический тег в верхнем
// регистре используется как значение для хранения.
type ServiceType string

const (
	ServiceWashOnly    ServiceType = "WASH_ONLY"
	ServiceWashAndIron ServiceType = "WASH_AND_IRON"
	ServiceDryClean    ServiceType = "DRY_CLEAN"
	ServiceIronOnly    ServiceType = "IRON_ONLY"
	ServiceExpress     ServiceType = "EXPRESS"
)

func (s ServiceType) String() string {
	return string(s)
}

// Multiplier возвращает ценовой множитель услуги.
func (s ServiceType) Multiplier() float64 {
	switch s {
	case ServiceWashOnly, ServiceWashAndIron:
		return 1.0
	case ServiceDryClean:
		return 2.0
	case ServiceIronOnly:
		return 0.8
	case ServiceExpress:
		return 2.5
	default:
		return 1.0
	}
}

// TurnaroundDays возвращает срок выполнения в днях от даты создания заказа.
// Для EXPRESS исходная система срок не задаёт и попадает в ветку по умолчанию (2 дня).
func (s ServiceType) TurnaroundDays() int {
	switch s {
	case ServiceWashOnly, ServiceIronOnly:
		return 1
	case ServiceWashAndIron:
		return 2
	case ServiceDryClean:
		return 3
	default:
		return 2
	}
}

// ParseServiceType декодирует хранимое значение. Неизвестная или пустая
// строка не является ошибкой: возвращается WASH_ONLY и признак fallback,
// чтобы вызывающий сам решил, как сигнализировать о деградации.
func ParseServiceType(raw string) (ServiceType, bool) {
	switch ServiceType(strings.ToUpper(strings.TrimSpace(raw))) {
	case ServiceWashOnly:
		return ServiceWashOnly, false
	case ServiceWashAndIron:
		return ServiceWashAndIron, false
	case ServiceDryClean:
		return ServiceDryClean, false
	case ServiceIronOnly:
		return ServiceIronOnly, false
	case ServiceExpress:
		return ServiceExpress, false
	default:
		return ServiceWashOnly, true
	}
}
