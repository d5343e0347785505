package get_available_slots

import (
	"context"
	"time"

	"github.com/bookflow/bookflow-api/internal/domain"
)

// CatalogStore интерфейс хранилища каталога (услуги, сотрудники)
type CatalogStore interface {
	// GetService получает услугу по ID
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
	// ListEligibleEmployees получает активных сотрудников, выполняющих услугу,
	// с опциональной фильтрацией по локации
	ListEligibleEmployees(ctx context.Context, serviceID string, locationID *string) ([]*domain.Employee, error)
}

// BookingStore интерфейс хранилища бронирований
type BookingStore interface {
	// ListActiveByDate получает все неотмененные бронирования указанных
	// сотрудников на дату одним запросом
	ListActiveByDate(ctx context.Context, date time.Time, employeeIDs []string) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
