package create_booking

import (
	"context"
	"time"

	"github.com/bookflow/bookflow-api/internal/domain"
)

// CatalogStore интерфейс хранилища каталога (услуги, сотрудники)
type CatalogStore interface {
	// GetService получает услугу по ID
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
	// GetEmployee получает сотрудника по ID
	GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error)
}

// BookingStore интерфейс хранилища бронирований
type BookingStore interface {
	// Create сохраняет новое бронирование
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// ListActiveByEmployeeAndDate получает неотмененные бронирования сотрудника
	// на дату. Внутри транзакции строки блокируются (FOR UPDATE).
	ListActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
