package bookings

import (
	"context"

	"github.com/bookflow/bookflow-api/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string, reason string) error
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
