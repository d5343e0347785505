package list_bookings

import (
	"context"

	"github.com/bookflow/bookflow-api/internal/service/bookings/models"
)

type BookingService interface {
	ListByCustomerEmail(ctx context.Context, email string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
