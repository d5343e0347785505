package domain

import (
	"time"

	"github.com/bookflow/bookflow-api/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// ValidStatus returns true for a known booking status
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Booking represents an appointment for one employee on one date
type Booking struct {
	ID              string
	ServiceID       string
	EmployeeID      string
	LocationID      *string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	EmployeeName string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the booking participates in conflict checks.
// Только отмененные бронирования освобождают слот: completed и no_show
// остаются занятыми интервалами в своей дате.
func (b *Booking) BlocksSlot() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the booking status may change to target.
// Отмена - терминальное состояние: отмененное бронирование освободило слот,
// и интервал мог быть занят заново, поэтому реактивация запрещена.
// Переход в cancelled выполняется только через отмену с причиной.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.Status == StatusCancelled {
		return false
	}
	if target == StatusCancelled {
		return false
	}
	return ValidStatus(target)
}

// Overlaps проверяет пересечение с полуинтервалом [start, end) той же даты.
// Строгие неравенства: граничащие интервалы (конец == начало) не пересекаются.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}
