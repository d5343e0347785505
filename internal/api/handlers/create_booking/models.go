package create_booking

import (
	"time"

	"github.com/bookflow/bookflow-api/internal/domain"
	createBooking "github.com/bookflow/bookflow-api/internal/usecase/create_booking"
	"github.com/bookflow/bookflow-api/pkg/types"
)

// CreateBookingRequest HTTP request model.
// Формат полей проверяется validator-ом до передачи в use case.
type CreateBookingRequest struct {
	ServiceID  string  `json:"serviceId" validate:"required"`
	EmployeeID string  `json:"employeeId" validate:"required"`
	LocationID *string `json:"locationId,omitempty"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	StartTime  string  `json:"startTime" validate:"required"`                // "10:00"
	EndTime    string  `json:"endTime" validate:"required"`                  // "10:45"

	CustomerName  string  `json:"customerName" validate:"required,min=2,max=100"`
	CustomerEmail string  `json:"customerEmail" validate:"required,email"`
	CustomerPhone string  `json:"customerPhone" validate:"required,min=6,max=20"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string  `json:"id"`
	ServiceID       string  `json:"serviceId"`
	EmployeeID      string  `json:"employeeId"`
	LocationID      *string `json:"locationId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	EmployeeName    string  `json:"employeeName"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		EmployeeID:    r.EmployeeID,
		LocationID:    r.LocationID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		EmployeeID:      resp.EmployeeID,
		LocationID:      resp.LocationID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		EmployeeName:    resp.EmployeeName,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
