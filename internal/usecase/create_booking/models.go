package create_booking

import (
	"time"

	"github.com/bookflow/bookflow-api/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID  string           // ID услуги
	EmployeeID string           // ID сотрудника
	LocationID *string          // ID локации (опционально)
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота, например "10:00"
	EndTime    types.TimeString // Время конца слота, например "10:45"

	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone string  // Телефон клиента
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string           // ID созданного бронирования
	ServiceID       string           // ID услуги
	EmployeeID      string           // ID сотрудника
	LocationID      *string          // ID локации
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	EmployeeName string  // Имя сотрудника

	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone string  // Телефон клиента
	Notes         *string // Заметки

	CreatedAt time.Time // Время создания
}
