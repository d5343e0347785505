package get_available_slots

import (
	"time"

	"github.com/bookflow/bookflow-api/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date          time.Time // Дата, на которую запрашиваются слоты (без времени)
	ServiceID     string    // ID услуги
	EmployeeID    *string   // Фильтр по конкретному сотруднику (опционально)
	LocationID    *string   // Фильтр по локации (опционально)
	OnlyAvailable bool      // Вернуть только свободные слоты
}

// Response модель ответа со списком слотов по всем подходящим сотрудникам
type Response struct {
	Date      time.Time         // Дата, на которую запрашивались слоты
	ServiceID string            // ID услуги
	Slots     []domain.TimeSlot // Слоты в порядке сотрудников, внутри сотрудника - по времени
}
