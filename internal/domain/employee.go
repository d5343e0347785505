package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bookflow/bookflow-api/pkg/types"
)

// DayHours рабочие часы сотрудника в пределах одного дня
type DayHours struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklyTemplate недельное расписание сотрудника.
// Массив фиксированного размера, индексированный time.Weekday (Sunday = 0),
// вместо словаря с строковыми ключами - исключает опечатки в названиях дней.
// nil-элемент означает выходной.
type WeeklyTemplate [7]*DayHours

// Day возвращает рабочие часы на день недели, nil для выходного
func (t WeeklyTemplate) Day(w time.Weekday) *DayHours {
	return t[w]
}

// weekdayNames JSON-ключи дней недели в порядке time.Weekday
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// MarshalJSON сериализует расписание в формат {"monday":{"start":"09:00","end":"17:00"},...}.
// Выходные дни сериализуются как null - этого формата ждет клиентский виджет.
func (t WeeklyTemplate) MarshalJSON() ([]byte, error) {
	out := make(map[string]*DayHours, 7)
	for i, name := range weekdayNames {
		out[name] = t[i]
	}
	return json.Marshal(out)
}

// UnmarshalJSON десериализует расписание из словаря с ключами-днями недели.
// Отсутствующий ключ равносилен null (выходной).
func (t *WeeklyTemplate) UnmarshalJSON(data []byte) error {
	var raw map[string]*DayHours
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("domain: unmarshal weekly template: %w", err)
	}

	var parsed WeeklyTemplate
	for i, name := range weekdayNames {
		day, ok := raw[name]
		if !ok || day == nil {
			continue
		}
		if err := day.Start.Validate(); err != nil {
			return fmt.Errorf("domain: weekly template %s start: %w", name, err)
		}
		if err := day.End.Validate(); err != nil {
			return fmt.Errorf("domain: weekly template %s end: %w", name, err)
		}
		parsed[i] = day
	}

	*t = parsed
	return nil
}

// Employee represents a staff member who performs services
type Employee struct {
	ID             string
	Name           string
	Color          string
	AvatarURL      *string
	ServiceIDs     []string
	LocationID     *string
	WeeklyTemplate WeeklyTemplate
	Active         bool
}

// Offers returns true if the employee performs the given service
func (e *Employee) Offers(serviceID string) bool {
	for _, id := range e.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// AtLocation returns true if the employee works at the given location.
// Сотрудник без привязки к локации считается доступным везде.
func (e *Employee) AtLocation(locationID string) bool {
	return e.LocationID == nil || *e.LocationID == locationID
}
