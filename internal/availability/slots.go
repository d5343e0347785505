package availability

import (
	"github.com/bookflow/bookflow-api/internal/domain"
	"github.com/bookflow/bookflow-api/pkg/types"
)

// GenerateSlots генерирует последовательность слотов-кандидатов для сотрудника.
// Курсор стартует от начала рабочего интервала и двигается с шагом stepMinutes;
// кандидат [t, t+durationMinutes) выпускается, пока он целиком помещается
// в интервал. Если шаг перескакивает последнюю влезающую позицию, в конце
// дополнительно выпускается "хвостовой" слот, заканчивающийся ровно в конце
// интервала: для окна 09:00-12:00 с услугой 45 минут и шагом 30 последний
// слот - 11:15-12:00.
//
// Занятые слоты не отбрасываются: клиенту нужны и занятые, чтобы отрисовать
// их серыми. Слоты возвращаются в порядке возрастания времени.
func GenerateSlots(
	emp *domain.Employee,
	open OpenInterval,
	durationMinutes int,
	stepMinutes int,
	bookings []*domain.Booking,
) []domain.TimeSlot {
	if durationMinutes <= 0 {
		return nil
	}
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultStepMinutes
	}

	slots := make([]domain.TimeSlot, 0)
	cursor := open.Start

	for {
		end, err := cursor.AddMinutes(durationMinutes)
		if err != nil {
			// Кандидат вышел за пределы суток - тем более за пределы окна
			break
		}
		if end.IsAfter(open.End) {
			break
		}

		slots = append(slots, makeSlot(emp, cursor, end, bookings))

		next, err := cursor.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		cursor = next
	}

	// Хвостовой слот: последняя позиция, на которой услуга еще помещается
	if tailStart, ok := tailSlotStart(open, durationMinutes); ok {
		if len(slots) == 0 || slots[len(slots)-1].StartTime.IsBefore(tailStart) {
			slots = append(slots, makeSlot(emp, tailStart, open.End, bookings))
		}
	}

	return slots
}

func makeSlot(emp *domain.Employee, start, end types.TimeString, bookings []*domain.Booking) domain.TimeSlot {
	return domain.TimeSlot{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		StartTime:    start,
		EndTime:      end,
		Available:    CountOverlapping(start, end, bookings) == 0,
	}
}

func tailSlotStart(open OpenInterval, durationMinutes int) (types.TimeString, bool) {
	openStart, err := open.Start.Minutes()
	if err != nil {
		return "", false
	}
	openEnd, err := open.End.Minutes()
	if err != nil {
		return "", false
	}

	tailMinutes := openEnd - durationMinutes
	if tailMinutes < openStart {
		return "", false
	}

	tail, err := types.NewTimeStringFromMinutes(tailMinutes)
	if err != nil {
		return "", false
	}
	return tail, true
}

// CountOverlapping подсчитывает бронирования, пересекающиеся с [start, end).
// Полуинтервальная проверка: [a,b) и [c,d) пересекаются только при a < d && b > c,
// граничащие интервалы (b == c или d == a) не конфликтуют - бронирования
// "впритык" допустимы. Отмененные бронирования не участвуют.
func CountOverlapping(start, end types.TimeString, bookings []*domain.Booking) int {
	count := 0
	for _, b := range bookings {
		if !b.BlocksSlot() {
			continue
		}
		if b.Overlaps(start, end) {
			count++
		}
	}
	return count
}

// HasConflict возвращает true, если [start, end) пересекается хотя бы
// с одним неотмененным бронированием
func HasConflict(start, end types.TimeString, bookings []*domain.Booking) bool {
	return CountOverlapping(start, end, bookings) > 0
}

// WithinInterval проверяет, что [start, end) целиком лежит в рабочем интервале
func WithinInterval(start, end types.TimeString, open OpenInterval) bool {
	return !start.IsBefore(open.Start) && !end.IsAfter(open.End)
}
