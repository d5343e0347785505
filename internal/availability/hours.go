package availability

import (
	"time"

	"github.com/bookflow/bookflow-api/internal/domain"
	"github.com/bookflow/bookflow-api/pkg/types"
)

// OpenInterval рабочий интервал сотрудника на конкретную дату
type OpenInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// ResolveOpenInterval возвращает рабочий интервал сотрудника на дату
// по его недельному расписанию. Второе значение false означает выходной.
//
// Некорректная запись расписания (end <= start) трактуется как выходной,
// а не как ошибка: это защита от плохих данных, а не пользовательская ошибка.
func ResolveOpenInterval(tpl domain.WeeklyTemplate, date time.Time) (OpenInterval, bool) {
	day := tpl.Day(date.Weekday())
	if day == nil {
		return OpenInterval{}, false
	}

	if day.Start.Validate() != nil || day.End.Validate() != nil {
		return OpenInterval{}, false
	}

	if !day.Start.IsBefore(day.End) {
		return OpenInterval{}, false
	}

	return OpenInterval{Start: day.Start, End: day.End}, true
}
