package domain

import "github.com/bookflow/bookflow-api/pkg/types"

// TimeSlot кандидат на бронирование для одного сотрудника на одну дату.
// Никогда не сохраняется - вычисляется заново на каждый запрос.
// Идентичность слота для UI - пара (EmployeeID, StartTime).
type TimeSlot struct {
	EmployeeID   string
	EmployeeName string
	StartTime    types.TimeString
	EndTime      types.TimeString
	Available    bool
}
