package get_available_slots

import (
	"fmt"

	getSlots "github.com/bookflow/bookflow-api/internal/usecase/get_available_slots"
)

// TimeSlotResponse слот в HTTP ответе
type TimeSlotResponse struct {
	ID           string `json:"id"` // "<employeeId>-<HH:MM>"
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	IsAvailable  bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) []TimeSlotResponse {
	slots := make([]TimeSlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, TimeSlotResponse{
			ID:           fmt.Sprintf("%s-%s", s.EmployeeID, s.StartTime),
			StartTime:    s.StartTime.String(),
			EndTime:      s.EndTime.String(),
			EmployeeID:   s.EmployeeID,
			EmployeeName: s.EmployeeName,
			IsAvailable:  s.Available,
		})
	}
	return slots
}
