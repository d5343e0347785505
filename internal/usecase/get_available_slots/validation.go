package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса.
// Дата в прошлом не отвергается: чтение слотов идемпотентно и безвредно,
// строгая проверка даты выполняется только на пути записи (create_booking).
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID == "" {
		return fmt.Errorf("%w: employeeID must not be empty", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID == "" {
		return fmt.Errorf("%w: locationID must not be empty", ErrInvalidInput)
	}

	return nil
}
