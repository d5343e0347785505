package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или неактивен
	ErrEmployeeNotFound = errors.New("create_booking: employee not found")

	// ErrServiceNotOffered возвращается, когда сотрудник не выполняет услугу
	ErrServiceNotOffered = errors.New("create_booking: employee does not offer this service")

	// ErrDurationMismatch возвращается, когда endTime - startTime не равно
	// длительности услуги (защита от устаревшего или подмененного payload)
	ErrDurationMismatch = errors.New("create_booking: interval does not match service duration")

	// ErrDateInPast возвращается при попытке забронировать прошедшие дату или время
	ErrDateInPast = errors.New("create_booking: date or time is in the past")

	// ErrEmployeeNotWorking возвращается, когда у сотрудника выходной в указанную дату
	ErrEmployeeNotWorking = errors.New("create_booking: employee is not working on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrSlotConflict возвращается, когда слот уже занят к моменту записи
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
