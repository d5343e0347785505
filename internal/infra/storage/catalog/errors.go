package catalog

import "errors"

var (
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("service not found")
	// ErrEmployeeNotFound сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrLocationNotFound локация не найдена
	ErrLocationNotFound = errors.New("location not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("failed to execute query")
	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("failed to scan row")
)
