package list_employees

import (
	"context"

	"github.com/bookflow/bookflow-api/internal/service/catalog/models"
)

type CatalogService interface {
	ListEmployees(ctx context.Context, serviceID *string, locationID *string) ([]models.EmployeeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
