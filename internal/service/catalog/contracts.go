package catalog

import (
	"context"

	"github.com/bookflow/bookflow-api/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
	ListEligibleEmployees(ctx context.Context, serviceID string, locationID *string) ([]*domain.Employee, error)
	ListLocations(ctx context.Context) ([]*domain.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
