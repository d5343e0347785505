package list_locations

import (
	"context"

	"github.com/bookflow/bookflow-api/internal/service/catalog/models"
)

type CatalogService interface {
	ListLocations(ctx context.Context) ([]models.LocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
