package list_employees

import (
	"net/http"

	"github.com/bookflow/bookflow-api/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees?serviceId=...&locationId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	employees, err := h.service.ListEmployees(r.Context(),
		optionalParam(query.Get("serviceId")),
		optionalParam(query.Get("locationId")),
	)
	if err != nil {
		h.logger.Error("GET /employees - Failed to list employees: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /employees - Returned %d employees", len(employees))
	handlers.RespondJSON(w, http.StatusOK, employees)
}

// optionalParam возвращает nil для пустого query-параметра
func optionalParam(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
