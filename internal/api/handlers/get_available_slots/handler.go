package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/bookflow/bookflow-api/internal/api/handlers"
	"github.com/bookflow/bookflow-api/internal/domain"
	getSlots "github.com/bookflow/bookflow-api/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "query parameter 'date' is required, expected YYYY-MM-DD"
	msgInvalidDate      = "invalid 'date' format, expected YYYY-MM-DD"
	msgMissingServiceID = "query parameter 'serviceId' is required"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD&serviceId=...&employeeId=...&locationId=...&onlyAvailable=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Обязательные параметры: date и serviceId
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID := query.Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /slots - Missing serviceId parameter")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	req := &getSlots.Request{
		Date:          date,
		ServiceID:     serviceID,
		EmployeeID:    optionalParam(query.Get("employeeId")),
		LocationID:    optionalParam(query.Get("locationId")),
		OnlyAvailable: query.Get("onlyAvailable") == "true",
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /slots - Failed to get slots: service_id=%s, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Returned %d slots: service_id=%s, date=%s",
		len(result.Slots), serviceID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// optionalParam возвращает nil для пустого query-параметра
func optionalParam(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
