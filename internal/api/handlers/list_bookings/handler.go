package list_bookings

import (
	"net/http"
	"net/mail"

	"github.com/bookflow/bookflow-api/internal/api/handlers"
)

const (
	msgMissingEmail = "query parameter 'customerEmail' is required"
	msgInvalidEmail = "invalid 'customerEmail' format"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?customerEmail=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("customerEmail")
	if email == "" {
		h.logger.Warn("GET /bookings - Missing customerEmail parameter")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	if _, err := mail.ParseAddress(email); err != nil {
		h.logger.Warn("GET /bookings - Invalid customerEmail %q: %v", email, err)
		handlers.RespondBadRequest(w, msgInvalidEmail)
		return
	}

	result, err := h.service.ListByCustomerEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: customer=%s, error=%v", email, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Returned %d bookings for customer=%s", len(result.Bookings), email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
