package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MachineReservations/internal/api/handlers"
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/service/reservations/models"
)

const (
	msgMissingPeriod  = "параметры start и end обязательны"
	msgInvalidPeriod  = "некорректный период, ожидается YYYY-MM-DD HH:MM"
	msgUnknownMachine = "неизвестный тип машины, ожидается harvester, scanner или scooper"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?start=...&end=...[&machine=...][&customer=...]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start := query.Get("start")
	end := query.Get("end")
	machine := query.Get("machine")
	customer := query.Get("customer")

	if start == "" || end == "" {
		h.logger.Warn("GET /reservations - Missing period: start=%q, end=%q", start, end)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	var (
		list *models.ReservationListResponse
		err  error
	)

	// Выбираем запрос по набору фильтров
	switch {
	case machine != "" && customer != "":
		list, err = h.service.ListByMachineAndCustomer(r.Context(), start, end, machine, customer)
	case machine != "":
		list, err = h.service.ListByMachine(r.Context(), start, end, machine)
	case customer != "":
		list, err = h.service.ListByCustomer(r.Context(), start, end, customer)
	default:
		list, err = h.service.ListByDate(r.Context(), start, end)
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownMachineType):
			h.logger.Warn("GET /reservations - Unknown machine: machine=%q", machine)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgUnknownMachine, err)

		case errors.Is(err, domain.ErrMalformedInput):
			h.logger.Warn("GET /reservations - Invalid period: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidPeriod, err)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: start=%q, end=%q, error=%v", start, end, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: total=%d", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
