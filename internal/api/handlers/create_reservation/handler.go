package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MachineReservations/internal/api/handlers"
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMalformedInput     = "некорректные данные бронирования"
	msgUnknownMachine     = "неизвестный тип машины, ожидается harvester, scanner или scooper"
	msgScheduling         = "бронирование вне рабочих часов или окна бронирования"
	msgCapacity           = "машина недоступна в выбранный интервал"
)

type Handler struct {
	useCase AdmitReservationUseCase
	logger  Logger
}

func NewHandler(useCase AdmitReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownMachineType):
			h.logger.Warn("POST /reservations - Unknown machine: machine=%q", req.Machine)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgUnknownMachine, err)

		case errors.Is(err, domain.ErrMalformedInput):
			h.logger.Warn("POST /reservations - Malformed input: customer=%q, error=%v", req.Customer, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgMalformedInput, err)

		case errors.Is(err, domain.ErrSchedulingViolation):
			h.logger.Warn("POST /reservations - Scheduling violation: customer=%q, machine=%s, error=%v",
				req.Customer, req.Machine, err)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgScheduling, err)

		case errors.Is(err, domain.ErrCapacityViolation):
			h.logger.Warn("POST /reservations - Capacity violation: customer=%q, machine=%s, error=%v",
				req.Customer, req.Machine, err)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgCapacity, err)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer=%q, machine=%s, error=%v",
				req.Customer, req.Machine, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: id=%s, machine=%s, cost=%.2f",
		result.ID, result.Machine, result.Cost)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
