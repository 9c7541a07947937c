package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MachineReservations/internal/api/handlers"
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

const (
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnknownMachine = "неизвестный тип машины, ожидается harvester, scanner или scooper"
	msgDateTooFar     = "дата слишком далеко в будущем"
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

// Handle GET /api/v1/machines/{machine}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	machine := mux.Vars(r)["machine"]

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /machines/{machine}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(machine, date))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownMachineType):
			h.logger.Warn("GET /machines/{machine}/available-slots - Unknown machine: %q", machine)
			handlers.RespondBadRequest(w, msgUnknownMachine)

		case errors.Is(err, domain.ErrMalformedInput):
			h.logger.Warn("GET /machines/{machine}/available-slots - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, domain.ErrSchedulingViolation):
			h.logger.Warn("GET /machines/{machine}/available-slots - Date too far: %q", date)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgDateTooFar, err)

		default:
			h.logger.Error("GET /machines/{machine}/available-slots - Failed to get slots: machine=%s, date=%s, error=%v",
				machine, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /machines/{machine}/available-slots - Slots retrieved successfully: machine=%s, date=%s, slots_count=%d",
		machine, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
