package get_business_rules

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MachineReservations/internal/api/handlers"
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

const msgUnknownRule = "неизвестное бизнес-правило"

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/business-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rules := h.service.All()

	h.logger.Info("GET /business-rules - Rules retrieved successfully: total=%d", len(rules))
	handlers.RespondJSON(w, http.StatusOK, FromRules(rules))
}

// HandleByName GET /api/v1/business-rules/{rule}
func (h *Handler) HandleByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["rule"]

	rule, err := h.service.Get(name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRule):
			h.logger.Warn("GET /business-rules/{rule} - Unknown rule: %q", name)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgUnknownRule, err)

		default:
			h.logger.Error("GET /business-rules/{rule} - Failed to get rule %q: %v", name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromRule(rule))
}
