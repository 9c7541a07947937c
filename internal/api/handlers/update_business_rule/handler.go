package update_business_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MachineReservations/internal/api/handlers"
	"github.com/m04kA/SMC-MachineReservations/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidValue       = "некорректное значение правила"
	msgUnknownRule        = "неизвестное бизнес-правило"
)

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

// Handle POST /api/v1/business-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /business-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	raw, err := req.RawValue()
	if err != nil {
		h.logger.Warn("POST /business-rules - Invalid value for %q: %v", req.Rule, err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidValue, err)
		return
	}

	rule, err := h.service.Set(r.Context(), req.Rule, raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRule):
			h.logger.Warn("POST /business-rules - Unknown rule: %q", req.Rule)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgUnknownRule, err)

		case errors.Is(err, domain.ErrMalformedInput):
			h.logger.Warn("POST /business-rules - Rejected value %s=%q: %v", req.Rule, raw, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidValue, err)

		default:
			h.logger.Error("POST /business-rules - Failed to update rule %q: %v", req.Rule, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /business-rules - Rule updated successfully: %s=%s", rule.Name, rule.Value)
	handlers.RespondJSON(w, http.StatusOK, FromRule(rule))
}
