package get_business_rules

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/memory"
	"github.com/m04kA/SMC-MachineReservations/internal/service/rules"
	"github.com/m04kA/SMC-MachineReservations/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	store := rules.NewStore(memory.NewRulesRepository(nil), domain.DefaultBusinessRules(), nil, logger.Nop())
	h := NewHandler(store, logger.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/business-rules", h.Handle).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/business-rules/{rule}", h.HandleByName).Methods(http.MethodGet)
	return r
}

func get(r *mux.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_AllRules(t *testing.T) {
	rec := get(newRouter(t), "/api/v1/business-rules")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"name":"harvester_price","value":88000}`)
	assert.Contains(t, rec.Body.String(), `{"name":"weekday_start","value":"09:00"}`)
	assert.Contains(t, rec.Body.String(), `{"name":"week_refund","value":0.75}`)
	assert.Contains(t, rec.Body.String(), `"total":11`)
}

func TestHandleByName(t *testing.T) {
	r := newRouter(t)

	rec := get(r, "/api/v1/business-rules/number_of_scanners")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"number_of_scanners","value":3}`, rec.Body.String())

	rec = get(r, "/api/v1/business-rules/number_of_tractors")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
