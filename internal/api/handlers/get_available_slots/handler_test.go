package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MachineReservations/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MachineReservations/pkg/logger"
	"github.com/m04kA/SMC-MachineReservations/pkg/types"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/machines/{machine}/available-slots", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:    day,
		Machine: domain.MachineScanner,
		IsOpen:  true,
		OpenAt:  types.MustTimeString("09:00"),
		CloseAt: types.MustTimeString("18:00"),
		Slots: []getAvailableSlots.Slot{{
			Start:          day.Add(9 * time.Hour),
			End:            day.Add(10 * time.Hour),
			AvailableSpots: 2,
			TotalSpots:     3,
		}},
	}}

	rec := serve(NewHandler(uc, logger.Nop()), "/api/v1/machines/scanner/available-slots?date=2024-06-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &getAvailableSlots.Request{Machine: "scanner", Date: "2024-06-10"}, uc.got)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsOpen)
	require.NotNil(t, body.OpenAt)
	assert.Equal(t, "09:00", *body.OpenAt)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, SlotResponse{Start: "2024-06-10 09:00", End: "2024-06-10 10:00", AvailableSpots: 2, TotalSpots: 3}, body.Slots[0])
}

func TestHandle_Closed(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:    time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		Machine: domain.MachineScooper,
		Slots:   []getAvailableSlots.Slot{},
	}}

	rec := serve(NewHandler(uc, logger.Nop()), "/api/v1/machines/scooper/available-slots?date=2024-06-16")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-06-16","machine":"scooper","isOpen":false,"slots":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"missing date", "/api/v1/machines/scanner/available-slots", nil, http.StatusBadRequest},
		{"unknown machine", "/api/v1/machines/tractor/available-slots?date=2024-06-10",
			fmt.Errorf("%w: \"tractor\"", domain.ErrUnknownMachineType), http.StatusBadRequest},
		{"invalid date", "/api/v1/machines/scanner/available-slots?date=10.06.2024",
			fmt.Errorf("%w: date", domain.ErrMalformedInput), http.StatusBadRequest},
		{"too far", "/api/v1/machines/scanner/available-slots?date=2025-01-01",
			fmt.Errorf("%w: too far", domain.ErrSchedulingViolation), http.StatusConflict},
		{"internal", "/api/v1/machines/scanner/available-slots?date=2024-06-10",
			errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tc.err}, logger.Nop()), tc.path)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
