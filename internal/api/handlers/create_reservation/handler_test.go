package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	admitReservation "github.com/m04kA/SMC-MachineReservations/internal/usecase/admit_reservation"
	"github.com/m04kA/SMC-MachineReservations/pkg/logger"
)

type fakeUseCase struct {
	got  *admitReservation.Request
	resp *admitReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *admitReservation.Request) (*admitReservation.Response, error) {
	f.got = req
	return f.resp, f.err
}

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &admitReservation.Response{
		ID:          "4b0f7c1e-0000-4000-8000-000000000001",
		Customer:    "alice",
		Machine:     domain.MachineScanner,
		Start:       start,
		End:         start.Add(3 * time.Hour),
		BasePrice:   1980,
		Discount:    495,
		Cost:        1485,
		DownPayment: 742.5,
		CreatedAt:   time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC),
	}}
	h := NewHandler(uc, logger.Nop())

	rec := doRequest(h, `{"customer":"alice","machine":"scanner","start":"2024-06-10 09:00","end":"2024-06-10 12:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, &admitReservation.Request{
		Customer: "alice", Machine: "scanner", Start: "2024-06-10 09:00", End: "2024-06-10 12:00",
	}, uc.got)

	var body ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "scanner", body.Machine)
	assert.Equal(t, "2024-06-10 09:00", body.Start)
	assert.Equal(t, "2024-06-10 12:00", body.End)
	assert.Equal(t, 1485.0, body.Cost)
	assert.Equal(t, 742.5, body.DownPayment)
	assert.Equal(t, "2024-05-21T09:00:00Z", body.CreatedAt)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"malformed", fmt.Errorf("%w: start must be before end", domain.ErrMalformedInput), http.StatusBadRequest},
		{"unknown machine", fmt.Errorf("%w: \"tractor\"", domain.ErrUnknownMachineType), http.StatusBadRequest},
		{"scheduling", fmt.Errorf("%w: closed on Sunday", domain.ErrSchedulingViolation), http.StatusConflict},
		{"capacity", fmt.Errorf("%w: harvester is taken", domain.ErrCapacityViolation), http.StatusConflict},
		{"internal", errors.New("db is down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tc.err}, logger.Nop())
			rec := doRequest(h, `{"customer":"alice","machine":"scanner","start":"2024-06-10 09:00","end":"2024-06-10 12:00"}`)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop())

	rec := doRequest(h, `{"customer":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
