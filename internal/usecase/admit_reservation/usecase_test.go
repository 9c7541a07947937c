package admit_reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/memory"
	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-MachineReservations/internal/infra/storage/schema"
	"github.com/m04kA/SMC-MachineReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-MachineReservations/pkg/keymutex"
	"github.com/m04kA/SMC-MachineReservations/pkg/logger"
	"github.com/m04kA/SMC-MachineReservations/pkg/metrics"
	"github.com/m04kA/SMC-MachineReservations/pkg/sqlbuilder"
	"github.com/m04kA/SMC-MachineReservations/pkg/txmanager"
)

// вторник, 21 мая 2024
var testNow = time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("res-%d", g.n)
}

type staticRules struct{ rules domain.BusinessRules }

func (s staticRules) Snapshot() domain.BusinessRules { return s.rules }

func newUseCase(repo ReservationRepository, tx TransactionManager, rules domain.BusinessRules, m MetricsCollector) *UseCase {
	uc := NewUseCase(repo, staticRules{rules}, tx, keymutex.New(), m, time.UTC, logger.Nop())
	uc.timeProvider = fixedClock{now: testNow}
	uc.idGenerator = &seqIDs{}
	return uc
}

func request(machine, start, end string) *Request {
	return &Request{Customer: "Alice", Machine: machine, Start: start, End: end}
}

func TestExecute_EarlyBirdScanner(t *testing.T) {
	repo := memory.NewReservationRepository()
	uc := newUseCase(repo, memory.TxManager{}, domain.DefaultBusinessRules(), nil)

	resp, err := uc.Execute(context.Background(), request("scanner", "2024-06-10 09:00", "2024-06-10 11:00"))
	require.NoError(t, err)

	assert.Equal(t, "res-1", resp.ID)
	assert.Equal(t, domain.MachineScanner, resp.Machine)
	assert.Equal(t, 1980.0, resp.BasePrice)
	assert.Equal(t, 495.0, resp.Discount)
	assert.Equal(t, 1485.0, resp.Cost)
	assert.Equal(t, 742.5, resp.DownPayment)
	assert.Equal(t, testNow, resp.CreatedAt)

	stored, err := repo.GetByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, 742.5, stored.DownPayment)
}

func TestExecute_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"nil request", nil, domain.ErrMalformedInput},
		{"empty customer", &Request{Machine: "scanner", Start: "2024-06-10 09:00", End: "2024-06-10 11:00"}, domain.ErrMalformedInput},
		{"unknown machine", request("tractor", "2024-06-10 09:00", "2024-06-10 11:00"), domain.ErrUnknownMachineType},
		{"malformed start", request("scanner", "10/06/2024 09:00", "2024-06-10 11:00"), domain.ErrMalformedInput},
		{"start after end", request("scanner", "2024-06-10 11:00", "2024-06-10 09:00"), domain.ErrMalformedInput},
		{"harvester on sunday", request("harvester", "2024-06-16 10:00", "2024-06-16 12:00"), domain.ErrSchedulingViolation},
		{"outside weekday hours", request("scooper", "2024-06-10 17:00", "2024-06-10 19:00"), domain.ErrSchedulingViolation},
		{"too far ahead", request("scooper", "2024-06-25 10:00", "2024-06-25 12:00"), domain.ErrSchedulingViolation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := memory.NewReservationRepository()
			uc := newUseCase(repo, memory.TxManager{}, domain.DefaultBusinessRules(), nil)

			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, repo.Len())
		})
	}
}

func TestExecute_ScannerAndHarvesterExcludeEachOther(t *testing.T) {
	ctx := context.Background()

	repo := memory.NewReservationRepository()
	uc := newUseCase(repo, memory.TxManager{}, domain.DefaultBusinessRules(), nil)

	_, err := uc.Execute(ctx, request("harvester", "2024-06-10 09:00", "2024-06-10 11:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request("scanner", "2024-06-10 10:00", "2024-06-10 12:00"))
	assert.ErrorIs(t, err, domain.ErrCapacityViolation)

	// касание границ тоже пересечение
	_, err = uc.Execute(ctx, request("scanner", "2024-06-10 11:00", "2024-06-10 12:00"))
	assert.ErrorIs(t, err, domain.ErrCapacityViolation)

	_, err = uc.Execute(ctx, request("scanner", "2024-06-10 11:01", "2024-06-10 12:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request("harvester", "2024-06-10 11:30", "2024-06-10 13:00"))
	assert.ErrorIs(t, err, domain.ErrCapacityViolation)

	_, err = uc.Execute(ctx, request("scooper", "2024-06-10 09:00", "2024-06-10 12:00"))
	require.NoError(t, err)

	assert.Equal(t, 3, repo.Len())
}

func TestExecute_RejectsScannerBeyondCapacity(t *testing.T) {
	for _, maxScanners := range []int{1, 3, 5} {
		t.Run(fmt.Sprintf("max=%d", maxScanners), func(t *testing.T) {
			rules := domain.DefaultBusinessRules()
			rules.MaxScanners = maxScanners

			repo := memory.NewReservationRepository()
			uc := newUseCase(repo, memory.TxManager{}, rules, nil)

			for i := 0; i < maxScanners; i++ {
				_, err := uc.Execute(context.Background(), request("scanner", "2024-06-10 09:00", "2024-06-10 11:00"))
				require.NoError(t, err)
			}

			_, err := uc.Execute(context.Background(), request("scanner", "2024-06-10 10:00", "2024-06-10 10:30"))
			assert.ErrorIs(t, err, domain.ErrCapacityViolation)
			assert.Equal(t, maxScanners, repo.Len())
		})
	}
}

// slowRepository расширяет окно между чтением и вставкой
type slowRepository struct {
	*memory.ReservationRepository
}

func (r slowRepository) FindOverlapping(ctx context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error) {
	list, err := r.ReservationRepository.FindOverlapping(ctx, interval, machine)
	time.Sleep(20 * time.Millisecond)
	return list, err
}

func runConcurrentAdmissions(t *testing.T, uc *UseCase, n int) (admitted, rejected int) {
	t.Helper()

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make(chan error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := uc.Execute(context.Background(), request("scanner", "2024-06-10 09:00", "2024-06-10 11:00"))
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, domain.ErrCapacityViolation):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	return admitted, rejected
}

func TestExecute_ConcurrentLastSlot(t *testing.T) {
	repo := memory.NewReservationRepository()
	uc := newUseCase(slowRepository{repo}, memory.TxManager{}, domain.DefaultBusinessRules(), nil)

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(context.Background(), request("scanner", "2024-06-10 09:00", "2024-06-10 11:00"))
		require.NoError(t, err)
	}

	admitted, rejected := runConcurrentAdmissions(t, uc, 2)
	assert.Equal(t, 1, admitted)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 3, repo.Len())
}

func TestExecute_ConcurrentLastSlotSQLite(t *testing.T) {
	ctx := context.Background()

	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	defer raw.Close()
	require.NoError(t, schema.Apply(ctx, raw, sqlbuilder.SQLite))

	db := dbmetrics.Wrap(raw, nil)
	repo := reservation.NewRepository(db, sqlbuilder.SQLite, time.UTC)
	tm := txmanager.NewTransactionManager(db, txmanager.WithoutIsolationLevels())
	uc := newUseCase(repo, tm, domain.DefaultBusinessRules(), nil)

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(ctx, request("scanner", "2024-06-10 09:00", "2024-06-10 11:00"))
		require.NoError(t, err)
	}

	admitted, rejected := runConcurrentAdmissions(t, uc, 4)
	assert.Equal(t, 1, admitted)
	assert.Equal(t, 3, rejected)

	found, err := repo.FindOverlapping(ctx, domain.MustParseTimeInterval("2024-06-10 09:00", "2024-06-10 11:00"), nil)
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

// otherInstanceRepository имитирует второй экземпляр сервиса: пока допуск ждёт
// блокировку группы, другой процесс вставляет и фиксирует бронирование
type otherInstanceRepository struct {
	*memory.ReservationRepository
	events *[]string
}

func (r otherInstanceRepository) LockAdmission(ctx context.Context, key string) error {
	*r.events = append(*r.events, "lock:"+key)

	interval := domain.MustParseTimeInterval("2024-06-10 10:00", "2024-06-10 12:00")
	res, err := domain.NewReservation("other-instance", "Bob", domain.MachineScanner, interval, 1980, testNow)
	if err != nil {
		return err
	}
	return r.ReservationRepository.Insert(ctx, res)
}

func (r otherInstanceRepository) FindOverlapping(ctx context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error) {
	*r.events = append(*r.events, "find")
	return r.ReservationRepository.FindOverlapping(ctx, interval, machine)
}

type recordingTxManager struct {
	events *[]string
}

func (m recordingTxManager) DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error {
	*m.events = append(*m.events, "begin:read_committed")
	return fn(ctx)
}

func TestExecute_SeesReservationCommittedWhileWaitingForLock(t *testing.T) {
	repo := memory.NewReservationRepository()
	events := make([]string, 0)
	uc := newUseCase(repo, memory.TxManager{}, domain.DefaultBusinessRules(), nil)

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(context.Background(), request("scanner", "2024-06-10 09:00", "2024-06-10 11:00"))
		require.NoError(t, err)
	}

	uc = newUseCase(otherInstanceRepository{repo, &events}, recordingTxManager{&events}, domain.DefaultBusinessRules(), nil)

	_, err := uc.Execute(context.Background(), request("scanner", "2024-06-10 09:00", "2024-06-10 11:00"))
	assert.ErrorIs(t, err, domain.ErrCapacityViolation)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"begin:read_committed", "lock:" + domain.MachineScanner.AdmissionGroup(), "find"}, events)
	assert.Equal(t, 3, repo.Len())
}

type failingRepository struct {
	*memory.ReservationRepository
}

func (failingRepository) Insert(context.Context, *domain.Reservation) error {
	return errors.New("connection reset by peer")
}

func TestExecute_StorageErrorIsInternal(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	uc := newUseCase(failingRepository{memory.NewReservationRepository()}, memory.TxManager{}, domain.DefaultBusinessRules(), m)

	_, err := uc.Execute(context.Background(), request("scooper", "2024-06-10 09:00", "2024-06-10 11:00"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationAdmissions.WithLabelValues("scooper", outcomeError)))
}

func TestExecute_Metrics(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	uc := newUseCase(memory.NewReservationRepository(), memory.TxManager{}, domain.DefaultBusinessRules(), m)
	ctx := context.Background()

	_, _ = uc.Execute(ctx, request("harvester", "2024-06-10 09:00", "2024-06-10 11:00"))
	_, _ = uc.Execute(ctx, request("harvester", "2024-06-10 10:00", "2024-06-10 11:00"))
	_, _ = uc.Execute(ctx, request("harvester", "2024-06-16 10:00", "2024-06-16 11:00"))
	_, _ = uc.Execute(ctx, request("tractor", "2024-06-10 09:00", "2024-06-10 11:00"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationAdmissions.WithLabelValues("harvester", outcomeAdmitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationAdmissions.WithLabelValues("harvester", outcomeRejectedCapacity)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationAdmissions.WithLabelValues("harvester", outcomeRejectedSchedule)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationAdmissions.WithLabelValues("unknown", outcomeRejectedInput)))
}
