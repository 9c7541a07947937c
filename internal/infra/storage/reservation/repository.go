package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MachineReservations/internal/domain"
	"github.com/m04kA/SMC-MachineReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-MachineReservations/pkg/sqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"customer",
	"machine",
	"start_time",
	"end_time",
	"cost",
	"down_payment",
	"created_at",
}

// Repository репозиторий бронирований поверх postgres или sqlite
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
	loc     *time.Location
}

// NewRepository создает новый экземпляр репозитория бронирований.
// loc - часовой пояс, в котором хранится настенное время интервалов.
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, dialect: dialect, loc: loc}
}

// Insert сохраняет бронирование
func (r *Repository) Insert(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			res.ID,
			res.Customer,
			string(res.Machine),
			formatWall(res.Interval.Start(), r.loc),
			formatWall(res.Interval.End(), r.loc),
			res.Cost,
			res.DownPayment,
			res.CreatedAt.In(r.loc).Format(createdAtLayout),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции на postgres строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.dialect.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) && r.dialect.SupportsRowLocks() {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Delete удаляет бронирование, ErrReservationNotFound если удалять нечего
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// FindOverlapping возвращает бронирования, пересекающиеся с интервалом (границы включительно).
// machine == nil - все типы машин.
func (r *Repository) FindOverlapping(ctx context.Context, interval domain.TimeInterval, machine *domain.MachineType) ([]*domain.Reservation, error) {
	return r.find(ctx, "FindOverlapping", interval, machine, nil)
}

// FindByCustomer возвращает бронирования клиента, пересекающиеся с интервалом
func (r *Repository) FindByCustomer(ctx context.Context, interval domain.TimeInterval, customer string, machine *domain.MachineType) ([]*domain.Reservation, error) {
	return r.find(ctx, "FindByCustomer", interval, machine, &customer)
}

func (r *Repository) find(ctx context.Context, op string, interval domain.TimeInterval, machine *domain.MachineType, customer *string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// a.start <= b.end && a.end >= b.start
	builder := r.dialect.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.LtOrEq{"start_time": formatWall(interval.End(), r.loc)}).
		Where(squirrel.GtOrEq{"end_time": formatWall(interval.Start(), r.loc)})

	if machine != nil {
		builder = builder.Where(squirrel.Eq{"machine": string(*machine)})
	}
	if customer != nil {
		builder = builder.Where(squirrel.Eq{"customer": *customer})
	}

	query, args, err := builder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		result = append(result, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}

// LockAdmission берёт транзакционную advisory-блокировку на ключ группы машин.
// Блокировка отпускается при commit/rollback. Вне транзакции и на sqlite ничего не делает:
// там допуск сериализуется блокировкой в процессе.
func (r *Repository) LockAdmission(ctx context.Context, key string) error {
	if !r.dialect.SupportsAdvisoryLocks() || !dbmetrics.IsInTransaction(ctx) {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: LockAdmission - key %q: %v", ErrLock, key, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res        domain.Reservation
		machine    string
		start, end time.Time
	)

	err := row.Scan(
		&res.ID,
		&res.Customer,
		&machine,
		wallTime{loc: r.loc, t: &start},
		wallTime{loc: r.loc, t: &end},
		&res.Cost,
		&res.DownPayment,
		wallTime{loc: r.loc, t: &res.CreatedAt},
	)
	if err != nil {
		return nil, err
	}

	res.Machine = domain.MachineType(machine)
	res.Interval, err = domain.NewTimeInterval(start, end)
	if err != nil {
		return nil, err
	}

	return &res, nil
}
