package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/pgerrors"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.account_id",
	"b.rule_id",
	"b.booking_date",
	"b.time_start",
	"b.time_end",
	"b.notes",
	"b.rejected",
	"b.rejected_at",
	"b.created_at",
	"b.updated_at",
	"s.name AS service_name",
	"l.name AS location_name",
	"o.title AS operator_title",
	"o.first_name AS operator_first_name",
	"o.last_name AS operator_last_name",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("availability_rules r ON r.id = b.rule_id").
		Join("services s ON s.id = r.service_id").
		Join("locations l ON l.id = r.location_id").
		Join("operators o ON o.id = r.operator_id")
}

// Create создает новое бронирование
// Уникальный индекс по (rule_id, booking_date, time_start) среди активных броней
// гарантирует, что из конкурентных запросов на один слот успешен ровно один
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"account_id",
			"rule_id",
			"booking_date",
			"time_start",
			"time_end",
			"notes",
		).
		Values(
			booking.AccountID,
			booking.RuleID,
			domain.DateOf(booking.Date),
			booking.TimeStart,
			booking.TimeEnd,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	switch {
	case err == nil:
	case pgerrors.IsUniqueViolation(err):
		return nil, fmt.Errorf("%w: Create - rule=%s date=%s start=%s",
			ErrSlotAlreadyBooked, booking.RuleID, domain.FormatDate(booking.Date), booking.TimeStart)
	case pgerrors.IsForeignKeyViolation(err):
		return nil, fmt.Errorf("%w: Create - %v", ErrRuleNotFound, err)
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка бронирования блокируется до её завершения
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectBookings().Where(squirrel.Eq{"b.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	bookings, err := r.query(ctx, executor, "GetByID", query, args)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetByAccountID получает список бронирований пользователя, сначала ближайшие по дате
// Опционально включает отклонённые
func (r *Repository) GetByAccountID(ctx context.Context, accountID uuid.UUID, includeRejected bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectBookings().
		Where(squirrel.Eq{"b.account_id": accountID}).
		OrderBy("b.booking_date DESC", "b.time_start DESC")

	if !includeRejected {
		builder = builder.Where(squirrel.Eq{"b.rejected": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAccountID - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetByAccountID", query, args)
}

// FindActive получает активные бронирования в диапазоне дат с фильтрами по правилу, услуге, оператору и локации
func (r *Repository) FindActive(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectBookings().Where(squirrel.Eq{"b.rejected": false})

	if filter.FromDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"b.booking_date": domain.DateOf(*filter.FromDate)})
	}
	if filter.ToDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"b.booking_date": domain.DateOf(*filter.ToDate)})
	}
	if filter.RuleID != nil {
		builder = builder.Where(squirrel.Eq{"b.rule_id": *filter.RuleID})
	}
	if filter.ServiceID != nil {
		builder = builder.Where(squirrel.Eq{"r.service_id": *filter.ServiceID})
	}
	if filter.OperatorID != nil {
		builder = builder.Where(squirrel.Eq{"r.operator_id": *filter.OperatorID})
	}
	if filter.LocationID != nil {
		builder = builder.Where(squirrel.Eq{"r.location_id": *filter.LocationID})
	}

	query, args, err := builder.OrderBy("b.booking_date ASC", "b.time_start ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "FindActive", query, args)
}

// Reject помечает бронирование отклонённым, освобождая слот
func (r *Repository) Reject(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("rejected", true).
		Set("rejected_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"rejected": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reject - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reject - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reject - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAlreadyRejected
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var dest []bookingRow
	if err := sqlx.StructScan(rows, &dest); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s - scan bookings: %v", ErrScanRow, op, err)
	}

	bookings := make([]*domain.Booking, 0, len(dest))
	for _, row := range dest {
		bookings = append(bookings, row.toDomain())
	}

	return bookings, nil
}
