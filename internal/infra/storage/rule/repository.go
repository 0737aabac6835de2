package rule

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

var ruleColumns = []string{
	"r.id",
	"r.service_id",
	"r.location_id",
	"r.operator_id",
	"r.available_from_date",
	"r.available_to_date",
	"r.available_from_time",
	"r.available_to_time",
	"r.available_weekday",
	"r.slot_duration_minutes",
	"r.pause_minutes",
	"r.enabled",
	"r.created_at",
	"r.updated_at",
	"s.name AS service_name",
	"l.name AS location_name",
	"l.address AS location_address",
	"l.phone AS location_phone",
	"o.title AS operator_title",
	"o.first_name AS operator_first_name",
	"o.last_name AS operator_last_name",
}

// Repository репозиторий правил доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectRules() squirrel.SelectBuilder {
	return psqlbuilder.Select(ruleColumns...).
		From("availability_rules r").
		Join("services s ON s.id = r.service_id").
		Join("locations l ON l.id = r.location_id").
		Join("operators o ON o.id = r.operator_id")
}

// FindEnabled возвращает включённые правила, чей диапазон дат пересекается с [FromDate, ToDate]
// Порядок стабильный: по времени создания, затем по id
func (r *Repository) FindEnabled(ctx context.Context, filter domain.RuleFilter) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectRules().Where(squirrel.Eq{"r.enabled": true})

	if filter.ServiceID != nil {
		builder = builder.Where(squirrel.Eq{"r.service_id": *filter.ServiceID})
	}
	if filter.OperatorID != nil {
		builder = builder.Where(squirrel.Eq{"r.operator_id": *filter.OperatorID})
	}
	if filter.LocationID != nil {
		builder = builder.Where(squirrel.Eq{"r.location_id": *filter.LocationID})
	}
	if filter.RuleID != nil {
		builder = builder.Where(squirrel.Eq{"r.id": *filter.RuleID})
	}
	if filter.FromDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"r.available_to_date": domain.DateOf(*filter.FromDate)})
	}
	if filter.ToDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"r.available_from_date": domain.DateOf(*filter.ToDate)})
	}

	query, args, err := builder.OrderBy("r.created_at ASC", "r.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindEnabled - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "FindEnabled", query, args)
}

// ListByService возвращает все правила услуги, включая выключенные
func (r *Repository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRules().
		Where(squirrel.Eq{"r.service_id": serviceID}).
		OrderBy("r.available_weekday ASC", "r.available_from_time ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByService", query, args)
}

// GetByID получает правило по ID
// Внутри транзакции строка правила блокируется до её завершения
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectRules().Where(squirrel.Eq{"r.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rules, err := r.query(ctx, executor, "GetByID", query, args)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrRuleNotFound
	}

	return rules[0], nil
}

// Create сохраняет новое правило и возвращает его вместе с отображаемыми полями
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"service_id",
			"location_id",
			"operator_id",
			"available_from_date",
			"available_to_date",
			"available_from_time",
			"available_to_time",
			"available_weekday",
			"slot_duration_minutes",
			"pause_minutes",
			"enabled",
		).
		Values(
			rule.ServiceID,
			rule.LocationID,
			rule.OperatorID,
			domain.DateOf(rule.FromDate),
			domain.DateOf(rule.ToDate),
			rule.FromTime,
			rule.ToTime,
			rule.Weekday,
			rule.SlotDurationMinutes,
			rule.PauseMinutes,
			rule.Enabled,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id uuid.UUID
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrReferenceNotFound, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, id)
}

// SetEnabled включает или выключает правило
func (r *Repository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_rules").
		Set("enabled", enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetEnabled - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetEnabled - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetEnabled - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.AvailabilityRule, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var dest []ruleRow
	if err := sqlx.StructScan(rows, &dest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*domain.AvailabilityRule{}, nil
		}
		return nil, fmt.Errorf("%w: %s - scan rules: %v", ErrScanRow, op, err)
	}

	rules := make([]*domain.AvailabilityRule, 0, len(dest))
	for _, row := range dest {
		rules = append(rules, row.toDomain())
	}

	return rules, nil
}
