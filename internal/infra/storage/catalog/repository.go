package catalog

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
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository справочники услуг, локаций и операторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type locationRow struct {
	ID      uuid.UUID      `db:"id"`
	Name    string         `db:"name"`
	Address string         `db:"address"`
	Phone   sql.NullString `db:"phone"`
}

type operatorRow struct {
	ID        uuid.UUID      `db:"id"`
	Title     sql.NullString `db:"title"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
}

func (r locationRow) toDomain() *domain.Location {
	return &domain.Location{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone.String,
	}
}

func (r operatorRow) toDomain() *domain.Operator {
	return &domain.Operator{
		ID:        r.ID,
		Title:     r.Title.String,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// selectLocations локации услуги без повторов, по включённым правилам
func selectLocations(serviceID uuid.UUID, operatorID *uuid.UUID) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("DISTINCT l.id", "l.name", "l.address", "l.phone").
		From("locations l").
		Join("availability_rules r ON r.location_id = l.id").
		Where(squirrel.Eq{"r.service_id": serviceID, "r.enabled": true})
	if operatorID != nil {
		builder = builder.Where(squirrel.Eq{"r.operator_id": *operatorID})
	}
	return builder.OrderBy("l.name ASC", "l.id ASC")
}

// selectOperators операторы услуги без повторов, по включённым правилам
func selectOperators(serviceID uuid.UUID, locationID *uuid.UUID) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("DISTINCT o.id", "o.title", "o.first_name", "o.last_name").
		From("operators o").
		Join("availability_rules r ON r.operator_id = o.id").
		Where(squirrel.Eq{"r.service_id": serviceID, "r.enabled": true})
	if locationID != nil {
		builder = builder.Where(squirrel.Eq{"r.location_id": *locationID})
	}
	return builder.OrderBy("o.last_name ASC", "o.first_name ASC", "o.id ASC")
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &service.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// ListLocationsForService локации, где услуга доступна по включённым правилам
// operatorID сужает список до локаций конкретного оператора
func (r *Repository) ListLocationsForService(ctx context.Context, serviceID uuid.UUID, operatorID *uuid.UUID) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectLocations(serviceID, operatorID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocationsForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocationsForService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var dest []locationRow
	if err := sqlx.StructScan(rows, &dest); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: ListLocationsForService - scan locations: %v", ErrScanRow, err)
	}

	locations := make([]*domain.Location, 0, len(dest))
	for _, row := range dest {
		locations = append(locations, row.toDomain())
	}

	return locations, nil
}

// ListOperatorsForService операторы, оказывающие услугу по включённым правилам
// locationID сужает список до операторов конкретной локации
func (r *Repository) ListOperatorsForService(ctx context.Context, serviceID uuid.UUID, locationID *uuid.UUID) ([]*domain.Operator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectOperators(serviceID, locationID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatorsForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatorsForService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var dest []operatorRow
	if err := sqlx.StructScan(rows, &dest); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: ListOperatorsForService - scan operators: %v", ErrScanRow, err)
	}

	operators := make([]*domain.Operator, 0, len(dest))
	for _, row := range dest {
		operators = append(operators, row.toDomain())
	}

	return operators, nil
}
