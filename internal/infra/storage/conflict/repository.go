package conflict

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/pgerrors"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository хранит интервалы одного вида: закрытия локаций или отсутствия операторов
// Таблицы устроены одинаково и отличаются только колонкой области действия
type Repository struct {
	db          DBExecutor
	kind        domain.ConflictKind
	table       string
	scopeColumn string
}

// NewClosureRepository репозиторий закрытий локаций
func NewClosureRepository(db DBExecutor) *Repository {
	return &Repository{db: db, kind: domain.ConflictClosure, table: "closures", scopeColumn: "location_id"}
}

// NewAbsenceRepository репозиторий отсутствий операторов
func NewAbsenceRepository(db DBExecutor) *Repository {
	return &Repository{db: db, kind: domain.ConflictAbsence, table: "absences", scopeColumn: "operator_id"}
}

type intervalRow struct {
	ID        uuid.UUID      `db:"id"`
	ScopeID   uuid.UUID      `db:"scope_id"`
	StartAt   time.Time      `db:"start_at"`
	EndAt     time.Time      `db:"end_at"`
	Reason    sql.NullString `db:"reason"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r intervalRow) toDomain(kind domain.ConflictKind) *domain.ConflictInterval {
	c := &domain.ConflictInterval{
		ID:        r.ID,
		Kind:      kind,
		ScopeID:   r.ScopeID,
		Start:     r.StartAt.UTC(),
		End:       r.EndAt.UTC(),
		CreatedAt: r.CreatedAt,
	}
	if r.Reason.Valid {
		reason := r.Reason.String
		c.Reason = &reason
	}
	return c
}

// FindOverlapping возвращает интервалы, пересекающие окно
// Незаданная граница окна не ограничивает выборку, scopeID сужает её до одной локации или оператора
func (r *Repository) FindOverlapping(ctx context.Context, window domain.Window, scopeID *uuid.UUID) ([]*domain.ConflictInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id",
		r.scopeColumn+" AS scope_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
	).From(r.table)

	if window.From != nil {
		builder = builder.Where(squirrel.Gt{"end_at": *window.From})
	}
	if window.To != nil {
		builder = builder.Where(squirrel.Lt{"start_at": *window.To})
	}
	if scopeID != nil {
		builder = builder.Where(squirrel.Eq{r.scopeColumn: *scopeID})
	}

	query, args, err := builder.OrderBy("start_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var dest []intervalRow
	if err := sqlx.StructScan(rows, &dest); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: FindOverlapping - scan %s: %v", ErrScanRow, r.table, err)
	}

	intervals := make([]*domain.ConflictInterval, 0, len(dest))
	for _, row := range dest {
		intervals = append(intervals, row.toDomain(r.kind))
	}

	return intervals, nil
}

// Create сохраняет интервал и заполняет ID и CreatedAt
func (r *Repository) Create(ctx context.Context, interval *domain.ConflictInterval) (*domain.ConflictInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(r.table).
		Columns(r.scopeColumn, "start_at", "end_at", "reason").
		Values(interval.ScopeID, interval.Start.UTC(), interval.End.UTC(), interval.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&interval.ID, &interval.CreatedAt)
	switch {
	case err == nil:
	case pgerrors.IsForeignKeyViolation(err):
		return nil, fmt.Errorf("%w: Create - %s: %v", ErrScopeNotFound, r.scopeColumn, err)
	case pgerrors.IsCheckViolation(err):
		return nil, fmt.Errorf("%w: Create - %v", ErrInvalidInterval, err)
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	interval.Kind = r.kind
	return interval, nil
}
