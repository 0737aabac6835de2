package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type bookingRow struct {
	ID         uuid.UUID        `db:"id"`
	AccountID  uuid.UUID        `db:"account_id"`
	RuleID     uuid.UUID        `db:"rule_id"`
	Date       time.Time        `db:"booking_date"`
	TimeStart  types.TimeString `db:"time_start"`
	TimeEnd    types.TimeString `db:"time_end"`
	Notes      sql.NullString   `db:"notes"`
	Rejected   bool             `db:"rejected"`
	RejectedAt sql.NullTime     `db:"rejected_at"`
	CreatedAt  time.Time        `db:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at"`

	ServiceName       string         `db:"service_name"`
	LocationName      string         `db:"location_name"`
	OperatorTitle     sql.NullString `db:"operator_title"`
	OperatorFirstName string         `db:"operator_first_name"`
	OperatorLastName  string         `db:"operator_last_name"`
}

func (r bookingRow) toDomain() *domain.Booking {
	op := domain.Operator{
		Title:     r.OperatorTitle.String,
		FirstName: r.OperatorFirstName,
		LastName:  r.OperatorLastName,
	}

	b := &domain.Booking{
		ID:           r.ID,
		AccountID:    r.AccountID,
		RuleID:       r.RuleID,
		Date:         domain.DateOf(r.Date),
		TimeStart:    r.TimeStart,
		TimeEnd:      r.TimeEnd,
		Rejected:     r.Rejected,
		ServiceName:  r.ServiceName,
		LocationName: r.LocationName,
		OperatorName: op.DisplayName(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Notes.Valid {
		notes := r.Notes.String
		b.Notes = &notes
	}
	if r.RejectedAt.Valid {
		at := r.RejectedAt.Time
		b.RejectedAt = &at
	}
	return b
}
