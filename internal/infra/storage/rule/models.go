package rule

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ruleRow строка availability_rules вместе с отображаемыми полями справочников
type ruleRow struct {
	ID                  uuid.UUID        `db:"id"`
	ServiceID           uuid.UUID        `db:"service_id"`
	LocationID          uuid.UUID        `db:"location_id"`
	OperatorID          uuid.UUID        `db:"operator_id"`
	FromDate            time.Time        `db:"available_from_date"`
	ToDate              time.Time        `db:"available_to_date"`
	FromTime            types.TimeString `db:"available_from_time"`
	ToTime              types.TimeString `db:"available_to_time"`
	Weekday             int              `db:"available_weekday"`
	SlotDurationMinutes int              `db:"slot_duration_minutes"`
	PauseMinutes        int              `db:"pause_minutes"`
	Enabled             bool             `db:"enabled"`
	CreatedAt           time.Time        `db:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at"`

	ServiceName       string         `db:"service_name"`
	LocationName      string         `db:"location_name"`
	LocationAddress   string         `db:"location_address"`
	LocationPhone     sql.NullString `db:"location_phone"`
	OperatorTitle     sql.NullString `db:"operator_title"`
	OperatorFirstName string         `db:"operator_first_name"`
	OperatorLastName  string         `db:"operator_last_name"`
}

func (r ruleRow) toDomain() *domain.AvailabilityRule {
	op := domain.Operator{
		ID:        r.OperatorID,
		Title:     r.OperatorTitle.String,
		FirstName: r.OperatorFirstName,
		LastName:  r.OperatorLastName,
	}

	return &domain.AvailabilityRule{
		ID:                  r.ID,
		ServiceID:           r.ServiceID,
		LocationID:          r.LocationID,
		OperatorID:          r.OperatorID,
		FromDate:            domain.DateOf(r.FromDate),
		ToDate:              domain.DateOf(r.ToDate),
		FromTime:            r.FromTime,
		ToTime:              r.ToTime,
		Weekday:             r.Weekday,
		SlotDurationMinutes: r.SlotDurationMinutes,
		PauseMinutes:        r.PauseMinutes,
		Enabled:             r.Enabled,
		ServiceName:         r.ServiceName,
		LocationName:        r.LocationName,
		LocationAddress:     r.LocationAddress,
		LocationPhone:       r.LocationPhone.String,
		OperatorName:        op.DisplayName(),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
