package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// CreateRuleRequest запрос на создание правила доступности
type CreateRuleRequest struct {
	ServiceID           uuid.UUID `json:"serviceId"`
	LocationID          uuid.UUID `json:"locationId"`
	OperatorID          uuid.UUID `json:"operatorId"`
	FromDate            string    `json:"availableFromDate"` // "2024-06-01"
	ToDate              string    `json:"availableToDate"`   // "2024-06-30", включительно
	FromTime            string    `json:"availableFromTime"` // "09:00"
	ToTime              string    `json:"availableToTime"`   // "12:00"
	Weekday             int       `json:"availableWeekday"`  // 0 = понедельник
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	PauseMinutes        int       `json:"pauseMinutes"`
	Enabled             *bool     `json:"enabled,omitempty"` // по умолчанию true
}

// SetRuleEnabledRequest запрос на включение или выключение правила
type SetRuleEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// CreateClosureRequest запрос на закрытие локации
type CreateClosureRequest struct {
	LocationID uuid.UUID `json:"locationId"`
	StartAt    string    `json:"startAt"` // "2024-06-03T10:00:00" или RFC 3339
	EndAt      string    `json:"endAt"`
	Reason     *string   `json:"reason,omitempty"`
}

// CreateAbsenceRequest запрос на отсутствие оператора
type CreateAbsenceRequest struct {
	OperatorID uuid.UUID `json:"operatorId"`
	StartAt    string    `json:"startAt"`
	EndAt      string    `json:"endAt"`
	Reason     *string   `json:"reason,omitempty"`
}

// ToDomainRule разбирает строковые поля запроса в доменное правило
// Инварианты правила проверяются отдельно через Validate
func (r *CreateRuleRequest) ToDomainRule() (*domain.AvailabilityRule, error) {
	fromDate, err := domain.ParseDate(r.FromDate)
	if err != nil {
		return nil, fmt.Errorf("availableFromDate: %v", err)
	}
	toDate, err := domain.ParseDate(r.ToDate)
	if err != nil {
		return nil, fmt.Errorf("availableToDate: %v", err)
	}
	fromTime, err := types.NewTimeStringFromString(r.FromTime)
	if err != nil {
		return nil, fmt.Errorf("availableFromTime: %v", err)
	}
	toTime, err := types.NewTimeStringFromString(r.ToTime)
	if err != nil {
		return nil, fmt.Errorf("availableToTime: %v", err)
	}

	return &domain.AvailabilityRule{
		ServiceID:           r.ServiceID,
		LocationID:          r.LocationID,
		OperatorID:          r.OperatorID,
		FromDate:            fromDate,
		ToDate:              toDate,
		FromTime:            fromTime,
		ToTime:              toTime,
		Weekday:             r.Weekday,
		SlotDurationMinutes: r.SlotDurationMinutes,
		PauseMinutes:        r.PauseMinutes,
		Enabled:             ptr.Deref(r.Enabled, true),
	}, nil
}

// Response модели

// RuleResponse ответ с данными правила
type RuleResponse struct {
	ID                  uuid.UUID `json:"id"`
	ServiceID           uuid.UUID `json:"serviceId"`
	LocationID          uuid.UUID `json:"locationId"`
	OperatorID          uuid.UUID `json:"operatorId"`
	FromDate            string    `json:"availableFromDate"`
	ToDate              string    `json:"availableToDate"`
	FromTime            string    `json:"availableFromTime"`
	ToTime              string    `json:"availableToTime"`
	Weekday             int       `json:"availableWeekday"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	PauseMinutes        int       `json:"pauseMinutes"`
	Enabled             bool      `json:"enabled"`

	// Денормализованные данные
	ServiceName  string `json:"serviceName"`
	LocationName string `json:"locationName"`
	OperatorName string `json:"operatorName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// IntervalResponse ответ с данными закрытия или отсутствия
type IntervalResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`    // closure | absence
	ScopeID   uuid.UUID `json:"scopeId"` // локация или оператор
	StartAt   string    `json:"startAt"`
	EndAt     string    `json:"endAt"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}

	return &RuleResponse{
		ID:                  r.ID,
		ServiceID:           r.ServiceID,
		LocationID:          r.LocationID,
		OperatorID:          r.OperatorID,
		FromDate:            domain.FormatDate(r.FromDate),
		ToDate:              domain.FormatDate(r.ToDate),
		FromTime:            r.FromTime.String(),
		ToTime:              r.ToTime.String(),
		Weekday:             r.Weekday,
		SlotDurationMinutes: r.SlotDurationMinutes,
		PauseMinutes:        r.PauseMinutes,
		Enabled:             r.Enabled,
		ServiceName:         r.ServiceName,
		LocationName:        r.LocationName,
		OperatorName:        r.OperatorName,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список правил в DTO
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		if resp := FromDomainRule(r); resp != nil {
			result = append(result, *resp)
		}
	}
	return &RuleListResponse{Rules: result}
}

// FromDomainInterval конвертирует интервал в DTO
func FromDomainInterval(c *domain.ConflictInterval) *IntervalResponse {
	if c == nil {
		return nil
	}

	return &IntervalResponse{
		ID:        c.ID,
		Kind:      string(c.Kind),
		ScopeID:   c.ScopeID,
		StartAt:   c.Start.Format(domain.DateTimeFormat),
		EndAt:     c.End.Format(domain.DateTimeFormat),
		Reason:    c.Reason,
		CreatedAt: c.CreatedAt,
	}
}
