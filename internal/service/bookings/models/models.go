package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// GetAccountBookingsRequest запрос на получение бронирований пользователя
type GetAccountBookingsRequest struct {
	RequesterID     uuid.UUID `json:"-"`
	AccountID       uuid.UUID `json:"accountId"`
	IncludeRejected bool      `json:"includeRejected,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	RuleID    uuid.UUID `json:"ruleId"`
	Date      string    `json:"date"`      // "2024-06-03"
	TimeStart string    `json:"timeStart"` // "09:50"
	TimeEnd   string    `json:"timeEnd"`   // "10:20"
	Notes     *string   `json:"notes,omitempty"`

	// Денормализованные данные
	ServiceName  string `json:"serviceName"`
	LocationName string `json:"locationName"`
	OperatorName string `json:"operatorName"`

	Rejected   bool    `json:"rejected"`
	RejectedAt *string `json:"rejectedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		AccountID:    b.AccountID,
		RuleID:       b.RuleID,
		Date:         domain.FormatDate(b.Date),
		TimeStart:    b.TimeStart.String(),
		TimeEnd:      b.TimeEnd.String(),
		Notes:        b.Notes,
		ServiceName:  b.ServiceName,
		LocationName: b.LocationName,
		OperatorName: b.OperatorName,
		Rejected:     b.Rejected,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.RejectedAt != nil {
		rejectedStr := b.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &rejectedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
