package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	createBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RuleID      uuid.UUID `json:"ruleId"`
	BookingDate string    `json:"bookingDate"` // "2024-06-03"
	StartTime   string    `json:"startTime"`   // "09:50"
	Notes       *string   `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"accountId"`
	RuleID          uuid.UUID `json:"ruleId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	LocationID      uuid.UUID `json:"locationId"`
	OperatorID      uuid.UUID `json:"operatorId"`
	BookingDate     string    `json:"bookingDate"`
	TimeStart       string    `json:"timeStart"`
	TimeEnd         string    `json:"timeEnd"`
	Notes           *string   `json:"notes,omitempty"`
	ServiceName     string    `json:"serviceName"`
	LocationName    string    `json:"locationName"`
	LocationAddress string    `json:"locationAddress"`
	OperatorName    string    `json:"operatorName"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// dateError и timeError различают, какое поле не распарсилось
type dateError struct{ err error }

func (e dateError) Error() string { return fmt.Sprintf("bookingDate: %v", e.err) }

type timeError struct{ err error }

func (e timeError) Error() string { return fmt.Sprintf("startTime: %v", e.err) }

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(accountID uuid.UUID) (*createBooking.Request, error) {
	bookingDate, err := domain.ParseDate(r.BookingDate)
	if err != nil {
		return nil, dateError{err}
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, timeError{err}
	}

	return &createBooking.Request{
		AccountID: accountID,
		RuleID:    r.RuleID,
		Date:      bookingDate,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		AccountID:       resp.AccountID,
		RuleID:          resp.RuleID,
		ServiceID:       resp.ServiceID,
		LocationID:      resp.LocationID,
		OperatorID:      resp.OperatorID,
		BookingDate:     domain.FormatDate(resp.Date),
		TimeStart:       resp.TimeStart.String(),
		TimeEnd:         resp.TimeEnd.String(),
		Notes:           resp.Notes,
		ServiceName:     resp.ServiceName,
		LocationName:    resp.LocationName,
		LocationAddress: resp.LocationAddress,
		OperatorName:    resp.OperatorName,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
