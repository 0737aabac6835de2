package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.OperatorID != nil && *req.OperatorID == uuid.Nil {
		return fmt.Errorf("%w: operatorID must not be nil uuid", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID == uuid.Nil {
		return fmt.Errorf("%w: locationID must not be nil uuid", ErrInvalidInput)
	}

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return fmt.Errorf("%w: to is before from", ErrInvalidWindow)
	}

	return nil
}
