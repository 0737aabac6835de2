package get_available_slots

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID  uuid.UUID       `json:"serviceId"`
	From       string          `json:"from"` // фактическое окно после ограничений
	To         string          `json:"to"`
	DateList   []string        `json:"dateList"`
	PageDate   *string         `json:"pageDate"`
	Slots      []AvailableSlot `json:"slots"`
	Operators  []OperatorItem  `json:"operators"`
	Locations  []LocationItem  `json:"locations"`
	PrevCursor *string         `json:"prevCursor"`
	NextCursor *string         `json:"nextCursor"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	RuleID          uuid.UUID `json:"ruleId"`
	Date            string    `json:"date"`
	TimeStart       string    `json:"timeStart"`
	TimeEnd         string    `json:"timeEnd"`
	ServiceName     string    `json:"serviceName"`
	LocationID      uuid.UUID `json:"locationId"`
	LocationName    string    `json:"locationName"`
	LocationAddress string    `json:"locationAddress"`
	LocationPhone   string    `json:"locationPhone,omitempty"`
	OperatorID      uuid.UUID `json:"operatorId"`
	OperatorName    string    `json:"operatorName"`
}

// OperatorItem оператор для фильтра
type OperatorItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// LocationItem локация для фильтра
type LocationItem struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Phone   string    `json:"phone,omitempty"`
}

// ToUseCaseRequest создает запрос use case из path и query параметров
// Моменты from/to без зоны считаются настенным временем loc, с зоной переводятся в loc
func ToUseCaseRequest(serviceID uuid.UUID, q url.Values, loc *time.Location) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{ServiceID: serviceID}

	var err error
	if req.OperatorID, err = parseOptionalUUID(q.Get("operatorId")); err != nil {
		return nil, fmt.Errorf("operatorId: %w", err)
	}
	if req.LocationID, err = parseOptionalUUID(q.Get("locationId")); err != nil {
		return nil, fmt.Errorf("locationId: %w", err)
	}

	if s := q.Get("from"); s != "" {
		from, err := domain.ParseDateTime(s, loc)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}
	if s := q.Get("to"); s != "" {
		to, err := domain.ParseDateTime(s, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		req.To = &to
	}
	if s := q.Get("pageDate"); s != "" {
		pageDate, err := domain.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("pageDate: %w", err)
		}
		req.PageDate = &pageDate
	}

	return req, nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = AvailableSlot{
			RuleID:          s.RuleID,
			Date:            s.DateKey(),
			TimeStart:       s.TimeStart.String(),
			TimeEnd:         s.TimeEnd.String(),
			ServiceName:     s.ServiceName,
			LocationID:      s.LocationID,
			LocationName:    s.LocationName,
			LocationAddress: s.LocationAddress,
			LocationPhone:   s.LocationPhone,
			OperatorID:      s.OperatorID,
			OperatorName:    s.OperatorName,
		}
	}

	operators := make([]OperatorItem, 0, len(resp.Operators))
	for _, o := range resp.Operators {
		operators = append(operators, OperatorItem{
			ID:        o.ID,
			Name:      o.DisplayName(),
			Title:     o.Title,
			FirstName: o.FirstName,
			LastName:  o.LastName,
		})
	}

	locations := make([]LocationItem, 0, len(resp.Locations))
	for _, l := range resp.Locations {
		locations = append(locations, LocationItem{
			ID:      l.ID,
			Name:    l.Name,
			Address: l.Address,
			Phone:   l.Phone,
		})
	}

	dateList := resp.DateList
	if dateList == nil {
		dateList = []string{}
	}

	return &AvailableSlotsResponse{
		ServiceID:  resp.ServiceID,
		From:       resp.From.Format(domain.DateTimeFormat),
		To:         resp.To.Format(domain.DateTimeFormat),
		DateList:   dateList,
		PageDate:   resp.PageDate,
		Slots:      slots,
		Operators:  operators,
		Locations:  locations,
		PrevCursor: formatCursor(resp.PrevCursor),
		NextCursor: formatCursor(resp.NextCursor),
	}
}

func formatCursor(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateTimeFormat)
	return &s
}
