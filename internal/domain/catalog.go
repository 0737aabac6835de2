package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Service услуга, на которую записываются
type Service struct {
	ID   uuid.UUID
	Name string
}

// Location место оказания услуги
type Location struct {
	ID      uuid.UUID
	Name    string
	Address string
	Phone   string
}

// Operator специалист, оказывающий услугу
type Operator struct {
	ID        uuid.UUID
	Title     string
	FirstName string
	LastName  string
}

// DisplayName возвращает "титул имя фамилия" без лишних пробелов
func (o *Operator) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{o.Title, o.FirstName, o.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
