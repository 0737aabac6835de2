package slots

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Aggregator накапливает принятые слоты по ISO-дате
type Aggregator struct {
	result domain.ResultSet
}

func NewAggregator() *Aggregator {
	return &Aggregator{result: make(domain.ResultSet)}
}

// Add добавляет слот в конец списка его даты
func (a *Aggregator) Add(slot domain.Slot) {
	key := slot.DateKey()
	a.result[key] = append(a.result[key], slot)
}

// Result возвращает накопленный результат
func (a *Aggregator) Result() domain.ResultSet {
	return a.result
}
