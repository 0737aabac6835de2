package slots

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Exclusions количество отброшенных слотов-кандидатов по причинам
type Exclusions map[ExclusionReason]int

// Compute строит доступные слоты по снимку данных без обращения к хранилищу
// Порядок внутри даты: порядок правил в снимке, затем время начала
func Compute(snapshot Snapshot, window domain.Window, opts Options) (domain.ResultSet, error) {
	result, _, err := computeWithExclusions(snapshot, window, opts)
	return result, err
}

func computeWithExclusions(snapshot Snapshot, window domain.Window, opts Options) (domain.ResultSet, Exclusions, error) {
	if err := window.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		expander   Expander
		filter     = NewConflictFilter(window, snapshot, opts)
		aggregator = NewAggregator()
		excluded   = Exclusions{}
	)

	for _, rule := range snapshot.Rules {
		candidates := expander.Expand(rule, window)
		for i := range candidates {
			if reason := filter.Check(&candidates[i]); reason != ReasonNone {
				excluded[reason]++
				continue
			}
			aggregator.Add(candidates[i])
		}
	}

	return aggregator.Result(), excluded, nil
}
