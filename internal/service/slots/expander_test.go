package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func TestExpander_SingleDay(t *testing.T) {
	var e Expander
	got := e.Expand(mondayRule(), window(at("2024-06-03", "00:00"), at("2024-06-04", "00:00")))

	assert.Equal(t, []string{"09:00-09:30", "09:50-10:20", "10:40-11:10", "11:30-12:00"}, starts(got))
	for _, s := range got {
		assert.Equal(t, "2024-06-03", s.DateKey())
		assert.Equal(t, ruleID, s.RuleID)
		assert.Equal(t, "Консультация", s.ServiceName)
	}
}

func TestExpander_AllWeeksWithOpenWindow(t *testing.T) {
	var e Expander
	got := e.Expand(mondayRule(), domain.Window{})

	dates := map[string]int{}
	for _, s := range got {
		dates[s.DateKey()]++
		assert.Equal(t, 0, domain.IsoWeekday(s.Date))
	}
	assert.Equal(t, map[string]int{
		"2024-06-03": 4,
		"2024-06-10": 4,
		"2024-06-17": 4,
		"2024-06-24": 4,
	}, dates)
}

func TestExpander_AlignsToWeekday(t *testing.T) {
	var e Expander

	// окно начинается в воскресенье, первый понедельник - следующий день
	got := e.Expand(mondayRule(), window(at("2024-06-09", "00:00"), at("2024-06-12", "00:00")))
	require.NotEmpty(t, got)
	assert.Equal(t, "2024-06-10", got[0].DateKey())

	// правило начинается в среду
	rule := mondayRule()
	rule.FromDate = mustDate("2024-06-05")
	got = e.Expand(rule, domain.Window{})
	require.NotEmpty(t, got)
	assert.Equal(t, "2024-06-10", got[0].DateKey())
}

func TestExpander_EmptyCases(t *testing.T) {
	var e Expander

	t.Run("окно вне дат правила", func(t *testing.T) {
		got := e.Expand(mondayRule(), window(at("2024-07-01", "00:00"), at("2024-07-31", "00:00")))
		assert.Empty(t, got)
	})

	t.Run("слот длиннее рабочего окна дня", func(t *testing.T) {
		rule := mondayRule()
		rule.ToTime = "09:20"
		assert.Empty(t, e.Expand(rule, domain.Window{}))
	})

	t.Run("нулевая длительность", func(t *testing.T) {
		rule := mondayRule()
		rule.SlotDurationMinutes = 0
		assert.Empty(t, e.Expand(rule, domain.Window{}))
	})

	t.Run("нет нужного дня недели в окне", func(t *testing.T) {
		got := e.Expand(mondayRule(), window(at("2024-06-04", "00:00"), at("2024-06-06", "00:00")))
		assert.Empty(t, got)
	})
}

func TestExpander_NoMidnightCrossing(t *testing.T) {
	rule := mondayRule()
	rule.FromTime = "23:00"
	rule.ToTime = "23:59"
	rule.SlotDurationMinutes = 45

	var e Expander
	got := e.Expand(rule, window(at("2024-06-03", "00:00"), at("2024-06-04", "00:00")))
	assert.Equal(t, []string{"23:00-23:45"}, starts(got))
}

func TestExpander_DurationInvariant(t *testing.T) {
	rule := mondayRule()
	rule.SlotDurationMinutes = 25
	rule.PauseMinutes = 7

	var e Expander
	for _, s := range e.Expand(rule, domain.Window{}) {
		expectedEnd, err := s.TimeStart.AddMinutes(rule.SlotDurationMinutes)
		require.NoError(t, err)
		assert.Equal(t, expectedEnd, s.TimeEnd)
		assert.False(t, s.TimeEnd.IsAfter(rule.ToTime))
	}
}

func TestIsOnGrid(t *testing.T) {
	rule := mondayRule()

	end, ok := IsOnGrid(rule, "09:50")
	assert.True(t, ok)
	assert.Equal(t, types.TimeString("10:20"), end)

	_, ok = IsOnGrid(rule, "09:30")
	assert.False(t, ok)

	_, ok = IsOnGrid(rule, "12:00")
	assert.False(t, ok)
}

func TestExpander_NextSlotStartsAfterPause(t *testing.T) {
	tests := []struct {
		pause int
		want  []string
	}{
		{pause: 0, want: []string{"09:00-09:30", "09:30-10:00", "10:00-10:30", "10:30-11:00", "11:00-11:30", "11:30-12:00"}},
		{pause: 10, want: []string{"09:00-09:30", "09:40-10:10", "10:20-10:50", "11:00-11:30"}},
		{pause: 20, want: []string{"09:00-09:30", "09:50-10:20", "10:40-11:10", "11:30-12:00"}},
	}

	var e Expander
	for _, tt := range tests {
		rule := mondayRule()
		rule.PauseMinutes = tt.pause

		got := e.Expand(rule, mondayWindow())
		assert.Equal(t, tt.want, starts(got), "pause=%d", tt.pause)
	}
}
