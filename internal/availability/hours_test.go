package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/bookflow-api/internal/domain"
	"github.com/bookflow/bookflow-api/pkg/types"
)

func day(start, end string) *domain.DayHours {
	return &domain.DayHours{
		Start: types.TimeString(start),
		End:   types.TimeString(end),
	}
}

// template расписание Пн-Пт 09:00-17:00, Сб 10:00-14:00, Вс выходной
func template() domain.WeeklyTemplate {
	var tpl domain.WeeklyTemplate
	for d := time.Monday; d <= time.Friday; d++ {
		tpl[d] = day("09:00", "17:00")
	}
	tpl[time.Saturday] = day("10:00", "14:00")
	return tpl
}

func TestResolveOpenInterval(t *testing.T) {
	tpl := template()

	tests := []struct {
		name      string
		date      time.Time
		wantOpen  bool
		wantStart types.TimeString
		wantEnd   types.TimeString
	}{
		{
			name:      "weekday",
			date:      time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), // понедельник
			wantOpen:  true,
			wantStart: "09:00",
			wantEnd:   "17:00",
		},
		{
			name:      "saturday short hours",
			date:      time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
			wantOpen:  true,
			wantStart: "10:00",
			wantEnd:   "14:00",
		},
		{
			name:     "sunday closed",
			date:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			wantOpen: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, ok := ResolveOpenInterval(tpl, tt.date)
			require.Equal(t, tt.wantOpen, ok)
			if tt.wantOpen {
				assert.Equal(t, tt.wantStart, open.Start)
				assert.Equal(t, tt.wantEnd, open.End)
			}
		})
	}
}

func TestResolveOpenInterval_BadSchedule(t *testing.T) {
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	var inverted domain.WeeklyTemplate
	inverted[time.Monday] = day("17:00", "09:00")
	_, ok := ResolveOpenInterval(inverted, monday)
	assert.False(t, ok, "inverted hours must be treated as closed")

	var zeroWidth domain.WeeklyTemplate
	zeroWidth[time.Monday] = day("09:00", "09:00")
	_, ok = ResolveOpenInterval(zeroWidth, monday)
	assert.False(t, ok, "zero-width hours must be treated as closed")

	var malformed domain.WeeklyTemplate
	malformed[time.Monday] = day("9am", "17:00")
	_, ok = ResolveOpenInterval(malformed, monday)
	assert.False(t, ok, "malformed hours must be treated as closed")
}
