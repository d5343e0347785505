package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookflow/bookflow-api/pkg/types"
)

func TestBooking_Overlaps(t *testing.T) {
	b := &Booking{StartTime: "10:00", EndTime: "10:45"}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "identical interval", start: "10:00", end: "10:45", want: true},
		{name: "starts inside", start: "10:30", end: "11:15", want: true},
		{name: "ends inside", start: "09:30", end: "10:15", want: true},
		{name: "fully contains", start: "09:00", end: "12:00", want: true},
		{name: "touching before", start: "09:15", end: "10:00", want: false},
		{name: "touching after", start: "10:45", end: "11:30", want: false},
		{name: "disjoint before", start: "08:00", end: "09:00", want: false},
		{name: "disjoint after", start: "12:00", end: "13:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Overlaps(types.TimeString(tt.start), types.TimeString(tt.end)))
		})
	}
}

func TestBooking_BlocksSlot(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).BlocksSlot())
	assert.True(t, (&Booking{Status: StatusConfirmed}).BlocksSlot())
	assert.True(t, (&Booking{Status: StatusCompleted}).BlocksSlot())
	assert.True(t, (&Booking{Status: StatusNoShow}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusCancelled}).BlocksSlot())
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusNoShow}).CanBeCancelled())
}

func TestBooking_CanTransitionTo(t *testing.T) {
	// отмена терминальна: выход из cancelled запрещен в любой статус
	cancelled := &Booking{Status: StatusCancelled}
	for _, target := range []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled} {
		assert.False(t, cancelled.CanTransitionTo(target), "cancelled -> %s", target)
	}

	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.True(t, confirmed.CanTransitionTo(StatusNoShow))
	assert.True(t, confirmed.CanTransitionTo(StatusPending))

	// в cancelled - только через отмену с причиной
	assert.False(t, confirmed.CanTransitionTo(StatusCancelled))

	assert.False(t, confirmed.CanTransitionTo("in_progress"))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("in_progress"))
	assert.False(t, ValidStatus(""))
}
