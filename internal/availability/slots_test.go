package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/bookflow-api/internal/domain"
	"github.com/bookflow/bookflow-api/pkg/types"
)

var testEmployee = &domain.Employee{ID: "1", Name: "Ján Kaderník"}

func booking(start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		EmployeeID: "1",
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Status:     status,
	}
}

func slotStarts(slots []domain.TimeSlot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.String())
	}
	return starts
}

func TestGenerateSlots_NoBookings(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "12:00"}

	slots := GenerateSlots(testEmployee, open, 45, 30, nil)

	// Шаговые кандидаты плюс хвост 11:15-12:00
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:15"}, slotStarts(slots))
	for _, s := range slots {
		assert.True(t, s.Available, "slot %s must be available", s.StartTime)
	}

	last := slots[len(slots)-1]
	assert.Equal(t, types.TimeString("12:00"), last.EndTime)
}

func TestGenerateSlots_ExistingBookingMarksOverlaps(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "12:00"}
	bookings := []*domain.Booking{booking("10:00", "10:45", domain.StatusConfirmed)}

	slots := GenerateSlots(testEmployee, open, 45, 30, bookings)
	require.Len(t, slots, 6)

	availability := make(map[string]bool, len(slots))
	for _, s := range slots {
		availability[s.StartTime.String()] = s.Available
	}

	assert.True(t, availability["09:00"], "09:00-09:45 ends before the booking")
	assert.False(t, availability["09:30"], "09:30-10:15 overlaps the booking")
	assert.False(t, availability["10:00"], "10:00-10:45 is the booking itself")
	assert.False(t, availability["10:30"], "10:30-11:15 overlaps the booking")
	assert.True(t, availability["11:00"])
	assert.True(t, availability["11:15"])
}

func TestGenerateSlots_TouchingBookingsDoNotConflict(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "12:00"}
	bookings := []*domain.Booking{booking("09:45", "10:30", domain.StatusConfirmed)}

	slots := GenerateSlots(testEmployee, open, 45, 45, bookings)

	availability := make(map[string]bool, len(slots))
	for _, s := range slots {
		availability[s.StartTime.String()] = s.Available
	}

	// 09:00-09:45 заканчивается ровно в начале бронирования
	assert.True(t, availability["09:00"])
	// 10:30-11:15 начинается ровно в конце бронирования
	assert.True(t, availability["10:30"])
}

func TestGenerateSlots_CancelledBookingFreesSlot(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "10:00"}
	bookings := []*domain.Booking{booking("09:00", "09:45", domain.StatusCancelled)}

	slots := GenerateSlots(testEmployee, open, 45, 30, bookings)
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Available, "cancelled booking must not block the slot")
}

func TestGenerateSlots_CompletedBookingStillBlocks(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "10:00"}
	bookings := []*domain.Booking{booking("09:00", "09:45", domain.StatusCompleted)}

	slots := GenerateSlots(testEmployee, open, 45, 30, bookings)
	require.NotEmpty(t, slots)
	assert.False(t, slots[0].Available)
}

func TestGenerateSlots_ServiceLongerThanWindow(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "09:30"}

	slots := GenerateSlots(testEmployee, open, 45, 30, nil)
	assert.Empty(t, slots)
}

func TestGenerateSlots_ExactFit(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "10:00"}

	slots := GenerateSlots(testEmployee, open, 60, 30, nil)
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)
}

func TestGenerateSlots_NoDuplicateTail(t *testing.T) {
	// Окно делится шагом нацело: последний шаговый слот и хвост совпадают
	open := OpenInterval{Start: "09:00", End: "12:00"}

	slots := GenerateSlots(testEmployee, open, 30, 30, nil)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slotStarts(slots))
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "12:00"}
	assert.Nil(t, GenerateSlots(testEmployee, open, 0, 30, nil))
	assert.Nil(t, GenerateSlots(testEmployee, open, -15, 30, nil))
}

func TestHasConflict(t *testing.T) {
	bookings := []*domain.Booking{
		booking("10:00", "10:45", domain.StatusConfirmed),
		booking("12:00", "13:00", domain.StatusCancelled),
	}

	assert.True(t, HasConflict("10:30", "11:15", bookings))
	assert.False(t, HasConflict("10:45", "11:30", bookings), "touching intervals do not conflict")
	assert.False(t, HasConflict("12:00", "12:30", bookings), "cancelled bookings do not conflict")
}

func TestWithinInterval(t *testing.T) {
	open := OpenInterval{Start: "09:00", End: "17:00"}

	assert.True(t, WithinInterval("09:00", "09:45", open))
	assert.True(t, WithinInterval("16:15", "17:00", open))
	assert.False(t, WithinInterval("08:30", "09:15", open))
	assert.False(t, WithinInterval("16:30", "17:15", open))
}
