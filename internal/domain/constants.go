package domain

// Default configuration values
const (
	DefaultStepMinutes   = 30
	DefaultBookingStatus = StatusConfirmed
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 240
	MinStepMinutes              = 5
	MaxStepMinutes              = 120
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
