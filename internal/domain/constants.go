package domain

// Default booking window values
const (
	DefaultBufferMinutes            = 0
	DefaultMinAdvanceBookingMinutes = 30
	DefaultMaxAdvanceBookingDays    = 7
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MinAdvanceBookingMinutesLimit = 0
	MaxAdvanceBookingMinutesLimit = 10080 // 1 week
	MinAdvanceBookingDaysLimit    = 1
	MaxAdvanceBookingDaysLimit    = 365 // 1 year

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
