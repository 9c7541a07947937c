package domain

// Time format constants
const (
	IntervalLayout = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	TimeFormat     = "15:04"            // HH:MM
)

// Reservation policy constants that are not part of the mutable business rules
const (
	MaxAdvanceBookingDays  = 30   // bookings may start at most 30 days after today
	EarlyBirdThresholdDays = 13   // discount applies when booked more than 13 days ahead
	EarlyBirdDiscount      = 0.25 // fraction of the base price taken off
	DownPaymentFraction    = 0.5  // down payment is half of the cost
	WeekAdvanceRefundDays  = 7    // minimal notice for the week refund tier
	ShortAdvanceRefundDays = 2    // minimal notice for the short refund tier
	HarvesterCapacity      = 1    // there is exactly one harvester
	MaxCustomerNameLength  = 255
)

// Default business rules, used when nothing is persisted yet
const (
	DefaultHarvesterPrice             = 88000
	DefaultScooperPricePerHour        = 1000
	DefaultScannerPricePerHour        = 990
	DefaultMaxScanners                = 3
	DefaultMaxScoopers                = 3
	DefaultWeekdayOpen                = "09:00"
	DefaultWeekdayClose               = "18:00"
	DefaultWeekendOpen                = "10:00"
	DefaultWeekendClose               = "16:00"
	DefaultWeekAdvanceRefundFraction  = 0.75
	DefaultShortAdvanceRefundFraction = 0.5
)
