package domain

import "time"

// ReservationTTL lifetime of an unpaid reservation when no explicit expiration is stored
const ReservationTTL = 24 * time.Hour

// PaymentNotificationOffset keeps payment notification ids apart from reservation ids
const PaymentNotificationOffset = 10000

// Business validation constants
const (
	MinPersonCount       = 1
	MaxPersonCount       = 100
	MaxDescriptionLength = 500
	MaxSearchLength      = 100
)

// Time format constants
const (
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // backend LocalDateTime without zone
)

// SeatHoldingStatuses statuses that count against offer capacity
var SeatHoldingStatuses = []ReservationStatus{
	ReservationConfirmed,
	ReservationPending,
}
