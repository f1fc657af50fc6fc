package domain

import "time"

// PaymentStatus represents the gateway status of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "EN_ATTENTE"
	PaymentSucceeded PaymentStatus = "SUCCES"
	PaymentFailed    PaymentStatus = "ECHEC"
)

// Payment represents a monetary transaction against a reservation
type Payment struct {
	ID            int64
	Amount        float64
	Date          time.Time
	Method        string
	Status        PaymentStatus
	ReservationID int64
	UserID        int64
	Description   string
}

// IsSucceeded returns true once the gateway confirmed the charge
func (p *Payment) IsSucceeded() bool {
	return p.Status == PaymentSucceeded
}

// PaymentIntent is the gateway handle returned when a payment is created
type PaymentIntent struct {
	PaymentID    int64
	ClientSecret string
}
