package domain

import "time"

// ConfirmationState represents the progress of a payment-to-reservation confirmation
type ConfirmationState string

const (
	ConfirmationPending   ConfirmationState = "pending"
	ConfirmationConfirmed ConfirmationState = "confirmed"
	ConfirmationFailed    ConfirmationState = "failed"
)

// IsValid reports whether the state is known
func (s ConfirmationState) IsValid() bool {
	return s == ConfirmationPending || s == ConfirmationConfirmed || s == ConfirmationFailed
}

// PaymentConfirmation is the ledger entry guarding the single EN_ATTENTE -> CONFIRMEE
// transition triggered by a payment
type PaymentConfirmation struct {
	ID                    int64
	PaymentID             int64
	ReservationID         int64
	GatewayConfirmationID string
	State                 ConfirmationState
	Attempts              int
	LastError             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
