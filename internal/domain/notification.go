package domain

// NotificationType identifies the event a notification was derived from
type NotificationType string

const (
	NotificationReservationConfirmed NotificationType = "RESERVATION_CONFIRMEE"
	NotificationReservationExpired   NotificationType = "RESERVATION_EXPIRÉE"
	NotificationPaymentConfirmed     NotificationType = "PAIEMENT_CONFIRME"
)

// Notification is derived from reservations and payments on every poll, never persisted
type Notification struct {
	ID          int64
	Type        NotificationType
	Title       string
	Description string
	Read        bool
	Link        string

	// EntityID is the id of the reservation or payment the notification was built from
	EntityID int64
}

// ReadKind selects which read-id set a mark applies to
type ReadKind string

const (
	ReadKindNotifications ReadKind = "notifications"
	ReadKindMessages      ReadKind = "messages"
)
