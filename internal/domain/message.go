package domain

import "time"

// Message represents a direct message between two users
type Message struct {
	ID          int64
	SentAt      time.Time
	Content     string
	SenderID    int64
	RecipientID int64
}
