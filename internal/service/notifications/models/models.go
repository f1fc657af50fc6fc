package models

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// NotificationResponse уведомление ленты
type NotificationResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"titre"`
	Description string `json:"description"`
	Read        bool   `json:"lu"`
	Link        string `json:"lien,omitempty"`
}

// MessageResponse входящее сообщение ленты
type MessageResponse struct {
	ID          int64   `json:"id"`
	Content     string  `json:"contenuMessage"`
	SenderID    int64   `json:"expediteurId"`
	RecipientID int64   `json:"destinataireId"`
	SentAt      *string `json:"dateEnvoie,omitempty"`
	Read        bool    `json:"lu"`
	Link        string  `json:"lien,omitempty"`
}

// FeedResponse лента уведомлений и сообщений
type FeedResponse struct {
	Notifications       []NotificationResponse `json:"notifications"`
	Messages            []MessageResponse      `json:"messages"`
	UnreadNotifications int                    `json:"notificationsNonLues"`
	UnreadMessages      int                    `json:"messagesNonLus"`
	FetchedAt           *string                `json:"misAJour,omitempty"`
}

// FromFeed конвертирует ленту в DTO
func FromFeed(notifications []domain.Notification, messages []MessageResponse,
	unreadNotifications, unreadMessages int, fetchedAt time.Time) *FeedResponse {
	resp := &FeedResponse{
		Notifications:       make([]NotificationResponse, 0, len(notifications)),
		Messages:            messages,
		UnreadNotifications: unreadNotifications,
		UnreadMessages:      unreadMessages,
		FetchedAt:           FormatTime(fetchedAt),
	}
	if resp.Messages == nil {
		resp.Messages = []MessageResponse{}
	}

	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:          n.ID,
			Type:        string(n.Type),
			Title:       n.Title,
			Description: n.Description,
			Read:        n.Read,
			Link:        n.Link,
		})
	}

	return resp
}

// FormatTime форматирует время в RFC3339; нулевое время не выводится
func FormatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
