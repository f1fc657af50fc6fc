package notifications

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Snapshot согласованный результат одного цикла опроса
type Snapshot struct {
	Reservations []*domain.Reservation
	Messages     []*domain.Message
	Payments     []*domain.Payment

	ReadNotifications map[int64]struct{}
	ReadMessages      map[int64]struct{}

	FetchedAt time.Time
}

// withRead возвращает копию снимка с добавленным прочитанным ID.
// Исходный снимок не меняется: его могут читать параллельные запросы.
func (s *Snapshot) withRead(kind domain.ReadKind, id int64) *Snapshot {
	next := *s
	switch kind {
	case domain.ReadKindNotifications:
		next.ReadNotifications = cloneWith(s.ReadNotifications, id)
	case domain.ReadKindMessages:
		next.ReadMessages = cloneWith(s.ReadMessages, id)
	}
	return &next
}

func cloneWith(ids map[int64]struct{}, id int64) map[int64]struct{} {
	out := make(map[int64]struct{}, len(ids)+1)
	for k := range ids {
		out[k] = struct{}{}
	}
	out[id] = struct{}{}
	return out
}

// FeedMessage входящее сообщение в ленте
type FeedMessage struct {
	ID          int64
	Content     string
	SenderID    int64
	RecipientID int64
	SentAt      time.Time
	Read        bool
	Link        string
}

// Feed лента уведомлений и сообщений для сессии
type Feed struct {
	Notifications       []domain.Notification
	Messages            []FeedMessage
	UnreadNotifications int
	UnreadMessages      int
	FetchedAt           time.Time
}

// BuildFeed строит ленту из снимка. Чистая функция: входные данные не меняются.
//
// Клиент видит свои бронирования и платежи и адресованные ему сообщения,
// администратор видит все. Уведомления упорядочены по ID по убыванию,
// при равенстве ID по типу; сообщения по ID по убыванию.
func BuildFeed(session domain.Session, snapshot *Snapshot, now time.Time) *Feed {
	feed := &Feed{
		Notifications: []domain.Notification{},
		Messages:      []FeedMessage{},
	}
	if snapshot == nil {
		return feed
	}
	feed.FetchedAt = snapshot.FetchedAt

	links := linksFor(session)

	for _, r := range snapshot.Reservations {
		if r == nil || !session.CanAccess(r.UserID) {
			continue
		}

		switch {
		case r.EffectiveStatus(now) == domain.ReservationConfirmed:
			feed.Notifications = append(feed.Notifications, domain.Notification{
				ID:          r.ID,
				Type:        domain.NotificationReservationConfirmed,
				Title:       "Réservation confirmée",
				Description: fmt.Sprintf("Réservation #%d est confirmée.", r.ID),
				Link:        links.reservations,
				EntityID:    r.ID,
			})
		case r.IsExpiredPending(now):
			feed.Notifications = append(feed.Notifications, domain.Notification{
				ID:          r.ID,
				Type:        domain.NotificationReservationExpired,
				Title:       "Réservation expirée",
				Description: fmt.Sprintf("Réservation #%d a expiré.", r.ID),
				Link:        links.reservations,
				EntityID:    r.ID,
			})
		}
	}

	for _, p := range snapshot.Payments {
		if p == nil || !p.IsSucceeded() || !session.CanAccess(p.UserID) {
			continue
		}
		feed.Notifications = append(feed.Notifications, domain.Notification{
			ID:          p.ID + domain.PaymentNotificationOffset,
			Type:        domain.NotificationPaymentConfirmed,
			Title:       "Paiement confirmé",
			Description: fmt.Sprintf("Le paiement de la réservation #%d a été effectué.", p.ReservationID),
			Link:        links.payments,
			EntityID:    p.ID,
		})
	}

	for i := range feed.Notifications {
		if _, ok := snapshot.ReadNotifications[feed.Notifications[i].ID]; ok {
			feed.Notifications[i].Read = true
		} else {
			feed.UnreadNotifications++
		}
	}

	sort.SliceStable(feed.Notifications, func(i, j int) bool {
		a, b := feed.Notifications[i], feed.Notifications[j]
		if a.ID != b.ID {
			return a.ID > b.ID
		}
		return a.Type < b.Type
	})

	for _, m := range snapshot.Messages {
		if m == nil {
			continue
		}
		if !session.IsAdmin() && m.RecipientID != session.UserID {
			continue
		}

		_, read := snapshot.ReadMessages[m.ID]
		if !read {
			feed.UnreadMessages++
		}
		feed.Messages = append(feed.Messages, FeedMessage{
			ID:          m.ID,
			Content:     m.Content,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			SentAt:      m.SentAt,
			Read:        read,
			Link:        links.messages,
		})
	}

	sort.SliceStable(feed.Messages, func(i, j int) bool {
		return feed.Messages[i].ID > feed.Messages[j].ID
	})

	return feed
}

type feedLinks struct {
	reservations string
	payments     string
	messages     string
}

func linksFor(session domain.Session) feedLinks {
	if session.IsAdmin() {
		return feedLinks{
			reservations: "/admin/reservations",
			payments:     "/admin/payements",
			messages:     "/admin/messages",
		}
	}
	return feedLinks{
		reservations: "/client/reservation",
		payments:     "/client/payements",
		messages:     "/client/messages",
	}
}
