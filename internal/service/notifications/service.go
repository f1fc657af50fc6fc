package notifications

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/notifications/models"
)

// Service лента уведомлений поверх реестра опросчиков
type Service struct {
	registry     *Registry
	store        ReadStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(registry *Registry, store ReadStore, logger Logger) *Service {
	return &Service{
		registry:     registry,
		store:        store,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetFeed возвращает ленту сессии из последнего снимка ее опросчика.
// Первый запрос запускает опросчик и ждет первого цикла.
func (s *Service) GetFeed(ctx context.Context, session domain.Session) (*models.FeedResponse, error) {
	if err := validateSession(session); err != nil {
		return nil, err
	}

	poller, err := s.registry.Subscribe(session)
	if err != nil {
		s.logger.Error("GetFeed: failed to subscribe %s: %v", session.Key(), err)
		return nil, err
	}

	if err := poller.WaitFirstCycle(ctx); err != nil {
		s.logger.Warn("GetFeed: request for %s ended before first poll: %v", session.Key(), err)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	snapshot, err := poller.Snapshot()
	if err != nil {
		s.logger.Warn("GetFeed: no snapshot for %s: %v", session.Key(), err)
		return nil, err
	}

	feed := BuildFeed(session, snapshot, s.timeProvider.Now())
	return models.FromFeed(feed.Notifications, toModelMessages(feed.Messages),
		feed.UnreadNotifications, feed.UnreadMessages, feed.FetchedAt), nil
}

// Unsubscribe останавливает опросчик сессии
func (s *Service) Unsubscribe(session domain.Session) error {
	if err := validateSession(session); err != nil {
		return err
	}
	if !s.registry.Unsubscribe(session) {
		s.logger.Info("Unsubscribe: no active poller for %s", session.Key())
	}
	return nil
}

// MarkNotificationRead отмечает уведомление прочитанным
func (s *Service) MarkNotificationRead(ctx context.Context, session domain.Session, id int64) error {
	return s.markRead(ctx, session, domain.ReadKindNotifications, id)
}

// MarkMessageRead отмечает сообщение прочитанным
func (s *Service) MarkMessageRead(ctx context.Context, session domain.Session, id int64) error {
	return s.markRead(ctx, session, domain.ReadKindMessages, id)
}

func (s *Service) markRead(ctx context.Context, session domain.Session, kind domain.ReadKind, id int64) error {
	s.logger.Info("MarkRead: %s id=%d for %s", kind, id, session.Key())

	if err := validateSession(session); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	// 1. Сохраняем отметку
	if err := s.store.MarkRead(ctx, session, kind, id); err != nil {
		s.logger.Error("MarkRead: failed to store %s id=%d for %s: %v", kind, id, session.Key(), err)
		return fmt.Errorf("%w: %v", ErrReadStore, err)
	}

	// 2. Отметка видна сразу, не дожидаясь следующего цикла
	if poller, ok := s.registry.Lookup(session); ok {
		poller.markRead(kind, id)
	}

	return nil
}

func validateSession(session domain.Session) error {
	if session.UserID <= 0 || !session.Role.IsValid() {
		return fmt.Errorf("%w: invalid session %s", ErrInvalidInput, session.Key())
	}
	return nil
}

func toModelMessages(messages []FeedMessage) []models.MessageResponse {
	out := make([]models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, models.MessageResponse{
			ID:          m.ID,
			Content:     m.Content,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			SentAt:      models.FormatTime(m.SentAt),
			Read:        m.Read,
			Link:        m.Link,
		})
	}
	return out
}
