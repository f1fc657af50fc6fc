package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/readstate"
)

// setupTestService создает сервис с хранилищем прочитанных ID на miniredis
func setupTestService(t *testing.T, client BackendClient) (*Service, *Registry) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	store := readstate.NewRepository(redisClient)
	registry := NewRegistry(client, store, newRecordingMetrics(), time.Hour, time.Minute, nopLogger{})
	t.Cleanup(registry.Close)

	svc := NewService(registry, store, nopLogger{})
	svc.timeProvider = &fixedTime{now: testNow}

	return svc, registry
}

func TestService_GetFeed(t *testing.T) {
	client := &fakeBackend{
		reservations: []*domain.Reservation{confirmed(3, 5), confirmed(7, 5), confirmed(1, 5), confirmed(9, 6)},
		messages:     []*domain.Message{{ID: 4, Content: "Bienvenue", RecipientID: 5, SentAt: testNow}},
	}
	svc, _ := setupTestService(t, client)

	feed, err := svc.GetFeed(context.Background(), clientSession)
	require.NoError(t, err)

	require.Len(t, feed.Notifications, 3)
	assert.Equal(t, int64(7), feed.Notifications[0].ID)
	assert.Equal(t, int64(3), feed.Notifications[1].ID)
	assert.Equal(t, int64(1), feed.Notifications[2].ID)
	assert.Equal(t, 3, feed.UnreadNotifications)

	require.Len(t, feed.Messages, 1)
	assert.Equal(t, "Bienvenue", feed.Messages[0].Content)
	assert.Equal(t, 1, feed.UnreadMessages)
}

func TestService_MarkReadPersistsAcrossPolls(t *testing.T) {
	client := &fakeBackend{reservations: []*domain.Reservation{confirmed(3, 5), confirmed(7, 5)}}
	svc, registry := setupTestService(t, client)
	ctx := context.Background()

	_, err := svc.GetFeed(ctx, clientSession)
	require.NoError(t, err)

	require.NoError(t, svc.MarkNotificationRead(ctx, clientSession, 7))

	// Отметка видна до следующего цикла
	feed, err := svc.GetFeed(ctx, clientSession)
	require.NoError(t, err)
	assert.True(t, feed.Notifications[0].Read)
	assert.Equal(t, 1, feed.UnreadNotifications)

	// Новый цикл заново строит список из бэкенда и хранилища
	poller, ok := registry.Lookup(clientSession)
	require.True(t, ok)
	poller.cycle(ctx)

	feed, err = svc.GetFeed(ctx, clientSession)
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 2)
	assert.Equal(t, int64(7), feed.Notifications[0].ID)
	assert.True(t, feed.Notifications[0].Read)
	assert.False(t, feed.Notifications[1].Read)

	// Новый опросчик после отписки читает отметку из хранилища
	require.NoError(t, svc.Unsubscribe(clientSession))
	feed, err = svc.GetFeed(ctx, clientSession)
	require.NoError(t, err)
	assert.True(t, feed.Notifications[0].Read)
}

func TestService_ReadStateIsScopedByRole(t *testing.T) {
	client := &fakeBackend{reservations: []*domain.Reservation{confirmed(7, 5)}}
	svc, _ := setupTestService(t, client)
	ctx := context.Background()

	require.NoError(t, svc.MarkNotificationRead(ctx, clientSession, 7))

	adminFeed, err := svc.GetFeed(ctx, domain.Session{UserID: 5, Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, adminFeed.Notifications, 1)
	assert.False(t, adminFeed.Notifications[0].Read)
}

func TestService_GetFeedUnavailableOnFirstFailure(t *testing.T) {
	client := &fakeBackend{err: errors.New("backend down")}
	svc, _ := setupTestService(t, client)

	_, err := svc.GetFeed(context.Background(), clientSession)
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestService_InvalidInput(t *testing.T) {
	svc, _ := setupTestService(t, &fakeBackend{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.MarkMessageRead(ctx, clientSession, 0), ErrInvalidInput)
	assert.ErrorIs(t, svc.MarkMessageRead(ctx, domain.Session{UserID: 5, Role: "guest"}, 3), ErrInvalidInput)

	_, err := svc.GetFeed(ctx, domain.Session{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
