package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
)

var clientSession = domain.Session{UserID: 5, Role: domain.RoleClient}

func newTestPoller(client BackendClient, store ReadStore, m Metrics, interval time.Duration) *Poller {
	return newPoller(clientSession, client, store, m, &fixedTime{now: testNow}, interval, nopLogger{})
}

func TestPoller_CycleCommitsSnapshot(t *testing.T) {
	client := &fakeBackend{reservations: []*domain.Reservation{confirmed(1, 5)}}
	store := newMemStore()
	require.NoError(t, store.MarkRead(context.Background(), clientSession, domain.ReadKindNotifications, 1))
	m := newRecordingMetrics()

	p := newTestPoller(client, store, m, time.Hour)
	p.cycle(context.Background())

	snapshot, err := p.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snapshot.Reservations, 1)
	assert.Contains(t, snapshot.ReadNotifications, int64(1))
	assert.Equal(t, testNow, snapshot.FetchedAt)
	assert.Equal(t, 1, m.count(metrics.PollResultOK))
}

func TestPoller_FailureKeepsLastKnownGood(t *testing.T) {
	client := &fakeBackend{reservations: []*domain.Reservation{confirmed(1, 5)}}
	m := newRecordingMetrics()
	p := newTestPoller(client, newMemStore(), m, time.Hour)

	p.cycle(context.Background())
	good, err := p.Snapshot()
	require.NoError(t, err)

	client.setErr(errors.New("backend down"))
	p.cycle(context.Background())
	p.cycle(context.Background())

	after, err := p.Snapshot()
	require.NoError(t, err)
	assert.Same(t, good, after)
	assert.Equal(t, 2, p.Failures())
	assert.Equal(t, 2, m.count(metrics.PollResultFailed))

	client.setErr(nil)
	client.setReservations([]*domain.Reservation{confirmed(1, 5), confirmed(2, 5)})
	p.cycle(context.Background())

	recovered, err := p.Snapshot()
	require.NoError(t, err)
	assert.Len(t, recovered.Reservations, 2)
}

func TestPoller_FirstCycleFailureReportsUnavailable(t *testing.T) {
	client := &fakeBackend{err: errors.New("backend down")}
	p := newTestPoller(client, newMemStore(), newRecordingMetrics(), time.Hour)

	p.cycle(context.Background())

	require.NoError(t, p.WaitFirstCycle(context.Background()))
	_, err := p.Snapshot()
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestPoller_CancelledCycleIsDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeBackend{
		reservations: []*domain.Reservation{confirmed(1, 5)},
		onFetch:      cancel,
	}
	m := newRecordingMetrics()
	p := newTestPoller(client, newMemStore(), m, time.Hour)

	p.cycle(ctx)

	_, err := p.Snapshot()
	assert.ErrorIs(t, err, ErrFeedUnavailable)
	assert.Equal(t, 1, m.count(metrics.PollResultDiscarded))
	assert.Zero(t, m.count(metrics.PollResultOK))
}

func TestPoller_CyclesNeverOverlap(t *testing.T) {
	client := &fakeBackend{
		reservations: []*domain.Reservation{confirmed(1, 5)},
		delay:        15 * time.Millisecond,
	}
	p := newTestPoller(client, newMemStore(), newRecordingMetrics(), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	assert.Eventually(t, func() bool { return client.Calls.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	assert.Equal(t, int32(1), client.maxInFlight.Load())

	calls := client.Calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, client.Calls.Load())
}

func TestPoller_MarkReadSurvivesNextCycle(t *testing.T) {
	client := &fakeBackend{reservations: []*domain.Reservation{confirmed(7, 5)}}
	store := newMemStore()
	p := newTestPoller(client, store, newRecordingMetrics(), time.Hour)

	p.cycle(context.Background())

	require.NoError(t, store.MarkRead(context.Background(), clientSession, domain.ReadKindNotifications, 7))
	p.markRead(domain.ReadKindNotifications, 7)

	p.cycle(context.Background())

	snapshot, err := p.Snapshot()
	require.NoError(t, err)
	feed := BuildFeed(clientSession, snapshot, testNow)
	require.Len(t, feed.Notifications, 1)
	assert.True(t, feed.Notifications[0].Read)
}

func TestPoller_MarkReadDuringFirstCycleIsKept(t *testing.T) {
	client := &fakeBackend{reservations: []*domain.Reservation{confirmed(7, 5)}}
	p := newTestPoller(client, newMemStore(), newRecordingMetrics(), time.Hour)
	client.onFetch = func() {
		p.markRead(domain.ReadKindNotifications, 7)
		p.markRead(domain.ReadKindMessages, 3)
	}

	p.cycle(context.Background())

	snapshot, err := p.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, snapshot.ReadNotifications, int64(7))
	assert.Contains(t, snapshot.ReadMessages, int64(3))
}
