package notifications

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// fakeBackend бэкенд в памяти; считает одновременные циклы
type fakeBackend struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	messages     []*domain.Message
	payments     []*domain.Payment
	err          error
	delay        time.Duration
	onFetch      func()

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	Calls       atomic.Int32
}

func (f *fakeBackend) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	f.Calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onFetch != nil {
		f.onFetch()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

func (f *fakeBackend) ListMessages(context.Context) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages, nil
}

func (f *fakeBackend) ListPayments(context.Context) ([]*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payments, nil
}

func (f *fakeBackend) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeBackend) setReservations(reservations []*domain.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations = reservations
}

// memStore хранилище прочитанных ID в памяти
type memStore struct {
	mu  sync.Mutex
	ids map[string]map[int64]struct{}
}

func newMemStore() *memStore {
	return &memStore{ids: make(map[string]map[int64]struct{})}
}

func (s *memStore) ReadIDs(_ context.Context, scope domain.Session, kind domain.ReadKind) (map[int64]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]struct{})
	for id := range s.ids[scope.Key()+":"+string(kind)] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *memStore) MarkRead(_ context.Context, scope domain.Session, kind domain.ReadKind, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scope.Key() + ":" + string(kind)
	if s.ids[key] == nil {
		s.ids[key] = make(map[int64]struct{})
	}
	s.ids[key][id] = struct{}{}
	return nil
}

type recordingMetrics struct {
	mu      sync.Mutex
	cycles  map[string]int
	pollers int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{cycles: make(map[string]int)}
}

func (m *recordingMetrics) IncPollCycle(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles[result]++
}

func (m *recordingMetrics) SetActivePollers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollers = n
}

func (m *recordingMetrics) count(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cycles[result]
}

func (m *recordingMetrics) active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollers
}

type fixedTime struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixedTime) set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
