package notifications

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
)

// Poller периодически обновляет снимок данных для одной сессии.
// Циклы выполняются строго последовательно: следующий таймер взводится
// только после того, как предыдущий цикл зафиксировал результат.
type Poller struct {
	session      domain.Session
	client       BackendClient
	store        ReadStore
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	interval     time.Duration

	mu       sync.RWMutex
	snapshot *Snapshot
	lastErr  error
	failures int

	// отметки, сделанные до первого успешного снимка
	pendingReads map[domain.ReadKind]map[int64]struct{}

	lastAccess atomic.Int64 // unix nano последнего чтения ленты

	firstCycle     chan struct{}
	firstCycleOnce sync.Once
	done           chan struct{}
}

func newPoller(session domain.Session, client BackendClient, store ReadStore, metrics Metrics,
	timeProvider TimeProvider, interval time.Duration, logger Logger) *Poller {
	p := &Poller{
		session:      session,
		client:       client,
		store:        store,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		interval:     interval,
		firstCycle:   make(chan struct{}),
		done:         make(chan struct{}),
	}
	p.touch()
	return p
}

// Run выполняет цикл сразу, затем через interval после завершения каждого цикла.
// Возвращается при отмене контекста.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)
	defer p.markFirstCycle()

	p.logger.Info("Poller: started for %s, interval=%s", p.session.Key(), p.interval)

	for {
		p.cycle(ctx)

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("Poller: stopped for %s", p.session.Key())
			return
		case <-timer.C:
		}
	}
}

// cycle получает бронирования, сообщения, платежи и прочитанные ID одновременно
// и фиксирует их одним снимком
func (p *Poller) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	var (
		reservations []*domain.Reservation
		messages     []*domain.Message
		payments     []*domain.Payment
		readNotifs   map[int64]struct{}
		readMsgs     map[int64]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = p.client.ListReservations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = p.client.ListMessages(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = p.client.ListPayments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		readNotifs, err = p.store.ReadIDs(gctx, p.session, domain.ReadKindNotifications)
		return err
	})
	g.Go(func() error {
		var err error
		readMsgs, err = p.store.ReadIDs(gctx, p.session, domain.ReadKindMessages)
		return err
	})

	err := g.Wait()

	// Результат отмененного цикла не применяется
	if ctx.Err() != nil {
		p.metrics.IncPollCycle(metrics.PollResultDiscarded)
		return
	}

	if err != nil {
		p.mu.Lock()
		p.failures++
		p.lastErr = err
		failures := p.failures
		p.mu.Unlock()

		p.metrics.IncPollCycle(metrics.PollResultFailed)
		p.logger.Warn("Poller: cycle failed for %s (failures=%d), keeping last snapshot: %v",
			p.session.Key(), failures, err)
		p.markFirstCycle()
		return
	}

	snapshot := &Snapshot{
		Reservations:      reservations,
		Messages:          messages,
		Payments:          payments,
		ReadNotifications: readNotifs,
		ReadMessages:      readMsgs,
		FetchedAt:         p.timeProvider.Now(),
	}

	p.mu.Lock()
	if p.snapshot != nil {
		// Наборы прочитанных только растут: отметка, сделанная во время цикла, не теряется
		snapshot.ReadNotifications = union(snapshot.ReadNotifications, p.snapshot.ReadNotifications)
		snapshot.ReadMessages = union(snapshot.ReadMessages, p.snapshot.ReadMessages)
	} else if p.pendingReads != nil {
		snapshot.ReadNotifications = union(snapshot.ReadNotifications, p.pendingReads[domain.ReadKindNotifications])
		snapshot.ReadMessages = union(snapshot.ReadMessages, p.pendingReads[domain.ReadKindMessages])
		p.pendingReads = nil
	}
	p.snapshot = snapshot
	p.lastErr = nil
	p.mu.Unlock()

	p.metrics.IncPollCycle(metrics.PollResultOK)
	p.markFirstCycle()
}

// Snapshot возвращает последний успешный снимок
func (p *Poller) Snapshot() (*Snapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.snapshot == nil {
		if p.lastErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, p.lastErr)
		}
		return nil, ErrFeedUnavailable
	}
	return p.snapshot, nil
}

// Failures возвращает число неуспешных циклов
func (p *Poller) Failures() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.failures
}

// WaitFirstCycle ждет завершения первого цикла (успешного или нет)
func (p *Poller) WaitFirstCycle(ctx context.Context) error {
	select {
	case <-p.firstCycle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done закрывается после остановки опросчика
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// markRead добавляет ID в прочитанные текущего снимка до следующего цикла.
// Пока снимка нет, ID откладывается и попадает в первый зафиксированный снимок.
func (p *Poller) markRead(kind domain.ReadKind, id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snapshot != nil {
		p.snapshot = p.snapshot.withRead(kind, id)
		return
	}
	if p.pendingReads == nil {
		p.pendingReads = make(map[domain.ReadKind]map[int64]struct{})
	}
	if p.pendingReads[kind] == nil {
		p.pendingReads[kind] = make(map[int64]struct{})
	}
	p.pendingReads[kind][id] = struct{}{}
}

func union(fresh, previous map[int64]struct{}) map[int64]struct{} {
	if fresh == nil {
		fresh = make(map[int64]struct{}, len(previous))
	}
	for id := range previous {
		fresh[id] = struct{}{}
	}
	return fresh
}

func (p *Poller) markFirstCycle() {
	p.firstCycleOnce.Do(func() { close(p.firstCycle) })
}

func (p *Poller) touch() {
	p.lastAccess.Store(p.timeProvider.Now().UnixNano())
}

func (p *Poller) idleSince() time.Time {
	return time.Unix(0, p.lastAccess.Load())
}
