package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const minJanitorInterval = time.Second

type registryEntry struct {
	poller *Poller
	cancel context.CancelFunc
}

// Registry хранит по одному опросчику на сессию (роль + пользователь).
// Опросчик другой сессии никогда не переиспользуется.
type Registry struct {
	client       BackendClient
	store        ReadStore
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	interval     time.Duration
	idleTimeout  time.Duration

	mu      sync.Mutex
	pollers map[string]*registryEntry
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRegistry создает реестр и запускает очистку неактивных опросчиков
func NewRegistry(client BackendClient, store ReadStore, metrics Metrics,
	interval, idleTimeout time.Duration, logger Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())

	r := &Registry{
		client:       client,
		store:        store,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		interval:     interval,
		idleTimeout:  idleTimeout,
		pollers:      make(map[string]*registryEntry),
		ctx:          ctx,
		cancel:       cancel,
	}

	if idleTimeout > 0 {
		r.wg.Add(1)
		go r.janitor()
	}

	return r
}

// Subscribe возвращает опросчик сессии, запуская его при необходимости
func (r *Registry) Subscribe(session domain.Session) (*Poller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	key := session.Key()
	if entry, ok := r.pollers[key]; ok {
		entry.poller.touch()
		return entry.poller, nil
	}

	poller := newPoller(session, r.client, r.store, r.metrics, r.timeProvider, r.interval, r.logger)
	ctx, cancel := context.WithCancel(r.ctx)
	r.pollers[key] = &registryEntry{poller: poller, cancel: cancel}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		poller.Run(ctx)
	}()

	r.metrics.SetActivePollers(len(r.pollers))
	r.logger.Info("Registry: subscribed %s, active pollers=%d", key, len(r.pollers))

	return poller, nil
}

// Lookup возвращает работающий опросчик сессии, не запуская новый
func (r *Registry) Lookup(session domain.Session) (*Poller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.pollers[session.Key()]
	if !ok {
		return nil, false
	}
	return entry.poller, true
}

// Unsubscribe останавливает опросчик сессии (закрытие ленты или выход пользователя)
func (r *Registry) Unsubscribe(session domain.Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := session.Key()
	entry, ok := r.pollers[key]
	if !ok {
		return false
	}

	entry.cancel()
	delete(r.pollers, key)
	r.metrics.SetActivePollers(len(r.pollers))
	r.logger.Info("Registry: unsubscribed %s, active pollers=%d", key, len(r.pollers))

	return true
}

// Active возвращает число работающих опросчиков
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pollers)
}

// Close останавливает все опросчики и ждет их завершения
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for key, entry := range r.pollers {
		entry.cancel()
		delete(r.pollers, key)
	}
	r.metrics.SetActivePollers(0)
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()

	r.logger.Info("Registry: closed")
}

func (r *Registry) janitor() {
	defer r.wg.Done()

	interval := r.idleTimeout / 2
	if interval < minJanitorInterval {
		interval = minJanitorInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.evictIdle()
		}
	}
}

// evictIdle останавливает опросчики, ленту которых не читали дольше idleTimeout
func (r *Registry) evictIdle() int {
	deadline := r.timeProvider.Now().Add(-r.idleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for key, entry := range r.pollers {
		if entry.poller.idleSince().Before(deadline) {
			entry.cancel()
			delete(r.pollers, key)
			evicted++
			r.logger.Info("Registry: evicted idle poller %s", key)
		}
	}

	if evicted > 0 {
		r.metrics.SetActivePollers(len(r.pollers))
	}

	return evicted
}
