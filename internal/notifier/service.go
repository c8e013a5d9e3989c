package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
)

const (
	DefaultScanInterval    = 15 * time.Second
	DefaultRefreshInterval = 60 * time.Second
	DefaultFreshnessWindow = 30 * time.Second
	DefaultToastDuration   = 5 * time.Second
)

// Config holds the polling cadences of the service. Zero values fall back
// to the defaults above.
type Config struct {
	ScanInterval    time.Duration
	RefreshInterval time.Duration
	FreshnessWindow time.Duration
	ToastDuration   time.Duration
}

func (c Config) withDefaults() Config {
	if c.ScanInterval <= 0 {
		c.ScanInterval = DefaultScanInterval
	}

	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}

	if c.FreshnessWindow <= 0 {
		c.FreshnessWindow = DefaultFreshnessWindow
	}

	if c.ToastDuration <= 0 {
		c.ToastDuration = DefaultToastDuration
	}

	return c
}

// Handler receives a snapshot of reminders. For due subscriptions it is the
// batch produced by one scan; for update subscriptions it is the full cache.
type Handler func(reminders []*domain.Reminder)

type subscription struct {
	id uuid.UUID
	fn Handler
}

// Service owns the reminder cache, the acknowledged-ID set, the
// notification queue and the polling timers. It is constructed explicitly
// and disposed with Close; it is not a package-level singleton.
//
// All state is guarded by one mutex. Timer callbacks and caller-triggered
// operations interleave on it, so a user action racing an in-flight scan
// can at worst produce one stale toast, never inconsistent persisted state.
type Service struct {
	gateway domain.ReminderGateway
	acks    domain.AckStore
	clock   Clock
	player  Player
	toasts  ToastSink
	cfg     Config

	mu         sync.Mutex
	reminders  []*domain.Reminder
	acked      map[domain.ReminderID]struct{}
	queue      []*domain.Reminder
	lastFetch  time.Time
	fetching   bool
	retryArmed bool

	// lifecycleMu serializes Start and Stop so teardown and re-setup of
	// the run loop form one critical section.
	lifecycleMu   sync.Mutex
	running       bool
	runCancel     context.CancelFunc
	scanTicker    Ticker
	refreshTicker Ticker

	dueSubs    []subscription
	updateSubs []subscription
}

// New constructs the service and loads the acknowledged set from durable
// storage. A corrupt or unreadable payload degrades to an empty set.
func New(
	ctx context.Context,
	gateway domain.ReminderGateway,
	acks domain.AckStore,
	clock Clock,
	player Player,
	toasts ToastSink,
	cfg Config,
) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("notifier: gateway is required")
	}

	if acks == nil {
		return nil, fmt.Errorf("notifier: ack store is required")
	}

	if clock == nil {
		clock = NewSystemClock()
	}

	if player == nil {
		player = NopPlayer()
	}

	if toasts == nil {
		toasts = NopToastSink()
	}

	acked, err := acks.Load(ctx)
	if err != nil {
		slog.Error("failed to load acknowledged reminders, starting empty",
			"error", err,
		)

		acked = make(map[domain.ReminderID]struct{})
	}

	if acked == nil {
		acked = make(map[domain.ReminderID]struct{})
	}

	return &Service{
		gateway: gateway,
		acks:    acks,
		clock:   clock,
		player:  player,
		toasts:  toasts,
		cfg:     cfg.withDefaults(),
		acked:   acked,
	}, nil
}

// Start begins periodic due scanning and cache refreshing. It is
// idempotent: an already-running service is torn down first, and Start and
// Stop are serialized, so repeated or concurrent calls never accumulate
// timers. A fetch fires immediately only when the last successful one is
// older than the freshness window.
//
// ctx bounds only the immediate fetch and scan. The run loop gets a
// service-owned lifetime ended by Stop or Close, so it survives short
// caller contexts such as an HTTP request's.
func (s *Service) Start(ctx context.Context) {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	s.teardownLocked()

	s.mu.Lock()
	stale := s.lastFetch.IsZero() ||
		s.clock.Now().Sub(s.lastFetch) > s.cfg.FreshnessWindow
	inFlight := s.fetching
	s.mu.Unlock()

	if stale && !inFlight {
		s.fetch(ctx)
	}

	s.scan(ctx)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.mu.Lock()
	s.running = true
	s.runCancel = cancel
	s.scanTicker = s.clock.NewTicker(s.cfg.ScanInterval)
	s.refreshTicker = s.clock.NewTicker(s.cfg.RefreshInterval)
	scanT, refreshT := s.scanTicker, s.refreshTicker
	s.mu.Unlock()

	slog.Info("reminder checking started",
		"scan_interval", s.cfg.ScanInterval,
		"refresh_interval", s.cfg.RefreshInterval,
	)

	go s.run(runCtx, scanT, refreshT)
}

// Stop ends the run loop and cancels both timers. Cached reminders, the
// acknowledged set and any queued notifications are retained; Stop is a
// pause, not a reset. An in-flight fetch is not aborted and still lands
// its result.
func (s *Service) Stop() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	s.teardownLocked()
}

// teardownLocked cancels the run loop and stops both timers. Callers hold
// lifecycleMu.
func (s *Service) teardownLocked() {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()

		return
	}

	s.running = false
	cancel := s.runCancel
	s.runCancel = nil
	scanT, refreshT := s.scanTicker, s.refreshTicker
	s.scanTicker, s.refreshTicker = nil, nil
	s.mu.Unlock()

	cancel()
	scanT.Stop()
	refreshT.Stop()

	slog.Info("reminder checking stopped")
}

// Close disposes the service: timers are cancelled and platform resources
// released. The durable acknowledged set is untouched.
func (s *Service) Close() error {
	s.Stop()

	return s.player.Close()
}

// IsRunning reports whether the polling timers are active.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

func (s *Service) run(ctx context.Context, scanT, refreshT Ticker) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-scanT.C():
			s.scan(ctx)
		case <-refreshT.C():
			s.fetch(ctx)
		}
	}
}

// fetch replaces the whole cache with the remote list. At most one fetch is
// in flight; a request arriving while one is outstanding is dropped. On
// failure the cache keeps its last-known-good contents.
func (s *Service) fetch(ctx context.Context) bool {
	s.mu.Lock()

	if s.fetching {
		s.mu.Unlock()
		slog.Debug("fetch already in flight, dropping request")

		return false
	}

	s.fetching = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.fetching = false
		s.mu.Unlock()
	}()

	reminders, err := s.gateway.FetchReminders(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoCredential) {
			slog.Debug("skipping reminder fetch, no credential")

			return false
		}

		slog.Error("failed to fetch reminders",
			"error", err,
		)

		return false
	}

	s.mu.Lock()
	s.reminders = reminders
	s.lastFetch = s.clock.Now()
	snapshot := s.cacheSnapshotLocked()
	subs := append([]subscription(nil), s.updateSubs...)
	s.mu.Unlock()

	slog.Debug("reminder cache refreshed",
		"count", len(reminders),
	)

	notifyAll(subs, snapshot)

	return true
}

// scan classifies newly-due reminders and drives one notification cycle.
// Ordering within a scan: acknowledged-set insertion, then one persist,
// then the due-subscriber batch, then queue append, then a single dequeue.
func (s *Service) scan(ctx context.Context) {
	s.mu.Lock()

	now := s.clock.Now()

	var due []*domain.Reminder

	for _, r := range s.reminders {
		if r.IsCompleted() {
			continue
		}

		if _, acked := s.acked[r.ID()]; acked {
			continue
		}

		if r.IsDueAt(now) {
			due = append(due, r)
			s.acked[r.ID()] = struct{}{}
		}
	}

	var ackedCopy map[domain.ReminderID]struct{}

	var dueSubs []subscription

	if len(due) > 0 {
		ackedCopy = s.ackedSnapshotLocked()
		dueSubs = append([]subscription(nil), s.dueSubs...)
	}

	s.mu.Unlock()

	if len(due) > 0 {
		s.persistAcks(ctx, ackedCopy)
		s.playSound()

		slog.Info("due reminders detected",
			"count", len(due),
		)

		notifyAll(dueSubs, due)
	}

	s.mu.Lock()
	s.queue = append(s.queue, due...)

	var next *domain.Reminder

	if len(s.queue) > 0 {
		next = s.queue[0]
		s.queue = s.queue[1:]
	}

	s.mu.Unlock()

	if next != nil {
		s.toasts.Show(Toast{
			Message:  toastMessage(next),
			Duration: s.cfg.ToastDuration,
		})
	}
}

func toastMessage(r *domain.Reminder) string {
	if c := r.Contact(); c != nil {
		return fmt.Sprintf("Reminder: %s (%s)", r.Description(), c.DisplayName())
	}

	return fmt.Sprintf("Reminder: %s", r.Description())
}

func (s *Service) playSound() {
	if err := s.player.Play(); err != nil {
		slog.Warn("notification sound blocked, will retry on next user gesture",
			"error", err,
		)

		s.mu.Lock()
		s.retryArmed = true
		s.mu.Unlock()
	}
}

// NotifyUserGesture consumes the one-shot audio retry armed after a blocked
// playback. Errors on the retry are swallowed; the arm is not re-set.
func (s *Service) NotifyUserGesture() {
	s.mu.Lock()
	armed := s.retryArmed
	s.retryArmed = false
	s.mu.Unlock()

	if !armed {
		return
	}

	if err := s.player.Play(); err != nil {
		slog.Debug("notification sound retry failed",
			"error", err,
		)
	}
}

// MarkAsRead records that the reminder has already been announced, without
// waiting for a scan. Used when the user dismisses a notification directly.
func (s *Service) MarkAsRead(ctx context.Context, id domain.ReminderID) {
	s.mu.Lock()
	s.acked[id] = struct{}{}
	ackedCopy := s.ackedSnapshotLocked()
	s.mu.Unlock()

	s.persistAcks(ctx, ackedCopy)
}

// Reset clears the acknowledged set and its durable copy so every still-due
// reminder is announced again on the next scan.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.acked = make(map[domain.ReminderID]struct{})
	s.mu.Unlock()

	if err := s.acks.Clear(ctx); err != nil {
		slog.Error("failed to clear acknowledged reminders",
			"error", err,
		)
	}
}

// CompleteReminder performs the remote completion, then updates the cached
// snapshot and fans the new list out to update subscribers. It reports
// false when no credential is available or the remote call fails.
func (s *Service) CompleteReminder(ctx context.Context, id domain.ReminderID) bool {
	if err := s.gateway.CompleteReminder(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoCredential) {
			slog.Debug("skipping reminder completion, no credential",
				"reminder_id", id,
			)
		} else {
			slog.Error("failed to complete reminder",
				"reminder_id", id,
				"error", err,
			)
		}

		return false
	}

	s.mu.Lock()

	for _, r := range s.reminders {
		if r.ID() == id {
			if err := r.MarkCompleted(); err != nil && !errors.Is(err, domain.ErrAlreadyCompleted) {
				slog.Warn("failed to mark cached reminder completed",
					"reminder_id", id,
					"error", err,
				)
			}
		}
	}

	snapshot := s.cacheSnapshotLocked()
	subs := append([]subscription(nil), s.updateSubs...)
	s.mu.Unlock()

	slog.Info("reminder completed",
		"reminder_id", id,
	)

	notifyAll(subs, snapshot)

	return true
}

// DeleteReminder performs the remote deletion, removes the reminder from
// the cache and from the acknowledged set (it can no longer be due), and
// fans the new list out to update subscribers.
func (s *Service) DeleteReminder(ctx context.Context, id domain.ReminderID) bool {
	if err := s.gateway.DeleteReminder(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoCredential) {
			slog.Debug("skipping reminder deletion, no credential",
				"reminder_id", id,
			)
		} else {
			slog.Error("failed to delete reminder",
				"reminder_id", id,
				"error", err,
			)
		}

		return false
	}

	s.mu.Lock()

	kept := s.reminders[:0]

	for _, r := range s.reminders {
		if r.ID() != id {
			kept = append(kept, r)
		}
	}

	s.reminders = kept

	var ackedCopy map[domain.ReminderID]struct{}

	if _, acked := s.acked[id]; acked {
		delete(s.acked, id)

		ackedCopy = s.ackedSnapshotLocked()
	}

	snapshot := s.cacheSnapshotLocked()
	subs := append([]subscription(nil), s.updateSubs...)
	s.mu.Unlock()

	if ackedCopy != nil {
		s.persistAcks(ctx, ackedCopy)
	}

	slog.Info("reminder deleted",
		"reminder_id", id,
	)

	notifyAll(subs, snapshot)

	return true
}

// SubscribeToDueReminders registers a callback for each batch of newly-due
// reminders. The returned function unsubscribes.
func (s *Service) SubscribeToDueReminders(fn Handler) func() {
	sub := subscription{id: uuid.New(), fn: fn}

	s.mu.Lock()
	s.dueSubs = append(s.dueSubs, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.dueSubs = removeSubscription(s.dueSubs, sub.id)
		s.mu.Unlock()
	}
}

// SubscribeToUpdates registers a callback for cache changes. The callback
// is invoked immediately with the current snapshot so a newly-mounted view
// renders without waiting for the next poll, then again after every fetch
// and every local mutation.
func (s *Service) SubscribeToUpdates(fn Handler) func() {
	sub := subscription{id: uuid.New(), fn: fn}

	s.mu.Lock()
	s.updateSubs = append(s.updateSubs, sub)
	snapshot := s.cacheSnapshotLocked()
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		s.updateSubs = removeSubscription(s.updateSubs, sub.id)
		s.mu.Unlock()
	}
}

// Reminders returns a snapshot of the cached reminder list.
func (s *Service) Reminders() []*domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cacheSnapshotLocked()
}

// DueReminders returns the cached reminders whose scheduled time has
// passed and that are not completed, regardless of acknowledgement.
func (s *Service) DueReminders() []*domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	due := make([]*domain.Reminder, 0)

	for _, r := range s.reminders {
		if r.IsDueAt(now) {
			due = append(due, r)
		}
	}

	return due
}

// IsAcknowledged reports whether the reminder has already produced a
// notification.
func (s *Service) IsAcknowledged(id domain.ReminderID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.acked[id]

	return ok
}

// LastFetchTime returns the time of the last successful fetch, zero when
// none has succeeded yet.
func (s *Service) LastFetchTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastFetch
}

func (s *Service) persistAcks(ctx context.Context, ids map[domain.ReminderID]struct{}) {
	if err := s.acks.Save(ctx, ids); err != nil {
		slog.Error("failed to persist acknowledged reminders",
			"error", err,
		)
	}
}

func (s *Service) cacheSnapshotLocked() []*domain.Reminder {
	return append([]*domain.Reminder(nil), s.reminders...)
}

func (s *Service) ackedSnapshotLocked() map[domain.ReminderID]struct{} {
	copied := make(map[domain.ReminderID]struct{}, len(s.acked))
	for id := range s.acked {
		copied[id] = struct{}{}
	}

	return copied
}

func notifyAll(subs []subscription, reminders []*domain.Reminder) {
	for _, sub := range subs {
		sub.fn(reminders)
	}
}

func removeSubscription(subs []subscription, id uuid.UUID) []subscription {
	kept := subs[:0]

	for _, sub := range subs {
		if sub.id != id {
			kept = append(kept, sub)
		}
	}

	return kept
}
