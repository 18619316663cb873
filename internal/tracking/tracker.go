// Package tracking keeps a single order's local view fresh for the live
// status page. Two independent producers feed one state cell: a periodic
// re-fetch of the full record, and a push subscription delivering the
// updated record directly. Neither producer is ordered with respect to the
// other; a per-record timestamp guard drops stale writes so a slow poll
// response cannot revert a newer pushed state.
package tracking

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"bhansa/internal/models"
	"bhansa/internal/repositories"
	"bhansa/internal/services"
)

// DefaultPollInterval is the production re-fetch cadence.
const DefaultPollInterval = 2 * time.Second

// UnsubscribeFunc cancels a push subscription.
type UnsubscribeFunc func() error

// SubscribeFunc registers handler for every event published under
// routingKey and returns the matching teardown. pkg/rabbitmq satisfies
// this shape; tests use an in-memory bus.
type SubscribeFunc func(routingKey string, handler func(payload []byte)) (UnsubscribeFunc, error)

// Tracker owns the local copy of one order. All writes funnel through
// apply, which holds the single lock and rejects records older than the
// one currently displayed.
type Tracker struct {
	orderID  string
	repo     repositories.OrderRepository
	interval time.Duration

	mu      sync.Mutex
	current models.Order
	seen    time.Time // updated_at of current; the staleness guard
	stopped bool
	updates chan models.Order

	cancel context.CancelFunc
	wg     sync.WaitGroup
	unsub  UnsubscribeFunc
}

// NewTracker fetches the order once synchronously, so the view is populated
// before either freshness mechanism ticks, then starts the poll loop and
// the push subscription. subscribe may be nil to run poll-only.
func NewTracker(orderID string, repo repositories.OrderRepository, subscribe SubscribeFunc, interval time.Duration) (*Tracker, error) {
	initial, err := repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		orderID:  orderID,
		repo:     repo,
		interval: interval,
		current:  *initial,
		seen:     initial.UpdatedAt,
		updates:  make(chan models.Order, 16),
		cancel:   cancel,
	}

	if subscribe != nil {
		unsub, err := subscribe(services.RoutingOrderUpdated(orderID), t.onPush)
		if err != nil {
			cancel()
			return nil, err
		}
		t.unsub = unsub
	}

	t.wg.Add(1)
	go t.pollLoop(ctx)

	return t, nil
}

// Snapshot returns the current view of the order.
func (t *Tracker) Snapshot() models.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Updates delivers each accepted write. The channel is closed by Stop.
// Slow consumers miss intermediate states but never block the producers;
// Snapshot always holds the newest accepted record.
func (t *Tracker) Updates() <-chan models.Order {
	return t.updates
}

// Stop tears down the poll timer and the push subscription together and
// closes the updates channel. It is idempotent, and no state write or
// channel send happens after it returns.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()

	if t.unsub != nil {
		if err := t.unsub(); err != nil {
			log.Printf("Warning: failed to unsubscribe tracker for order %s: %v", t.orderID, err)
		}
	}

	t.mu.Lock()
	close(t.updates)
	t.mu.Unlock()
}

// pollLoop re-fetches the full order every interval. Fetch failures are
// logged and skipped; the next tick or a push recovers.
func (t *Tracker) pollLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			order, err := t.repo.GetByID(t.orderID)
			if err != nil {
				log.Printf("Failed to poll order %s: %v", t.orderID, err)
				continue
			}
			t.apply(*order)
		}
	}
}

// onPush replaces the view with the pushed record directly, no re-fetch.
func (t *Tracker) onPush(payload []byte) {
	var order models.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		log.Printf("Failed to decode pushed order event: %v", err)
		return
	}
	if order.ID != t.orderID {
		return
	}
	t.apply(order)
}

// apply installs a record unless the tracker is stopped or the record is
// older than the held one. The send never blocks: the buffer absorbs
// bursts and anything beyond that is dropped in favour of Snapshot.
func (t *Tracker) apply(order models.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || order.UpdatedAt.Before(t.seen) {
		return
	}
	t.current = order
	t.seen = order.UpdatedAt

	select {
	case t.updates <- order:
	default:
	}
}
