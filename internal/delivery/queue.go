package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/domain"
	"github.com/pscheid92/huella/internal/platform/correlation"
	"github.com/pscheid92/huella/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultInterval   = 1500 * time.Millisecond
	DefaultMaxRetries = 5
)

// Options tunes a Queue. Zero values fall back to the defaults.
type Options struct {
	Interval   time.Duration
	MaxRetries int
	Clock      clockwork.Clock
	Metrics    *metrics.DeliveryMetrics
}

// Queue is the outbound delivery queue. A nil sender puts the queue in drain mode:
// every tick discards whatever is pending.
type Queue struct {
	store      domain.QueueStore
	sender     domain.Sender
	clock      clockwork.Clock
	metrics    *metrics.DeliveryMetrics
	interval   time.Duration
	maxRetries int

	mu    sync.Mutex
	items []domain.QueueItem

	inFlight atomic.Bool
}

// New creates a queue and restores any items left in the store by a previous run.
// An unreadable slot is logged and treated as empty.
func New(ctx context.Context, store domain.QueueStore, sender domain.Sender, opts Options) *Queue {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	q := &Queue{
		store:      store,
		sender:     sender,
		clock:      opts.Clock,
		metrics:    opts.Metrics,
		interval:   opts.Interval,
		maxRetries: opts.MaxRetries,
	}

	items, err := store.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Delivery: failed to load queue, starting empty", "error", err)
		items = nil
	}
	q.items, err = q.restore(ctx, items)
	if err != nil {
		slog.ErrorContext(ctx, "Delivery: slot write failed after restore", "error", err)
	}
	if len(q.items) > 0 {
		slog.InfoContext(ctx, "Delivery: queue restored", "pending", len(q.items))
	}
	q.observeDepth()

	return q
}

// restore drops items that already used up their retries, either under a higher limit
// or in an older slot, and rewrites the slot if anything was dropped.
func (q *Queue) restore(ctx context.Context, items []domain.QueueItem) ([]domain.QueueItem, error) {
	kept := items[:0]
	for _, it := range items {
		if it.RetryCount >= q.maxRetries {
			slog.WarnContext(ctx, "Delivery: restored item over retry limit, discarding",
				"item_id", it.ID, "retries", it.RetryCount, "max_retries", q.maxRetries)
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == len(items) {
		return items, nil
	}
	if len(kept) == 0 {
		kept = nil
	}

	q.items = kept
	return kept, q.persistLocked(ctx)
}

// Enqueue appends a payload at the tail and persists the queue before returning.
// The item stays queued in memory even if persisting fails; the error is returned so the
// caller can log it, and the slot is rewritten on the next mutation.
func (q *Queue) Enqueue(ctx context.Context, payload domain.Payload) (domain.QueueItem, error) {
	normalized, err := normalizePayload(payload)
	if err != nil {
		return domain.QueueItem{}, err
	}

	item := domain.QueueItem{
		ID:         uuid.NewString(),
		Payload:    normalized,
		EnqueuedAt: q.clock.Now().UTC().Truncate(time.Millisecond),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, item)
	err = q.persistLocked(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Delivery: slot write failed on enqueue", "item_id", item.ID, "error", err)
	}
	q.observeDepthLocked()

	slog.DebugContext(ctx, "Delivery: item enqueued", "item_id", item.ID, "pending", len(q.items))
	return item, err
}

// Size returns the number of pending items.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Items returns a snapshot of the pending items in delivery order.
func (q *Queue) Items() []domain.QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.QueueItem, len(q.items))
	copy(out, q.items)
	return out
}

// Clear drops every pending item and persists the empty queue.
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := len(q.items)
	q.items = nil
	err := q.persistLocked(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Delivery: slot write failed on clear", "error", err)
	}
	q.observeDepthLocked()

	slog.InfoContext(ctx, "Delivery: queue cleared", "dropped", dropped)
	return err
}

// Run drives Tick on a fixed interval. It blocks until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) {
	ticker := q.clock.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			q.Tick(ctx)
		}
	}
}

// Tick performs at most one delivery attempt for the head item.
// Concurrent calls while an attempt is in flight return OutcomeIdle without sending.
func (q *Queue) Tick(ctx context.Context) domain.DeliveryOutcome {
	if !q.inFlight.CompareAndSwap(false, true) {
		return domain.OutcomeIdle
	}
	defer q.inFlight.Store(false)

	tickCtx := correlation.WithID(ctx, correlation.NewID())

	if q.sender == nil {
		return q.drain(tickCtx)
	}

	head, ok := q.head()
	if !ok {
		return domain.OutcomeIdle
	}

	spanCtx, span := tracing.StartSpan(tickCtx, "delivery.attempt",
		attribute.String("item.id", head.ID),
		attribute.Int("item.retries", head.RetryCount),
	)
	start := q.clock.Now()
	sendErr := q.sender.Send(spanCtx, head.Payload)
	tracing.End(span, sendErr)
	if q.metrics != nil {
		q.metrics.DeliveryDuration.Observe(q.clock.Since(start).Seconds())
	}

	outcome := q.settle(tickCtx, head, sendErr)
	if q.metrics != nil && outcome != domain.OutcomeIdle {
		q.metrics.Attempts.WithLabelValues(outcome.String()).Inc()
	}
	return outcome
}

func (q *Queue) head() (domain.QueueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return domain.QueueItem{}, false
	}
	return q.items[0], true
}

// settle applies the result of a delivery attempt. The head may have been removed by a
// concurrent Clear while the attempt was running; in that case nothing is changed.
func (q *Queue) settle(ctx context.Context, head domain.QueueItem, sendErr error) domain.DeliveryOutcome {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 || q.items[0].ID != head.ID {
		slog.DebugContext(ctx, "Delivery: head changed during attempt, ignoring result", "item_id", head.ID)
		return domain.OutcomeIdle
	}
	if ctx.Err() != nil && errors.Is(sendErr, context.Canceled) {
		slog.InfoContext(ctx, "Delivery: attempt interrupted by shutdown, keeping item", "item_id", head.ID)
		return domain.OutcomeIdle
	}

	var outcome domain.DeliveryOutcome
	item := q.items[0]
	q.items = q.items[1:]

	switch {
	case sendErr == nil:
		outcome = domain.OutcomeDelivered
		slog.InfoContext(ctx, "Delivery: item delivered", "item_id", item.ID, "pending", len(q.items))

	default:
		item.RetryCount++
		if item.RetryCount >= q.maxRetries {
			outcome = domain.OutcomeDiscarded
			slog.ErrorContext(ctx, "Delivery: item discarded after max retries", "item_id", item.ID, "retries", item.RetryCount, "error", sendErr)
		} else {
			outcome = domain.OutcomeRequeued
			q.items = append(q.items, item)
			slog.WarnContext(ctx, "Delivery: attempt failed, requeued", "item_id", item.ID, "retries", item.RetryCount, "max_retries", q.maxRetries, "error", sendErr)
		}
	}

	if err := q.persistLocked(ctx); err != nil {
		slog.ErrorContext(ctx, "Delivery: slot write failed", "error", err)
	}
	q.observeDepthLocked()
	return outcome
}

func (q *Queue) drain(ctx context.Context) domain.DeliveryOutcome {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return domain.OutcomeIdle
	}

	dropped := len(q.items)
	q.items = nil
	slog.WarnContext(ctx, "Delivery: no endpoint configured, discarding queue", "dropped", dropped)

	if err := q.persistLocked(ctx); err != nil {
		slog.ErrorContext(ctx, "Delivery: slot write failed", "error", err)
	}
	q.observeDepthLocked()
	if q.metrics != nil {
		q.metrics.Attempts.WithLabelValues(domain.OutcomeDrained.String()).Add(float64(dropped))
	}
	return domain.OutcomeDrained
}

func (q *Queue) persistLocked(ctx context.Context) error {
	snapshot := make([]domain.QueueItem, len(q.items))
	copy(snapshot, q.items)

	err := q.store.Save(ctx, snapshot)
	if q.metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		q.metrics.SlotWrites.WithLabelValues(result).Inc()
	}
	if err != nil {
		return fmt.Errorf("failed to persist queue: %w", err)
	}
	return nil
}

func (q *Queue) observeDepth() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.observeDepthLocked()
}

func (q *Queue) observeDepthLocked() {
	if q.metrics != nil {
		q.metrics.QueueDepth.Set(float64(len(q.items)))
	}
}

// normalizePayload gives the payload the same shape it has after a slot round trip, so
// the in-memory queue and a restored queue hold equal values.
func normalizePayload(payload domain.Payload) (domain.Payload, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payload is not serializable: %w", err)
	}
	var out domain.Payload
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("payload is not serializable: %w", err)
	}
	if out == nil {
		out = domain.Payload{}
	}
	return out, nil
}
