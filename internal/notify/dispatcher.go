// AngelaMos | 2026
// dispatcher.go

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultWorkers   = 2
	defaultQueueSize = 256
	tracerName       = "eloska/notify"
)

var ErrDispatcherClosed = errors.New("dispatcher closed")

type DispatcherConfig struct {
	From       string
	Recipients []string
	Timeout    time.Duration
	Workers    int
	QueueSize  int
}

// Dispatcher delivers notifications through an ordered list of transports,
// falling through to the next on error and ending at the log. Enqueued
// events are processed by a bounded pool of workers so the request that
// produced them never waits on delivery.
type Dispatcher struct {
	cfg        DispatcherConfig
	renderer   *Renderer
	transports []Transport
	fallback   Transport
	logger     *slog.Logger

	queue  chan Event
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool

	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewDispatcher(
	cfg DispatcherConfig,
	renderer *Renderer,
	transports []Transport,
	logger *slog.Logger,
) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		cfg:        cfg,
		renderer:   renderer,
		transports: transports,
		fallback:   NewLogTransport(logger),
		logger:     logger,
		queue:      make(chan Event, cfg.QueueSize),
		baseCtx:    ctx,
		cancel:     cancel,
	}
}

// Channels lists the configured transports in the order they are tried.
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.transports)+1)
	for _, t := range d.transports {
		names = append(names, t.Name())
	}
	return append(names, d.fallback.Name())
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Enqueue never blocks. When the queue is full or the dispatcher is
// shutting down the event goes straight to the log channel.
func (d *Dispatcher) Enqueue(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, logging notification",
			"kind", ev.Kind,
		)
		d.logOnly(ev)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("notification queue full, logging notification",
			"kind", ev.Kind,
			"queue_size", d.cfg.QueueSize,
		)
		d.logOnly(ev)
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for ev := range d.queue {
		d.process(id, ev)
	}
}

func (d *Dispatcher) process(worker int, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("notification worker panic",
				"worker", worker,
				"kind", ev.Kind,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
		}
	}()

	d.Notify(d.baseCtx, ev)
}

// Notify delivers ev synchronously and reports the channel that took it.
// It always succeeds because the log channel cannot fail.
func (d *Dispatcher) Notify(ctx context.Context, ev Event) Result {
	subject, body, err := d.renderer.Render(ev)
	if err != nil {
		d.logger.Error("render notification",
			"kind", ev.Kind,
			"error", err,
		)
		return d.deliverFallback(ctx, Message{
			From:    d.cfg.From,
			To:      d.cfg.Recipients,
			ReplyTo: ev.ReplyTo,
			Subject: string(ev.Kind),
			Kind:    ev.Kind,
			Fields:  ev.Data,
		})
	}

	msg := Message{
		From:    d.cfg.From,
		To:      d.cfg.Recipients,
		ReplyTo: ev.ReplyTo,
		Subject: subject,
		HTML:    body,
		Kind:    ev.Kind,
		Fields:  ev.Data,
	}

	if len(msg.To) == 0 {
		d.logger.Warn("no notification recipients configured",
			"kind", ev.Kind,
		)
		return d.deliverFallback(ctx, msg)
	}

	for _, t := range d.transports {
		if err := d.attempt(ctx, t, msg); err != nil {
			d.logger.Warn("notification channel failed",
				"channel", t.Name(),
				"kind", ev.Kind,
				"to", redactAll(msg.To),
				"error", err,
			)
			continue
		}

		d.logger.Info("notification delivered",
			"channel", t.Name(),
			"kind", ev.Kind,
			"to", redactAll(msg.To),
		)
		return Result{Delivered: true, Channel: t.Name()}
	}

	return d.deliverFallback(ctx, msg)
}

func (d *Dispatcher) attempt(ctx context.Context, t Transport, msg Message) (err error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	ctx, span := core.StartSpan(ctx, tracerName, "notify."+t.Name(),
		attribute.String("notify.channel", t.Name()),
		attribute.Int("notify.recipients", len(msg.To)),
	)
	defer func() { core.EndSpan(span, err) }()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("transport %s panicked: %v", t.Name(), rec)
		}
	}()

	return t.Send(ctx, msg)
}

func (d *Dispatcher) deliverFallback(ctx context.Context, msg Message) Result {
	_ = d.fallback.Send(ctx, msg) //nolint:errcheck // log channel never fails
	return Result{Delivered: true, Channel: d.fallback.Name()}
}

func (d *Dispatcher) logOnly(ev Event) {
	subject, body, err := d.renderer.Render(ev)
	if err != nil {
		subject = string(ev.Kind)
	}
	d.deliverFallback(context.Background(), Message{
		From:    d.cfg.From,
		To:      d.cfg.Recipients,
		ReplyTo: ev.ReplyTo,
		Subject: subject,
		HTML:    body,
		Kind:    ev.Kind,
		Fields:  ev.Data,
	})
}

// Shutdown stops accepting events and waits for queued ones to finish.
// When ctx expires first, in-flight attempts are cancelled so the
// remaining events drain through the log channel.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return fmt.Errorf("drain notification queue: %w", ctx.Err())
	}
}
