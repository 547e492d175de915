package order

import (
	"context"
	"sync"
	"time"

	"foodwala-storefront/shop-svc/internal/domain"

	"go.uber.org/zap"
)

// Sink receives a copy of every dispatched order. Sinks are best effort.
type Sink interface {
	Name() string
	LogOrder(ctx context.Context, summary domain.OrderSummary) error
}

// LogResult is the outcome of one sink call. A failed call never affects
// the checkout that triggered it.
type LogResult struct {
	Sink     string
	Err      error
	Duration time.Duration
}

func (r LogResult) OK() bool {
	return r.Err == nil
}

type Handoff struct {
	Reference string
	ChatURL   string
	ChatText  string
	// Logged yields one result per sink and is closed when all have finished.
	Logged <-chan LogResult
}

type Dispatcher struct {
	composer *Composer
	sinks    []Sink
	timeout  time.Duration
	logger   *zap.Logger
}

func NewDispatcher(composer *Composer, sinks []Sink, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		composer: composer,
		sinks:    sinks,
		timeout:  timeout,
		logger:   logger.With(zap.String("component", "dispatcher")),
	}
}

// Dispatch starts the logging calls in the background and returns the chat
// handoff immediately. The logging calls outlive ctx's cancellation but are
// bounded by the dispatcher timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, summary domain.OrderSummary) Handoff {
	results := make(chan LogResult, len(d.sinks))
	background := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for _, sink := range d.sinks {
		wg.Add(1)
		go func(sink Sink) {
			defer wg.Done()
			results <- d.logTo(background, sink, summary)
		}(sink)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	text := d.composer.RenderChatText(summary)
	return Handoff{
		Reference: summary.Reference,
		ChatURL:   d.composer.ChatLink(summary),
		ChatText:  text,
		Logged:    results,
	}
}

func (d *Dispatcher) logTo(ctx context.Context, sink Sink, summary domain.OrderSummary) LogResult {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := sink.LogOrder(ctx, summary)
	result := LogResult{Sink: sink.Name(), Err: err, Duration: time.Since(start)}

	if err != nil {
		d.logger.Warn("order log failed",
			zap.String("sink", result.Sink),
			zap.String("reference", summary.Reference),
			zap.Error(err))
	} else {
		d.logger.Debug("order logged",
			zap.String("sink", result.Sink),
			zap.String("reference", summary.Reference),
			zap.Duration("took", result.Duration))
	}
	return result
}
