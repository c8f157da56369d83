package redisqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/mailer/pkg/logger"
	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// requeueTimeout bounds the write that returns an interrupted payload to the queue.
const requeueTimeout = 5 * time.Second

// Relay moves queued messages to a delivery transport.
type Relay struct {
	client      redis.Cmdable
	next        mailer.Transport
	logger      *slog.Logger
	key         string
	baseDelay   time.Duration
	pollTimeout time.Duration
	maxRetries  uint64
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithRelayLogger sets the relay logger.
// Default: logger.NewNope().
func WithRelayLogger(l *slog.Logger) RelayOption {
	return func(r *Relay) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRetry sets the number of delivery retries and the initial backoff.
// Default: 5 retries starting at 500ms.
func WithRetry(maxRetries uint64, baseDelay time.Duration) RelayOption {
	return func(r *Relay) {
		r.maxRetries = maxRetries
		if baseDelay > 0 {
			r.baseDelay = baseDelay
		}
	}
}

// WithPollTimeout sets how long BLPOP blocks before checking ctx again.
// Default: 5s.
func WithPollTimeout(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.pollTimeout = d
		}
	}
}

// NewRelay creates a relay reading key and delivering through next.
func NewRelay(client redis.Cmdable, key string, next mailer.Transport, opts ...RelayOption) *Relay {
	if key == "" {
		key = DefaultKey
	}
	r := &Relay{
		client:      client,
		next:        next,
		logger:      logger.NewNope(),
		key:         key,
		baseDelay:   500 * time.Millisecond,
		pollTimeout: 5 * time.Second,
		maxRetries:  5,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes the queue until ctx is canceled.
func (r *Relay) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "mail relay started",
		slog.String("key", r.key),
		slog.String("transport", r.next.Name()),
	)
	defer r.logger.InfoContext(ctx, "mail relay stopped")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		res, err := r.client.BLPop(ctx, r.pollTimeout, r.key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("redisqueue: pop from %s: %w", r.key, err)
		}

		// BLPOP returns [key, value].
		payload := []byte(res[1])
		if err := r.handle(ctx, payload); err != nil {
			r.park(ctx, payload, err)
		}
	}
}

// park writes a payload that could not be delivered back to Redis.
// A delivery interrupted by shutdown goes back to the head of the queue;
// anything else goes to the dead-letter list. The write does not use the
// canceled ctx, so a popped payload is never dropped on shutdown.
func (r *Relay) park(ctx context.Context, payload []byte, cause error) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requeueTimeout)
	defer cancel()

	if ctx.Err() != nil {
		r.logger.WarnContext(wctx, "mail relay interrupted, requeueing", slog.Any("error", cause))
		if err := r.client.LPush(wctx, r.key, payload).Err(); err != nil {
			r.logger.ErrorContext(wctx, "mail relay requeue failed", slog.Any("error", err))
		}
		return
	}

	r.logger.ErrorContext(wctx, "mail relay delivery failed", slog.Any("error", cause))
	if err := r.client.RPush(wctx, r.failedKey(), payload).Err(); err != nil {
		r.logger.ErrorContext(wctx, "mail relay dead-letter push failed", slog.Any("error", err))
	}
}

func (r *Relay) failedKey() string { return r.key + ":failed" }

// handle decodes one payload and delivers it, retrying transport failures.
func (r *Relay) handle(ctx context.Context, payload []byte) error {
	env, err := decode(payload)
	if err != nil {
		return err
	}

	b := retry.WithMaxRetries(r.maxRetries, retry.NewFibonacci(r.baseDelay))

	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		res, err := r.next.Send(ctx, env.Message)
		if err != nil {
			r.logger.WarnContext(ctx, "mail relay attempt failed",
				slog.String("envelope_id", env.ID),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
			return retry.RetryableError(err)
		}

		attrs := []any{slog.String("envelope_id", env.ID), slog.Int("attempt", attempt)}
		if res != nil {
			attrs = append(attrs, slog.String("message_id", res.MessageID))
		}
		r.logger.DebugContext(ctx, "mail relayed", attrs...)
		return nil
	})
}
