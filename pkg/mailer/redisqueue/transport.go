package redisqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// DefaultKey is the list used when no key is given.
const DefaultKey = "mailer:outbox"

// Transport implements mailer.Transport by appending messages to a Redis list.
type Transport struct {
	client redis.Cmdable
	key    string
}

// New creates a queue transport writing to key (DefaultKey if empty).
func New(client redis.Cmdable, key string) *Transport {
	if key == "" {
		key = DefaultKey
	}
	return &Transport{client: client, key: key}
}

// Name implements mailer.Transport.
func (t *Transport) Name() string { return "redis" }

// Send implements mailer.Transport. The message is accepted once it is queued.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	env := Envelope{
		ID:         uuid.NewString(),
		EnqueuedAt: time.Now().UTC(),
		Message:    msg,
	}

	data, err := encode(env)
	if err != nil {
		return nil, err
	}

	if err := t.client.RPush(ctx, t.key, data).Err(); err != nil {
		return nil, fmt.Errorf("redisqueue: push to %s: %w", t.key, err)
	}

	return &mailer.SendResult{
		MessageID: env.ID,
		Accepted:  msg.Recipients(),
		Response:  "queued",
	}, nil
}

// Close closes the underlying client if it supports it.
func (t *Transport) Close() error {
	if c, ok := t.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
