package redisqueue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// ErrInvalidEnvelope is returned when a queued payload cannot be decoded.
var ErrInvalidEnvelope = errors.New("redisqueue: invalid envelope")

// Envelope is the queued representation of a message.
type Envelope struct {
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Message    *mailer.Message `json:"message"`
	ID         string          `json:"id"`
}

func encode(env Envelope) ([]byte, error) {
	msg := *env.Message
	// Template data was consumed by rendering and may not be JSON-safe.
	msg.Context = nil
	if len(msg.Tags) > 0 {
		tags := make(mailer.Tags, len(msg.Tags))
		for k, v := range msg.Tags {
			if _, presence := v.(struct{}); presence {
				v = nil
			}
			tags[k] = v
		}
		msg.Tags = tags
	}
	env.Message = &msg

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("redisqueue: encode envelope: %w", err)
	}
	return data, nil
}

func decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, errors.Join(ErrInvalidEnvelope, err)
	}
	if env.Message == nil {
		return env, fmt.Errorf("%w: missing message", ErrInvalidEnvelope)
	}
	return env, nil
}
