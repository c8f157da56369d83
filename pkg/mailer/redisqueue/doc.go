// Package redisqueue defers delivery through a Redis list.
//
// Transport renders nothing itself: the Mailer has already filled the HTML body
// when Send is called, so the queued envelope holds the final message. A Relay
// running elsewhere pops envelopes and forwards them to the real transport,
// retrying with Fibonacci backoff. Envelopes that still fail are pushed to
// "<key>:failed".
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	// producer
//	m, _ := mailer.New(mailer.Config{Transport: redisqueue.New(client, "mailer:outbox")})
//
//	// consumer
//	relay := redisqueue.NewRelay(client, "mailer:outbox", smtpTransport)
//	_ = relay.Run(ctx)
package redisqueue
