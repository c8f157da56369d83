package logtransport_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailer/pkg/mailer"
	"github.com/dmitrymomot/mailer/pkg/mailer/logtransport"
)

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := logtransport.New(slog.New(slog.NewTextHandler(&buf, nil)), logtransport.WithBody())

	res, err := tr.Send(context.Background(), &mailer.Message{
		From:    "team@example.com",
		To:      []string{"test@example.com"},
		Subject: "Test Subject",
		HTML:    "<h1>Hello</h1>",
		Text:    "Hello",
	})
	require.NoError(t, err)
	assert.Len(t, res.MessageID, 36)
	assert.Equal(t, []string{"test@example.com"}, res.Accepted)

	out := buf.String()
	assert.Contains(t, out, "test@example.com")
	assert.Contains(t, out, "Test Subject")
	assert.Contains(t, out, "body=Hello")
	assert.Contains(t, out, "dev mode")
}

func TestTransport_WithMailer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m, err := mailer.New(mailer.Config{
		Transport: logtransport.New(slog.New(slog.NewJSONHandler(&buf, nil))),
		Defaults:  &mailer.Message{From: "team@example.com"},
	})
	require.NoError(t, err)

	res, err := m.Send(context.Background(), &mailer.Message{To: []string{"a@example.com"}, HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.MessageID)
	assert.Contains(t, buf.String(), `"from":"team@example.com"`)
	assert.NotContains(t, buf.String(), `"body"`)
}
