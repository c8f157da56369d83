package resend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

func TestNew_ValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{APIKey: "re_123", SenderEmail: "not-an-email"})
	require.ErrorIs(t, err, ErrInvalidConfig)

	tr, err := New(Config{APIKey: "re_123", SenderEmail: "team@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "resend", tr.Name())
}

func TestTransport_Request(t *testing.T) {
	t.Parallel()

	tr, err := New(Config{APIKey: "re_123", SenderEmail: "team@example.com", SenderName: "Team"})
	require.NoError(t, err)

	req := tr.request(&mailer.Message{
		To:          []string{"user@example.com"},
		CC:          []string{"cc@example.com"},
		Subject:     "Welcome",
		HTML:        "<p>hi</p>",
		Text:        "hi",
		Tags:        mailer.Tags{"welcome": struct{}{}},
		Attachments: []mailer.Attachment{{Filename: "a.pdf", ContentType: "application/pdf", Content: []byte("x")}},
	})

	assert.Equal(t, "Team <team@example.com>", req.From)
	assert.Equal(t, []string{"user@example.com"}, req.To)
	assert.Equal(t, []string{"cc@example.com"}, req.Cc)
	assert.Equal(t, "<p>hi</p>", req.Html)
	require.Len(t, req.Tags, 1)
	assert.Equal(t, "true", req.Tags[0].Value)
	require.Len(t, req.Attachments, 1)
	assert.Equal(t, "a.pdf", req.Attachments[0].Filename)

	req = tr.request(&mailer.Message{From: "other@example.com", To: []string{"user@example.com"}})
	assert.Equal(t, "other@example.com", req.From)
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", tagValue(struct{}{}))
	assert.Equal(t, "true", tagValue(nil))
	assert.Equal(t, "v", tagValue("v"))
	assert.Equal(t, "false", tagValue(false))
	assert.Equal(t, "42", tagValue(42))
	assert.Equal(t, "1.5", tagValue(1.5))
	assert.Equal(t, "1s", tagValue(time.Second))
}
