package mailer

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
// Transports that support only tag names (e.g. SMTP headers) ignore the values.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Message is a mail request. Delivery fields are passed to the transport as is;
// Template and Context drive rendering when HTML is empty.
type Message struct {
	Context     any               // Data passed to the template engine
	Headers     map[string]string // Custom headers
	Tags        Tags              // Provider-specific tags/categories
	Template    string            // Template base name without extension (e.g., "welcome")
	Subject     string            // Email subject
	HTML        string            // HTML body; when set, no template is rendered
	Text        string            // Plain text alternative
	From        string            // Sender address
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients
	CC          []string          // Carbon copy recipients
	BCC         []string          // Blind carbon copy recipients
	Attachments []Attachment      // File attachments
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Optional Content-ID for inline attachments
	Content     []byte // Raw file content
}

// SendResult is what a transport reports after accepting a message.
type SendResult struct {
	MessageID string   // Provider or generated message identifier
	Response  string   // Raw provider/server response, if any
	Accepted  []string // Recipients accepted for delivery
}

// Recipients returns all envelope recipients (To, CC, BCC) without duplicates.
func (m *Message) Recipients() []string {
	all := make([]string, 0, len(m.To)+len(m.CC)+len(m.BCC))
	all = append(all, m.To...)
	all = append(all, m.CC...)
	all = append(all, m.BCC...)
	return lo.Uniq(all)
}

// clone returns a copy of the message that can be mutated without affecting m.
// Context is shared: it is read-only input for the renderer.
func (m *Message) clone() *Message {
	c := *m
	c.Headers = maps.Clone(m.Headers)
	c.Tags = maps.Clone(m.Tags)
	c.To = slices.Clone(m.To)
	c.CC = slices.Clone(m.CC)
	c.BCC = slices.Clone(m.BCC)
	c.Attachments = slices.Clone(m.Attachments)
	return &c
}

// applyDefaults fills zero-valued fields of m from d.
// Headers and tags are merged key-wise; keys already present on m win.
// HTML is never taken from defaults, otherwise no message would be rendered.
func (m *Message) applyDefaults(d *Message) {
	if d == nil {
		return
	}

	if m.From == "" {
		m.From = d.From
	}
	if m.ReplyTo == "" {
		m.ReplyTo = d.ReplyTo
	}
	if m.Subject == "" {
		m.Subject = d.Subject
	}
	if m.Text == "" {
		m.Text = d.Text
	}
	if m.Template == "" {
		m.Template = d.Template
	}
	if m.Context == nil {
		m.Context = d.Context
	}
	if len(m.To) == 0 {
		m.To = slices.Clone(d.To)
	}
	if len(m.CC) == 0 {
		m.CC = slices.Clone(d.CC)
	}
	if len(m.BCC) == 0 {
		m.BCC = slices.Clone(d.BCC)
	}
	if len(d.Headers) > 0 {
		m.Headers = lo.Assign(d.Headers, m.Headers)
	}
	if len(d.Tags) > 0 {
		m.Tags = lo.Assign(d.Tags, m.Tags)
	}
	if len(d.Attachments) > 0 {
		m.Attachments = append(slices.Clone(d.Attachments), m.Attachments...)
	}
}
