package mailer

import (
	"context"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once

	blockTags  = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr|table|ul|ol|blockquote)>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText strips all markup from an HTML body, keeping block boundaries as newlines.
func HTMLToText(s string) string {
	strictPolicyOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()
	})

	s = blockTags.ReplaceAllStringFunc(s, func(tag string) string { return tag + "\n" })
	s = html.UnescapeString(strictPolicy.Sanitize(s))

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(s)
}

// textFromHTML is a stream plugin that fills an empty Text body from HTML.
func textFromHTML(_ context.Context, msg *Message) error {
	if msg.Text == "" && msg.HTML != "" {
		msg.Text = HTMLToText(msg.HTML)
	}
	return nil
}
