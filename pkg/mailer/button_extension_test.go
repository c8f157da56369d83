package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestButtonExtension(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))

	tests := []struct {
		name        string
		source      string
		contains    []string
		notContains []string
	}{
		{
			name:     "renders button",
			source:   `[!button|Click Me](https://example.com)`,
			contains: []string{`<a href="https://example.com" class="btn">Click Me</a>`},
		},
		{
			name:        "escapes html",
			source:      `[!button|<script>alert("xss")</script>](https://example.com)`,
			contains:    []string{"&lt;script&gt;"},
			notContains: []string{"<script>"},
		},
		{
			name:     "keeps query params",
			source:   `[!button|Verify](https://example.com/verify?token=abc&id=1)`,
			contains: []string{`href="https://example.com/verify?token=abc&amp;id=1"`},
		},
		{
			name:        "regular links untouched",
			source:      `[Docs](https://example.com/docs)`,
			contains:    []string{`<a href="https://example.com/docs">Docs</a>`},
			notContains: []string{`class="btn"`},
		},
		{
			name:        "incomplete button is plain text",
			source:      `[!button|Broken](https://example.com`,
			notContains: []string{`class="btn"`},
		},
		{
			name:   "surrounding markdown",
			source: "# Welcome\n\nPlease verify:\n\n[!button|Verify Email](https://example.com/verify)\n\nThanks!",
			contains: []string{
				"<h1>Welcome</h1>",
				`<a href="https://example.com/verify" class="btn">Verify Email</a>`,
				"<p>Thanks!</p>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, md.Convert([]byte(tt.source), &buf))
			for _, s := range tt.contains {
				require.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notContains {
				require.NotContains(t, buf.String(), s)
			}
		})
	}
}
