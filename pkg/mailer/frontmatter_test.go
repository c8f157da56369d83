package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantSubject any
		wantBody    string
		wantErr     error
	}{
		{
			name:        "frontmatter and body",
			content:     "---\nSubject: Welcome Email\n---\n# Hello\n\nBody.\n",
			wantSubject: "Welcome Email",
			wantBody:    "# Hello\n\nBody.\n",
		},
		{
			name:     "no frontmatter",
			content:  "# Hello\n\nplain markdown",
			wantBody: "# Hello\n\nplain markdown",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n---\nBody content here.",
			wantBody: "Body content here.",
		},
		{
			name:        "windows line endings",
			content:     "---\r\nSubject: Test\r\n---\r\nBody",
			wantSubject: "Test",
			wantBody:    "Body",
		},
		{
			name:     "empty content",
			content:  "",
			wantBody: "",
		},
		{
			name:    "missing closing delimiter",
			content: "---\nSubject: Test\nBody without closing delimiter",
			wantErr: ErrInvalidFrontmatter,
		},
		{
			name:    "nothing after opening delimiter",
			content: "---",
			wantErr: ErrInvalidFrontmatter,
		},
		{
			name:    "invalid yaml",
			content: "---\nSubject: Test\nBroken: [unclosed\n---\nBody",
			wantErr: ErrInvalidFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseMarkdown([]byte(tt.content))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, tmpl)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantBody, tmpl.Body)
			if tt.wantSubject == nil {
				require.Empty(t, tmpl.Metadata)
			} else {
				require.Equal(t, tt.wantSubject, tmpl.Metadata["Subject"])
			}
		})
	}
}

func TestParseMarkdown_BodyContainsDelimiter(t *testing.T) {
	t.Parallel()

	content := "---\nSubject: Code Example\n---\nExample:\n\n```\n---\nkey: value\n---\n```\n"

	tmpl, err := ParseMarkdown([]byte(content))
	require.NoError(t, err)
	require.Equal(t, "Code Example", tmpl.Metadata["Subject"])
	require.Contains(t, tmpl.Body, "key: value")
}
