package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// MarkdownTemplate is a markdown template split into frontmatter metadata and body.
type MarkdownTemplate struct {
	Metadata map[string]any
	Body     string
}

// ParseMarkdown splits content into YAML front matter and body.
// Front matter is optional; when present it is enclosed by two "---" lines.
func ParseMarkdown(content []byte) (*MarkdownTemplate, error) {
	first, rest := nextLine(content)
	if !isDelimiter(first) {
		return &MarkdownTemplate{Metadata: map[string]any{}, Body: string(content)}, nil
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	head := rest
	for len(rest) > 0 {
		var line []byte
		consumed := len(head) - len(rest)
		line, rest = nextLine(rest)
		if !isDelimiter(line) {
			continue
		}

		metadata := map[string]any{}
		if raw := head[:consumed]; len(bytes.TrimSpace(raw)) > 0 {
			if err := yaml.Unmarshal(raw, &metadata); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
			}
		}
		return &MarkdownTemplate{Metadata: metadata, Body: string(rest)}, nil
	}

	return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
}

// nextLine returns the first line of b without its terminator, and the remainder.
func nextLine(b []byte) (line, rest []byte) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil
	}
	return b[:i], b[i+1:]
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, "\r")) == frontmatterDelim
}
