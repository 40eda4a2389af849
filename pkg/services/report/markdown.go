package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a markdown report to an HTML fragment. Raw HTML in the
// input is not passed through.
func RenderHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// CleanMarkdown trims generated text and strips an outer code fence.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return cleaned
	}

	cleaned = strings.TrimSuffix(cleaned, "```")
	firstLine, rest, found := strings.Cut(cleaned, "\n")
	if !found {
		return strings.TrimSpace(strings.TrimPrefix(firstLine, "```"))
	}
	// The opening fence may carry a language tag, e.g. ```markdown.
	return strings.TrimSpace(rest)
}
