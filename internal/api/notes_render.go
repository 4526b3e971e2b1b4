package api

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// notesRenderer turns markdown day notes into HTML that is safe to embed.
type notesRenderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func newNotesRenderer() *notesRenderer {
	return &notesRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (renderer *notesRenderer) Render(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := renderer.markdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return string(renderer.sanitizer.SanitizeBytes(buf.Bytes())), nil
}
