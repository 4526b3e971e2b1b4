package api

import (
	"strings"
	"testing"
)

func TestNotesRendererSanitizesMarkdown(t *testing.T) {
	renderer := newNotesRenderer()

	rendered, err := renderer.Render("Felt *better*\n<img src=x onerror=alert(1)>\nhttps://example.com")
	if err != nil {
		t.Fatalf("render notes: %v", err)
	}
	if !strings.Contains(rendered, "<em>better</em>") {
		t.Fatalf("expected emphasis, got %q", rendered)
	}
	if strings.Contains(rendered, "onerror") {
		t.Fatalf("expected event handler stripped, got %q", rendered)
	}
	if !strings.Contains(rendered, `href="https://example.com"`) {
		t.Fatalf("expected linkified url, got %q", rendered)
	}
}

func TestNotesRendererSkipsBlankNotes(t *testing.T) {
	rendered, err := newNotesRenderer().Render("  \n ")
	if err != nil {
		t.Fatalf("render notes: %v", err)
	}
	if rendered != "" {
		t.Fatalf("expected empty output, got %q", rendered)
	}
}
