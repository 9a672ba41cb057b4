package photos

import (
	"testing"

	"pet-manager-admin/internal/ports/petapi"
)

func TestStaticURL_PicksHighestIDNonAnimated(t *testing.T) {
	got := StaticURL([]petapi.Attachment{
		{ID: 1, URL: "http://img/a.gif"},
		{ID: 2, URL: "http://img/b.png"},
	})
	if got != "http://img/b.png" {
		t.Fatalf("expected b.png, got %q", got)
	}

	// el id manda, no el orden del slice
	got = StaticURL([]petapi.Attachment{
		{ID: 9, URL: "http://img/nueva.png"},
		{ID: 2, URL: "http://img/vieja.png"},
	})
	if got != "http://img/nueva.png" {
		t.Fatalf("expected nueva.png, got %q", got)
	}
}

func TestStaticURL_OnlyAnimated_ReturnsEmpty(t *testing.T) {
	got := StaticURL([]petapi.Attachment{
		{ID: 1, URL: "http://img/a.gif"},
		{ID: 2, URL: "http://img/b.GIF"},
	})
	if got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestStaticURL_ContentTypeMarksAnimated(t *testing.T) {
	got := StaticURL([]petapi.Attachment{
		{ID: 1, URL: "http://img/raro.bin", ContentType: "image/gif"},
		{ID: 2, URL: "http://img/ok.jpg"},
	})
	if got != "http://img/ok.jpg" {
		t.Fatalf("expected ok.jpg, got %q", got)
	}
}

func TestStaticURL_IgnoresQueryStringForExtension(t *testing.T) {
	got := StaticURL([]petapi.Attachment{
		{ID: 1, URL: "http://img/a.gif?size=big"},
		{ID: 2, URL: "http://img/b.png?v=2"},
	})
	if got != "http://img/b.png?v=2" {
		t.Fatalf("expected b.png con query, got %q", got)
	}
}

func TestStaticURL_EmptyAndNil(t *testing.T) {
	if got := StaticURL(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
	if got := StaticURL([]petapi.Attachment{}); got != "" {
		t.Fatalf("expected empty for empty slice, got %q", got)
	}
	if got := StaticURL([]petapi.Attachment{{ID: 1, URL: "  "}}); got != "" {
		t.Fatalf("expected empty for blank url, got %q", got)
	}
}
