package pages

import (
	"context"
	"strings"
	"testing"
)

func TestHomePageHasBoothControls(t *testing.T) {
	var sb strings.Builder
	if err := HomePage().Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := sb.String()

	for _, id := range []string{
		`id="video"`, `id="start-btn"`, `id="switch-btn"`, `id="capture-btn"`,
		`id="save-btn"`, `id="share-btn"`, `id="retry-btn"`,
	} {
		if !strings.Contains(html, id) {
			t.Errorf("home page missing %s", id)
		}
	}
	if !strings.Contains(html, "/web/static/app.js") {
		t.Error("home page should load the capture client")
	}
}

func TestGalleryPageHasGrid(t *testing.T) {
	var sb strings.Builder
	if err := GalleryPage().Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := sb.String()

	if !strings.Contains(html, `id="gallery-grid"`) {
		t.Error("gallery page missing the grid container")
	}
	if !strings.Contains(html, "/web/static/gallery.js") {
		t.Error("gallery page should load the gallery client")
	}
}
