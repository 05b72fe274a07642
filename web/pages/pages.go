// Package pages holds the server-rendered pages. Components are plain
// templ.Component values, so the HTTP layer renders them the same way
// regardless of how the markup is produced.
package pages

import (
	"context"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// buttonClasses merges the shared button styling with per-button overrides,
// letting the override win on conflicting utilities.
func buttonClasses(extra string) string {
	return twmerge.Merge("btn px-4 py-2 rounded-lg bg-indigo-600 text-white", extra)
}

func layout(title string, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>`+title+`</title>
  <link rel="stylesheet" href="/web/static/style.css">
</head>
<body>
`+body+`
</body>
</html>
`)
		return err
	})
}

// HomePage is the photo booth itself: camera viewfinder, capture controls, and
// the result panel. All interaction lives in app.js.
func HomePage() templ.Component {
	return layout("Anime Photo Booth", `  <main class="booth">
    <h1>Anime Photo Booth</h1>
    <div id="camera-container">
      <video id="video" autoplay playsinline muted></video>
      <canvas id="canvas" hidden></canvas>
      <img id="result" alt="" hidden>
      <div id="status" role="status"></div>
    </div>
    <div class="controls">
      <button id="start-btn" class="`+buttonClasses("")+`">Start Camera</button>
      <button id="switch-btn" class="`+buttonClasses("bg-slate-600")+`" hidden>Switch Camera</button>
      <button id="capture-btn" class="`+buttonClasses("bg-rose-600")+`" hidden>Take Photo</button>
      <button id="save-btn" class="`+buttonClasses("bg-emerald-600")+`" hidden>Save</button>
      <button id="share-btn" class="`+buttonClasses("bg-sky-600")+`" hidden>Share</button>
      <button id="retry-btn" class="`+buttonClasses("bg-slate-600")+`" hidden>Try Again</button>
    </div>
    <p class="hint"><a href="/gallery">View gallery</a></p>
  </main>
  <script src="/web/static/app.js"></script>
`)
}

// GalleryPage is a shell; the grid is filled client-side from the gallery API
// so the page never goes stale between captures.
func GalleryPage() templ.Component {
	return layout("Gallery - Anime Photo Booth", `  <main class="booth">
    <h1>Gallery</h1>
    <div id="gallery-grid" class="gallery-grid"></div>
    <p class="hint"><a href="/">Back to the booth</a></p>
  </main>
  <script src="/web/static/gallery.js"></script>
`)
}
