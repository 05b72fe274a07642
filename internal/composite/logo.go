package composite

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"animebooth/internal/apperr"
)

// svgRasterSize is the square the SVG logo is rasterized at before being
// scaled to the per-image overlay size.
const svgRasterSize = 512

// loadLogo reads the brand mark from disk. SVG assets are rasterized; anything
// else goes through the stdlib image decoders.
func loadLogo(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "brand logo asset missing: %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return rasterizeSVG(f)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "could not decode logo asset %s", path)
	}
	return img, nil
}

func rasterizeSVG(f *os.File) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "could not parse SVG logo")
	}

	icon.SetTarget(0, 0, svgRasterSize, svgRasterSize)
	rgba := image.NewRGBA(image.Rect(0, 0, svgRasterSize, svgRasterSize))
	scanner := rasterx.NewScannerGV(svgRasterSize, svgRasterSize, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(svgRasterSize, svgRasterSize, scanner), 1.0)
	return rgba, nil
}
