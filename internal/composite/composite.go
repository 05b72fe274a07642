// Package composite overlays a QR code and the brand logo onto a styled image.
// Both overlays are square, sized to 20% of the image's shorter dimension and
// inset from the bottom corners, so placement scales with whatever the
// provider returned rather than assuming a fixed canvas.
package composite

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"animebooth/internal/apperr"
)

const (
	// overlayFraction sizes each overlay relative to the shorter dimension.
	overlayFraction = 0.2

	// edgePadding insets both overlays from the image edges, in pixels.
	edgePadding = 20

	// jpegQuality for the final encode.
	jpegQuality = 92
)

// Compositor holds the loaded brand logo and produces final images.
type Compositor struct {
	logo image.Image
}

// New loads the logo asset at path (SVG or raster) and returns a Compositor.
// A missing or unreadable asset is a compositing failure, reported separately
// from provider errors for diagnosability.
func New(logoPath string) (*Compositor, error) {
	logo, err := loadLogo(logoPath)
	if err != nil {
		return nil, err
	}
	return &Compositor{logo: logo}, nil
}

// Layout computes the overlay rectangles for an image of the given dimensions:
// logo bottom-left, QR bottom-right, both square and equally sized.
func Layout(width, height int) (logo, qr image.Rectangle) {
	short := width
	if height < short {
		short = height
	}
	size := int(float64(short) * overlayFraction)
	logo = image.Rect(edgePadding, height-edgePadding-size, edgePadding+size, height-edgePadding)
	qr = image.Rect(width-edgePadding-size, height-edgePadding-size, width-edgePadding, height-edgePadding)
	return logo, qr
}

// Overlay decodes the styled image, stamps the QR code (encoding targetURL)
// and the logo at the computed positions, and returns the JPEG-encoded result.
func (c *Compositor) Overlay(styled []byte, targetURL string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(styled))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "could not read generated image metadata")
	}

	b := img.Bounds()
	logoRect, qrRect := Layout(b.Dx(), b.Dy())

	qrImg, err := renderQR(targetURL, qrRect.Dx())
	if err != nil {
		return nil, err
	}
	logoImg := imaging.Resize(c.logo, logoRect.Dx(), logoRect.Dy(), imaging.Lanczos)

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	draw.Draw(out, qrRect, qrImg, qrImg.Bounds().Min, draw.Over)
	draw.Draw(out, logoRect, logoImg, logoImg.Bounds().Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "could not encode final image")
	}
	return buf.Bytes(), nil
}

// renderQR produces a size×size QR image for content. Error correction is set
// to the highest level so the symbol stays readable on a photographic
// background even with ~30% damage.
func renderQR(content string, size int) (image.Image, error) {
	qrc, err := qrcode.NewWith(content, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "could not create QR code")
	}

	var buf bytes.Buffer
	writer := standard.NewWithWriter(nopWriteCloser{&buf},
		standard.WithQRWidth(4),
		standard.WithBorderWidth(4),
		standard.WithBgColor(color.RGBA{255, 255, 255, 255}),
		standard.WithFgColor(color.RGBA{0, 0, 0, 255}),
	)
	if err := qrc.Save(writer); err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "could not render QR code")
	}

	img, _, err := image.Decode(&buf)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeCompositing, err, "could not decode rendered QR code")
	}
	// Nearest neighbor keeps module edges crisp when scaling to the overlay size.
	return imaging.Resize(img, size, size, imaging.NearestNeighbor), nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
