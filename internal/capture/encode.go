package capture

import (
	"bytes"
	"image"
	"image/jpeg"
)

const (
	captureQuality  = 82
	fallbackQuality = 50
)

// encodeFrame compresses a captured frame as JPEG. If the primary encode
// fails, a lower-fidelity pass is attempted before giving up.
func encodeFrame(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: captureQuality}); err == nil {
		return buf.Bytes(), nil
	}
	buf.Reset()
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: fallbackQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
