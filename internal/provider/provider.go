// Package provider invokes the external image-generation service that turns an
// uploaded photo into anime-style art. Every backend normalizes the input the
// same way before the call, makes a single attempt, and performs no caching:
// identical inputs always re-invoke the provider.
package provider

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"animebooth/internal/apperr"
	"animebooth/internal/config"
)

// DefaultPrompt is the fixed instruction sent with every transform request.
const DefaultPrompt = "Convert this photo to high-quality anime style art, keep the same pose and appearance"

// maxDimension bounds the normalized input; this caps provider request size
// and cost.
const maxDimension = 1024

// Provider transforms image bytes through an external generation service.
type Provider interface {
	// Transform returns the styled image bytes for the given input and prompt.
	// Failures are reported with apperr.CodeProvider; undecodable input with
	// apperr.CodeValidation.
	Transform(ctx context.Context, img []byte, prompt string) ([]byte, error)
}

// FromConfig builds the configured provider backend.
func FromConfig(cfg *config.Config) Provider {
	if cfg.Provider == config.ProviderGemini {
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiImageModel)
	}
	return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIImageModel)
}

// Normalize decodes the input and downscales it so neither dimension exceeds
// 1024 px, preserving aspect ratio. Images already within bounds are never
// upscaled. The result is always PNG, the format the providers accept.
func Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "could not decode uploaded image")
	}

	b := img.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "could not re-encode image")
	}
	return buf.Bytes(), nil
}
