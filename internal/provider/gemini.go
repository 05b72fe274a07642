package provider

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"animebooth/internal/apperr"
)

// Gemini calls a Google Gemini image-generation model.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini returns a Gemini-backed provider.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

// Transform normalizes img and issues one generation request with the image
// and prompt, returning the first image part of the first candidate.
func (g *Gemini) Transform(ctx context.Context, img []byte, prompt string) ([]byte, error) {
	if g.apiKey == "" {
		return nil, apperrProvider(nil, "GEMINI_API_KEY not set")
	}

	normalized, err := Normalize(img)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, apperrProvider(err, "could not create gemini client")
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.ImageData("png", normalized), genai.Text(prompt))
	if err != nil {
		return nil, apperrProvider(err, "image generation request failed")
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return blob.Data, nil
			}
		}
	}
	return nil, apperrProvider(nil, "no image was generated")
}

var _ Provider = (*Gemini)(nil)

// apperrProvider wraps provider failures under the provider error code.
func apperrProvider(cause error, format string, args ...any) error {
	if cause != nil {
		return apperr.Wrap(apperr.CodeProvider, cause, format, args...)
	}
	return apperr.New(apperr.CodeProvider, format, args...)
}
