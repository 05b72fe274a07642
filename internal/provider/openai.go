package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAI calls the OpenAI image edit endpoint (gpt-image-1 and friends).
type OpenAI struct {
	// BaseURL may be overridden for tests.
	BaseURL string

	apiKey string
	model  string
	client *http.Client
}

// NewOpenAI returns an OpenAI-backed provider.
func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		BaseURL: defaultOpenAIBaseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
	}
}

// Transform normalizes img and issues one synchronous image-edit request,
// asking for exactly one 1024x1024 output.
func (o *OpenAI) Transform(ctx context.Context, img []byte, prompt string) ([]byte, error) {
	if o.apiKey == "" {
		return nil, apperrProvider(nil, "OPENAI_API_KEY not set")
	}

	normalized, err := Normalize(img)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, apperrProvider(err, "could not build request body")
	}
	if _, err := part.Write(normalized); err != nil {
		return nil, apperrProvider(err, "could not build request body")
	}
	for field, value := range map[string]string{
		"model":  o.model,
		"prompt": prompt,
		"n":      "1",
		"size":   "1024x1024",
	} {
		if err := mw.WriteField(field, value); err != nil {
			return nil, apperrProvider(err, "could not build request body")
		}
	}
	if err := mw.Close(); err != nil {
		return nil, apperrProvider(err, "could not build request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/images/edits", &body)
	if err != nil {
		return nil, apperrProvider(err, "could not create request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, apperrProvider(err, "image generation request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrProvider(nil, "provider returned status %d: %s", resp.StatusCode, msg)
	}

	var response struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, apperrProvider(err, "could not decode provider response")
	}
	if len(response.Data) == 0 {
		return nil, apperrProvider(nil, "no image was generated")
	}

	out, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return nil, apperrProvider(err, "could not decode generated image payload")
	}
	return out, nil
}

var _ Provider = (*OpenAI)(nil)
