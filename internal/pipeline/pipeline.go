// Package pipeline runs one upload end-to-end: transform through the external
// provider, composite the QR and logo overlays, persist the artifact. Each
// request is a single sequential pass with its own buffers; many requests may
// run concurrently and share nothing but the store's backing storage.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"animebooth/internal/apperr"
	"animebooth/internal/provider"
	"animebooth/internal/store"
)

// Transformer is the slice of the provider the pipeline needs.
type Transformer interface {
	Transform(ctx context.Context, img []byte, prompt string) ([]byte, error)
}

// Compositor is the slice of the compositing stage the pipeline needs.
type Compositor interface {
	Overlay(styled []byte, targetURL string) ([]byte, error)
}

// Result is one processed upload: the generated identifier, the blob name it
// was persisted under, and the final bytes streamed back to the client.
type Result struct {
	ID    string
	Name  string
	Image []byte
}

// Runner executes the upload pipeline.
type Runner struct {
	transformer Transformer
	compositor  Compositor
	store       store.Store
	targetURL   string
	logger      *log.Logger
}

// NewRunner wires the pipeline stages together. targetURL is the fixed QR
// payload, resolved once from configuration.
func NewRunner(t Transformer, c Compositor, s store.Store, targetURL string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		transformer: t,
		compositor:  c,
		store:       s,
		targetURL:   targetURL,
		logger:      logger,
	}
}

// Execute processes one uploaded image. The provider is invoked exactly once;
// failures are not retried and nothing is persisted unless every stage
// succeeded.
func (r *Runner) Execute(ctx context.Context, upload []byte) (*Result, error) {
	if len(upload) == 0 {
		return nil, apperr.New(apperr.CodeValidation, "no image file provided")
	}

	id := uuid.NewString()
	start := time.Now()
	r.logger.Info("processing upload", "id", id, "bytes", len(upload))

	styled, err := r.transformer.Transform(ctx, upload, provider.DefaultPrompt)
	if err != nil {
		r.logger.Error("style transform failed", "id", id, "err", err)
		return nil, err
	}

	final, err := r.compositor.Overlay(styled, r.targetURL)
	if err != nil {
		r.logger.Error("compositing failed", "id", id, "err", err)
		return nil, err
	}

	name := store.FinalName(id)
	if err := r.store.Put(ctx, name, final); err != nil {
		// The image was generated but never durably stored; surface it rather
		// than handing back a result that looks persisted.
		r.logger.Error("persist failed after generation", "id", id, "err", err)
		return nil, err
	}

	r.logger.Info("upload processed", "id", id, "name", name,
		"bytes", len(final), "elapsed", time.Since(start).Round(time.Millisecond))
	return &Result{ID: id, Name: name, Image: final}, nil
}
