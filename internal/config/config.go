// Package config reads process configuration from the environment once at startup.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Provider backend names accepted in the PROVIDER variable.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds everything the server needs. There is no hot reload; values are
// read once in Load and passed down by construction.
type Config struct {
	Port string

	// Provider selection and credentials.
	Provider         string
	OpenAIAPIKey     string
	OpenAIImageModel string
	GeminiAPIKey     string
	GeminiImageModel string

	// QRTargetURL is the payload encoded into the QR overlay. It is a fixed
	// configuration value, never derived from stored blobs.
	QRTargetURL string

	// LogoPath points at the brand mark composited bottom-left (SVG or raster).
	LogoPath string

	// StorageDir is the directory backing the artifact store.
	StorageDir string

	LogLevel log.Level
}

// Load reads the environment into a Config, applying defaults where the
// original deployment had them.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "3001"),
		Provider:         getenv("PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIImageModel: getenv("OPENAI_IMAGE_MODEL", "gpt-image-1"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiImageModel: getenv("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),
		QRTargetURL:      getenv("QR_TARGET_URL", "https://ai.azure.com"),
		LogoPath:         getenv("LOGO_PATH", "web/assets/logo.svg"),
		StorageDir:       getenv("STORAGE_DIR", "anime-images"),
		LogLevel:         log.InfoLevel,
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
		cfg.LogLevel = parsed
	}

	switch cfg.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return nil, fmt.Errorf("unknown PROVIDER %q (want %s or %s)", cfg.Provider, ProviderOpenAI, ProviderGemini)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
