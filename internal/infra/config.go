package infra

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default model identifiers. The primary analysis model is the strongest
// reasoning model available; each fallback trades capability for
// availability when the primary's quota is exhausted.
const (
	DefaultAnalysisModel         = "gemini-2.5-pro"
	DefaultAnalysisFallbackModel = "gemini-2.5-flash"
	DefaultImageModel            = "gemini-3-pro-image-preview"
	DefaultImageFallbackModel    = "gemini-2.5-flash-image"
	DefaultTTSModel              = "gemini-2.5-flash-preview-tts"
	DefaultProbeModel            = "gemini-2.5-flash"
)

// Config represents core configuration loaded from environment variables.
type Config struct {
	AppEnv                string
	GeminiAPIKey          string
	GeminiBaseURL         string
	AnalysisModel         string
	AnalysisFallbackModel string
	ImageModel            string
	ImageFallbackModel    string
	TTSModel              string
	ProbeModel            string
	RequestsPerMinute     int
}

// LoadConfig loads configuration from the environment (including a local
// .env file when present) and applies defaults. No field is mandatory:
// the ambient GEMINI_API_KEY may legitimately be absent when the user
// supplies a key at runtime through the credential store.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:         os.Getenv("GEMINI_BASE_URL"),
		AnalysisModel:         getEnv("GEMINI_MODEL_ANALYSIS", DefaultAnalysisModel),
		AnalysisFallbackModel: getEnv("GEMINI_MODEL_ANALYSIS_FALLBACK", DefaultAnalysisFallbackModel),
		ImageModel:            getEnv("GEMINI_MODEL_IMAGE", DefaultImageModel),
		ImageFallbackModel:    getEnv("GEMINI_MODEL_IMAGE_FALLBACK", DefaultImageFallbackModel),
		TTSModel:              getEnv("GEMINI_MODEL_TTS", DefaultTTSModel),
		ProbeModel:            getEnv("GEMINI_MODEL_PROBE", DefaultProbeModel),
		RequestsPerMinute:     getEnvInt("GEMINI_REQUESTS_PER_MINUTE", 0),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
