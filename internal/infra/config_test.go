package infra

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "GEMINI_API_KEY", "GEMINI_BASE_URL",
		"GEMINI_MODEL_ANALYSIS", "GEMINI_MODEL_ANALYSIS_FALLBACK",
		"GEMINI_MODEL_IMAGE", "GEMINI_MODEL_IMAGE_FALLBACK",
		"GEMINI_MODEL_TTS", "GEMINI_MODEL_PROBE",
		"GEMINI_REQUESTS_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Errorf("expected development, got %s", cfg.AppEnv)
	}
	if cfg.AnalysisModel != DefaultAnalysisModel {
		t.Errorf("expected %s, got %s", DefaultAnalysisModel, cfg.AnalysisModel)
	}
	if cfg.AnalysisFallbackModel != DefaultAnalysisFallbackModel {
		t.Errorf("expected %s, got %s", DefaultAnalysisFallbackModel, cfg.AnalysisFallbackModel)
	}
	if cfg.ImageModel != DefaultImageModel {
		t.Errorf("expected %s, got %s", DefaultImageModel, cfg.ImageModel)
	}
	if cfg.TTSModel != DefaultTTSModel {
		t.Errorf("expected %s, got %s", DefaultTTSModel, cfg.TTSModel)
	}
	if cfg.RequestsPerMinute != 0 {
		t.Errorf("expected rate limiting disabled by default, got %d", cfg.RequestsPerMinute)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_MODEL_ANALYSIS", "custom-analysis")
	t.Setenv("GEMINI_REQUESTS_PER_MINUTE", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppEnv != "production" {
		t.Errorf("expected production, got %s", cfg.AppEnv)
	}
	if cfg.GeminiAPIKey != "env-key" {
		t.Errorf("expected env-key, got %s", cfg.GeminiAPIKey)
	}
	if cfg.AnalysisModel != "custom-analysis" {
		t.Errorf("expected custom-analysis, got %s", cfg.AnalysisModel)
	}
	if cfg.RequestsPerMinute != 30 {
		t.Errorf("expected 30, got %d", cfg.RequestsPerMinute)
	}
}

func TestLoadConfigIgnoresMalformedInt(t *testing.T) {
	t.Setenv("GEMINI_REQUESTS_PER_MINUTE", "lots")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RequestsPerMinute != 0 {
		t.Errorf("malformed value must fall back to 0, got %d", cfg.RequestsPerMinute)
	}
}
