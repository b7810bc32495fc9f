// Package studio exposes the orchestration operations the UI layer
// calls: product analysis, per-scene image and speech generation, and
// manifest regeneration. Every collaborator is carried explicitly on
// the Service; there is no package-level mutable state.
package studio

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"adgen/internal/domain"
	"adgen/internal/gemini"
	"adgen/internal/infra"
	"adgen/internal/infra/credentials"
)

// ClientFactory builds an Invoker for one resolved API key. Tests
// substitute a factory returning a stub.
type ClientFactory func(ctx context.Context, apiKey string) (gemini.Invoker, error)

// ModelSet names the models each operation targets.
type ModelSet struct {
	Analysis         string
	AnalysisFallback string
	Image            string
	ImageFallback    string
	TTS              string
	Probe            string
}

// ModelsFromConfig copies the configured model identifiers.
func ModelsFromConfig(cfg *infra.Config) ModelSet {
	return ModelSet{
		Analysis:         cfg.AnalysisModel,
		AnalysisFallback: cfg.AnalysisFallbackModel,
		Image:            cfg.ImageModel,
		ImageFallback:    cfg.ImageFallbackModel,
		TTS:              cfg.TTSModel,
		Probe:            cfg.ProbeModel,
	}
}

// DefaultClientFactory builds SDK-backed clients using the configured
// base URL and request budget.
func DefaultClientFactory(cfg *infra.Config, logger zerolog.Logger) ClientFactory {
	return func(ctx context.Context, apiKey string) (gemini.Invoker, error) {
		return gemini.NewClient(ctx, gemini.Options{
			APIKey:            apiKey,
			BaseURL:           cfg.GeminiBaseURL,
			RequestsPerMinute: cfg.RequestsPerMinute,
			Logger:            logger,
		})
	}
}

// Service is the orchestration entry point.
type Service struct {
	creds   *credentials.Store
	clients ClientFactory
	models  ModelSet
	logger  zerolog.Logger

	retries    int
	retryDelay time.Duration

	// randMu guards rng: *rand.Rand is not safe for the concurrent
	// per-scene calls the UI issues.
	randMu sync.Mutex
	rng    *rand.Rand
}

// Option customizes a Service.
type Option func(*Service)

// WithRand replaces the randomness source used for voice assignment so
// tests can supply a fixed sequence.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithRetryPolicy overrides the remote-call retry budget and initial
// backoff delay.
func WithRetryPolicy(retries int, delay time.Duration) Option {
	return func(s *Service) {
		s.retries = retries
		s.retryDelay = delay
	}
}

// New constructs a Service.
func New(creds *credentials.Store, clients ClientFactory, models ModelSet, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		creds:      creds,
		clients:    clients,
		models:     models,
		logger:     logger,
		retries:    gemini.DefaultMaxRetries,
		retryDelay: gemini.DefaultInitialDelay,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCustomAPIKey records an explicit user-supplied key for all
// subsequent calls.
func (s *Service) SetCustomAPIKey(key string) error {
	return s.creds.SetCustomKey(key)
}

// VerifyAPIKey checks a key with one minimal generation call against
// the probe model. Any failure is reported as false, never an error.
func (s *Service) VerifyAPIKey(ctx context.Context, key string) bool {
	client, err := s.clients(ctx, key)
	if err != nil {
		return false
	}
	_, err = client.GenerateContent(ctx, s.models.Probe, genai.Text("ping"), nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("api key verification failed")
		return false
	}
	return true
}

// client resolves the credential and builds the invoker for one call.
func (s *Service) client(ctx context.Context) (gemini.Invoker, error) {
	key, err := s.creds.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return s.clients(ctx, key)
}

func (s *Service) pickVoice() string {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return domain.PickVoice(s.rng)
}
