// Package gemini wraps the google.golang.org/genai SDK behind a small
// invoker surface, classifies transport failures into an explicit kind,
// and applies the retry policy shared by every orchestrator.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"adgen/internal/domain"
)

// Invoker is the minimal surface of the remote AI service that
// orchestrators depend on. Tests substitute a stub.
type Invoker interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options configures a Client.
type Options struct {
	APIKey string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
	// RequestsPerMinute applies a client-side budget across all calls
	// made through this client. Zero disables the limiter.
	RequestsPerMinute int
	Logger            zerolog.Logger
}

// Client is the production Invoker backed by the Gemini SDK.
type Client struct {
	inner   *genai.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient constructs a Gemini-backed client for one API key.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, domain.ErrNoAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	inner, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), opts.RequestsPerMinute)
	}

	return &Client{inner: inner, limiter: limiter, logger: opts.Logger}, nil
}

// GenerateContent forwards to the SDK, honoring the rate budget and
// returning classified errors so callers read a kind instead of
// searching messages.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	resp, err := c.inner.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, Classify(err)
	}
	return resp, nil
}

// Classify converts an arbitrary error into a *domain.ServiceError with
// an explicit kind. The HTTP status carried by the SDK's APIError is
// authoritative; message markers are a fallback for untyped errors.
func Classify(err error) *domain.ServiceError {
	var svcErr *domain.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	status := 0
	message := err.Error()
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Code
		if apiErr.Message != "" {
			message = apiErr.Message
		}
	}

	kind := domain.KindOther
	switch {
	case status == http.StatusServiceUnavailable:
		kind = domain.KindOverloaded
	case status == http.StatusInternalServerError:
		kind = domain.KindInternalFault
	case status == http.StatusTooManyRequests:
		kind = domain.KindRateLimited
	case strings.Contains(message, "quota"),
		strings.Contains(message, "exhausted"),
		strings.Contains(message, "RESOURCE_EXHAUSTED"):
		kind = domain.KindRateLimited
	case strings.Contains(message, "overloaded"):
		kind = domain.KindOverloaded
	}

	return &domain.ServiceError{Kind: kind, Status: status, Message: message, Err: err}
}

// IsQuotaError reports whether err signals quota exhaustion. This is
// the trigger for one-shot model fallback, distinct from plain retry.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	return Classify(err).Kind == domain.KindRateLimited
}

// FirstInlineData returns the first inline media payload in a response,
// or nil when the response carries none.
func FirstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}
