package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a remote-call failure. The transport layer
// populates it once so retry and fallback decisions are field reads
// rather than message searches.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindOverloaded
	KindInternalFault
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindOverloaded:
		return "overloaded"
	case KindInternalFault:
		return "internal_fault"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "other"
	}
}

// ServiceError is a remote-service failure with an explicit kind.
type ServiceError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini %s (status %d)", e.Kind, e.Status)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Retryable reports whether the failure belongs to one of the transient
// classes the retry controller is allowed to retry.
func (e *ServiceError) Retryable() bool {
	return e.Kind == KindOverloaded || e.Kind == KindInternalFault || e.Kind == KindRateLimited
}

// ParseError is a malformed structured response from the script
// generation call. It is terminal for the attempt and its message is
// shown to the user as-is.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() error { return e.Err }

// MsgAnalysisUnparsable is the user-facing message attached to a
// ParseError from script generation.
const MsgAnalysisUnparsable = "无法解析 AI 返回的分析结果，请重试。"

var (
	ErrNoProductMedia    = errors.New("at least one product image or a reference video is required")
	ErrMarketUnavailable = errors.New("domestic market is not available on a global platform")
	ErrNoAPIKey          = errors.New("no gemini api key available from any source")
	// ErrNoAudioPayload carries the localized message the UI surfaces
	// when the TTS call returns a well-formed response without audio.
	ErrNoAudioPayload = errors.New("TTS 服务未返回音频数据。")
)
