package studio

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"adgen/internal/domain"
	"adgen/internal/gemini"
	"adgen/internal/manifest"
	"adgen/pkg/wav"
)

// PromptInput is a tagged prompt variant: either a parsed manifest
// document or plain text. Constructors keep the two cases explicit so
// callers never rely on format sniffing.
type PromptInput struct {
	raw string
	doc *manifest.Document
}

// RawPrompt wraps free-form prompt text.
func RawPrompt(text string) PromptInput {
	return PromptInput{raw: text}
}

// ManifestPrompt wraps a parsed manifest document.
func ManifestPrompt(doc *manifest.Document) PromptInput {
	return PromptInput{doc: doc}
}

// PromptFromStored rebuilds a PromptInput from a stored scene prompt
// string. Text that parses as a manifest becomes the manifest variant;
// everything else stays raw.
func PromptFromStored(stored string) PromptInput {
	if manifest.Looks(stored) {
		if doc, err := manifest.Parse(stored); err == nil {
			return ManifestPrompt(doc)
		}
	}
	return RawPrompt(stored)
}

// Render flattens the prompt to the text sent to the image model.
func (p PromptInput) Render() string {
	if p.doc != nil {
		if flat := p.doc.CinematicPrompt(); flat != "" {
			return flat
		}
	}
	return p.raw
}

// GenerateImage produces one scene keyframe as a base64-encoded image.
// Reference images precede the text prompt so subject identity carries
// over. On quota exhaustion of the primary model the call falls back
// once to the lighter model, which ignores the resolution hint. An
// empty string with a nil error means the model returned no image.
func (s *Service) GenerateImage(ctx context.Context, prompt PromptInput, aspect domain.AspectRatio, resolution domain.ImageResolution, referenceImages [][]byte) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	var parts []*genai.Part
	for i, img := range referenceImages {
		if i >= domain.MaxReferenceImages {
			break
		}
		parts = append(parts, genai.NewPartFromBytes(img, "image/jpeg"))
	}
	parts = append(parts, &genai.Part{Text: prompt.Render()})
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	primaryConfig := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(aspect),
			ImageSize:   string(resolution),
		},
	}

	resp, err := gemini.Retry(ctx, s.logger, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return client.GenerateContent(ctx, s.models.Image, contents, primaryConfig)
	}, s.retries, s.retryDelay)
	if err != nil {
		if !gemini.IsQuotaError(err) {
			return "", err
		}
		s.logger.Warn().
			Str("model", s.models.Image).
			Str("fallback", s.models.ImageFallback).
			Msg("primary image model quota exhausted, switching to fallback")

		// The fallback model rejects the resolution hint.
		fallbackConfig := &genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: string(aspect)},
		}
		resp, err = gemini.Retry(ctx, s.logger, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
			return client.GenerateContent(ctx, s.models.ImageFallback, contents, fallbackConfig)
		}, s.retries, s.retryDelay)
		if err != nil {
			return "", err
		}
	}

	blob := gemini.FirstInlineData(resp)
	if blob == nil {
		return "", nil
	}
	return base64.StdEncoding.EncodeToString(blob.Data), nil
}

// GenerateSpeech synthesizes dialogue with the given prebuilt voice and
// returns a complete base64-encoded WAV file. Unknown voice names fall
// back to the default voice.
func (s *Service) GenerateSpeech(ctx context.Context, text, voiceName string) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: domain.NormalizeVoice(voiceName),
				},
			},
		},
	}

	resp, err := gemini.Retry(ctx, s.logger, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return client.GenerateContent(ctx, s.models.TTS, genai.Text(text), config)
	}, s.retries, s.retryDelay)
	if err != nil {
		return "", err
	}

	blob := gemini.FirstInlineData(resp)
	if blob == nil {
		return "", domain.ErrNoAudioPayload
	}

	// The TTS model returns raw 16-bit mono PCM at 24 kHz.
	return base64.StdEncoding.EncodeToString(wav.Encode(blob.Data, wav.DefaultSampleRate)), nil
}

// RegenerateVeoPrompt rebuilds the production manifest for an edited
// scene by asking the model to translate and restructure the scene
// fields, instead of re-running the full analysis.
func (s *Service) RegenerateVeoPrompt(ctx context.Context, scene domain.SceneDraft) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	reference, err := manifest.Format(scene)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf(`You are a video production manifest compiler.
Convert the scene description below into a JSON production manifest with the exact structure of the reference document.
Translate Chinese inputs to English. Keep the director mandates and consistency checks intact.

Scene:
- Visual: %s
- Action: %s
- Camera: %s
- Dialogue: %s

Reference document structure:
%s`,
		firstNonEmpty(scene.VisualEN, scene.Visual),
		firstNonEmpty(scene.ActionEN, scene.Action),
		firstNonEmpty(scene.CameraEN, scene.Camera),
		scene.Dialogue,
		reference,
	)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		ResponseMIMEType:  "application/json",
	}

	resp, err := gemini.Retry(ctx, s.logger, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return client.GenerateContent(ctx, s.models.AnalysisFallback, genai.Text("Generate JSON"), config)
	}, s.retries, s.retryDelay)
	if err != nil {
		return "", err
	}

	raw := extractJSONFragment(trimCodeFence(resp.Text()))
	if _, err := manifest.Parse(raw); err != nil {
		s.logger.Warn().Err(err).Msg("regenerated prompt is not a manifest, keeping local version")
		return reference, nil
	}
	return raw, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
