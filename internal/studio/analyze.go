package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"adgen/internal/domain"
	"adgen/internal/gemini"
	"adgen/internal/manifest"
)

// sceneFields are the nine per-scene fields the model must return, all
// string-typed and all required.
var sceneFields = []string{
	"id",
	"visual", "visual_en",
	"action", "action_en",
	"camera", "camera_en",
	"dialogue", "dialogue_cn",
}

// AnalyzeProduct runs the full script-generation pipeline: placement
// resolution, multi-modal request assembly, schema-constrained
// generation with quota fallback, response parsing, voice assignment,
// and per-scene manifest synthesis. Settings.SceneCount is updated to
// the count the model actually returned, which may differ from the
// request when a reference video drives scene detection.
func (s *Service) AnalyzeProduct(ctx context.Context, product domain.ProductInput, settings *domain.GenerationSettings) (*domain.AnalysisResult, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	platform, market, err := domain.ResolvePlacement(product.Platform, product.TargetMarket)
	if err != nil {
		return nil, err
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	contents := buildAnalysisContents(product, platform, market, settings.SceneCount)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: buildSystemInstruction(platform, market)}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
	}

	resp, err := gemini.Retry(ctx, s.logger, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return client.GenerateContent(ctx, s.models.Analysis, contents, config)
	}, s.retries, s.retryDelay)
	if err != nil {
		if !gemini.IsQuotaError(err) {
			return nil, err
		}
		s.logger.Warn().
			Str("model", s.models.Analysis).
			Str("fallback", s.models.AnalysisFallback).
			Msg("primary analysis model quota exhausted, switching to fallback")
		resp, err = gemini.Retry(ctx, s.logger, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
			return client.GenerateContent(ctx, s.models.AnalysisFallback, contents, config)
		}, s.retries, s.retryDelay)
		if err != nil {
			return nil, err
		}
	}

	raw := trimCodeFence(resp.Text())
	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Error().Err(err).Msg("analysis response is not valid JSON")
		return nil, &domain.ParseError{Message: domain.MsgAnalysisUnparsable, Err: err}
	}

	// The voice is chosen locally, overriding whatever the model put in
	// the assignedVoice slot.
	result.AssignedVoice = s.pickVoice()

	ensureSceneIDs(result.Scenes)
	for i := range result.Scenes {
		doc, err := manifest.Format(result.Scenes[i])
		if err != nil {
			return nil, err
		}
		result.Scenes[i].Prompt.ImagePrompt = doc
	}

	settings.SceneCount = len(result.Scenes)
	return &result, nil
}

// buildSystemInstruction embeds the platform/market context, the
// platform style directive, and the localization and representation
// rules into one creative-director brief.
func buildSystemInstruction(platform domain.PlatformProfile, market domain.MarketProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an elite E-commerce Creative Director Agent specialized for **%s** targeting the **%s** market.\n\n", platform.Label, market.Label)

	b.WriteString("**CONTEXT MATRIX**:\n")
	fmt.Fprintf(&b, "- Platform: %s (%s)\n", platform.Label, platform.Scope)
	fmt.Fprintf(&b, "- Target Market: %s\n", market.Label)
	fmt.Fprintf(&b, "- Primary Language: %s (%s)\n", market.Language, market.Tag)
	fmt.Fprintf(&b, "- Cultural Context: %s\n", market.Culture)
	fmt.Fprintf(&b, "- Video Style: %s\n\n", platform.StyleDirective())

	b.WriteString("**OBJECTIVE**:\nGenerate a high-conversion video script based on the provided product images/video.\n\n")

	b.WriteString("**CRITICAL RULES FOR LANGUAGE & LOCALIZATION**:\n")
	b.WriteString("1. User Interface Language (visual/action/camera fields): MUST be Chinese (中文) for the user to read and understand.\n")
	b.WriteString("2. AI Generation Language (visual_en, action_en, camera_en): MUST be English (high quality, detailed) for the video generation model.\n")
	fmt.Fprintf(&b, "3. Dialogue Language: MUST be %s (locale %s). If the platform is domestic (Douyin, Taobao, etc.), this MUST be Chinese. If the platform is global, this MUST be the local language of %s.\n", market.Language, market.Tag, market.Label)
	b.WriteString("4. dialogue_cn: always the Chinese translation of the dialogue.\n\n")

	if market.ID == domain.DomesticMarketID {
		b.WriteString("**CRITICAL ETHNICITY CONSTRAINT**:\n")
		b.WriteString("ALL generated descriptions of human models (in visual_en) MUST explicitly specify 'Chinese model', 'Asian ethnicity', or 'East Asian features'. ")
		b.WriteString("DO NOT generate descriptions implying Western, Caucasian, or ambiguous ethnicity for the Chinese market. ")
		b.WriteString("Example correct: \"A stylish young Chinese woman holding the product...\". Example incorrect: \"A blonde woman...\", \"A person...\".\n\n")
	}

	b.WriteString("**OUTPUT FORMAT**:\nJSON only, matching the response schema exactly.")
	return b.String()
}

// buildAnalysisContents assembles the multi-part request: every product,
// model, and background reference image, the optional reference video,
// and the closing text block.
func buildAnalysisContents(product domain.ProductInput, platform domain.PlatformProfile, market domain.MarketProfile, sceneCount int) []*genai.Content {
	var parts []*genai.Part
	for _, group := range [][][]byte{product.Images, product.ModelImages, product.BackgroundImages} {
		for _, img := range group {
			parts = append(parts, genai.NewPartFromBytes(img, "image/jpeg"))
		}
	}
	if v := product.ReferenceVideo; v != nil {
		parts = append(parts, genai.NewPartFromBytes(v.Data, v.MIMEType))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d scene script for %s. Platform: %s. Market: %s.", sceneCount, product.Title, platform.Label, market.Label)
	if product.ReferenceVideo != nil {
		b.WriteString(" Analyze the reference video for structure. Ignore the scene count, determine the optimal count based on video analysis.")
	}
	fmt.Fprintf(&b, "\nDescription: %s", orDefault(product.Description, "Not specified"))
	fmt.Fprintf(&b, "\nIdeas: %s", orDefault(product.CreativeNotes, "Open"))
	parts = append(parts, &genai.Part{Text: b.String()})

	return []*genai.Content{{Role: "user", Parts: parts}}
}

// analysisSchema declares the strict output contract: free-text strategy
// fields plus an ordered scene array with exactly the nine named string
// fields per scene.
func analysisSchema() *genai.Schema {
	sceneProps := make(map[string]*genai.Schema, len(sceneFields))
	for _, f := range sceneFields {
		sceneProps[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"productType":    {Type: genai.TypeString},
			"sellingPoints":  {Type: genai.TypeString},
			"targetAudience": {Type: genai.TypeString},
			"hook":           {Type: genai.TypeString},
			"painPoints":     {Type: genai.TypeString},
			"strategy":       {Type: genai.TypeString},
			"assignedVoice":  {Type: genai.TypeString},
			"scenes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: sceneProps,
					Required:   sceneFields,
				},
			},
		},
	}
}

// ensureSceneIDs replaces empty or duplicated model-issued scene ids so
// the UI can address scenes reliably.
func ensureSceneIDs(scenes []domain.SceneDraft) {
	seen := make(map[string]struct{}, len(scenes))
	for i := range scenes {
		id := strings.TrimSpace(scenes[i].ID)
		if id != "" {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				scenes[i].ID = id
				continue
			}
		}
		id = uuid.NewString()
		seen[id] = struct{}{}
		scenes[i].ID = id
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
