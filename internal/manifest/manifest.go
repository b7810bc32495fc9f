// Package manifest builds and re-parses the production manifest
// document consumed by the downstream video-generation model. The
// structural scaffolding (version tag, output spec, director mandates,
// single 0-8s timeline entry) is a fixed contract: downstream prompts
// depend on the exact field names and constants, so none of it is
// user-configurable.
package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"adgen/internal/domain"
)

// Version is the manifest schema version tag.
const Version = "4.0"

const (
	defaultDescription = "Industrial-grade production manifest."
	referenceImage     = "Start Frame"
	backgroundAction   = "Consistent environment"
	consistencyCheck   = "At 0s, 2s, 4s, 6s: Ensure absolute consistency."
	movementDetail     = "Cinematic execution"
	ambientTone        = "Natural room tone"
)

var (
	positiveMandates = []string{
		"The video MUST start with the provided start frame.",
		"Maintenance of texture, lighting, and resolution from the start frame is critical at 0s, 2s, 4s, and 6s.",
	}
	negativeMandates = []string{
		"NO smooth or stable camera motion if action is chaotic.",
		"NO morphing of character features.",
		"NO lowering of resolution or quality.",
	}
)

// Document is the top-level manifest wrapper.
type Document struct {
	Production Production `json:"veo_production_manifest"`
}

// Production is the manifest body.
type Production struct {
	Version          string           `json:"version"`
	ShotSummary      string           `json:"shot_summary"`
	Description      string           `json:"description"`
	GlobalSettings   GlobalSettings   `json:"global_settings"`
	DirectorMandates DirectorMandates `json:"director_mandates"`
	TimelineScript   []TimelineEntry  `json:"timeline_script"`
}

type GlobalSettings struct {
	InputAssets          InputAssets          `json:"input_assets"`
	OutputSpecifications OutputSpecifications `json:"output_specifications"`
	RenderingPipeline    RenderingPipeline    `json:"rendering_pipeline"`
}

type InputAssets struct {
	ReferenceImage string `json:"reference_image"`
}

type OutputSpecifications struct {
	Resolution      string          `json:"resolution"`
	AspectRatioLock AspectRatioLock `json:"aspect_ratio_lock"`
	ColorSpace      string          `json:"color_space"`
	DynamicRange    string          `json:"dynamic_range"`
}

type AspectRatioLock struct {
	Enabled bool `json:"enabled"`
}

type RenderingPipeline struct {
	Engine         string `json:"engine"`
	LightTransport string `json:"light_transport"`
}

type DirectorMandates struct {
	PositiveMandates []string `json:"positive_mandates"`
	NegativeMandates []string `json:"negative_mandates"`
}

type TimelineEntry struct {
	TimeStart   string   `json:"time_start"`
	TimeEnd     string   `json:"time_end"`
	Description string   `json:"description"`
	Elements    Elements `json:"elements"`
}

type Elements struct {
	Visuals    Visuals    `json:"visuals"`
	Camera     Camera     `json:"camera"`
	AudioScape AudioScape `json:"audio_scape"`
}

type Visuals struct {
	SubjectAction    string `json:"subject_action"`
	BackgroundAction string `json:"background_action"`
	ConsistencyCheck string `json:"consistency_check"`
}

type Camera struct {
	PrimaryMovement     string `json:"primary_movement"`
	MovementDescription string `json:"movement_description"`
	Speed               string `json:"speed"`
}

type AudioScape struct {
	Dialogue DialogueTrack `json:"dialogue"`
	SFX      []string      `json:"sfx"`
	Ambient  string        `json:"ambient"`
}

type DialogueTrack struct {
	Transcript string `json:"transcript"`
}

// New builds the manifest document for a scene. English fields are
// preferred over the native-language ones when present.
func New(scene domain.SceneDraft) Document {
	visual := preferEnglish(scene.VisualEN, scene.Visual)
	return Document{
		Production: Production{
			Version:     Version,
			ShotSummary: visual,
			Description: defaultDescription,
			GlobalSettings: GlobalSettings{
				InputAssets: InputAssets{ReferenceImage: referenceImage},
				OutputSpecifications: OutputSpecifications{
					Resolution:      "1080p",
					AspectRatioLock: AspectRatioLock{Enabled: true},
					ColorSpace:      "Rec. 2020",
					DynamicRange:    "HDR",
				},
				RenderingPipeline: RenderingPipeline{
					Engine:         "Physically-Based Rendering (PBR)",
					LightTransport: "Path Tracing",
				},
			},
			DirectorMandates: DirectorMandates{
				PositiveMandates: positiveMandates,
				NegativeMandates: negativeMandates,
			},
			TimelineScript: []TimelineEntry{{
				TimeStart:   "0.0s",
				TimeEnd:     "8.0s",
				Description: visual,
				Elements: Elements{
					Visuals: Visuals{
						SubjectAction:    preferEnglish(scene.ActionEN, scene.Action),
						BackgroundAction: backgroundAction,
						ConsistencyCheck: consistencyCheck,
					},
					Camera: Camera{
						PrimaryMovement:     preferEnglish(scene.CameraEN, scene.Camera),
						MovementDescription: movementDetail,
						Speed:               "Normal",
					},
					AudioScape: AudioScape{
						Dialogue: DialogueTrack{Transcript: scene.Dialogue},
						SFX:      []string{"Ambient noise"},
						Ambient:  ambientTone,
					},
				},
			}},
		},
	}
}

// Format serializes the manifest for a scene to its canonical textual
// form (two-space indentation). The output must round-trip through
// Parse with the visual, camera, and description fields intact.
func Format(scene domain.SceneDraft) (string, error) {
	raw, err := json.MarshalIndent(New(scene), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	return string(raw), nil
}

// Looks reports whether raw plausibly holds a serialized manifest
// document (leading structural marker check only; Parse decides).
func Looks(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "{")
}

// Parse re-parses a serialized manifest. Text that parses as JSON but
// lacks the manifest wrapper is rejected.
func Parse(raw string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if doc.Production.Version == "" && len(doc.Production.TimelineScript) == 0 {
		return nil, fmt.Errorf("parse manifest: missing veo_production_manifest body")
	}
	return &doc, nil
}

// CinematicPrompt flattens the manifest into a single text-to-image
// prompt: "<camera> shot of <visual>. <description> photorealistic, 8k,
// cinematic lighting." Missing parts are omitted gracefully; an empty
// string means the manifest carried no visual to flatten.
func (d *Document) CinematicPrompt() string {
	var visual, camera, desc string
	if len(d.Production.TimelineScript) > 0 {
		entry := d.Production.TimelineScript[0]
		visual = strings.TrimSpace(entry.Elements.Visuals.SubjectAction)
		camera = strings.TrimSpace(entry.Elements.Camera.PrimaryMovement)
		desc = strings.TrimSpace(entry.Description)
	}
	if visual == "" {
		return ""
	}
	if desc == "" {
		desc = strings.TrimSpace(d.Production.ShotSummary)
	}

	var b strings.Builder
	if camera != "" {
		b.WriteString(camera)
		b.WriteString(" shot of ")
	}
	b.WriteString(visual)
	b.WriteString(".")
	if desc != "" {
		b.WriteString(" ")
		b.WriteString(desc)
	}
	b.WriteString(" photorealistic, 8k, cinematic lighting.")
	return b.String()
}

func preferEnglish(en, native string) string {
	if strings.TrimSpace(en) != "" {
		return en
	}
	return native
}
